package models

import "time"

// Turn is a single (query, answer) exchange within a session.
type Turn struct {
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
