// Package catalog reads the game metadata CSV and renders each game as
// a single document for indexing.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Record holds one game's metadata from the catalog CSV
type Record struct {
	Name                    string
	ShortDescription        string
	Genres                  string
	MinimumRequirements     string
	RecommendedRequirements string
	ReleaseDate             string
	Developer               string
	Publisher               string
	OverallPlayerRating     string
	PurchasedReviews        string
	EnglishReviews          string
	Link                    string
}

// Document renders the record as the document text that gets embedded
// and indexed.
func (r Record) Document() string {
	return fmt.Sprintf(
		"Name: %s\n"+
			"Short Description: %s\n"+
			"Genres: %s\n"+
			"Minimum System Requirements: %s\n"+
			"Recommended System Requirements: %s\n"+
			"Release Date: %s\n"+
			"Developer: %s\n"+
			"Publisher: %s\n"+
			"Overall Player Rating: %s\n"+
			"Reviews from Purchased People: %s\n"+
			"English Reviews: %s\n"+
			"Link: %s\n",
		r.Name, r.ShortDescription, r.Genres, r.MinimumRequirements,
		r.RecommendedRequirements, r.ReleaseDate, r.Developer, r.Publisher,
		r.OverallPlayerRating, r.PurchasedReviews, r.EnglishReviews, r.Link,
	)
}

// columns maps CSV header names to Record field setters
var columns = map[string]func(*Record, string){
	"name":                                    func(r *Record, v string) { r.Name = v },
	"short_description":                       func(r *Record, v string) { r.ShortDescription = v },
	"genres":                                  func(r *Record, v string) { r.Genres = v },
	"minimum_system_requirement":              func(r *Record, v string) { r.MinimumRequirements = v },
	"recommend_system_requirement":            func(r *Record, v string) { r.RecommendedRequirements = v },
	"release_date":                            func(r *Record, v string) { r.ReleaseDate = v },
	"developer":                               func(r *Record, v string) { r.Developer = v },
	"publisher":                               func(r *Record, v string) { r.Publisher = v },
	"overall_player_rating":                   func(r *Record, v string) { r.OverallPlayerRating = v },
	"number_of_reviews_from_purchased_people": func(r *Record, v string) { r.PurchasedReviews = v },
	"number_of_english_reviews":               func(r *Record, v string) { r.EnglishReviews = v },
	"link":                                    func(r *Record, v string) { r.Link = v },
}

// Parse reads the catalog CSV and returns one record per game. The first
// row must be a header naming the columns; column order does not matter
// and unknown columns are ignored.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	setters := make([]func(*Record, string), len(header))
	known := 0
	for i, name := range header {
		if setter, ok := columns[name]; ok {
			setters[i] = setter
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("no known columns in header %v", header)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+2, err)
		}

		var rec Record
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, value)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// ParseFile reads the catalog CSV from disk
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
