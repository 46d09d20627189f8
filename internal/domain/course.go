package domain

import "strings"

// Course is one catalog entry. Numeric fields are pointers so that a value
// missing from the catalog snapshot is distinguishable from a literal zero.
type Course struct {
	Title        string   `json:"title" yaml:"title"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Duration     string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	LessonsCount *int     `json:"lessons_count,omitempty" yaml:"lessons_count,omitempty"`
	Rating       *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Price        *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Instructor   string   `json:"instructor,omitempty" yaml:"instructor,omitempty"`
}

// NormalizedTitle returns the lowercased, trimmed title used for matching.
func (c Course) NormalizedTitle() string {
	return strings.ToLower(strings.TrimSpace(c.Title))
}

// Level classifies the course by keywords in its title.
func (c Course) Level() Level {
	return ClassifyLevel(c.Title)
}

// RatingOr returns the rating, or fallback when the catalog omitted it.
func (c Course) RatingOr(fallback float64) float64 {
	return ValueOr(c.Rating, fallback)
}

// PriceOr returns the price, or fallback when the catalog omitted it.
func (c Course) PriceOr(fallback float64) float64 {
	return ValueOr(c.Price, fallback)
}

// LessonsOr returns the lesson count, or fallback when the catalog omitted it.
func (c Course) LessonsOr(fallback int) int {
	return ValueOr(c.LessonsCount, fallback)
}

// ContainsTitle reports whether any course in list has exactly the given title.
func ContainsTitle(list []Course, title string) bool {
	for _, c := range list {
		if c.Title == title {
			return true
		}
	}
	return false
}
