package engine

import "github.com/alexanderramin/learnhub/internal/domain"

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func course(title, category, instructor string, rating float64) domain.Course {
	return domain.Course{
		Title:      title,
		Category:   category,
		Instructor: instructor,
		Rating:     floatPtr(rating),
	}
}

func titles(courses []domain.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Title
	}
	return out
}
