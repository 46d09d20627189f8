package domain

import "encoding/json"

// CatalogView is the read-only, request-scoped snapshot every engine reads.
// It is built fresh for each request and never shared between requests.
type CatalogView struct {
	Courses  []Course          `json:"courses" yaml:"courses"`
	Enrolled []Course          `json:"user_course" yaml:"user_course"`
	Cart     []Course          `json:"cart_products" yaml:"cart_products"`
	Tasks    []json.RawMessage `json:"tasks,omitempty" yaml:"-"`
}

// CatalogSummary holds the counts recorded alongside a conversation log.
type CatalogSummary struct {
	CoursesCount     int `json:"courses_count"`
	UserCoursesCount int `json:"user_courses_count"`
	CartItemsCount   int `json:"cart_items_count"`
	TasksCount       int `json:"tasks_count"`
}

// Summary returns the per-list counts of the view.
func (v CatalogView) Summary() CatalogSummary {
	return CatalogSummary{
		CoursesCount:     len(v.Courses),
		UserCoursesCount: len(v.Enrolled),
		CartItemsCount:   len(v.Cart),
		TasksCount:       len(v.Tasks),
	}
}
