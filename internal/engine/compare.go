package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/alexanderramin/learnhub/internal/domain"
)

// ErrNotComparable is returned when fewer than two distinct courses resolve.
var ErrNotComparable = errors.New("need at least two matching courses to compare")

// Feature names one comparison table row.
type Feature string

const (
	FeaturePrice        Feature = "price"
	FeatureRating       Feature = "rating"
	FeatureDuration     Feature = "duration"
	FeatureInstructor   Feature = "instructor"
	FeatureCategory     Feature = "category"
	FeatureLessonsCount Feature = "lessons_count"
)

// ComparisonFeatures is the fixed row order of a comparison table.
var ComparisonFeatures = []Feature{
	FeaturePrice, FeatureRating, FeatureDuration,
	FeatureInstructor, FeatureCategory, FeatureLessonsCount,
}

const notAvailable = "N/A"

// PickKind labels a comparison recommendation.
type PickKind string

const (
	PickBestValue         PickKind = "Best Value"
	PickHighestRated      PickKind = "Highest Rated"
	PickMostComprehensive PickKind = "Most Comprehensive"
)

// FeatureRow holds one feature's display value per compared course, in
// Comparison.Courses order.
type FeatureRow struct {
	Feature Feature  `json:"feature"`
	Values  []string `json:"values"`
}

// Pick is one labelled recommendation from a comparison.
type Pick struct {
	Kind   PickKind      `json:"type"`
	Course domain.Course `json:"course"`
	Reason string        `json:"reason"`
}

// Comparison is the side-by-side view of two or more catalog courses.
type Comparison struct {
	Courses []domain.Course `json:"courses"`
	Table   []FeatureRow    `json:"comparison_table"`
	Picks   []Pick          `json:"recommendations"`
}

// Compare resolves each title against the catalog, drops duplicates and
// misses, and builds the feature table plus three picks. Fewer than two
// distinct resolved courses yields ErrNotComparable.
func Compare(titles []string, catalog []domain.Course) (*Comparison, error) {
	seen := make(map[int]bool)
	var courses []domain.Course
	for _, title := range titles {
		m, err := Resolve(title, catalog)
		if err != nil {
			continue
		}
		if seen[m.Index] {
			continue
		}
		seen[m.Index] = true
		courses = append(courses, m.Course)
	}
	if len(courses) < 2 {
		return nil, fmt.Errorf("%w: %d of %d titles resolved", ErrNotComparable, len(courses), len(titles))
	}

	cmp := &Comparison{Courses: courses}
	for _, f := range ComparisonFeatures {
		row := FeatureRow{Feature: f, Values: make([]string, len(courses))}
		for i, c := range courses {
			row.Values[i] = FeatureValue(c, f)
		}
		cmp.Table = append(cmp.Table, row)
	}

	cmp.Picks = []Pick{
		bestValue(courses),
		highestRated(courses),
		mostComprehensive(courses),
	}
	return cmp, nil
}

// FeatureValue renders a course attribute for the comparison table.
func FeatureValue(c domain.Course, f Feature) string {
	switch f {
	case FeaturePrice:
		if c.Price == nil {
			return notAvailable
		}
		return "$" + formatNumber(*c.Price)
	case FeatureRating:
		if c.Rating == nil {
			return notAvailable
		}
		return formatNumber(*c.Rating) + "/5.0"
	case FeatureLessonsCount:
		if c.LessonsCount == nil {
			return notAvailable
		}
		return strconv.Itoa(*c.LessonsCount)
	case FeatureDuration:
		return domain.CoalesceStr(c.Duration, notAvailable)
	case FeatureInstructor:
		return domain.CoalesceStr(c.Instructor, notAvailable)
	case FeatureCategory:
		return domain.CoalesceStr(c.Category, notAvailable)
	}
	return notAvailable
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// bestValue picks the lowest price, breaking ties on the higher rating.
// Missing prices sort last.
func bestValue(courses []domain.Course) Pick {
	best := 0
	for i := 1; i < len(courses); i++ {
		p, bp := courses[i].PriceOr(math.Inf(1)), courses[best].PriceOr(math.Inf(1))
		if p < bp || (p == bp && courses[i].RatingOr(0) > courses[best].RatingOr(0)) {
			best = i
		}
	}
	c := courses[best]
	return Pick{Kind: PickBestValue, Course: c, Reason: "Lowest price at " + FeatureValue(c, FeaturePrice)}
}

func highestRated(courses []domain.Course) Pick {
	best := 0
	for i := 1; i < len(courses); i++ {
		if courses[i].RatingOr(0) > courses[best].RatingOr(0) {
			best = i
		}
	}
	c := courses[best]
	return Pick{Kind: PickHighestRated, Course: c, Reason: "Top rating: " + formatNumber(c.RatingOr(0)) + "/5.0"}
}

func mostComprehensive(courses []domain.Course) Pick {
	best := 0
	for i := 1; i < len(courses); i++ {
		if courses[i].LessonsOr(0) > courses[best].LessonsOr(0) {
			best = i
		}
	}
	c := courses[best]
	return Pick{Kind: PickMostComprehensive, Course: c, Reason: "Most lessons: " + strconv.Itoa(c.LessonsOr(0))}
}
