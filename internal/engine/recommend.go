package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
)

const (
	weightCategory   = 3
	weightInstructor = 2
	weightLevelUp    = 2
	weightRating     = 1

	highRatingThreshold    = 4.5
	minRecommendationScore = 2
	maxRecommendations     = 3
	maxReasons             = 2
)

// Recommendation is one scored catalog course.
type Recommendation struct {
	Course  domain.Course `json:"course"`
	Score   int           `json:"score"`
	Reasons []string      `json:"reasons"`
}

// learnerProfile is what the recommender derives from enrolled courses.
type learnerProfile struct {
	categories  map[string]bool
	instructors map[string]bool
	level       domain.Level
	hasLevel    bool
}

type factor func(p learnerProfile, c domain.Course) (int, string)

// factors are ordered by weight so reasons come out most impactful first.
var factors = []factor{
	scoreCategory,
	scoreInstructor,
	scoreLevelUp,
	scoreRating,
}

// Recommend scores every catalog course the learner is not enrolled in and
// returns at most three with score >= 2, highest first. Equal scores keep
// catalog order.
func Recommend(enrolled, catalog []domain.Course) []Recommendation {
	profile := buildProfile(enrolled)

	var recs []Recommendation
	for _, c := range catalog {
		if domain.ContainsTitle(enrolled, c.Title) {
			continue
		}

		score := 0
		var reasons []string
		for _, f := range factors {
			delta, reason := f(profile, c)
			if delta == 0 {
				continue
			}
			score += delta
			reasons = append(reasons, reason)
		}

		if score < minRecommendationScore {
			continue
		}
		if len(reasons) > maxReasons {
			reasons = reasons[:maxReasons]
		}
		recs = append(recs, Recommendation{Course: c, Score: score, Reasons: reasons})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func buildProfile(enrolled []domain.Course) learnerProfile {
	p := learnerProfile{
		categories:  make(map[string]bool),
		instructors: make(map[string]bool),
	}

	counts := make(map[domain.Level]int)
	var order []domain.Level
	for _, c := range enrolled {
		if c.Category != "" {
			p.categories[strings.ToLower(c.Category)] = true
		}
		if c.Instructor != "" {
			p.instructors[strings.ToLower(c.Instructor)] = true
		}
		lvl := c.Level()
		if counts[lvl] == 0 {
			order = append(order, lvl)
		}
		counts[lvl]++
	}

	// Mode of the per-course levels; ties go to the level seen first.
	best := 0
	for _, lvl := range order {
		if counts[lvl] > best {
			best = counts[lvl]
			p.level = lvl
			p.hasLevel = true
		}
	}
	return p
}

func scoreCategory(p learnerProfile, c domain.Course) (int, string) {
	cat := strings.ToLower(c.Category)
	if cat == "" || !p.categories[cat] {
		return 0, ""
	}
	return weightCategory, fmt.Sprintf("Similar to your %s courses", cat)
}

func scoreInstructor(p learnerProfile, c domain.Course) (int, string) {
	inst := strings.ToLower(c.Instructor)
	if inst == "" || !p.instructors[inst] {
		return 0, ""
	}
	return weightInstructor, "Same instructor as your other courses"
}

func scoreLevelUp(p learnerProfile, c domain.Course) (int, string) {
	if !p.hasLevel {
		return 0, ""
	}
	title := strings.ToLower(c.Title)
	switch p.level {
	case domain.LevelBeginner:
		if domain.ContainsAny(title, []string{"intermediate", "advanced"}) {
			return weightLevelUp, "Good next step for your level"
		}
	case domain.LevelIntermediate:
		if domain.ContainsAny(title, []string{"advanced", "master"}) {
			return weightLevelUp, "Advanced course for your experience"
		}
	}
	return 0, ""
}

func scoreRating(_ learnerProfile, c domain.Course) (int, string) {
	if c.RatingOr(0) >= highRatingThreshold {
		return weightRating, "Highly rated course"
	}
	return 0, ""
}
