package engine

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/alexanderramin/learnhub/internal/domain"
)

const maxCoursesPerPhase = 2

// Track is a named career track and the keywords that identify it.
type Track struct {
	Name     string
	Keywords []string
}

// tracks is read-only. Order matters: the first track with a keyword in the
// goal wins, and the first entry is the fallback.
var tracks = []Track{
	{Name: "web development", Keywords: []string{"web development", "javascript", "react", "node.js", "html", "css", "frontend", "backend"}},
	{Name: "data science", Keywords: []string{"data science", "python", "machine learning", "statistics", "analysis"}},
	{Name: "mobile development", Keywords: []string{"mobile", "ios", "android", "react native", "flutter"}},
	{Name: "devops", Keywords: []string{"devops", "docker", "kubernetes", "aws", "cloud", "deployment"}},
	{Name: "ui/ux design", Keywords: []string{"design", "ui", "ux", "figma", "photoshop", "user experience"}},
}

// Tracks returns a copy of the track table in match order.
func Tracks() []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = Track{Name: t.Name, Keywords: append([]string(nil), t.Keywords...)}
	}
	return out
}

// Phase is one level-bounded step of a learning path.
type Phase struct {
	Step        int             `json:"step"`
	Level       string          `json:"level"`
	Courses     []domain.Course `json:"courses"`
	Description string          `json:"description"`
}

// LearningPath is the planner output for a career goal.
type LearningPath struct {
	CareerGoal string  `json:"career_goal"`
	PathName   string  `json:"path_name"`
	Phases     []Phase `json:"phases"`
}

var phaseLevels = []struct {
	level domain.Level
	label string
}{
	{domain.LevelBeginner, "Foundation"},
	{domain.LevelIntermediate, "Intermediate"},
	{domain.LevelAdvanced, "Advanced"},
}

// SelectTrack returns the first track with a keyword contained in the
// lowercased goal, falling back to web development.
func SelectTrack(goal string) Track {
	lower := strings.ToLower(goal)
	for _, t := range tracks {
		if domain.ContainsAny(lower, t.Keywords) {
			return t
		}
	}
	return tracks[0]
}

// PlanPath groups relevant catalog courses into up to three level phases for
// the goal. Enrollment does not filter the catalog, so the planner only needs
// the course list. An empty goal falls back to web development.
func PlanPath(catalog []domain.Course, goal string) LearningPath {
	track := SelectTrack(goal)
	pathName := titleCase(track.Name)

	type scored struct {
		course    domain.Course
		relevance int
	}
	var relevant []scored
	for _, c := range catalog {
		if r := relevance(track, c); r > 0 {
			relevant = append(relevant, scored{course: c, relevance: r})
		}
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].relevance > relevant[j].relevance
	})

	buckets := make(map[domain.Level][]domain.Course)
	for _, s := range relevant {
		lvl := s.course.Level()
		if len(buckets[lvl]) < maxCoursesPerPhase {
			buckets[lvl] = append(buckets[lvl], s.course)
		}
	}

	path := LearningPath{CareerGoal: goal, PathName: pathName, Phases: []Phase{}}
	for _, pl := range phaseLevels {
		courses := buckets[pl.level]
		if len(courses) == 0 {
			continue
		}
		path.Phases = append(path.Phases, Phase{
			Step:        len(path.Phases) + 1,
			Level:       pl.label,
			Courses:     courses,
			Description: fmt.Sprintf("Build %s skills in %s", strings.ToLower(pl.label), pathName),
		})
	}
	return path
}

func relevance(t Track, c domain.Course) int {
	category := strings.ToLower(c.Category)
	title := strings.ToLower(c.Title)
	n := 0
	for _, kw := range t.Keywords {
		if strings.Contains(category, kw) || strings.Contains(title, kw) {
			n++
		}
	}
	return n
}

// titleCase upper-cases the first letter of every letter run, so
// "ui/ux design" becomes "Ui/Ux Design".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
