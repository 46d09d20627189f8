package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/engine"
)

var featureLabels = map[engine.Feature]string{
	engine.FeaturePrice:        "Price",
	engine.FeatureRating:       "Rating",
	engine.FeatureDuration:     "Duration",
	engine.FeatureInstructor:   "Instructor",
	engine.FeatureCategory:     "Category",
	engine.FeatureLessonsCount: "Lessons",
}

// FeatureLabel returns the display name of a comparison feature.
func FeatureLabel(f engine.Feature) string {
	if label, ok := featureLabels[f]; ok {
		return label
	}
	return string(f)
}

// FormatRecommendations renders ranked recommendations as a table.
func FormatRecommendations(recs []engine.Recommendation) string {
	var b strings.Builder
	b.WriteString(Header("Recommended Courses"))
	b.WriteString("\n\n")

	if len(recs) == 0 {
		b.WriteString(Dim("No recommendations yet. Enroll in a course or add ratings to the catalog."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			Bold(r.Course.Title),
			r.Course.Category,
			engine.FeatureValue(r.Course, engine.FeatureRating),
			engine.FeatureValue(r.Course, engine.FeaturePrice),
			StylePurple.Render(strconv.Itoa(r.Score)),
			strings.Join(r.Reasons, "; "),
		})
	}
	b.WriteString(RenderTable([]string{"#", "COURSE", "CATEGORY", "RATING", "PRICE", "SCORE", "WHY"}, rows))
	return b.String()
}

// FormatLearningPath renders the phases of a learning path.
func FormatLearningPath(p engine.LearningPath) string {
	var b strings.Builder
	b.WriteString(Header("Learning Path: " + p.PathName))
	b.WriteString("\n")
	b.WriteString(Dim("Goal: " + domain.CoalesceStr(p.CareerGoal, "unspecified")))
	b.WriteString("\n\n")

	if len(p.Phases) == 0 {
		b.WriteString(Dim("No catalog courses match this track yet."))
		b.WriteString("\n")
		return b.String()
	}

	for _, phase := range p.Phases {
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(fmt.Sprintf("Phase %d", phase.Step)), LevelBadge(domain.Level(phase.Level)))
		b.WriteString(Dim(phase.Description))
		b.WriteString("\n")
		for _, c := range phase.Courses {
			fmt.Fprintf(&b, "  • %s  %s\n", c.Title, Dim(courseFacts(c)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatComparison renders the feature table and the picks.
func FormatComparison(c *engine.Comparison) string {
	var b strings.Builder
	b.WriteString(Header("Course Comparison"))
	b.WriteString("\n\n")

	headers := []string{"FEATURE"}
	for _, course := range c.Courses {
		headers = append(headers, course.Title)
	}
	rows := make([][]string, 0, len(c.Table))
	for _, row := range c.Table {
		rows = append(rows, append([]string{FeatureLabel(row.Feature)}, row.Values...))
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	for _, p := range c.Picks {
		fmt.Fprintf(&b, "%s %s  %s\n", StyleYellow.Render(string(p.Kind)+":"), Bold(p.Course.Title), Dim(p.Reason))
	}
	return b.String()
}

func courseFacts(c domain.Course) string {
	var parts []string
	if c.Duration != "" {
		parts = append(parts, c.Duration)
	}
	if c.LessonsCount != nil {
		parts = append(parts, fmt.Sprintf("%d lessons", *c.LessonsCount))
	}
	if c.Rating != nil {
		parts = append(parts, engine.FeatureValue(c, engine.FeatureRating))
	}
	if c.Price != nil {
		parts = append(parts, engine.FeatureValue(c, engine.FeaturePrice))
	}
	return strings.Join(parts, " · ")
}
