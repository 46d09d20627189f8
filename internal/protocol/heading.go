package protocol

import "strings"

// Heading inference is a fallback for replies where the model rendered a
// path or comparison inline without emitting a marker block. It is kept
// apart from the marker scanner so it can be switched off on its own.

const (
	learningPathHeading = "Learning Path:"
	comparisonHeading   = "Course Comparison"
	unknownGoal         = "unknown"
)

func detectHeadings(text string) []ActionRequest {
	var out []ActionRequest

	if idx := strings.Index(text, learningPathHeading); idx >= 0 {
		out = append(out, ActionRequest{
			Type:       ActionCreateLearningPath,
			Executed:   true,
			CareerGoal: headingGoal(text[idx+len(learningPathHeading):]),
			Source:     SourceHeading,
			Offset:     idx,
		})
	}

	if idx := strings.Index(text, comparisonHeading); idx >= 0 {
		out = append(out, ActionRequest{
			Type:     ActionCompareCourses,
			Executed: true,
			Source:   SourceHeading,
			Offset:   idx,
		})
	}
	return out
}

// headingGoal returns the text up to the next bold delimiter or line break.
func headingGoal(rest string) string {
	end := len(rest)
	if i := strings.Index(rest, "**"); i >= 0 && i < end {
		end = i
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 && i < end {
		end = i
	}
	if goal := strings.TrimSpace(rest[:end]); goal != "" {
		return goal
	}
	return unknownGoal
}
