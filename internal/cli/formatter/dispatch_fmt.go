package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/engine"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"github.com/alexanderramin/learnhub/internal/service"
)

// FormatActions lists parsed actions with their arguments.
func FormatActions(actions []protocol.ActionRequest) string {
	if len(actions) == 0 {
		return Dim("No actions detected.") + "\n"
	}
	rows := make([][]string, 0, len(actions))
	for i, a := range actions {
		state := StyleYellow.Render("pending")
		switch {
		case a.Error != "":
			state = StyleRed.Render("failed")
		case a.Executed:
			state = StyleGreen.Render("executed")
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			string(a.Type),
			string(a.Source),
			state,
			actionArgument(a),
		})
	}
	return RenderTable([]string{"#", "ACTION", "SOURCE", "STATE", "ARGUMENT"}, rows)
}

func actionArgument(a protocol.ActionRequest) string {
	switch a.Type {
	case protocol.ActionAddToCart:
		if a.MatchedCourse != nil && a.MatchedCourse.Title != a.CourseTitle {
			return a.CourseTitle + Dim(" → "+a.MatchedCourse.Title)
		}
		if a.MatchedCourse == nil {
			return a.CourseTitle + Dim(" (not in catalog)")
		}
		return a.CourseTitle
	case protocol.ActionCreateLearningPath:
		return a.CareerGoal
	case protocol.ActionCompareCourses:
		return strings.Join(a.CourseTitles, " | ")
	default:
		return ""
	}
}

// FormatDispatch renders the display reply followed by every executed
// action's result.
func FormatDispatch(r *service.DispatchResult) string {
	var b strings.Builder
	if r.Reply != "" {
		b.WriteString(r.Reply)
		b.WriteString("\n\n")
	}
	b.WriteString(Header("Actions"))
	b.WriteString("\n")
	b.WriteString(FormatActions(r.Actions))

	for _, res := range r.ExecutedResults {
		b.WriteString("\n")
		if !res.Success {
			fmt.Fprintf(&b, "%s %s %s\n", Outcome(false), string(res.Type), StyleRed.Render(res.Error))
			continue
		}
		b.WriteString(FormatResult(res.Result))
	}
	return b.String()
}

// FormatResult renders one engine result by its concrete type.
func FormatResult(result any) string {
	switch v := result.(type) {
	case []engine.Recommendation:
		return FormatRecommendations(v)
	case *engine.LearningPath:
		return FormatLearningPath(*v)
	case engine.LearningPath:
		return FormatLearningPath(v)
	case *engine.Comparison:
		return FormatComparison(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v\n", v)
	}
}

// FormatLogs renders conversation logs, newest first, relative to now.
func FormatLogs(logs []*domain.ConversationLog, now time.Time) string {
	if len(logs) == 0 {
		return Dim("No conversations recorded.") + "\n"
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			Dim(HumanTimestampFrom(l.Timestamp, now)),
			domain.CoalesceStr(l.UserEmail, "-"),
			string(l.PromptStyle),
			StatusIndicator(l.Status),
			fmt.Sprint(l.ActionCount()),
			Truncate(domain.CoalesceStr(l.Error, l.UserPrompt), 48),
		})
	}
	return RenderTable([]string{"WHEN", "USER", "STYLE", "STATUS", "ACTIONS", "PROMPT"}, rows)
}
