package protocol

import "github.com/alexanderramin/learnhub/internal/domain"

// ActionType names an agent action the model can request.
type ActionType string

const (
	ActionAddToCart          ActionType = "ADD_TO_CART"
	ActionRecommendCourses   ActionType = "RECOMMEND_COURSES"
	ActionCreateLearningPath ActionType = "CREATE_LEARNING_PATH"
	ActionCompareCourses     ActionType = "COMPARE_COURSES"
)

// KnownActionTypes is the set of action types the marker grammar accepts.
var KnownActionTypes = map[ActionType]bool{
	ActionAddToCart:          true,
	ActionRecommendCourses:   true,
	ActionCreateLearningPath: true,
	ActionCompareCourses:     true,
}

// Source records which detector produced an action.
type Source string

const (
	SourceMarker  Source = "marker"
	SourceHeading Source = "heading"
)

// ActionRequest is one detected action. Executed=false means the work is
// still owed by the dispatcher (or, for ADD_TO_CART, by the caller).
type ActionRequest struct {
	Type          ActionType     `json:"type"`
	Executed      bool           `json:"executed"`
	CourseTitle   string         `json:"course_title,omitempty"`
	CourseTitles  []string       `json:"course_titles,omitempty"`
	CareerGoal    string         `json:"career_goal,omitempty"`
	MatchedCourse *domain.Course `json:"matched_course,omitempty"`
	Result        any            `json:"result,omitempty"`
	Error         string         `json:"error,omitempty"`
	Source        Source         `json:"source"`

	// Offset is the byte position of the block or heading in the reply.
	Offset int `json:"-"`
}

// Pending reports whether the action still needs dispatching.
func (a ActionRequest) Pending() bool {
	return !a.Executed && a.Error == ""
}
