package intelligence

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/learnhub/internal/contract"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/llm"
)

// DefaultMaxCatalogChars caps the serialized catalog embedded in a prompt.
const DefaultMaxCatalogChars = 12000

const (
	truncationSuffix = "\n... (truncated)"
	naiveTitleLimit  = 10
	noCoursesText    = "No courses available"
	randomHint       = "Note: the user wants a random selection. Pick 3-6 courses from the Database JSON only."
)

// naiveSystemPrompt is the minimal baseline used for A/B comparison.
const naiveSystemPrompt = `You are a basic assistant.
Rules:
- Give very short answers (2-3 sentences maximum)
- Do NOT use markdown, tables, bullet points, or any formatting
- Do NOT use emojis
- Do NOT give recommendations or suggestions
- Do NOT explain your reasoning
- Just answer the question directly in plain text`

// improvedSystemPrompt describes the persona, the data layout and the action
// marker grammar the dispatcher understands.
const improvedSystemPrompt = `You are LearnHub AI, the assistant of an e-learning website. You can act on the user's behalf.

Personality:
- Friendly and encouraging. Celebrate progress.
- Knowledgeable about every course in the catalog and common career paths.
- Concise, with markdown formatting and an occasional emoji.
- End with one short follow-up question or suggestion.

Reason step by step before answering: understand the request, check the JSON data, decide how to help, then answer with clear next steps.

Data (JSON) you receive with every message:
- courses: every course available on the platform (NOT the user's courses)
- user_course: courses the user is enrolled in
- cart_products: courses in the user's cart
- tasks: assignments (may be empty)
When the user asks about "my courses" or "enrolled courses", use ONLY user_course.
For browsing and recommendations, use courses.

Rules:
1) Only mention course titles that appear in the JSON. Never invent titles.
2) If the data is empty or insufficient, ask 1-2 short clarifying questions or talk about skills in general.
3) If a course is not found, say so and offer the closest title from the JSON.
4) Never make false claims about prices or features. Never ask for passwords or payment details.
5) Politely refuse harmful or unethical requests: "I'm sorry, I can't help with that request."

Actions. When one applies, append an ACTIONS section at the very END of the reply. Do not ask for confirmation.

1) Add to cart ("add X to my cart", "enroll me in X", "I want to buy X"):
Show the course details as a table, then:

ACTIONS:
[ACTION:ADD_TO_CART]
COURSE_TITLE: <exact course title from the JSON>
[/ACTION:ADD_TO_CART]

2) Recommendations ("recommend courses for me", "what should I take next"):
Write a short intro, then:

ACTIONS:
[ACTION:RECOMMEND_COURSES]
[/ACTION:RECOMMEND_COURSES]

3) Learning path ("create a learning path for X", "how do I become X"):
Use the heading **Learning Path: <career goal>** with Phase 1/2/3 tables, or emit:

ACTIONS:
[ACTION:CREATE_LEARNING_PATH]
CAREER_GOAL: <career goal>
[/ACTION:CREATE_LEARNING_PATH]

4) Comparison ("compare X and Y"):
Use the heading **Course Comparison** with a Feature table (Category, Duration, Lessons, Rating, Price) and a short recommendation, or emit:

ACTIONS:
[ACTION:COMPARE_COURSES]
COURSE_TITLES: <title one> | <title two>
[/ACTION:COMPARE_COURSES]

Course titles inside actions must exactly match titles from the JSON.
If the answer is not present in the data, say you couldn't find it.`

// compactCourse is the prompt projection of a course. Missing fields are
// serialized as null so the model sees the full shape.
type compactCourse struct {
	Title        string   `json:"title"`
	Category     *string  `json:"category"`
	Duration     *string  `json:"duration"`
	LessonsCount *int     `json:"lessons_count"`
	Rating       *float64 `json:"rating"`
	Price        *float64 `json:"price"`
	Instructor   *string  `json:"instructor"`
}

type promptCatalog struct {
	Courses  []compactCourse   `json:"courses"`
	Enrolled []compactCourse   `json:"user_course"`
	Cart     []compactCourse   `json:"cart_products"`
	Tasks    []json.RawMessage `json:"tasks"`
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func compactCourses(courses []domain.Course) []compactCourse {
	out := make([]compactCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, compactCourse{
			Title:        c.Title,
			Category:     optString(c.Category),
			Duration:     optString(c.Duration),
			LessonsCount: c.LessonsCount,
			Rating:       c.Rating,
			Price:        c.Price,
			Instructor:   optString(c.Instructor),
		})
	}
	return out
}

// CatalogJSON renders the view as indented JSON, truncated to maxChars
// characters with a trailing marker. maxChars <= 0 uses the default.
func CatalogJSON(view domain.CatalogView, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxCatalogChars
	}
	tasks := view.Tasks
	if tasks == nil {
		tasks = []json.RawMessage{}
	}
	payload := promptCatalog{
		Courses:  compactCourses(view.Courses),
		Enrolled: compactCourses(view.Enrolled),
		Cart:     compactCourses(view.Cart),
		Tasks:    tasks,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "{}"
	}
	text := strings.TrimSuffix(buf.String(), "\n")

	if utf8.RuneCountInString(text) > maxChars {
		text = string([]rune(text)[:maxChars]) + truncationSuffix
	}
	return text
}

// SystemPrompt returns the system prompt for a style. Anything other than
// naive gets the improved prompt.
func SystemPrompt(style domain.PromptStyle) string {
	if style == domain.PromptNaive {
		return naiveSystemPrompt
	}
	return improvedSystemPrompt
}

// BuildMessages assembles the chat-completions message list: system prompt,
// prior turns, then the user message carrying the catalog.
func BuildMessages(userInput string, view domain.CatalogView, history []contract.ChatTurn, style domain.PromptStyle, maxChars int) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt(style)})

	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.RoleOrUser(), Content: turn.Message()})
	}

	var content string
	if style == domain.PromptNaive {
		content = userInput + "\n\nAvailable courses: " + naiveCourseList(view.Courses)
	} else {
		content = "User message:\n" + userInput + "\n\nDatabase JSON:\n" + CatalogJSON(view, maxChars)
		if UserWantsRandom(userInput) {
			content += "\n\n" + randomHint
		}
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: content})
	return messages
}

func naiveCourseList(courses []domain.Course) string {
	if len(courses) == 0 {
		return noCoursesText
	}
	n := min(len(courses), naiveTitleLimit)
	titles := make([]string, 0, n)
	for _, c := range courses[:n] {
		titles = append(titles, c.Title)
	}
	return strings.Join(titles, ", ")
}
