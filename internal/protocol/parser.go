package protocol

import (
	"sort"
	"strings"
)

// ParseOptions toggles the optional detectors.
type ParseOptions struct {
	// DisableHeadings turns off inference from rendered markdown headings.
	DisableHeadings bool
}

// Parse extracts every action request from a model reply, in the order the
// blocks and headings appear. It never fails: malformed markup simply yields
// no request.
func Parse(text string) []ActionRequest {
	return ParseWithOptions(text, ParseOptions{})
}

// ParseWithOptions is Parse with detector toggles.
func ParseWithOptions(text string, opts ParseOptions) []ActionRequest {
	masked := maskCodeFences(text)

	actions := make([]ActionRequest, 0)
	actions = append(actions, scanMarkers(masked)...)
	if !opts.DisableHeadings {
		actions = append(actions, detectHeadings(masked)...)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Offset < actions[j].Offset
	})
	return actions
}

// scanMarkers lexes the section after the first ACTIONS: marker.
func scanMarkers(text string) []ActionRequest {
	idx := strings.Index(text, ActionsMarker)
	if idx < 0 {
		return nil
	}
	base := idx + len(ActionsMarker)

	var out []ActionRequest
	for _, b := range lexBlocks(text[base:], base) {
		if !KnownActionTypes[b.typ] {
			continue
		}
		if req, ok := buildRequest(b); ok {
			out = append(out, req)
		}
	}
	return out
}

func buildRequest(b block) (ActionRequest, bool) {
	fields := lexFields(b.body)
	req := ActionRequest{Type: b.typ, Source: SourceMarker, Offset: b.offset}

	switch b.typ {
	case ActionAddToCart:
		req.CourseTitle = firstValue(fields, "COURSE_TITLE")
		if req.CourseTitle == "" {
			return ActionRequest{}, false
		}
	case ActionCreateLearningPath:
		req.CareerGoal = firstValue(fields, "CAREER_GOAL")
	case ActionCompareCourses:
		req.CourseTitles = compareTitles(fields)
		if len(req.CourseTitles) == 0 {
			return ActionRequest{}, false
		}
	}
	return req, true
}

// compareTitles collects COURSE_TITLE lines and any COURSE_TITLES list split
// on '|' or ','.
func compareTitles(fields []field) []string {
	var titles []string
	for _, f := range fields {
		switch f.key {
		case "COURSE_TITLE":
			if f.value != "" {
				titles = append(titles, f.value)
			}
		case "COURSE_TITLES":
			parts := strings.FieldsFunc(f.value, func(r rune) bool { return r == '|' || r == ',' })
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					titles = append(titles, p)
				}
			}
		}
	}
	return titles
}
