package engine

import (
	"errors"
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
)

// ErrCourseNotFound is returned when no catalog title matches a reference.
var ErrCourseNotFound = errors.New("course not found in catalog")

// MatchTier identifies which rule resolved a reference.
type MatchTier string

const (
	TierExact        MatchTier = "exact"
	TierContainment  MatchTier = "containment"
	TierTokenOverlap MatchTier = "token_overlap"
)

// minSharedTokens is the token-overlap threshold for the last tier.
const minSharedTokens = 2

// Match is a resolved reference. Index is the course's position in the
// catalog slice and serves as its identity for de-duplication.
type Match struct {
	Index  int
	Course domain.Course
	Tier   MatchTier
}

type tierRule struct {
	tier  MatchTier
	match func(ref, title string) bool
}

var tierRules = []tierRule{
	{TierExact, func(ref, title string) bool { return ref == title }},
	{TierContainment, func(ref, title string) bool {
		return strings.Contains(title, ref) || strings.Contains(ref, title)
	}},
	{TierTokenOverlap, func(ref, title string) bool {
		return sharedTokens(ref, title) >= minSharedTokens
	}},
}

// Resolve maps a free-text title reference onto a catalog course. Tiers are
// tried in precedence order across the whole catalog, so an exact match later
// in the list beats a containment match earlier in it. Two distinct titles
// sharing two words can resolve to the wrong course; callers accept that.
func Resolve(ref string, catalog []domain.Course) (Match, error) {
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return Match{}, ErrCourseNotFound
	}

	titles := make([]string, len(catalog))
	for i, c := range catalog {
		titles[i] = c.NormalizedTitle()
	}

	for _, rule := range tierRules {
		for i, title := range titles {
			if title == "" {
				continue
			}
			if rule.match(needle, title) {
				return Match{Index: i, Course: catalog[i], Tier: rule.tier}, nil
			}
		}
	}
	return Match{}, ErrCourseNotFound
}

func sharedTokens(a, b string) int {
	left := make(map[string]bool)
	for _, tok := range strings.Fields(a) {
		left[tok] = true
	}
	seen := make(map[string]bool)
	n := 0
	for _, tok := range strings.Fields(b) {
		if left[tok] && !seen[tok] {
			seen[tok] = true
			n++
		}
	}
	return n
}
