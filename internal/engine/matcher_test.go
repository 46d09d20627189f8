package engine

import (
	"testing"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExactTitleIsReflexive(t *testing.T) {
	catalog := []domain.Course{
		{Title: "React Fundamentals"},
		{Title: "Advanced React Patterns"},
		{Title: "Docker for Developers"},
	}

	for i, c := range catalog {
		m, err := Resolve(c.Title, catalog)
		require.NoError(t, err)
		assert.Equal(t, i, m.Index)
		assert.Equal(t, TierExact, m.Tier)
	}
}

func TestResolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	catalog := []domain.Course{{Title: "Docker for Developers"}}

	m, err := Resolve("  DOCKER for developers ", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Docker for Developers", m.Course.Title)
	assert.Equal(t, TierExact, m.Tier)
}

func TestResolve_ContainmentEitherDirection(t *testing.T) {
	catalog := []domain.Course{{Title: "Kubernetes in Production"}}

	m, err := Resolve("kubernetes", catalog)
	require.NoError(t, err)
	assert.Equal(t, TierContainment, m.Tier)

	m, err = Resolve("The Kubernetes in Production Bootcamp", catalog)
	require.NoError(t, err)
	assert.Equal(t, TierContainment, m.Tier)
}

func TestResolve_TokenOverlap(t *testing.T) {
	catalog := []domain.Course{
		{Title: "Figma Essentials"},
		{Title: "Python for Beginners Basics Course"},
	}

	m, err := Resolve("Intro Python Basics", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Python for Beginners Basics Course", m.Course.Title)
	assert.Equal(t, TierTokenOverlap, m.Tier)
}

func TestResolve_TierPrecedenceBeatsCatalogOrder(t *testing.T) {
	catalog := []domain.Course{
		{Title: "Advanced React Patterns"},
		{Title: "React"},
	}

	m, err := Resolve("react", catalog)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Index, "exact match later in the catalog wins over earlier containment")
}

func TestResolve_SharedWordsCanResolveToWrongCourse(t *testing.T) {
	// Two shared words are enough, even when the intended course is different.
	catalog := []domain.Course{{Title: "Machine Learning with Python"}}

	m, err := Resolve("Learning Python Web Scraping", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning with Python", m.Course.Title)
	assert.Equal(t, TierTokenOverlap, m.Tier)
}

func TestResolve_Misses(t *testing.T) {
	catalog := []domain.Course{{Title: "DevOps Engineering"}, {Title: ""}}

	tests := []struct {
		name string
		ref  string
	}{
		{"unknown title", "Quantum Widgetry"},
		{"single shared word", "Quantum Engineering"},
		{"empty", ""},
		{"blank", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.ref, catalog)
			assert.ErrorIs(t, err, ErrCourseNotFound)
		})
	}
}

func TestResolve_EmptyCatalog(t *testing.T) {
	_, err := Resolve("anything", nil)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
