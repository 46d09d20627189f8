package engine

import (
	"testing"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTrack(t *testing.T) {
	tests := []struct {
		goal string
		want string
	}{
		{"I want to become a DevOps engineer", "devops"},
		{"data science with python", "data science"},
		{"Android apps", "mobile development"},
		{"Figma wizard", "ui/ux design"},
		{"frontend developer", "web development"},
		{"astronaut", "web development"},
		{"", "web development"},
		// "react native" also contains the web keyword "react"; web is listed first.
		{"react native developer", "web development"},
	}
	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectTrack(tt.goal).Name)
		})
	}
}

func TestPlanPath_PhasesInLevelOrder(t *testing.T) {
	catalog := []domain.Course{
		{Title: "Advanced Kubernetes Operators", Category: "DevOps"},
		{Title: "Docker Basics", Category: "DevOps"},
		{Title: "CI Pipelines", Category: "DevOps"},
		{Title: "Watercolor Painting", Category: "Art"},
	}

	path := PlanPath(catalog, "DevOps engineer")

	assert.Equal(t, "DevOps engineer", path.CareerGoal)
	assert.Equal(t, "Devops", path.PathName)
	require.Len(t, path.Phases, 3)
	assert.Equal(t, []string{"Foundation", "Intermediate", "Advanced"},
		[]string{path.Phases[0].Level, path.Phases[1].Level, path.Phases[2].Level})
	for i, p := range path.Phases {
		assert.Equal(t, i+1, p.Step)
		assert.LessOrEqual(t, len(p.Courses), 2)
	}
	assert.Equal(t, "Build foundation skills in Devops", path.Phases[0].Description)
	assert.Equal(t, []string{"Docker Basics"}, titles(path.Phases[0].Courses))
}

func TestPlanPath_SkipsEmptyLevelsAndRenumbers(t *testing.T) {
	catalog := []domain.Course{
		{Title: "Advanced Figma Prototyping", Category: "Design"},
	}

	path := PlanPath(catalog, "ui designer")

	assert.Equal(t, "Ui/Ux Design", path.PathName)
	require.Len(t, path.Phases, 1)
	assert.Equal(t, 1, path.Phases[0].Step)
	assert.Equal(t, "Advanced", path.Phases[0].Level)
}

func TestPlanPath_RelevanceOrderCappedAtTwo(t *testing.T) {
	catalog := []domain.Course{
		{Title: "HTML Page Layouts", Category: "Web"},                             // 1
		{Title: "React and CSS for the Frontend", Category: "Web"},                // 3
		{Title: "JavaScript Everywhere", Category: "Web"},                         // 1
		{Title: "Frontend and Backend with Node.js", Category: "Web Development"}, // 4
	}

	path := PlanPath(catalog, "web development")

	require.Len(t, path.Phases, 1)
	assert.Equal(t, "Intermediate", path.Phases[0].Level)
	assert.Equal(t, []string{"Frontend and Backend with Node.js", "React and CSS for the Frontend"},
		titles(path.Phases[0].Courses))
}

func TestPlanPath_NoRelevantCourses(t *testing.T) {
	path := PlanPath([]domain.Course{{Title: "Watercolor", Category: "Art"}}, "")

	assert.Equal(t, "Web Development", path.PathName)
	assert.Empty(t, path.Phases)
	assert.NotNil(t, path.Phases)
}

func TestTracks_ReturnsCopy(t *testing.T) {
	ts := Tracks()
	ts[0].Name = "changed"
	ts[0].Keywords[0] = "changed"

	assert.Equal(t, "web development", SelectTrack("").Name)
	assert.Equal(t, "web development", Tracks()[0].Keywords[0])
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Ui/Ux Design", titleCase("ui/ux design"))
	assert.Equal(t, "Web Development", titleCase("web development"))
	assert.Equal(t, "", titleCase(""))
}
