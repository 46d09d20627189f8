package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/learnhub/internal/cli/formatter"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/engine"
	"github.com/spf13/cobra"
)

func newRecommendCmd(app *App) *cobra.Command {
	var enrolled []string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest catalog courses based on the learner's enrollments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.loadView(cmd)
			if err != nil {
				return err
			}

			profile := view.Enrolled
			if cmd.Flags().Changed("enrolled") {
				profile, err = resolveTitles(enrolled, view.Courses)
				if err != nil {
					return err
				}
			}

			recs := engine.Recommend(profile, view.Courses)
			if recs == nil {
				recs = []engine.Recommendation{}
			}
			return app.render(cmd, recs, func() string {
				return formatter.FormatRecommendations(recs)
			})
		},
	}

	cmd.Flags().StringSliceVar(&enrolled, "enrolled", nil, "Enrolled course titles (overrides the catalog's user_course list)")
	return cmd
}

// resolveTitles maps each reference onto a catalog course, failing on the
// first one that does not resolve.
func resolveTitles(refs []string, catalog []domain.Course) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(refs))
	for _, ref := range refs {
		m, err := engine.Resolve(ref, catalog)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", ref, err)
		}
		out = append(out, m.Course)
	}
	return out, nil
}

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path [career goal...]",
		Short: "Plan a leveled learning path toward a career goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.loadView(cmd)
			if err != nil {
				return err
			}
			p := engine.PlanPath(view.Courses, strings.Join(args, " "))
			return app.render(cmd, p, func() string {
				return formatter.FormatLearningPath(p)
			})
		},
	}
}

func newCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <title> <title> [title...]",
		Short: "Compare two or more catalog courses side by side",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.loadView(cmd)
			if err != nil {
				return err
			}
			c, err := engine.Compare(args, view.Courses)
			if err != nil {
				return err
			}
			return app.render(cmd, c, func() string {
				return formatter.FormatComparison(c)
			})
		},
	}
}

type trackView struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

func newTracksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks",
		Short: "List the career tracks the path planner recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks := engine.Tracks()
			views := make([]trackView, len(tracks))
			rows := make([][]string, len(tracks))
			for i, t := range tracks {
				views[i] = trackView{Name: t.Name, Keywords: t.Keywords}
				rows[i] = []string{t.Name, strings.Join(t.Keywords, ", ")}
			}
			return app.render(cmd, views, func() string {
				return formatter.Header("Career Tracks") + "\n" +
					formatter.RenderTable([]string{"TRACK", "KEYWORDS"}, rows) + "\n"
			})
		},
	}
}
