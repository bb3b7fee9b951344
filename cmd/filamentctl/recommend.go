package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/project"
)

func init() {
	var (
		owner       string
		application string
		printer     string
		experience  string
		aesthetic   string
		budget      string
		title       string
		save        bool
	)

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the questionnaire and print filament recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			gw, err := a.newGateway()
			if err != nil {
				return err
			}

			submission := model.QuestionnaireSubmission{
				Application:     application,
				PrinterType:     model.PrinterType(printer),
				ExperienceLevel: model.ExperienceLevel(experience),
				Aesthetic:       model.Aesthetic(aesthetic),
				Budget:          model.Budget(budget),
			}
			if err := submission.Validate(); err != nil {
				return err
			}

			recs := gw.Recommend(cmd.Context(), submission)
			if len(recs) == 0 {
				_, _ = fmt.Fprintln(os.Stdout, "no recommendations available")
				return nil
			}
			if err := printJSON(recs); err != nil {
				return err
			}

			if !save {
				return nil
			}
			if owner == "" {
				return fmt.Errorf("--owner required with --save")
			}
			if title == "" {
				title = application
			}
			proj, err := a.projects.Save(cmd.Context(), owner, title, application,
				project.Content{Recommendations: recs})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "saved project %s\n", proj.ID)
			return nil
		},
	}

	recommendCmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner user ID (required with --save)")
	recommendCmd.Flags().StringVar(&application, "application", "", "What will you print? (required)")
	recommendCmd.Flags().StringVar(&printer, "printer", string(model.PrinterOpen), "Printer type: open, enclosed, heated_chamber")
	recommendCmd.Flags().StringVar(&experience, "experience", string(model.ExperienceBeginner), "Experience: beginner, intermediate, expert")
	recommendCmd.Flags().StringVar(&aesthetic, "aesthetic", string(model.AestheticStandard), "Finish: standard, matte, glossy, transparent, silk")
	recommendCmd.Flags().StringVar(&budget, "budget", string(model.BudgetStandard), "Budget: budget, standard, premium")
	recommendCmd.Flags().StringVarP(&title, "title", "t", "", "Project title when saving (defaults to the application)")
	recommendCmd.Flags().BoolVar(&save, "save", false, "Save the result as a project")
	_ = recommendCmd.MarkFlagRequired("application")

	rootCmd.AddCommand(recommendCmd)
}
