package cmd

import (
	"fmt"

	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/spf13/cobra"
)

var skillsFilter benchFilter

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the distinct skills of the filtered bench",
	Args:  cobra.NoArgs,
	RunE:  runSkills,
}

func init() {
	skillsFilter.register(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tables, err := loadTables(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	view := usecase.FilterBench(tables.Bench, skillsFilter.toDomain())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d employees, %d skills\n", len(view.Employees), len(view.Skills))
	for _, skill := range view.Skills {
		fmt.Fprintln(out, skill)
	}
	return nil
}
