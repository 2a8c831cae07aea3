package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/xlsx"
	"github.com/spf13/cobra"
)

var (
	benchDemandPath string
	subconPath      string
	masterPath      string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:           "skillmatch",
	Short:         "Skill matcher for bench, demand and sub-con workbooks",
	Long:          "Match bench employees to open demands or sub-contractor profiles using a master skill alias table.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&benchDemandPath, "bench-demand", "", "Bench & Demand workbook (.xlsx)")
	flags.StringVar(&subconPath, "subcon", "", "Sub-Con Candidate Report workbook (.xlsx)")
	flags.StringVar(&masterPath, "master", "", "Master Skills workbook (.xlsx)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log workbook and matching details")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(skillsCmd)
}

// loadTables reads the three workbooks named on the command line.
func loadTables(ctx context.Context, cfg *config.Config) (*domain.Tables, error) {
	if benchDemandPath == "" || subconPath == "" || masterPath == "" {
		return nil, errors.New("--bench-demand, --subcon and --master are all required")
	}

	paths := []string{benchDemandPath, subconPath, masterPath}
	files := make([]*os.File, 0, len(paths))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, path := range paths {
		if err := xlsx.ValidateFileName(path); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	loader := xlsx.NewLoader(sheetNames(cfg))
	loader.SetDebug(verbose)

	return loader.Load(ctx, domain.WorkbookSources{
		BenchDemand: files[0],
		Subcon:      files[1],
		Master:      files[2],
	})
}

func sheetNames(cfg *config.Config) xlsx.SheetNames {
	return xlsx.SheetNames{
		Bench:  cfg.Workbook.BenchSheet,
		Demand: cfg.Workbook.DemandSheet,
		Subcon: cfg.Workbook.SubconSheet,
		Master: cfg.Workbook.MasterSheet,
	}
}

// benchFilter collects the bench filter flags shared by every subcommand.
type benchFilter struct {
	practices      []string
	subPractices   []string
	grades         []string
	skillGroupings []string
	name           string
	skill          string
}

func (f *benchFilter) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.practices, "practice", nil, "Keep employees in these practices")
	flags.StringSliceVar(&f.subPractices, "sub-practice", nil, "Keep employees in these sub practices")
	flags.StringSliceVar(&f.grades, "grade", nil, "Keep employees with these grades")
	flags.StringSliceVar(&f.skillGroupings, "skill-grouping", nil, "Keep employees in these skill groupings")
	flags.StringVar(&f.name, "name", "", "Keep employees whose name starts with this prefix")
	flags.StringVar(&f.skill, "skill", "", "Keep employees whose skill text contains this substring")
}

func (f *benchFilter) toDomain() domain.BenchFilter {
	return domain.BenchFilter{
		Practices:      f.practices,
		SubPractices:   f.subPractices,
		Grades:         f.grades,
		SkillGroupings: f.skillGroupings,
		NamePrefix:     f.name,
		SkillContains:  f.skill,
	}
}
