package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/xlsx"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	matchFilter benchFilter
	minPercent  int
	maxPercent  int
	outPath     string
)

var matchCmd = &cobra.Command{
	Use:       "match demand|subcon",
	Short:     "Match the filtered bench against demands or sub-con profiles",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ModeDemand), string(domain.ModeSubcon)},
	RunE:      runMatch,
}

func init() {
	matchFilter.register(matchCmd)
	matchCmd.Flags().IntVar(&minPercent, "min", -1, "Lowest match percentage to keep (default from config)")
	matchCmd.Flags().IntVar(&maxPercent, "max", -1, "Highest match percentage to keep (default from config)")
	matchCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the report to this .xlsx file instead of stdout")
}

func runMatch(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseMode(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tables, err := loadTables(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	request := &domain.MatchRequest{
		Mode:   mode,
		Filter: matchFilter.toDomain(),
		Range: domain.PercentRange{
			Min: cfg.Matching.DefaultMinPercent,
			Max: cfg.Matching.DefaultMaxPercent,
		},
	}
	if cmd.Flags().Changed("min") {
		request.Range.Min = minPercent
	}
	if cmd.Flags().Changed("max") {
		request.Range.Max = maxPercent
	}

	service := usecase.NewMatchingService(nil, nil, usecase.MatchingServiceConfig{
		EnableDebugLogging: verbose || cfg.Matching.EnableDebugLogging,
	})
	report, err := service.MatchTables(tables, request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.Empty() {
		fmt.Fprintln(out, "No matches found in the selected range.")
		return nil
	}

	if outPath != "" {
		if err := writeReport(report, outPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d matches to %s\n", len(report.Results), outPath)
		return nil
	}

	return printReport(out, report)
}

func writeReport(report *domain.Report, path string) error {
	if err := xlsx.ValidateFileName(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := xlsx.NewExporter().Export(report, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printReport writes the report as a tab-aligned table with the same
// columns as the exported workbook.
func printReport(w io.Writer, report *domain.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(xlsx.ExportColumns(report.Mode), "\t"))

	for _, result := range report.Results {
		row := xlsx.ReportRow(report.Mode, result)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
