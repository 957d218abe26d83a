package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
	"github.com/bourbonvault/backend/internal/usecase"
)

func newMarkupsCmd(loadCatalog func() (*usecase.CatalogService, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "markups",
		Short: "Print secondary-market markups for the catalog",
		Long:  "Computes the markup of every bottle whose MSRP and secondary price both parse, sorted by percentage markup, followed by the best and worst value views.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogSvc, err := loadCatalog()
			if err != nil {
				return err
			}
			svc, err := usecase.NewMarkupService(catalogSvc, nil, nil, logger.NewNoOpLogger(), 0)
			if err != nil {
				return err
			}
			report, err := svc.Report(cmd.Context())
			if err != nil {
				return err
			}
			return printMarkups(cmd.OutOrStdout(), report)
		},
	}
}

func printMarkups(out io.Writer, report *domain.MarkupReport) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMSRP\tSECONDARY\tMARKUP\tPERCENT\tTIER")
	for _, r := range report.Records {
		fmt.Fprintf(tw, "%s\t%s\t$%d\t$%d\t$%d\t%.1f%%\t%s\n",
			r.Bourbon.ID, r.Bourbon.Name, r.MSRP, r.Secondary, r.Markup, r.MarkupPercent, r.Tier)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := report.Summary
	fmt.Fprintf(out, "\nAnalyzed: %d\n", s.Analyzed)
	fmt.Fprintf(out, "Average markup: %s\n", formatPercent(s.AverageMarkup))
	fmt.Fprintf(out, "Highest markup: %s\n", formatPercent(s.HighestMarkup))
	fmt.Fprintf(out, "Best value: %s\n", joinIDs(s.BestValue))
	fmt.Fprintf(out, "Worst value: %s\n", joinIDs(s.WorstValue))
	return nil
}

// formatPercent renders a missing aggregate as an em dash
func formatPercent(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", *p)
}

func joinIDs(records []domain.MarkupRecord) string {
	if len(records) == 0 {
		return "—"
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.Bourbon.ID
	}
	return strings.Join(ids, ", ")
}
