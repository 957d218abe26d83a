package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bourbonvault/backend/internal/logger"
	"github.com/bourbonvault/backend/internal/usecase"
)

func newRecommendCmd(loadCatalog func() (*usecase.CatalogService, error)) *cobra.Command {
	var (
		flavors []string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the catalog against a set of flavors",
		Example: `  vaultctl recommend --flavor caramel --flavor vanilla
  vaultctl recommend -f cherry,spice --limit 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			catalogSvc, err := loadCatalog()
			if err != nil {
				return err
			}
			svc, err := usecase.NewRecommendationService(catalogSvc, emptyHistory{}, nil, nil, nil,
				logger.NewNoOpLogger(), usecase.RecommendationConfig{})
			if err != nil {
				return err
			}
			recs, err := svc.ByPreferences(cmd.Context(), flavors, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs.Items) == 0 {
				fmt.Fprintln(out, "No matches.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tSCORE\tID\tNAME")
			for i, item := range recs.Items {
				fmt.Fprintf(tw, "%d\t%.1f\t%s\t%s\n", i+1, item.Score, item.Bourbon.ID, item.Bourbon.Name)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVarP(&flavors, "flavor", "f", nil, "Flavor preference (repeatable or comma separated)")
	cmd.Flags().IntVarP(&limit, "limit", "n", usecase.DefaultMaxResults, "Maximum number of results")
	if err := cmd.MarkFlagRequired("flavor"); err != nil {
		panic(fmt.Sprintf("failed to mark flavor flag as required: %v", err))
	}
	return cmd
}
