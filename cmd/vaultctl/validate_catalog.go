package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bourbonvault/backend/internal/infrastructure/catalog"
)

func newValidateCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog FILE",
		Short: "Validate a catalog JSON file against the catalog schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read catalog file %s: %w", args[0], err)
			}

			items, err := catalog.Decode(data)
			if err != nil {
				var verr *catalog.ValidationError
				if errors.As(err, &verr) {
					for _, fe := range verr.Errors {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
					}
				}
				return fmt.Errorf("%s is not a valid catalog: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bourbons, valid\n", args[0], len(items))
			return nil
		},
	}
}
