// Package main implements vaultctl, the offline companion CLI for the Bourbon Vault catalog.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bourbonvault/backend/internal/infrastructure/catalog"
	"github.com/bourbonvault/backend/internal/usecase"
)

func newRootCmd() *cobra.Command {
	var catalogPath string

	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Bourbon Vault catalog tools",
		Long:          "vaultctl inspects a bourbon catalog offline: markup analytics, flavor recommendations, catalog validation and development tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "Path to a catalog JSON file (defaults to the embedded catalog)")

	loadCatalog := func() (*usecase.CatalogService, error) {
		var provider *catalog.StaticProvider
		var err error
		if catalogPath == "" {
			provider, err = catalog.NewEmbedded()
		} else {
			provider, err = catalog.LoadFile(catalogPath)
		}
		if err != nil {
			return nil, err
		}
		return usecase.NewCatalogService(provider)
	}

	root.AddCommand(
		newMarkupsCmd(loadCatalog),
		newRecommendCmd(loadCatalog),
		newValidateCatalogCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
