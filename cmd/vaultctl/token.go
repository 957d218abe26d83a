package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	httpDelivery "github.com/bourbonvault/backend/internal/delivery/http"
)

func newTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token USER_ID",
		Short: "Mint a bearer token for local development",
		Long:  "Signs a token for USER_ID with BOURBONVAULT_AUTH_JWT_SECRET so the /api/v1/me routes can be called locally.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth := httpDelivery.NewTokenAuthority(os.Getenv("BOURBONVAULT_AUTH_JWT_SECRET"), ttl)
			if auth == nil {
				return fmt.Errorf("BOURBONVAULT_AUTH_JWT_SECRET is not set")
			}
			token, err := auth.Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
