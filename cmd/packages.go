package main

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/store"
)

var (
	packagesClient  string
	packagesVerdict string
	packagesLimit   int
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Inspect stored package verdicts",
}

var packagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored package verdicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		packages, err := st.ListPackages(ctx, store.PackageFilter{
			ClientIdentifier: packagesClient,
			Verdict:          model.Verdict(packagesVerdict),
			Limit:            packagesLimit,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(packages), "packages: encode list")
	},
}

var packagesGetCmd = &cobra.Command{
	Use:   "get <package-id>",
	Short: "Show one stored package verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		pkg, err := st.GetPackage(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(pkg), "packages: encode package")
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.Migrate(ctx)
	},
}

func openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
}

func init() {
	packagesListCmd.Flags().StringVar(&packagesClient, "client", "", "filter by client identifier")
	packagesListCmd.Flags().StringVar(&packagesVerdict, "verdict", "", "filter by verdict (GO, WAIT, NO_GO)")
	packagesListCmd.Flags().IntVar(&packagesLimit, "limit", 50, "maximum packages to list")
	packagesCmd.AddCommand(packagesListCmd, packagesGetCmd)
	rootCmd.AddCommand(packagesCmd, migrateCmd)
}
