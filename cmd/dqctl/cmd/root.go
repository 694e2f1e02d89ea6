// Package cmd implements the dqctl command line.
package cmd

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"dataquality/internal/config"
	"dataquality/internal/repository/postgres"
)

// NewRootCmd builds the dqctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dqctl",
		Short: "Data quality gate tooling",
		Long: `dqctl validates concession record sheets offline and administers
the data quality gate database.

Offline:
  validate  - run the builtin rules over a CSV, XLSX or JSON file
  rules     - list the builtin rules

Database (reads DQ_DB_* from the environment):
  migrate   - apply or revert schema migrations
  clients   - manage API clients
  regions   - load the region master list`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newValidateCmd(),
		newRulesCmd(),
		newMigrateCmd(),
		newClientsCmd(),
		newRegionsCmd(),
	)
	return root
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func openDB() (*sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return postgres.NewDB(&cfg.DB)
}
