package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dataquality/internal/recordsheet"
	"dataquality/internal/repository/postgres"
)

func newRegionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Manage the region master list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Upsert regions from a CSV or XLSX sheet with Code and Name columns",
		Long: `Upserts every region of the sheet. Existing codes are renamed and
reactivated. Running servers pick up the list on restart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			regions, err := recordsheet.ReadRegions(args[0], f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := postgres.NewRegionRepo(db).Upsert(commandContext(cmd), regions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d regions (%d rows written)\n", len(regions), n)
			return nil
		},
	})
	return cmd
}
