package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dataquality/internal/config"
	"dataquality/internal/domain"
	"dataquality/internal/recordsheet"
	"dataquality/internal/validator"
	"dataquality/internal/validator/concession"
)

// ErrRecordsRejected is returned by validate when any record fails.
var ErrRecordsRejected = errors.New("one or more records were rejected")

func newValidateCmd() *cobra.Command {
	var (
		rules string
		lo    float64
		hi    float64
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a record sheet offline",
		Long: `Runs the stateless builtin rules over every record of a .csv, .xlsx or
.json file and prints one line per record. Exits non-zero when any record
is invalid or unreadable.

Region master and duplicate checks need the database and are not run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lo > hi {
				return fmt.Errorf("--min (%v) exceeds --max (%v)", lo, hi)
			}
			registry, err := concession.NewRegistry(concession.Dependencies{SentimentMin: lo, SentimentMax: hi})
			if err != nil {
				return err
			}
			validators, err := registry.Resolve(config.SplitList(rules))
			if err != nil {
				return err
			}
			rows, err := loadRows(args[0])
			if err != nil {
				return err
			}
			return validateRows(cmd, validator.NewDataValidationService(validators), rows)
		},
	}

	cmd.Flags().StringVar(&rules, "rules", "", "Comma-separated rule keys to run, in order (default: all offline rules)")
	cmd.Flags().Float64Var(&lo, "min", concession.DefaultSentimentMin, "Lowest accepted sentiment score")
	cmd.Flags().Float64Var(&hi, "max", concession.DefaultSentimentMax, "Highest accepted sentiment score")
	return cmd
}

func validateRows(cmd *cobra.Command, svc *validator.DataValidationService, rows []recordsheet.Row) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	var valid, invalid, unreadable int
	for _, row := range rows {
		if row.Err != nil {
			unreadable++
			fmt.Fprintf(out, "row %d: UNREADABLE %v\n", row.Number, row.Err)
			continue
		}
		outcome, err := svc.ValidateRecord(ctx, row.Record)
		if err != nil {
			return fmt.Errorf("row %d: %w", row.Number, err)
		}
		if outcome.Valid() {
			valid++
			fmt.Fprintf(out, "row %d: VALID\n", row.Number)
			continue
		}
		invalid++
		fmt.Fprintf(out, "row %d: INVALID %s\n", row.Number, strings.Join(outcome.Errors(), " | "))
	}

	fmt.Fprintf(out, "\n%d records: %d valid, %d invalid, %d unreadable\n",
		len(rows), valid, invalid, unreadable)
	if invalid+unreadable > 0 {
		return ErrRecordsRejected
	}
	return nil
}

// loadRows reads a record sheet, or a JSON array of records numbered from 1.
func loadRows(path string) ([]recordsheet.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return recordsheet.Read(path, f)
	}

	var records []domain.ConcessionRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	rows := make([]recordsheet.Row, len(records))
	for i, rec := range records {
		rows[i] = recordsheet.Row{Number: i + 1, Record: rec}
	}
	return rows, nil
}
