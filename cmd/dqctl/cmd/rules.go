package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dataquality/internal/validator/concession"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the builtin rules in reporting order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := concession.NewRegistry(concession.DefaultDependencies())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tAVAILABILITY")
			for _, d := range registry.Descriptors() {
				fmt.Fprintf(w, "%s\t%s\toffline\n", d.Key, d.Name)
			}
			// Listed only; these need the region master and run history.
			for _, r := range []*concession.BuiltinValidator{
				concession.KnownRegionValidator(concession.NewRegionLookup(nil)),
				concession.DuplicateCVEValidator(nil),
			} {
				fmt.Fprintf(w, "%s\t%s\tserver\n", r.RuleKey(), r.RuleName())
			}
			return w.Flush()
		},
	}
}
