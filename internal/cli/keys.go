package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newKeysCmd(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Issue, revoke and list api keys",
	}

	var company string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a new active key for a company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, open, func(b Backend) error {
				k, err := b.Keys().Issue(cmd.Context(), company)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), k.Key)
				return nil
			})
		},
	}
	issue.Flags().StringVar(&company, "firma", "", "Company the key belongs to")
	_ = issue.MarkFlagRequired("firma")

	revoke := &cobra.Command{
		Use:   "revoke <key>",
		Short: "Deactivate a key; it is kept for the audit trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, open, func(b Backend) error {
				if err := b.Keys().Revoke(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "revoked")
				return nil
			})
		},
	}

	var listCompany string
	list := &cobra.Command{
		Use:   "list",
		Short: "List keys, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, open, func(b Backend) error {
				ks, err := b.Keys().List(cmd.Context(), listCompany)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tFIRMA\tACTIVE\tCREATED")
				for _, k := range ks {
					fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", k.Masked(), k.Company, k.Active, k.CreatedAt.UTC().Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVar(&listCompany, "firma", "", "Only this company's keys")

	cmd.AddCommand(issue, revoke, list)
	return cmd
}
