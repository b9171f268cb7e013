package cli

import (
	"encoding/json"

	auditdom "spedicija/internal/services/audit/domain"

	"github.com/spf13/cobra"
)

func newAuditCmd(open OpenFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Read the prediction audit log",
	}

	var f auditdom.ListFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "Print recent entries as JSON lines, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, open, func(b Backend) error {
				xs, err := b.Audit().List(cmd.Context(), f)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, e := range xs {
					if err := enc.Encode(e); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&f.Company, "firma", "", "Only this company")
	list.Flags().StringVar(&f.APIKey, "key", "", "Only this api key")
	list.Flags().IntVar(&f.Limit, "limit", 20, "Maximum entries")

	cmd.AddCommand(list)
	return cmd
}
