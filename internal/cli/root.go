// Package cli holds the spedicija-admin command tree
package cli

import (
	"context"

	auditdom "spedicija/internal/services/audit/domain"
	keysdom "spedicija/internal/services/keys/domain"

	"github.com/spf13/cobra"
)

// Backend is the store backed surface the admin commands drive
type Backend interface {
	Keys() keysdom.AdminPort
	Audit() auditdom.ReaderPort
	Close()
}

// OpenFunc opens a Backend; commands that do not touch the store never call it
type OpenFunc func(ctx context.Context) (Backend, error)

// NewRoot builds the command tree
func NewRoot(open OpenFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "spedicija-admin",
		Short:         "Operate the spedicija inference gateway",
		Long:          `spedicija-admin provisions api keys, reads the audit log and runs the model locally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(
		newKeysCmd(open),
		newAuditCmd(open),
		newPredictCmd(),
		newVersionCmd(),
	)
	return root
}

// withBackend opens the backend for one command run and closes it after
func withBackend(cmd *cobra.Command, open OpenFunc, fn func(Backend) error) error {
	b, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}
