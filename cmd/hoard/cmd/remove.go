package cmd

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>...",
		Aliases: []string{"delete"},
		Short:   "Delete stored files",
		Long:    `Deletes each path. Missing files and directories are skipped silently.`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.store()
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := store.Delete(cmd.Context(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
