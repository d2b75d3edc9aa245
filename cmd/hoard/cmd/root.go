package cmd

import (
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/defaults"
	"github.com/zoobzio/hoard/internal/config"
)

// globals holds flags shared by every subcommand.
type globals struct {
	configPath string
}

// store builds a Store from the defaults plus the configuration file named
// by --config or HOARD_CONFIG.
func (g *globals) store() (*hoard.Store, error) {
	file, err := config.Load(config.Path(g.configPath))
	if err != nil {
		return nil, err
	}
	opts, err := file.Options()
	if err != nil {
		return nil, err
	}
	return defaults.New(opts...)
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "hoard",
		Short: "hoard stores typed values as files",
		Long: `hoard serializes values to files by extension, optionally compressing,
checksumming and encrypting them on the way to disk.

The transform chain comes from a YAML or JSONC configuration file named by
--config or the HOARD_CONFIG environment variable.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "configuration file (default $"+config.EnvConfig+")")

	root.AddCommand(
		newPutCmd(g),
		newGetCmd(g),
		newStatCmd(g),
		newListCmd(g),
		newRemoveCmd(g),
		newKeygenCmd(),
	)
	return root
}

// Execute runs the hoard command and exits non-zero on failure. Locked key
// buffers are wiped before the process exits.
func Execute() {
	memguard.CatchInterrupt()
	err := newRootCmd().Execute()
	memguard.Purge()
	if err != nil {
		os.Exit(1)
	}
}
