package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/defaults"
)

type putOptions struct {
	from        string
	encrypt     bool
	noOverwrite bool
}

func newPutCmd(g *globals) *cobra.Command {
	o := &putOptions{}
	c := &cobra.Command{
		Use:   "put <path> [input]",
		Short: "Store a document at path",
		Long: `Reads a document from input (or stdin), decodes it with the codec for the
input's extension or --from, and saves it at path using the codec for
path's extension.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 2 {
				input = args[1]
			}
			return runPut(cmd, g, o, args[0], input)
		},
	}
	c.Flags().StringVar(&o.from, "from", "", "codec of the input document (default: input extension, json for stdin)")
	c.Flags().BoolVarP(&o.encrypt, "encrypt", "e", false, "run cryptographic transforms and sign the file")
	c.Flags().BoolVar(&o.noOverwrite, "no-overwrite", false, "fail if path already exists")
	return c
}

func runPut(cmd *cobra.Command, g *globals, o *putOptions, path, input string) error {
	store, err := g.store()
	if err != nil {
		return err
	}

	var data []byte
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	codec, err := inputCodec(store, o.from, input)
	if err != nil {
		return err
	}
	var value any
	if err := codec.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decoding input as %s: %w", codec.ContentType(), err)
	}

	opts := &hoard.SaveOptions{Encrypt: o.encrypt}
	if o.noOverwrite {
		opts.Overwrite = hoard.NoOverwrite
	}
	meta, err := store.Save(cmd.Context(), value, path, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d bytes\t%s\n", meta.FullPath, meta.Size, encryptedLabel(meta))
	return nil
}

func inputCodec(store *hoard.Store, from, input string) (hoard.Codec, error) {
	switch {
	case from != "":
		return defaults.CodecByName(from)
	case input == "-":
		return defaults.CodecByName(defaults.CodecJSON)
	default:
		return store.Config().Resolve(input), nil
	}
}
