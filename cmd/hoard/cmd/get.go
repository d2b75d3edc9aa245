package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/hoard"
	"github.com/zoobzio/hoard/defaults"
	"github.com/zoobzio/hoard/json"
)

// textFormats end their output with a newline.
var textFormats = map[string]bool{
	defaults.CodecJSON: true,
	defaults.CodecYAML: true,
	defaults.CodecXML:  true,
}

type getOptions struct {
	format string
	raw    bool
	output string
}

func newGetCmd(g *globals) *cobra.Command {
	o := &getOptions{}
	c := &cobra.Command{
		Use:   "get <path>",
		Short: "Print a stored document",
		Long: `Loads the document at path, reverses its transforms and prints it in
--format. With --raw the reverse-transformed bytes are written unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, g, o, args[0])
		},
	}
	c.Flags().StringVarP(&o.format, "format", "f", defaults.CodecJSON, "output codec")
	c.Flags().BoolVar(&o.raw, "raw", false, "write the payload without decoding it")
	c.Flags().StringVarP(&o.output, "output", "o", "", "write to a file instead of stdout")
	return c
}

func runGet(cmd *cobra.Command, g *globals, o *getOptions, path string) error {
	store, err := g.store()
	if err != nil {
		return err
	}
	obj, err := store.Get(cmd.Context(), path)
	if err != nil {
		return err
	}
	defer obj.Close()

	var out []byte
	if o.raw {
		out, err = obj.Raw(cmd.Context())
		if err != nil {
			return err
		}
	} else {
		out, err = render(cmd, obj, o.format)
		if err != nil {
			return err
		}
	}

	if o.output != "" {
		return os.WriteFile(o.output, out, 0o600)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func render(cmd *cobra.Command, obj *hoard.Object, format string) ([]byte, error) {
	var codec hoard.Codec
	if format == defaults.CodecJSON {
		codec = json.NewIndented("", "  ")
	} else {
		var err error
		if codec, err = defaults.CodecByName(format); err != nil {
			return nil, err
		}
	}

	var value any
	if err := obj.Decode(cmd.Context(), &value); err != nil {
		return nil, err
	}
	out, err := codec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding output as %s: %w", codec.ContentType(), err)
	}
	if textFormats[format] && len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}
