package cmd

import (
	stdjson "encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zoobzio/hoard"
)

type listOptions struct {
	extension string
	jsonOut   bool
}

func newListCmd(g *globals) *cobra.Command {
	o := &listOptions{}
	c := &cobra.Command{
		Use:     "ls <dir>",
		Aliases: []string{"list"},
		Short:   "List stored files in a directory",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.store()
			if err != nil {
				return err
			}
			metas, err := store.List(cmd.Context(), args[0], &hoard.SearchOptions{Extension: o.extension})
			if err != nil {
				return err
			}
			if o.jsonOut {
				list := make([]metadataJSON, 0, len(metas))
				for _, m := range metas {
					list = append(list, toMetadataJSON(m))
				}
				return printJSON(cmd.OutOrStdout(), list)
			}
			printMetadataTable(cmd.OutOrStdout(), metas)
			return nil
		},
	}
	c.Flags().StringVarP(&o.extension, "ext", "x", "", "only list files with this extension")
	c.Flags().BoolVar(&o.jsonOut, "json", false, "output results as JSON")
	return c
}

func newStatCmd(g *globals) *cobra.Command {
	var jsonOut bool
	c := &cobra.Command{
		Use:   "stat <path>",
		Short: "Show metadata for a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.store()
			if err != nil {
				return err
			}
			obj, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			meta := obj.Metadata()
			if err := obj.Close(); err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), toMetadataJSON(meta))
			}
			printMetadataTable(cmd.OutOrStdout(), []hoard.Metadata{meta})
			return nil
		},
	}
	c.Flags().BoolVar(&jsonOut, "json", false, "output results as JSON")
	return c
}

// metadataJSON is the machine-readable form of hoard.Metadata.
type metadataJSON struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	Directory    string    `json:"directory"`
	Extension    string    `json:"extension"`
	Size         int64     `json:"size"`
	Encrypted    bool      `json:"encrypted"`
	MimeType     string    `json:"mime_type"`
	LastModified time.Time `json:"last_modified"`
}

func toMetadataJSON(m hoard.Metadata) metadataJSON {
	return metadataJSON{
		Path:         m.FullPath,
		Name:         m.FileName,
		Directory:    m.Directory,
		Extension:    m.Extension,
		Size:         m.Size,
		Encrypted:    m.IsEncrypted,
		MimeType:     m.MimeType,
		LastModified: m.LastModified,
	}
}

func printJSON(w io.Writer, v any) error {
	enc := stdjson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMetadataTable(w io.Writer, metas []hoard.Metadata) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tENCRYPTED\tMIME\tMODIFIED")
	for _, m := range metas {
		fmt.Fprintf(tw, "%s%s\t%d\t%s\t%s\t%s\n",
			m.FileName, m.Extension, m.Size, encryptedLabel(m), m.MimeType,
			m.LastModified.Format(time.RFC3339))
	}
	_ = tw.Flush()
}

func encryptedLabel(m hoard.Metadata) string {
	if m.IsEncrypted {
		return "encrypted"
	}
	return "plain"
}
