package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"github.com/zoobzio/hoard/encrypt"
)

func newKeygenCmd() *cobra.Command {
	var ageIdentity bool
	c := &cobra.Command{
		Use:   "keygen <file>",
		Short: "Generate a key file",
		Long: `Writes a random 32-byte key suitable for every symmetric cipher and the
keyed checksum, or with --age a new age X25519 identity whose public
recipient is printed. The file must not already exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ageIdentity {
				return writeAgeIdentity(cmd, args[0])
			}
			key := memguard.NewBufferRandom(32)
			defer key.Destroy()
			return writeKeyFile(args[0], key.Bytes())
		},
	}
	c.Flags().BoolVar(&ageIdentity, "age", false, "generate an age identity instead of a raw key")
	return c
}

func writeAgeIdentity(cmd *cobra.Command, path string) error {
	identity, recipient, err := encrypt.GenerateAgeIdentity()
	if err != nil {
		return err
	}
	buf, err := identity.Key(cmd.Context())
	if err != nil {
		return err
	}
	defer buf.Destroy()

	content := append(append([]byte(nil), buf.Bytes()...), '\n')
	defer memguard.WipeBytes(content)
	if err := writeKeyFile(path, content); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), recipient)
	return nil
}

func writeKeyFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("key file %s already exists", path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
