package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simpleupdown/updown/pkg/fileinfo"
	"github.com/simpleupdown/updown/pkg/storage"
)

func newDownloadCommand(a *app) *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "download <sha256>",
		Short: "Download a file",
		Long: `Download a file into the current directory under the name the backend
reports. -o names a target directory or file; "-o -" writes to stdout.
Images are not written to a terminal unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			dl, err := client.Download(ctx, args[0])
			if err != nil {
				return err
			}
			defer dl.Close()

			if output == "-" {
				out := cmd.OutOrStdout()
				if fileinfo.IsImageContentType(dl.ContentType) && isTerminal(out) && !force {
					return fmt.Errorf("%w: %s is an image; refusing to write it to a terminal (use --force)", ErrInvalidArgument, dl.ContentType)
				}
				_, err := io.Copy(out, dl)
				return err
			}

			dir, name := ".", storage.SanitizeName(dl.FileName)
			if output != "" {
				if fi, err := os.Stat(output); err == nil && fi.IsDir() {
					dir = output
				} else {
					dir, name = filepath.Dir(output), filepath.Base(output)
				}
			}

			store, err := storage.NewLocalStorage(dir, "")
			if err != nil {
				return err
			}
			if !force {
				exists, err := store.Exists(ctx, name)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, filepath.Join(dir, name))
				}
			}

			obj, err := store.Put(ctx, name, dl, dl.Size, dl.ContentType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", filepath.Join(dir, obj.Key), obj.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Target directory or file, or - for stdout")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file or write images to a terminal")

	return cmd
}
