package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simpleupdown/updown/pkg/qrcode"
	"github.com/simpleupdown/updown/pkg/updown"
)

func newShareCommand(a *app) *cobra.Command {
	var (
		showQR  bool
		inverse bool
		pngPath string
		pngSize int
	)

	cmd := &cobra.Command{
		Use:   "share <sha256>",
		Short: "Print the download link of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			link := client.DownloadURL(args[0])
			if link == "" {
				return fmt.Errorf("%w: %q", updown.ErrInvalidHash, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, link)

			if showQR {
				var opts []qrcode.Option
				if inverse {
					opts = append(opts, qrcode.WithInverse())
				}
				text, err := qrcode.Terminal(link, opts...)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			}

			if pngPath != "" {
				img, err := qrcode.PNG(link, pngSize)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, img, 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showQR, "qr", false, "Also print a QR code of the link")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "Invert QR colours for light terminal backgrounds")
	cmd.Flags().StringVar(&pngPath, "png", "", "Write the QR code as a PNG image to this path")
	cmd.Flags().IntVar(&pngSize, "png-size", qrcode.DefaultPNGSize, "PNG edge length in pixels")

	return cmd
}
