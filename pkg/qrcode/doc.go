// Package qrcode renders share links as QR codes, either as text for a
// terminal or as PNG bytes.
//
// It wraps github.com/skip2/go-qrcode with input validation and defaults
// (Medium recovery, 256 px PNGs):
//
//	text, err := qrcode.Terminal(client.DownloadURL(hash))
//	if err != nil {
//	    return err
//	}
//	fmt.Print(text)
//
//	img, err := qrcode.PNG(url, 512, qrcode.WithHighRecovery())
//
// Empty or whitespace-only content returns ErrEmptyContent. Failures of the
// encoder (for example content too long for a QR code) wrap ErrEncodeFailed.
package qrcode
