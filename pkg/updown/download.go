package updown

import (
	"io"
	"mime"
	"net/http"
	"strings"
)

// Download is an open file body. It must be closed.
type Download struct {
	// FileName is the name from Content-Disposition, or the hash when the
	// server sent none. It is not sanitised.
	FileName    string
	ContentType string
	// Size is the content length, or -1 if unknown.
	Size int64

	body    io.ReadCloser
	release func()
}

func newDownload(resp *http.Response, hash string, release func()) *Download {
	name := dispositionFileName(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = hash
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Download{
		FileName:    name,
		ContentType: ct,
		Size:        resp.ContentLength,
		body:        resp.Body,
		release:     release,
	}
}

func (d *Download) Read(p []byte) (int, error) {
	return d.body.Read(p)
}

func (d *Download) Close() error {
	err := d.body.Close()
	if d.release != nil {
		d.release()
		d.release = nil
	}
	return err
}

// dispositionFileName extracts the file name from a Content-Disposition
// header. The backend sends filename*=UTF-8''<percent-encoded>, which
// mime.ParseMediaType decodes. Plain filename= values that are not valid
// RFC 6266 are parsed leniently.
func dispositionFileName(header string) string {
	if header == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}
	const key = "filename="
	i := strings.Index(strings.ToLower(header), key)
	if i < 0 {
		return ""
	}
	name := header[i+len(key):]
	if j := strings.IndexByte(name, ';'); j >= 0 {
		name = name[:j]
	}
	return strings.Trim(strings.TrimSpace(name), `"`)
}
