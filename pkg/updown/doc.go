// Package updown is a client for the Simple Updown file-sharing backend.
//
// The backend stores uploads under the SHA-256 of their content and expires
// them at an absolute UTC time. This package covers the read and delete side
// of its HTTP API:
//
//	GET    /api/files/        list of FileRecord
//	DELETE /files/{hash}      remove a file
//	GET    /download/{hash}   stream the content
//	GET    /thumbnail/{hash}  image preview
//
// # Usage
//
//	client, err := updown.NewClient("https://share.example.com",
//	    updown.WithTimeout(10*time.Second),
//	    updown.WithRetries(3),
//	    updown.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	files, err := client.ListFiles(ctx)
//
//	dl, err := client.Download(ctx, files[0].Hash.SHA256)
//	if err != nil {
//	    return err
//	}
//	defer dl.Close()
//	_, err = io.Copy(dst, dl)
//
// # Retries and timeouts
//
// GET requests are retried with exponential backoff on transport errors,
// timeouts, 429 and 5xx responses. DELETE is sent once. The timeout bounds
// each attempt; for downloads it only covers the wait for response headers,
// so large bodies are not cut off.
//
// Every request carries an X-Request-ID header. The id is taken from the
// context (see package requestid) or generated, and stays the same across
// retries of one call.
//
// # Errors
//
// Non-2xx responses are returned as *StatusError, which matches ErrNotFound
// for 404 and ErrUnexpectedStatus otherwise:
//
//	if errors.Is(err, updown.ErrNotFound) { ... }
package updown
