// Package storage persists archived files under string keys.
//
// Two backends implement Storage: LocalStorage writes below a base
// directory, S3Storage writes to an S3-compatible bucket (AWS S3,
// Cloudflare R2, MinIO). Keys use forward slashes; keys that would escape
// the storage root are rejected with ErrInvalidKey.
//
// # Usage
//
//	store, err := storage.NewLocalStorage("./archive", "")
//	if err != nil {
//	    return err
//	}
//	obj, err := store.Put(ctx, "ab12.../report.pdf", body, size, "application/pdf")
//
// S3-compatible services need an endpoint and usually path-style addressing:
//
//	store, err := storage.NewS3Storage(ctx, storage.S3Config{
//	    Bucket:         "updown-archive",
//	    Region:         "auto",
//	    Endpoint:       "https://<account>.r2.cloudflarestorage.com",
//	    AccessKeyID:    id,
//	    SecretKey:      secret,
//	    ForcePathStyle: true,
//	})
//
// Errors from the AWS SDK are classified into the sentinels in errors.go
// (ErrAccessDenied, ErrBucketNotFound, ErrServiceUnavailable, ...), so
// callers can branch with errors.Is without importing the SDK.
package storage
