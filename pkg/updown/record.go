package updown

// Hashes are the content digests the backend computes on upload. SHA256 is
// the file's identifier in every endpoint.
type Hashes struct {
	MD5    string `json:"md5"`
	SHA1   string `json:"sha1"`
	SHA256 string `json:"sha256"`
}

// FileRecord is one entry of the file listing.
type FileRecord struct {
	FileName      string `json:"file_name"`
	FileSize      int64  `json:"file_size"`
	FormattedSize string `json:"formatted_size"`
	ContentType   string `json:"content_type"`
	Hash          Hashes `json:"hash"`
	// ExpireTime is the raw expiry timestamp, UTC without zone designator.
	ExpireTime string `json:"expire_time"`
	// Date is the upload time in the backend's display format.
	Date string `json:"date"`
	// ExpireMinutes is the lifetime requested at upload; -1 means unlimited.
	ExpireMinutes int `json:"expire_minutes"`
}

// Unlimited reports whether the file was uploaded without expiry.
func (r FileRecord) Unlimited() bool {
	return r.ExpireMinutes == -1
}

type listResponse struct {
	Files []FileRecord `json:"files"`
}
