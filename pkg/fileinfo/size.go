package fileinfo

import "strconv"

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// FormatSize renders a byte count. Negative counts render as "0 B".
func FormatSize(bytes int64) string {
	switch {
	case bytes < 0:
		return "0 B"
	case bytes < kib:
		return strconv.FormatInt(bytes, 10) + " B"
	case bytes < mib:
		return scaled(bytes, kib) + " KB"
	case bytes < gib:
		return scaled(bytes, mib) + " MB"
	default:
		return scaled(bytes, gib) + " GB"
	}
}

func scaled(bytes, unit int64) string {
	return strconv.FormatFloat(float64(bytes)/float64(unit), 'f', 1, 64)
}
