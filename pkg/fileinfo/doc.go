// Package fileinfo derives display attributes of uploaded files from their
// names and sizes: human-readable size labels, a coarse kind, and the icon
// shown next to each entry in listings.
//
// All functions are pure and safe for concurrent use.
//
// # Sizes
//
// FormatSize uses binary multiples with one decimal place:
//
//	fileinfo.FormatSize(512)      // "512 B"
//	fileinfo.FormatSize(1536)     // "1.5 KB"
//	fileinfo.FormatSize(5 << 20)  // "5.0 MB"
//	fileinfo.FormatSize(-1)       // "0 B"
//
// # Kinds
//
// KindOf classifies by extension, ignoring case. Unknown or missing
// extensions yield KindOther.
//
//	fileinfo.KindOf("photo.JPG")  // KindImage
//	fileinfo.Icon("report.pdf")   // "📄"
//
// IsImage decides whether a thumbnail can be requested for a file. It
// accepts a few formats (such as .tiff) that KindOf does not give an image
// icon.
package fileinfo
