package fileinfo

import (
	"path/filepath"
	"strings"
)

// Kind is a coarse file category used for icons.
type Kind int

const (
	KindOther Kind = iota
	KindImage
	KindVideo
	KindAudio
	KindPDF
	KindArchive
	KindSpreadsheet
	KindPresentation
	KindDocument
)

var kindNames = [...]string{
	KindOther:        "other",
	KindImage:        "image",
	KindVideo:        "video",
	KindAudio:        "audio",
	KindPDF:          "pdf",
	KindArchive:      "archive",
	KindSpreadsheet:  "spreadsheet",
	KindPresentation: "presentation",
	KindDocument:     "document",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindOther]
	}
	return kindNames[k]
}

var kindIcons = [...]string{
	KindOther:        "📁",
	KindImage:        "🖼️",
	KindVideo:        "🎬",
	KindAudio:        "🎵",
	KindPDF:          "📄",
	KindArchive:      "📦",
	KindSpreadsheet:  "📊",
	KindPresentation: "📋",
	KindDocument:     "📝",
}

// Icon returns the emoji shown for files of this kind.
func (k Kind) Icon() string {
	if k < 0 || int(k) >= len(kindIcons) {
		return kindIcons[KindOther]
	}
	return kindIcons[k]
}

var extKinds = map[string]Kind{
	".jpg": KindImage, ".jpeg": KindImage, ".png": KindImage,
	".gif": KindImage, ".webp": KindImage, ".bmp": KindImage,

	".mp4": KindVideo, ".avi": KindVideo, ".mov": KindVideo, ".mkv": KindVideo,

	".mp3": KindAudio, ".wav": KindAudio, ".flac": KindAudio, ".aac": KindAudio,

	".pdf": KindPDF,

	".zip": KindArchive, ".rar": KindArchive, ".7z": KindArchive,
	".tar": KindArchive, ".gz": KindArchive,

	".xls": KindSpreadsheet, ".xlsx": KindSpreadsheet,
	".ppt": KindPresentation, ".pptx": KindPresentation,
	".doc": KindDocument, ".docx": KindDocument,
}

// Thumbnails are only requested for these.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tiff": true,
}

func ext(name string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
}

// KindOf classifies name by its extension.
func KindOf(name string) Kind {
	if k, ok := extKinds[ext(name)]; ok {
		return k
	}
	return KindOther
}

// Icon is shorthand for KindOf(name).Icon().
func Icon(name string) string {
	return KindOf(name).Icon()
}

// IsImage reports whether name has an image extension the server can
// thumbnail.
func IsImage(name string) bool {
	return imageExts[ext(name)]
}

// IsImageContentType reports whether a MIME type denotes an image.
// Parameters such as "; charset=" are ignored.
func IsImageContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(ct, "image/")
}
