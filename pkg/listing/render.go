package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/simpleupdown/updown/pkg/expiry"
)

// Translator resolves catalog keys. *i18n.Translator implements it.
type Translator interface {
	Td(lang, key, defaultValue string, args ...string) string
}

// Catalog keys used by the renderer.
const (
	KeyHeaderName    = "listing.header.name"
	KeyHeaderSize    = "listing.header.size"
	KeyHeaderLeft    = "listing.header.left"
	KeyHeaderExpires = "listing.header.expires"
	KeyHeaderStatus  = "listing.header.status"
	KeyHeaderHash    = "listing.header.hash"
	KeyEmpty         = "listing.empty"
	KeySummary       = "listing.summary"
)

// shortHashLen is how much of the SHA-256 the table shows.
const shortHashLen = 12

var koreanDefaults = map[string]string{
	KeyHeaderName:    "파일명",
	KeyHeaderSize:    "크기",
	KeyHeaderLeft:    "남은 시간",
	KeyHeaderExpires: "만료 일시",
	KeyHeaderStatus:  "상태",
	KeyHeaderHash:    "해시",
	KeyEmpty:         "파일이 없습니다",
	KeySummary:       "전체 %{total}개 · 곧 만료 %{soon}개",

	"bucket.unlimited":      "무제한",
	"bucket.expiring_soon":  "곧 만료",
	"bucket.expiring_later": "보관 중",
	"bucket.expired":        "만료됨",
}

// Renderer writes rows in one language.
type Renderer struct {
	tr   Translator
	lang string
}

// NewRenderer returns a Renderer. A nil translator renders the built-in
// Korean strings.
func NewRenderer(tr Translator, lang string) *Renderer {
	return &Renderer{tr: tr, lang: lang}
}

func (r *Renderer) text(key string, args ...string) string {
	def := koreanDefaults[key]
	if r.tr == nil {
		for i := 0; i+1 < len(args); i += 2 {
			def = strings.ReplaceAll(def, "%{"+args[i]+"}", args[i+1])
		}
		return def
	}
	return r.tr.Td(r.lang, key, def, args...)
}

// BucketLabel returns the display name of b.
func (r *Renderer) BucketLabel(b expiry.Bucket) string {
	return r.text("bucket." + b.String())
}

// Table writes rows as an aligned table followed by a summary line. An
// empty listing prints the empty message instead of a header.
func (r *Renderer) Table(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, r.text(KeyEmpty))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{
		r.text(KeyHeaderName),
		r.text(KeyHeaderSize),
		r.text(KeyHeaderLeft),
		r.text(KeyHeaderExpires),
		r.text(KeyHeaderStatus),
		r.text(KeyHeaderHash),
	}, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join([]string{
			row.Icon + " " + cleanCell(row.Name),
			row.SizeLabel,
			row.TimeLeft,
			dash(row.ExpiresAt),
			r.BucketLabel(row.Bucket),
			shortHash(row.Hash),
		}, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, r.text(KeySummary,
		"total", strconv.Itoa(len(rows)),
		"soon", strconv.Itoa(Count(rows, expiry.ExpiringSoon)),
	))
	return err
}

// JSON writes rows as an indented JSON array.
func (r *Renderer) JSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// cleanCell keeps control characters in file names from breaking the table.
func cleanCell(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func shortHash(h string) string {
	if len(h) > shortHashLen {
		return h[:shortHashLen]
	}
	return dash(h)
}
