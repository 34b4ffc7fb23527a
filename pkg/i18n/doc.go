// Package i18n provides message catalogs for the command-line views: keyed
// strings with named placeholders, loaded once from YAML or JSON and looked
// up per language.
//
// # Architecture
//
// Translator holds an immutable map of language -> nested key tree. Keys use
// dot notation ("expiry.left.minutes") to walk the tree. Catalogs are
// supplied by an Adapter; MapAdapter serves an in-memory map and FSAdapter
// reads every supported file in a directory of an fs.FS (embed.FS,
// os.DirFS, fstest.MapFS), merging languages across files.
//
// Language negotiation is delegated to golang.org/x/text/language: Match
// accepts BCP 47 tags or raw Accept-Language values and returns the best
// supported language, or the default one.
//
// # Usage
//
//	import (
//	    "github.com/simpleupdown/updown/locales"
//	    "github.com/simpleupdown/updown/pkg/i18n"
//	)
//
//	tr, err := i18n.NewTranslator(ctx,
//	    i18n.NewFSAdapter(locales.FS, ".", i18n.NewYAMLParser()),
//	    i18n.WithDefaultLanguage("ko"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	lang := tr.Match(os.Getenv("LANG"))
//	tr.T(lang, "expiry.left.minutes", "minutes", "5") // "5분 남음"
//
// # Error Handling
//
// Loading errors are sentinel values joined with the underlying cause and can
// be matched with errors.Is. Lookups never fail: a missing key yields the key
// itself (T) or the supplied default (Td).
package i18n
