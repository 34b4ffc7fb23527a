// Package expiry turns the raw expiry timestamps reported by the file-sharing
// backend into presentation values: whether a file is effectively
// non-expiring, whether it expires soon, how much time it has left and when
// exactly it expires.
//
// The backend serialises instants as ISO-8601 date-times, frequently without a
// zone designator. Such values are UTC. Normalize makes that assumption
// explicit by appending "Z" to zone-less strings before parsing, and Parse
// returns an Instant whose State tells missing, invalid and valid input apart.
//
// # Architecture
//
// Clock is the single entry point. It is immutable after New and holds:
//
//   - a now function (time.Now unless WithNow is given), read exactly once per
//     call and never cached between calls
//   - the unlimited threshold: files whose remaining time exceeds it are shown
//     as non-expiring (90 × 365 days by default, no leap-year adjustment)
//   - the "expiring soon" window (24 hours by default)
//   - the display location used by FormatAbsolute (time.Local by default)
//   - the Labels used for sentinel and relative-time strings
//
// All arithmetic is done on whole milliseconds, matching the resolution of
// the instants the backend produces.
//
// # Usage
//
//	import "github.com/simpleupdown/updown/pkg/expiry"
//
//	clock := expiry.New(
//	    expiry.WithSoonThreshold(12*time.Hour),
//	    expiry.WithLocation(seoul),
//	)
//
//	clock.TimeLeft("2024-01-07T12:00:00")     // "2일 3시간 남음"
//	clock.FormatAbsolute("2024-01-05T09:00:00") // "2024.01.05 18:00"
//	clock.Classify(record.ExpireTime)         // expiry.ExpiringSoon
//
// # Error Handling
//
// Nothing in this package returns an error or panics on bad input. Missing
// timestamps are a normal state and are treated as non-expiring; unparsable
// ones degrade to the Unknown and DateError sentinels of the configured Labels.
//
// # Localization
//
// KoreanLabels is the default. TranslatedLabels adapts any Translator (for
// example *i18n.Translator loaded from the embedded locale catalogs) to the
// Labels interface.
package expiry
