package expiry

import (
	"fmt"
	"strconv"
)

// Labels supplies the display strings produced by Clock.
// Implementations must be safe for concurrent use.
type Labels interface {
	Unlimited() string
	Unknown() string
	Expired() string
	DateError() string
	DaysHoursLeft(days, hours int64) string
	HoursMinutesLeft(hours, minutes int64) string
	MinutesLeft(minutes int64) string
}

// KoreanLabels is the default label set.
type KoreanLabels struct{}

func (KoreanLabels) Unlimited() string { return "무제한" }
func (KoreanLabels) Unknown() string   { return "알 수 없음" }
func (KoreanLabels) Expired() string   { return "만료됨" }
func (KoreanLabels) DateError() string { return "날짜 오류" }

func (KoreanLabels) DaysHoursLeft(days, hours int64) string {
	return fmt.Sprintf("%d일 %d시간 남음", days, hours)
}

func (KoreanLabels) HoursMinutesLeft(hours, minutes int64) string {
	return fmt.Sprintf("%d시간 %d분 남음", hours, minutes)
}

func (KoreanLabels) MinutesLeft(minutes int64) string {
	return fmt.Sprintf("%d분 남음", minutes)
}

// Translator is the lookup used by TranslatedLabels. *i18n.Translator
// satisfies it. Arguments are key/value pairs substituted into %{name}
// placeholders.
type Translator interface {
	Td(lang, key, defaultValue string, args ...string) string
}

// Catalog keys looked up by TranslatedLabels.
const (
	KeyUnlimited        = "expiry.unlimited"
	KeyUnknown          = "expiry.unknown"
	KeyExpired          = "expiry.expired"
	KeyDateError        = "expiry.date_error"
	KeyDaysHoursLeft    = "expiry.left.days_hours"
	KeyHoursMinutesLeft = "expiry.left.hours_minutes"
	KeyMinutesLeft      = "expiry.left.minutes"
)

// TranslatedLabels resolves labels through a Translator for a fixed language.
// Keys missing from the catalog fall back to KoreanLabels.
type TranslatedLabels struct {
	tr   Translator
	lang string
}

// NewTranslatedLabels returns Labels backed by tr for lang.
// A nil translator yields KoreanLabels.
func NewTranslatedLabels(tr Translator, lang string) Labels {
	if tr == nil {
		return KoreanLabels{}
	}
	return TranslatedLabels{tr: tr, lang: lang}
}

func (l TranslatedLabels) Unlimited() string {
	return l.tr.Td(l.lang, KeyUnlimited, KoreanLabels{}.Unlimited())
}

func (l TranslatedLabels) Unknown() string {
	return l.tr.Td(l.lang, KeyUnknown, KoreanLabels{}.Unknown())
}

func (l TranslatedLabels) Expired() string {
	return l.tr.Td(l.lang, KeyExpired, KoreanLabels{}.Expired())
}

func (l TranslatedLabels) DateError() string {
	return l.tr.Td(l.lang, KeyDateError, KoreanLabels{}.DateError())
}

func (l TranslatedLabels) DaysHoursLeft(days, hours int64) string {
	return l.tr.Td(l.lang, KeyDaysHoursLeft, "%{days}일 %{hours}시간 남음",
		"days", itoa(days), "hours", itoa(hours))
}

func (l TranslatedLabels) HoursMinutesLeft(hours, minutes int64) string {
	return l.tr.Td(l.lang, KeyHoursMinutesLeft, "%{hours}시간 %{minutes}분 남음",
		"hours", itoa(hours), "minutes", itoa(minutes))
}

func (l TranslatedLabels) MinutesLeft(minutes int64) string {
	return l.tr.Td(l.lang, KeyMinutesLeft, "%{minutes}분 남음", "minutes", itoa(minutes))
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
