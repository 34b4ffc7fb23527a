package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no other default is configured.
const DefaultLanguage = "ko"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used for unsupported or unmatched
// requests. Empty values are ignored.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every lookup miss.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.logMissing = enabled
	}
}

// Translator looks up catalog strings. It is immutable after
// NewTranslator and safe for concurrent use.
type Translator struct {
	catalogs    Catalogs
	langs       []string
	matcher     language.Matcher
	defaultLang string
	logger      *slog.Logger
	logMissing  bool
}

// NewTranslator loads catalogs through adapter.
func NewTranslator(ctx context.Context, adapter Adapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	catalogs, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	langs := make([]string, 0, len(catalogs))
	for lang, tree := range catalogs {
		if lang == "" {
			return nil, ErrEmptyLanguage
		}
		if tree == nil {
			return nil, fmt.Errorf("%w: language %q has no entries", ErrInvalidStructure, lang)
		}
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	// The matcher falls back to its first tag, so the default goes first.
	if i := slices.Index(langs, t.defaultLang); i > 0 {
		langs = append([]string{t.defaultLang}, slices.Delete(langs, i, i+1)...)
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, lang, err)
		}
		tags = append(tags, tag)
	}

	t.catalogs = catalogs
	t.langs = langs
	if len(tags) > 0 {
		t.matcher = language.NewMatcher(tags)
	}

	t.logger.DebugContext(ctx, "catalogs loaded", slog.Any("languages", langs))
	return t, nil
}

// Languages returns the supported language codes, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.langs)
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match picks the supported language that best fits the preferences, which
// may be BCP 47 tags ("ko-KR"), POSIX locales ("en_US.UTF-8") or
// Accept-Language values ("en;q=0.8, ko"). Earlier arguments win ties.
func (t *Translator) Match(preferred ...string) string {
	if t.matcher == nil {
		return t.defaultLang
	}

	var tags []language.Tag
	for _, p := range preferred {
		p = posixToBCP47(p)
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return t.defaultLang
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}

// posixToBCP47 turns "ko_KR.UTF-8" into "ko-KR". The C and POSIX locales
// carry no language preference. Accept-Language lists are left alone.
func posixToBCP47(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ",;") {
		return s
	}
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Has reports whether lang has a string entry for key.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key for lang, substituting %{name} placeholders from args
// given as name/value pairs. Unsupported languages use the default
// language; a missing key yields the key itself.
func (t *Translator) T(lang, key string, args ...string) string {
	return t.Td(lang, key, key, args...)
}

// Td is T with an explicit fallback for missing keys. The fallback is
// formatted with args as well.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	tmpl, ok := t.lookup(lang, key)
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		tmpl = defaultValue
	}
	return substitute(tmpl, args)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	tree, ok := t.catalogs[lang]
	if !ok {
		tree, ok = t.catalogs[t.defaultLang]
		if !ok {
			return "", false
		}
	}
	v, ok := walk(tree, key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// walk resolves a dot-separated key in a nested tree.
func walk(tree map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	cur := tree
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		switch next := v.(type) {
		case map[string]any:
			cur = next
		case map[any]any:
			cur = make(map[string]any, len(next))
			for k, vv := range next {
				if ks, ok := k.(string); ok {
					cur[ks] = vv
				}
			}
		default:
			return nil, false
		}
	}
	return nil, false
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} with the value paired with name in args.
// Unknown placeholders are kept; an odd trailing argument is ignored.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
