package i18n

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/store"
)

// placeholderRe matches a {{name}} token. The name is everything between the
// braces, taken literally, so "{{ a }}" names " a ".
var placeholderRe = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Localizer resolves keys against the active language.
type Localizer struct {
	catalog *Catalog
	kv      store.Store

	mu   sync.RWMutex
	lang string
}

// NewLocalizer creates a Localizer with lang active. kv may be nil, in which
// case the language preference is not persisted.
func NewLocalizer(catalog *Catalog, kv store.Store, lang string) *Localizer {
	if lang == "" {
		lang = SourceLanguage
	}
	return &Localizer{catalog: catalog, kv: kv, lang: lang}
}

// Catalog returns the underlying catalog.
func (l *Localizer) Catalog() *Catalog { return l.catalog }

// Language returns the active language code.
func (l *Localizer) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// Load restores the persisted language preference when one is stored and
// the catalog has a dictionary for it.
func (l *Localizer) Load(ctx context.Context) error {
	if l.kv == nil {
		return nil
	}
	data, err := l.kv.Get(ctx, store.KeyLanguage)
	if err != nil {
		return eris.Wrap(err, "i18n: load language")
	}
	code := string(data)
	if code == "" {
		return nil
	}
	if !l.catalog.Has(code) {
		zap.L().Warn("ignoring persisted language without dictionary", zap.String("language", code))
		return nil
	}
	l.mu.Lock()
	l.lang = code
	l.mu.Unlock()
	return nil
}

// SetLanguage switches the active language and persists it. The code is not
// checked against the catalog; keys fall back to English. The switch takes
// effect even when persisting fails.
func (l *Localizer) SetLanguage(ctx context.Context, code string) error {
	l.mu.Lock()
	l.lang = code
	l.mu.Unlock()

	if l.kv == nil {
		return nil
	}
	if err := l.kv.Set(ctx, store.KeyLanguage, []byte(code)); err != nil {
		return eris.Wrap(err, "i18n: persist language")
	}
	return nil
}

// Translate resolves key in the active language.
func (l *Localizer) Translate(key string, subs map[string]any) string {
	return l.TranslateIn(l.Language(), key, subs)
}

// TranslateIn resolves key in lang, falling back to English and then to the
// key itself. Each {{name}} with a matching entry in subs is replaced;
// placeholders without one are left as written.
func (l *Localizer) TranslateIn(lang, key string, subs map[string]any) string {
	s, ok := l.catalog.Lookup(lang, key)
	if !ok {
		s, ok = l.catalog.Lookup(SourceLanguage, key)
	}
	if !ok {
		s = key
	}
	return Substitute(s, subs)
}

// Substitute replaces each literal {{name}} token whose name is a key of subs
// with fmt.Sprint of its value. Other tokens are left as written.
func Substitute(s string, subs map[string]any) string {
	if len(subs) == 0 {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := subs[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// Placeholders returns the set of placeholder names in s.
func Placeholders(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
		out[m[1]] = struct{}{}
	}
	return out
}

// AddTranslations merges mapping into lang.
func (l *Localizer) AddTranslations(lang string, mapping map[string]string) {
	l.catalog.Merge(lang, mapping)
}

// MissingKeys returns the sorted English keys lang still lacks.
func (l *Localizer) MissingKeys(lang string) []string {
	return l.catalog.Missing(lang)
}
