// Package i18n holds the translation catalog, the active-language
// localizer, and the AI-backed filler that completes missing translations.
package i18n

import (
	"embed"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// SourceLanguage is the authoritative key set.
const SourceLanguage = "en"

//go:embed bundle/*.yaml
var bundles embed.FS

// Catalog maps language code to a dictionary of English key to localized
// string. Safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	dicts map[string]map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{dicts: make(map[string]map[string]string)}
}

// LoadCatalog returns a catalog seeded from the embedded bundles. Each
// bundle/<code>.yaml file becomes the dictionary for <code>.
func LoadCatalog() (*Catalog, error) {
	entries, err := bundles.ReadDir("bundle")
	if err != nil {
		return nil, eris.Wrap(err, "i18n: read bundles")
	}

	c := NewCatalog()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		data, err := bundles.ReadFile(path.Join("bundle", name))
		if err != nil {
			return nil, eris.Wrapf(err, "i18n: read bundle %s", name)
		}
		dict := make(map[string]string)
		if err := yaml.Unmarshal(data, &dict); err != nil {
			return nil, eris.Wrapf(err, "i18n: parse bundle %s", name)
		}
		c.Merge(strings.TrimSuffix(name, ".yaml"), dict)
	}

	if !c.Has(SourceLanguage) {
		return nil, eris.New("i18n: source language bundle missing")
	}
	return c, nil
}

// Lookup returns the non-empty value for key in lang.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.dicts[lang][key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Has reports whether lang has a dictionary.
func (c *Catalog) Has(lang string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.dicts[lang]
	return ok
}

// Merge shallow-merges mapping into lang's dictionary, creating it if needed.
func (c *Catalog) Merge(lang string, mapping map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	dict, ok := c.dicts[lang]
	if !ok {
		dict = make(map[string]string, len(mapping))
		c.dicts[lang] = dict
	}
	for k, v := range mapping {
		dict[k] = v
	}
}

// Keys returns the sorted keys of lang's dictionary.
func (c *Catalog) Keys(lang string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.dicts[lang]))
	for k := range c.dicts[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing returns the sorted source keys that lang lacks. A key is missing
// when absent, empty, or equal to the key itself.
func (c *Catalog) Missing(lang string) []string {
	if lang == SourceLanguage {
		return []string{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	dict := c.dicts[lang]
	missing := []string{}
	for k := range c.dicts[SourceLanguage] {
		if v, ok := dict[k]; !ok || v == "" || v == k {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// Languages returns the sorted codes that have a dictionary.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	codes := make([]string, 0, len(c.dicts))
	for code := range c.dicts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
