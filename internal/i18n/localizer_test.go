package i18n

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/herb-harvest/internal/store"
)

func testCatalog() *Catalog {
	c := NewCatalog()
	c.Merge("en", map[string]string{
		"Cancel":        "Cancel",
		"Harvest Saved": "{{quantity}} {{unit}} of {{herbName}} saved",
		"Only English":  "Only English",
	})
	c.Merge("hi", map[string]string{
		"Cancel":        "रद्द करें",
		"Harvest Saved": "{{herbName}} की {{quantity}} {{unit}} सहेजी गई",
		"Only English":  "",
	})
	return c
}

func TestTranslate_FallbackChain(t *testing.T) {
	l := NewLocalizer(testCatalog(), nil, "hi")

	assert.Equal(t, "रद्द करें", l.Translate("Cancel", nil))
	assert.Equal(t, "Only English", l.Translate("Only English", nil))
	assert.Equal(t, "Not A Key", l.Translate("Not A Key", nil))

	l = NewLocalizer(testCatalog(), nil, "ta")
	assert.Equal(t, "Cancel", l.Translate("Cancel", nil))
}

func TestTranslate_Substitution(t *testing.T) {
	l := NewLocalizer(testCatalog(), nil, "en")

	got := l.Translate("Harvest Saved", map[string]any{"quantity": 2.5, "unit": "kg", "herbName": "Neem"})
	assert.Equal(t, "2.5 kg of Neem saved", got)

	got = l.Translate("Harvest Saved", map[string]any{"quantity": 3})
	assert.Equal(t, "3 {{unit}} of {{herbName}} saved", got)

	assert.Equal(t, "{{quantity}} {{unit}} of {{herbName}} saved", l.Translate("Harvest Saved", nil))
}

func TestSubstitute_UnknownKeyWithPlaceholders(t *testing.T) {
	l := NewLocalizer(testCatalog(), nil, "hi")
	assert.Equal(t, "Hello Asha, {{missing}}", l.Translate("Hello {{name}}, {{missing}}", map[string]any{"name": "Asha"}))
}

func TestSubstitute_LiteralNames(t *testing.T) {
	subs := map[string]any{"herb-name": "Neem", "date": "today"}
	assert.Equal(t, "a Neem b", Substitute("a {{herb-name}} b", subs))
	assert.Equal(t, "a {{ date }} b", Substitute("a {{ date }} b", subs))
	assert.Equal(t, "today {{}} {{x}}", Substitute("{{date}} {{}} {{x}}", subs))
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{count}} new for {{languageName}} and {{count}}")
	assert.Equal(t, map[string]struct{}{"count": {}, "languageName": {}}, got)
	assert.Equal(t, map[string]struct{}{"herb-name": {}, " date ": {}}, Placeholders("{{herb-name}} on {{ date }}"))
	assert.Empty(t, Placeholders("plain"))
}

func TestSetLanguage_PersistsAndLoads(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	cat := testCatalog()

	l := NewLocalizer(cat, kv, "en")
	require.NoError(t, l.SetLanguage(ctx, "hi"))
	assert.Equal(t, "hi", l.Language())

	raw, err := kv.Get(ctx, store.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(raw))

	restored := NewLocalizer(cat, kv, "en")
	require.NoError(t, restored.Load(ctx))
	assert.Equal(t, "hi", restored.Language())
}

func TestSetLanguage_NoValidation(t *testing.T) {
	l := NewLocalizer(testCatalog(), store.NewMemory(), "en")
	require.NoError(t, l.SetLanguage(context.Background(), "xx"))
	assert.Equal(t, "xx", l.Language())
	assert.Equal(t, "Cancel", l.Translate("Cancel", nil))
}

func TestLoad_IgnoresUnknownDictionary(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, store.KeyLanguage, []byte("xx")))

	l := NewLocalizer(testCatalog(), kv, "en")
	require.NoError(t, l.Load(ctx))
	assert.Equal(t, "en", l.Language())
}

func TestLoad_NothingPersisted(t *testing.T) {
	l := NewLocalizer(testCatalog(), store.NewMemory(), "hi")
	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, "hi", l.Language())
}

type failingKV struct{ *store.MemoryStore }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("read-only") }

func TestSetLanguage_StorageFailureStillSwitches(t *testing.T) {
	l := NewLocalizer(testCatalog(), failingKV{store.NewMemory()}, "en")

	err := l.SetLanguage(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, "hi", l.Language())
}

func TestAddTranslations_ResolvesImmediately(t *testing.T) {
	l := NewLocalizer(testCatalog(), nil, "hi")
	l.AddTranslations("hi", map[string]string{"Only English": "केवल अंग्रेज़ी"})

	assert.Equal(t, "केवल अंग्रेज़ी", l.Translate("Only English", nil))
	assert.Empty(t, l.MissingKeys("hi"))
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.NotEmpty(t, langs)
	assert.Equal(t, "en", langs[0].Code)

	hi, ok := LookupLanguage("hi")
	require.True(t, ok)
	assert.Equal(t, "Hindi", hi.Name)
	assert.NotEmpty(t, hi.NativeName)

	_, ok = LookupLanguage("fr")
	assert.False(t, ok)

	assert.Equal(t, "Tamil", EnglishName("ta"))
	assert.Equal(t, "!!", EnglishName("!!"))
}
