package i18n

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/herb-harvest/internal/ai"
)

type fakeTranslator struct {
	mu     sync.Mutex
	inputs []ai.TranslateInput
	fn     func(in ai.TranslateInput) (*ai.TranslateOutput, error)
}

func (f *fakeTranslator) TranslateBatch(_ context.Context, in ai.TranslateInput) (*ai.TranslateOutput, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()
	return f.fn(in)
}

func prefixAll(prefix string) func(ai.TranslateInput) (*ai.TranslateOutput, error) {
	return func(in ai.TranslateInput) (*ai.TranslateOutput, error) {
		out := make(map[string]string, len(in.Texts))
		for _, t := range in.Texts {
			out[t] = prefix + t
		}
		return &ai.TranslateOutput{Translations: out}, nil
	}
}

func fillerCatalog(n int) *Catalog {
	c := NewCatalog()
	en := make(map[string]string, n)
	for i := range n {
		k := fmt.Sprintf("key %02d", i)
		en[k] = k
	}
	c.Merge("en", en)
	return c
}

func TestFill_ChunksAndMerges(t *testing.T) {
	loc := NewLocalizer(fillerCatalog(5), nil, "en")
	ft := &fakeTranslator{fn: prefixAll("hi:")}
	f := NewFiller(loc, ft, 2, 2)

	res, err := f.Fill(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, 5, res.Requested)
	assert.Equal(t, 5, res.Added)
	assert.Equal(t, "Hindi", res.LanguageName)
	assert.False(t, res.UpToDate)
	assert.Len(t, ft.inputs, 3)
	for _, in := range ft.inputs {
		assert.Equal(t, "Hindi", in.TargetLanguage)
		assert.LessOrEqual(t, len(in.Texts), 2)
	}
	assert.Empty(t, loc.MissingKeys("hi"))
	assert.Equal(t, "hi:key 03", loc.TranslateIn("hi", "key 03", nil))
}

func TestFill_UpToDate(t *testing.T) {
	loc := NewLocalizer(fillerCatalog(1), nil, "en")
	loc.AddTranslations("hi", map[string]string{"key 00": "कुंजी"})
	ft := &fakeTranslator{fn: prefixAll("x")}

	res, err := NewFiller(loc, ft, 0, 0).Fill(context.Background(), "hi")
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Empty(t, ft.inputs)
}

func TestFill_AllOrNothing(t *testing.T) {
	loc := NewLocalizer(fillerCatalog(4), nil, "en")
	ft := &fakeTranslator{fn: func(in ai.TranslateInput) (*ai.TranslateOutput, error) {
		if in.Texts[0] == "key 02" {
			return nil, errors.New("model unavailable")
		}
		return prefixAll("ta:")(in)
	}}

	_, err := NewFiller(loc, ft, 2, 1).Fill(context.Background(), "ta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
	assert.Len(t, loc.MissingKeys("ta"), 4)
}

func TestFill_OnlyRequestedKeysAndPlaceholderCheck(t *testing.T) {
	c := NewCatalog()
	c.Merge("en", map[string]string{
		"{{count}} items": "{{count}} items",
		"Cancel":          "Cancel",
	})
	loc := NewLocalizer(c, nil, "en")
	ft := &fakeTranslator{fn: func(ai.TranslateInput) (*ai.TranslateOutput, error) {
		return &ai.TranslateOutput{Translations: map[string]string{
			"{{count}} items": "{{संख्या}} वस्तुएं",
			"Cancel":          "रद्द करें",
			"Extra":           "अतिरिक्त",
		}}, nil
	}}

	res, err := NewFiller(loc, ft, 10, 1).Fill(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []string{"{{count}} items"}, res.Skipped)
	assert.Equal(t, "रद्द करें", loc.TranslateIn("hi", "Cancel", nil))
	assert.NotContains(t, loc.Catalog().Keys("hi"), "Extra")
	assert.Equal(t, []string{"{{count}} items"}, loc.MissingKeys("hi"))
}

func TestFill_UnsupportedLanguage(t *testing.T) {
	loc := NewLocalizer(fillerCatalog(1), nil, "en")
	_, err := NewFiller(loc, &fakeTranslator{fn: prefixAll("")}, 1, 1).Fill(context.Background(), "fr")
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunk([]string{"a", "b", "c"}, 2))
	assert.Nil(t, chunk(nil, 2))
}
