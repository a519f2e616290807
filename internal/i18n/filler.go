package i18n

import (
	"context"
	"errors"
	"maps"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/metrics"
)

// ErrUnsupportedLanguage is returned by Fill for codes outside Languages().
var ErrUnsupportedLanguage = errors.New("i18n: unsupported language")

// Translator is the subset of *ai.Client used by Filler.
type Translator interface {
	TranslateBatch(ctx context.Context, in ai.TranslateInput) (*ai.TranslateOutput, error)
}

// FillResult reports what a Fill run changed.
type FillResult struct {
	Language     string   `json:"language"`
	LanguageName string   `json:"languageName"`
	UpToDate     bool     `json:"upToDate"`
	Requested    int      `json:"requested"`
	Added        int      `json:"added"`
	Skipped      []string `json:"skipped,omitempty"`
}

// Filler completes missing translations for a language with the model.
type Filler struct {
	loc         *Localizer
	translator  Translator
	batchSize   int
	concurrency int
}

// NewFiller creates a Filler. batchSize and concurrency default to 40 and 2.
func NewFiller(loc *Localizer, t Translator, batchSize, concurrency int) *Filler {
	if batchSize <= 0 {
		batchSize = 40
	}
	if concurrency <= 0 {
		concurrency = 2
	}
	return &Filler{loc: loc, translator: t, batchSize: batchSize, concurrency: concurrency}
}

// Fill translates every missing key for code. Nothing is merged unless all
// batches succeed. Only requested keys are merged, and a translation whose
// placeholders differ from its source is skipped.
func (f *Filler) Fill(ctx context.Context, code string) (*FillResult, error) {
	lang, ok := LookupLanguage(code)
	if !ok {
		return nil, eris.Wrapf(ErrUnsupportedLanguage, "i18n: fill %s", code)
	}

	res := &FillResult{Language: code, LanguageName: lang.Name}
	missing := f.loc.MissingKeys(code)
	if len(missing) == 0 {
		res.UpToDate = true
		return res, nil
	}
	res.Requested = len(missing)

	chunks := chunk(missing, f.batchSize)
	outputs := make([]map[string]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, texts := range chunks {
		g.Go(func() error {
			out, err := f.translator.TranslateBatch(gctx, ai.TranslateInput{
				Texts:          texts,
				TargetLanguage: lang.Name,
			})
			if err != nil {
				return eris.Wrapf(err, "i18n: translate batch %d/%d", i+1, len(chunks))
			}
			outputs[i] = out.Translations
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(missing))
	for i, texts := range chunks {
		for _, key := range texts {
			v, ok := outputs[i][key]
			if !ok || v == "" {
				continue
			}
			if !samePlaceholders(key, v) {
				res.Skipped = append(res.Skipped, key)
				continue
			}
			merged[key] = v
		}
	}
	sort.Strings(res.Skipped)

	f.loc.AddTranslations(code, merged)
	res.Added = len(merged)
	metrics.TranslationsAdded.WithLabelValues(code).Add(float64(res.Added))

	zap.L().Info("translations merged",
		zap.String("language", code),
		zap.Int("requested", res.Requested),
		zap.Int("added", res.Added),
		zap.Strings("skipped", res.Skipped),
	)
	return res, nil
}

func chunk(keys []string, size int) [][]string {
	var out [][]string
	for len(keys) > size {
		out = append(out, keys[:size:size])
		keys = keys[size:]
	}
	if len(keys) > 0 {
		out = append(out, keys)
	}
	return out
}

func samePlaceholders(src, dst string) bool {
	return maps.Equal(Placeholders(src), Placeholders(dst))
}
