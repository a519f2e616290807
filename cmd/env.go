package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/flow"
	"github.com/sells-group/herb-harvest/internal/harvest"
	"github.com/sells-group/herb-harvest/internal/i18n"
	"github.com/sells-group/herb-harvest/internal/locate"
	"github.com/sells-group/herb-harvest/internal/model"
	"github.com/sells-group/herb-harvest/internal/resilience"
	"github.com/sells-group/herb-harvest/internal/rewards"
	"github.com/sells-group/herb-harvest/internal/store"
)

// appEnv holds the stores and flows shared by the commands. AI is nil when
// the command was initialized without a completion provider.
type appEnv struct {
	Store     store.Store
	Harvests  *harvest.Store
	Localizer *i18n.Localizer
	AI        *ai.Client
	Filler    *i18n.Filler
	Add       *flow.AddFlow
	Edit      *flow.EditFlow
	Rewards   *rewards.Service
	Locator   locate.Locator
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	return st, nil
}

func farmer() model.Farmer {
	return model.Farmer{
		Name:           cfg.Farmer.Name,
		Email:          cfg.Farmer.Email,
		RewardsBalance: cfg.Farmer.RewardsBalance,
	}
}

// initEnv opens and migrates the store, loads the catalog and restores the
// language preference. With withAI it also builds the completion client and
// the AI-backed flows. Callers should defer env.Close().
func initEnv(ctx context.Context, withAI bool) (*appEnv, error) {
	mode := "store"
	if withAI {
		mode = "ai"
	}
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	catalog, err := i18n.LoadCatalog()
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	loc := i18n.NewLocalizer(catalog, st, cfg.I18n.DefaultLanguage)
	if err := loc.Load(ctx); err != nil {
		zap.L().Warn("language preference not restored", zap.Error(err))
	}

	env := &appEnv{
		Store:     st,
		Harvests:  harvest.NewStore(st, harvest.Seed()),
		Localizer: loc,
		Locator: locate.NewSimulated(
			time.Duration(cfg.Locate.DelayMs)*time.Millisecond,
			model.GPS{Lat: cfg.Locate.RefLat, Lon: cfg.Locate.RefLon},
			cfg.Locate.JitterDeg,
		),
	}
	if !withAI {
		return env, nil
	}

	completer, err := ai.NewCompleter(ctx, ai.ProviderConfig{
		Provider:           cfg.AI.Provider,
		AnthropicKey:       cfg.Anthropic.Key,
		AnthropicModel:     cfg.Anthropic.Model,
		AnthropicMaxTokens: cfg.Anthropic.MaxTokens,
		GeminiKey:          cfg.Gemini.Key,
		GeminiModel:        cfg.Gemini.Model,
	})
	if err != nil {
		env.Close()
		return nil, err
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.AI.MaxAttempts
	env.AI = ai.NewClient(completer, ai.Options{
		Provider:          cfg.AI.Provider,
		Timeout:           time.Duration(cfg.AI.TimeoutSecs) * time.Second,
		RequestsPerSecond: cfg.AI.RequestsPerSecond,
		Retry:             retry,
	})

	verifier, err := flow.NewCachedVerifier(env.AI, cfg.AI.VerifyCacheSize)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.Add = flow.NewAddFlow(env.Harvests, verifier)
	env.Edit = flow.NewEditFlow(env.Harvests, verifier)
	env.Filler = i18n.NewFiller(loc, env.AI, cfg.I18n.BatchSize, cfg.I18n.Concurrency)
	env.Rewards = rewards.NewService(env.Harvests, env.AI, farmer())

	zap.L().Info("completion provider ready",
		zap.String("provider", cfg.AI.Provider),
		zap.Int("max_attempts", retry.MaxAttempts),
	)
	return env, nil
}
