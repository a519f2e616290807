// Package server exposes the harvest, localization and rewards flows over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/flow"
	"github.com/sells-group/herb-harvest/internal/i18n"
	"github.com/sells-group/herb-harvest/internal/locate"
	"github.com/sells-group/herb-harvest/internal/metrics"
	"github.com/sells-group/herb-harvest/internal/model"
	"github.com/sells-group/herb-harvest/internal/rewards"
)

// HarvestReader reads the merged harvest view.
type HarvestReader interface {
	List(ctx context.Context) ([]model.Harvest, error)
	Get(ctx context.Context, id string) (*model.Harvest, error)
}

// HarvestAdder submits the add-harvest form.
type HarvestAdder interface {
	Submit(ctx context.Context, form flow.HarvestForm) (*model.Harvest, error)
}

// HarvestEditor submits the edit-harvest form.
type HarvestEditor interface {
	Submit(ctx context.Context, id string, form flow.HarvestForm) (*model.Harvest, error)
}

// TranslationFiller completes missing translations.
type TranslationFiller interface {
	Fill(ctx context.Context, code string) (*i18n.FillResult, error)
}

// RewardsService serves the rewards page.
type RewardsService interface {
	Summary(ctx context.Context) (*rewards.Summary, error)
	Recommend(ctx context.Context) (*ai.RecommendOutput, error)
}

// Deps are the services the handlers call.
type Deps struct {
	Harvests  HarvestReader
	Add       HarvestAdder
	Edit      HarvestEditor
	Localizer *i18n.Localizer
	Filler    TranslationFiller
	Rewards   RewardsService
	Locator   locate.Locator
}

// Options configures the HTTP listener.
type Options struct {
	Port           int
	AllowedOrigins []string
	MaxUploadBytes int64
}

// Server is the HTTP API.
type Server struct {
	deps       Deps
	maxUpload  int64
	httpServer *http.Server
}

// New builds the router and server.
func New(deps Deps, opts Options) *Server {
	s := &Server{deps: deps, maxUpload: opts.MaxUploadBytes}
	if s.maxUpload <= 0 {
		s.maxUpload = 10 << 20
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/harvests", func(r chi.Router) {
			r.Get("/", s.handleListHarvests)
			r.Post("/", s.handleAddHarvest)
			r.Get("/{id}", s.handleGetHarvest)
			r.Put("/{id}", s.handleEditHarvest)
		})
		r.Post("/location", s.handleLocate)

		r.Get("/rewards", s.handleRewardsSummary)
		r.Post("/rewards/recommendations", s.handleRecommend)

		r.Route("/i18n", func(r chi.Router) {
			r.Get("/languages", s.handleLanguages)
			r.Get("/language", s.handleGetLanguage)
			r.Put("/language", s.handleSetLanguage)
			r.Get("/translate", s.handleTranslate)
			r.Get("/{lang}/missing", s.handleMissing)
			r.Post("/{lang}/translate", s.handleFill)
		})
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	return nil
}
