// Package harvest implements the harvest log: a persisted list of
// user-authored records layered over a fixed seed list.
package harvest

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/model"
	"github.com/sells-group/herb-harvest/internal/store"
)

// ErrNotFound is returned when an id exists in neither the persisted nor the
// seed list.
var ErrNotFound = errors.New("harvest not found")

// Store reads and writes harvests. The whole persisted list is rewritten on
// every Add and Update.
type Store struct {
	kv   store.Store
	seed []model.Harvest

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewStore returns a Store over kv. A nil seed means no built-in records.
func NewStore(kv store.Store, seed []model.Harvest) *Store {
	return &Store{kv: kv, seed: seed}
}

// List returns the merged view, newest first.
func (s *Store) List(ctx context.Context) ([]model.Harvest, error) {
	persisted, err := s.persisted(ctx)
	if err != nil {
		return nil, err
	}
	return Merge(persisted, s.seed), nil
}

// Get returns one harvest from the merged view.
func (s *Store) Get(ctx context.Context, id string) (*model.Harvest, error) {
	persisted, err := s.persisted(ctx)
	if err != nil {
		return nil, err
	}
	if i := find(persisted, id); i >= 0 {
		h := persisted[i]
		return &h, nil
	}
	if i := find(s.seed, id); i >= 0 {
		h := s.seed[i]
		return &h, nil
	}
	return nil, eris.Wrapf(ErrNotFound, "harvest: get %s", id)
}

// Exists reports whether id is taken in the merged view.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Add prepends h to the persisted list.
func (s *Store) Add(ctx context.Context, h model.Harvest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	persisted, err := s.persisted(ctx)
	if err != nil {
		return err
	}
	next := make([]model.Harvest, 0, len(persisted)+1)
	next = append(next, h)
	next = append(next, persisted...)

	if err := s.write(ctx, next); err != nil {
		return err
	}
	zap.L().Info("harvest added", zap.String("id", h.ID), zap.String("herb", h.HerbName))
	return nil
}

// Update replaces the persisted record with the given id. A record that only
// exists in the seed list is appended to the persisted list, after which the
// persisted copy shadows the seed copy.
func (s *Store) Update(ctx context.Context, id string, h model.Harvest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = id
	persisted, err := s.persisted(ctx)
	if err != nil {
		return err
	}

	promoted := false
	if i := find(persisted, id); i >= 0 {
		persisted[i] = h
	} else if find(s.seed, id) >= 0 {
		persisted = append(persisted, h)
		promoted = true
	} else {
		return eris.Wrapf(ErrNotFound, "harvest: update %s", id)
	}

	if err := s.write(ctx, persisted); err != nil {
		return err
	}
	zap.L().Info("harvest updated", zap.String("id", id), zap.Bool("promoted", promoted))
	return nil
}

func (s *Store) persisted(ctx context.Context) ([]model.Harvest, error) {
	raw, err := s.kv.Get(ctx, store.KeyHarvests)
	if err != nil {
		return nil, eris.Wrap(err, "harvest: read persisted")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var list []model.Harvest
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, eris.Wrap(err, "harvest: decode persisted")
	}
	return list, nil
}

func (s *Store) write(ctx context.Context, list []model.Harvest) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return eris.Wrap(err, "harvest: encode persisted")
	}
	return eris.Wrap(s.kv.Set(ctx, store.KeyHarvests, raw), "harvest: write persisted")
}
