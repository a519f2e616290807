package flow

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"

	"github.com/sells-group/herb-harvest/internal/model"
)

// HarvestStore is the subset of *harvest.Store the flows use.
type HarvestStore interface {
	Get(ctx context.Context, id string) (*model.Harvest, error)
	Exists(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, h model.Harvest) error
	Update(ctx context.Context, id string, h model.Harvest) error
}

const idLayout = "2006-01-02T15:04:05.000Z"

// guard admits one submission per key at a time.
type guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func (g *guard) acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy == nil {
		g.busy = make(map[string]struct{})
	}
	if _, ok := g.busy[key]; ok {
		return nil, ErrInFlight
	}
	g.busy[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.busy, key)
		g.mu.Unlock()
	}, nil
}

// AddFlow records new harvests.
type AddFlow struct {
	store    HarvestStore
	verifier Verifier
	validate *validator.Validate
	now      func() time.Time
	guard    guard
}

// NewAddFlow creates an AddFlow.
func NewAddFlow(store HarvestStore, verifier Verifier) *AddFlow {
	return &AddFlow{store: store, verifier: verifier, validate: newValidator(), now: time.Now}
}

// Submit validates the form, verifies the photo and stores the harvest. A
// photo judged not genuine returns *RejectedError and nothing is written.
func (f *AddFlow) Submit(ctx context.Context, form HarvestForm) (*model.Harvest, error) {
	release, err := f.guard.acquire("add")
	if err != nil {
		return nil, err
	}
	defer release()

	if err := validateForm(f.validate, &form, true); err != nil {
		return nil, err
	}
	gps, _, _ := ParseLocation(form.Location)

	dataURI, err := PhotoToDataURI(form.Photo)
	if err != nil {
		return nil, err
	}
	if err := verify(ctx, f.verifier, form.HerbName, dataURI); err != nil {
		return nil, err
	}

	now := f.now().UTC()
	id, err := f.freshID(ctx, now)
	if err != nil {
		return nil, err
	}

	h := model.Harvest{
		ID:        id,
		HerbName:  form.HerbName,
		Quantity:  form.Quantity,
		Unit:      form.Unit,
		Date:      now,
		PhotoURL:  dataURI,
		PhotoHint: photoHint(form.HerbName),
		GPS:       gps,
	}
	if err := f.store.Add(ctx, h); err != nil {
		return nil, eris.Wrap(err, "flow: add harvest")
	}
	return &h, nil
}

// freshID formats t as an ISO-8601 millisecond timestamp, moving forward one
// millisecond until the id is unused.
func (f *AddFlow) freshID(ctx context.Context, t time.Time) (string, error) {
	for {
		id := t.Format(idLayout)
		exists, err := f.store.Exists(ctx, id)
		if err != nil {
			return "", eris.Wrap(err, "flow: check id")
		}
		if !exists {
			return id, nil
		}
		t = t.Add(time.Millisecond)
	}
}

// EditFlow updates existing harvests.
type EditFlow struct {
	store    HarvestStore
	verifier Verifier
	validate *validator.Validate
	guard    guard
}

// NewEditFlow creates an EditFlow.
func NewEditFlow(store HarvestStore, verifier Verifier) *EditFlow {
	return &EditFlow{store: store, verifier: verifier, validate: newValidator()}
}

// Load returns the harvest being edited.
func (f *EditFlow) Load(ctx context.Context, id string) (*model.Harvest, error) {
	return f.store.Get(ctx, id)
}

// Submit applies form to harvest id. A new photo is verified before
// anything is written; without one the existing photo is kept. The id and
// date never change.
func (f *EditFlow) Submit(ctx context.Context, id string, form HarvestForm) (*model.Harvest, error) {
	release, err := f.guard.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := f.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateForm(f.validate, &form, false); err != nil {
		return nil, err
	}

	updated := *existing
	updated.HerbName = form.HerbName
	updated.Quantity = form.Quantity
	updated.Unit = form.Unit
	if gps, ok, _ := ParseLocation(form.Location); ok {
		updated.GPS = gps
	}

	if form.Photo != nil && len(form.Photo.Data) > 0 {
		dataURI, err := PhotoToDataURI(form.Photo)
		if err != nil {
			return nil, err
		}
		if err := verify(ctx, f.verifier, form.HerbName, dataURI); err != nil {
			return nil, err
		}
		updated.PhotoURL = dataURI
		updated.PhotoHint = photoHint(form.HerbName)
	}

	if err := f.store.Update(ctx, id, updated); err != nil {
		return nil, eris.Wrap(err, "flow: update harvest")
	}
	return &updated, nil
}
