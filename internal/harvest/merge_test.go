package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/herb-harvest/internal/model"
)

func at(day int) time.Time {
	return time.Date(2024, 7, day, 12, 0, 0, 0, time.UTC)
}

func TestMerge_PersistedWins(t *testing.T) {
	seed := []model.Harvest{{ID: "1", HerbName: "Neem", Quantity: 1, Date: at(1)}}
	persisted := []model.Harvest{{ID: "1", HerbName: "Neem", Quantity: 9, Date: at(1)}}

	got := Merge(persisted, seed)
	assert.Len(t, got, 1)
	assert.InDelta(t, 9.0, got[0].Quantity, 0.0001)
}

func TestMerge_Idempotent(t *testing.T) {
	seed := Seed()
	persisted := []model.Harvest{
		{ID: "2", HerbName: "Tulsi", Quantity: 4, Date: at(19)},
		{ID: "x", HerbName: "Mint", Quantity: 1, Date: at(25)},
	}

	first := Merge(persisted, seed)
	second := Merge(persisted, seed)
	assert.Equal(t, first, second)
	assert.Len(t, first, 6)

	ids := map[string]bool{}
	for _, h := range first {
		assert.False(t, ids[h.ID], "duplicate id %s", h.ID)
		ids[h.ID] = true
	}
}

func TestMerge_SortedNewestFirst(t *testing.T) {
	persisted := []model.Harvest{
		{ID: "a", Date: at(3)},
		{ID: "b", Date: at(30)},
	}
	got := Merge(persisted, Seed())

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.After(got[i-1].Date), "index %d is newer than %d", i, i-1)
	}
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[len(got)-1].ID)
}

func TestMerge_EqualDatesKeepInputOrder(t *testing.T) {
	persisted := []model.Harvest{{ID: "p", Date: at(5)}}
	seed := []model.Harvest{{ID: "s", Date: at(5)}}

	got := Merge(persisted, seed)
	assert.Equal(t, "p", got[0].ID)
	assert.Equal(t, "s", got[1].ID)
}

func TestMerge_DuplicateWithinPersistedKeepsFirst(t *testing.T) {
	persisted := []model.Harvest{
		{ID: "dup", Quantity: 1, Date: at(5)},
		{ID: "dup", Quantity: 2, Date: at(6)},
	}
	got := Merge(persisted, nil)
	assert.Len(t, got, 1)
	assert.InDelta(t, 1.0, got[0].Quantity, 0.0001)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}
