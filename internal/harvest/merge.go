package harvest

import (
	"slices"

	"github.com/sells-group/herb-harvest/internal/model"
)

// Merge combines persisted and seed harvests into the view shown to users:
// one record per id, persisted records winning over seed records, newest
// first. Records with equal dates keep persisted-then-seed input order.
func Merge(persisted, seed []model.Harvest) []model.Harvest {
	seen := make(map[string]struct{}, len(persisted)+len(seed))
	out := make([]model.Harvest, 0, len(persisted)+len(seed))

	for _, src := range [][]model.Harvest{persisted, seed} {
		for _, h := range src {
			if _, ok := seen[h.ID]; ok {
				continue
			}
			seen[h.ID] = struct{}{}
			out = append(out, h)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Harvest) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

func find(list []model.Harvest, id string) int {
	return slices.IndexFunc(list, func(h model.Harvest) bool { return h.ID == id })
}
