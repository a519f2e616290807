package rewards

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/harvest"
	"github.com/sells-group/herb-harvest/internal/model"
	"github.com/sells-group/herb-harvest/internal/store"
)

func TestSummarize(t *testing.T) {
	in := Summarize(harvest.Seed(), 1250)
	assert.Equal(t, 5, in.RecentHarvestsCount)
	assert.InDelta(t, 1.6, in.AverageQuantityPerHarvest, 1e-9)
	assert.Equal(t, 1250, in.RewardsBalance)

	empty := Summarize(nil, 10)
	assert.Zero(t, empty.RecentHarvestsCount)
	assert.Zero(t, empty.AverageQuantityPerHarvest)
}

type fakeRecommender struct {
	got ai.RecommendInput
	err error
}

func (f *fakeRecommender) RecommendRewardsActions(_ context.Context, in ai.RecommendInput) (*ai.RecommendOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &ai.RecommendOutput{RecommendedActions: []string{"Record more harvests"}}, nil
}

func TestService_Recommend(t *testing.T) {
	hs := harvest.NewStore(store.NewMemory(), harvest.Seed())
	rec := &fakeRecommender{}
	svc := NewService(hs, rec, model.Farmer{Name: "Jane Farmer", RewardsBalance: 1250})

	out, err := svc.Recommend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Record more harvests"}, out.RecommendedActions)
	assert.Equal(t, 5, rec.got.RecentHarvestsCount)
	assert.Equal(t, 1250, rec.got.RewardsBalance)
}

func TestService_RecommendError(t *testing.T) {
	hs := harvest.NewStore(store.NewMemory(), nil)
	svc := NewService(hs, &fakeRecommender{err: errors.New("quota")}, model.Farmer{})

	_, err := svc.Recommend(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestService_Summary(t *testing.T) {
	hs := harvest.NewStore(store.NewMemory(), harvest.Seed())
	farmer := model.Farmer{Name: "Jane Farmer", Email: "farmer@example.com", RewardsBalance: 1250}
	svc := NewService(hs, &fakeRecommender{}, farmer)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, farmer, s.Farmer)
	assert.Equal(t, 5, s.RecentHarvestsCount)
	assert.InDelta(t, 1.6, s.AverageQuantity, 1e-9)
}
