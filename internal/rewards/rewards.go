// Package rewards summarizes harvest activity and asks the model how the
// farmer can earn more points.
package rewards

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/herb-harvest/internal/ai"
	"github.com/sells-group/herb-harvest/internal/model"
)

// Summarize builds the recommendation input from harvests. The average is 0
// when there are none.
func Summarize(harvests []model.Harvest, balance int) ai.RecommendInput {
	in := ai.RecommendInput{RecentHarvestsCount: len(harvests), RewardsBalance: balance}
	if len(harvests) == 0 {
		return in
	}
	var total float64
	for _, h := range harvests {
		total += h.Quantity
	}
	in.AverageQuantityPerHarvest = total / float64(len(harvests))
	return in
}

// Lister lists harvests.
type Lister interface {
	List(ctx context.Context) ([]model.Harvest, error)
}

// Recommender is the subset of *ai.Client used by Service.
type Recommender interface {
	RecommendRewardsActions(ctx context.Context, in ai.RecommendInput) (*ai.RecommendOutput, error)
}

// Summary is the rewards page state.
type Summary struct {
	Farmer              model.Farmer `json:"farmer"`
	RecentHarvestsCount int          `json:"recentHarvestsCount"`
	AverageQuantity     float64      `json:"averageQuantityPerHarvest"`
	RewardsBalance      int          `json:"rewardsBalance"`
}

// Service serves the rewards page.
type Service struct {
	harvests    Lister
	recommender Recommender
	farmer      model.Farmer
}

// NewService creates a Service for farmer.
func NewService(harvests Lister, recommender Recommender, farmer model.Farmer) *Service {
	return &Service{harvests: harvests, recommender: recommender, farmer: farmer}
}

// Summary returns the farmer's balance and harvest statistics.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	in, err := s.input(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Farmer:              s.farmer,
		RecentHarvestsCount: in.RecentHarvestsCount,
		AverageQuantity:     in.AverageQuantityPerHarvest,
		RewardsBalance:      in.RewardsBalance,
	}, nil
}

// Recommend returns model-suggested actions for earning more points.
func (s *Service) Recommend(ctx context.Context) (*ai.RecommendOutput, error) {
	in, err := s.input(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.recommender.RecommendRewardsActions(ctx, in)
	if err != nil {
		return nil, eris.Wrap(err, "rewards: recommend")
	}
	return out, nil
}

func (s *Service) input(ctx context.Context) (ai.RecommendInput, error) {
	list, err := s.harvests.List(ctx)
	if err != nil {
		return ai.RecommendInput{}, eris.Wrap(err, "rewards: list harvests")
	}
	return Summarize(list, s.farmer.RewardsBalance), nil
}
