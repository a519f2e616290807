package ai

import (
	"context"
	"fmt"
)

// RecommendInput summarizes a farmer's activity.
type RecommendInput struct {
	RecentHarvestsCount       int     `json:"recentHarvestsCount" validate:"gte=0"`
	AverageQuantityPerHarvest float64 `json:"averageQuantityPerHarvest" validate:"gte=0"`
	RewardsBalance            int     `json:"rewardsBalance" validate:"gte=0"`
}

// RecommendOutput holds the suggested actions.
type RecommendOutput struct {
	RecommendedActions []string `json:"recommendedActions"`
}

const recommendPrompt = `You are an AI assistant helping farmers earn more rewards points in an application.

Based on the farmer's recent activity and current rewards balance, recommend 2-3 specific actions they can take to increase their rewards points.

Consider actions such as:
- Recording more harvests
- Increasing the quantity of herbs harvested per harvest
- Sharing the application with other farmers
- Participating in community events
- Providing feedback on the application

Recent Harvests Count: %d
Average Quantity Per Harvest: %v
Rewards Balance: %d

Recommended Actions:`

// RenderRecommendPrompt renders the recommendation prompt for in.
func RenderRecommendPrompt(in RecommendInput) string {
	return fmt.Sprintf(recommendPrompt, in.RecentHarvestsCount, in.AverageQuantityPerHarvest, in.RewardsBalance)
}

// RecommendRewardsActions asks the model for ways to earn more points.
func (c *Client) RecommendRewardsActions(ctx context.Context, in RecommendInput) (*RecommendOutput, error) {
	if err := c.check(FlowRecommend, in); err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, CompletionRequest{
		Flow:   FlowRecommend,
		Prompt: RenderRecommendPrompt(in),
		Schema: recommendSchema,
	})
	if err != nil {
		return nil, err
	}

	out, err := ParseRecommendOutput(raw)
	c.parsed(FlowRecommend, err)
	return out, err
}
