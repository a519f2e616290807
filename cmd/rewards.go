package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show the rewards balance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, false)
		if err != nil {
			return err
		}
		defer env.Close()

		list, err := env.Harvests.List(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d (%d harvests)\n",
			env.Localizer.Translate("Your Rewards Balance", nil), cfg.Farmer.RewardsBalance, len(list))
		return nil
	},
}

var rewardsRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get AI suggestions for earning more points",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, true)
		if err != nil {
			return err
		}
		defer env.Close()

		t := env.Localizer.Translate
		out, err := env.Rewards.Recommend(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", t("Could not get recommendations at this time.", nil), err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, t("Boost Your Points", nil))
		for _, a := range out.RecommendedActions {
			fmt.Fprintf(w, "  - %s\n", a)
		}
		fmt.Fprintln(w, t("Keep up the great work!", nil))
		return nil
	},
}

func init() {
	rewardsCmd.AddCommand(rewardsRecommendCmd)
	rootCmd.AddCommand(rewardsCmd)
}
