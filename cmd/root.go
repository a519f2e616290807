package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sells-group/herb-harvest/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "herb-harvest",
	Short: "Medicinal herb harvest log with AI photo verification",
	Long:  "Records herb harvests with GPS and photo, verifies photos with a vision model, localizes the UI with AI translations, and suggests ways to earn rewards.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlagOverrides(cmd.Flags(), c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		zap.L().Debug("config loaded",
			zap.String("store_driver", cfg.Store.Driver),
			zap.String("ai_provider", cfg.AI.Provider),
			zap.String("language", cfg.I18n.DefaultLanguage),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// applyFlagOverrides copies explicitly set persistent flags over the loaded
// config. Unset flags leave file and environment values alone.
func applyFlagOverrides(flags *pflag.FlagSet, c *config.Config) {
	if flags.Changed("store") {
		c.Store.Driver, _ = flags.GetString("store")
	}
	if flags.Changed("db") {
		c.Store.DatabaseURL, _ = flags.GetString("db")
	}
	if flags.Changed("provider") {
		c.AI.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("lang") {
		c.I18n.DefaultLanguage, _ = flags.GetString("lang")
	}
	if flags.Changed("log-level") {
		c.Log.Level, _ = flags.GetString("log-level")
	}
}

func addPersistentFlags(pf *pflag.FlagSet) {
	pf.String("config", "", "config file (default ./config.yaml if present)")
	pf.String("store", "", "store driver: sqlite, postgres or memory")
	pf.String("db", "", "sqlite path or postgres URL")
	pf.String("provider", "", "completion provider: gemini or anthropic")
	pf.String("lang", "", "default UI language code")
	pf.String("log-level", "", "log level: debug, info, warn or error")
}

func init() {
	addPersistentFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
