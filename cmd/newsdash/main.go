package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Luismorlan/newsdash/app_config"
	"github.com/Luismorlan/newsdash/utils/dotenv"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const serviceName = "newsdash"

var (
	AppConfigPath string
	// Configuration to customize binary startup.
	AppConfig app_config.NewsdashAppConfig
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "News aggregation dashboard backend",
	Long: `newsdash fetches news from the news api and rss feeds, annotates articles
with sentiment, keywords, entities and summaries, and serves them together
with per-user history, feedback and analytics charts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := dotenv.LoadDotEnvs(); err != nil {
			return err
		}
		Logger.InitLogger(serviceName)

		var err error
		AppConfig, err = app_config.ParseNewsdashAppConfig(AppConfigPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&AppConfigPath, "app_config_path", "cmd/newsdash/config.yaml", "path to newsdash app config")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(headlinesCmd, searchCmd, sourcesCmd, feedCmd)
	rootCmd.AddCommand(cleanupCacheCmd, createUserCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
