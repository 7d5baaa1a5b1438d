package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "purgarr",
	Short: "purgarr cli",
	Long:  `analyze a Plex library for purge candidates using Tautulli watch history`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("PURGARR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("plex.url", "")
	viper.SetDefault("plex.token", "")
	viper.SetDefault("plex.excludedLibraries", []string{})

	viper.SetDefault("tautulli.url", "")
	viper.SetDefault("tautulli.apiKey", "")

	viper.SetDefault("radarr.url", "")
	viper.SetDefault("radarr.apiKey", "")
	viper.SetDefault("sonarr.url", "")
	viper.SetDefault("sonarr.apiKey", "")

	viper.SetDefault("thresholds.old5YearsDays", 1825)
	viper.SetDefault("thresholds.old3YearsDays", 1095)
	viper.SetDefault("thresholds.old1YearDays", 365)
	viper.SetDefault("thresholds.largeMovieGB", 30)
	viper.SetDefault("thresholds.largeSeriesGB", 100)

	viper.SetDefault("output.dir", "output")

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("storage.filePath", "purgarr.sqlite")
}
