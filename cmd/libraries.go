package cmd

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mediasweep/purgarr/config"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/plex"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// librariesCmd represents the libraries command
var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "list candidate plex libraries",
	Long:  `list the movie and show libraries an analysis pass would scan`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		if cfg.Plex.URL == "" || cfg.Plex.Token == "" {
			log.Fatal("plex.url and plex.token are required")
		}

		client, err := plex.New(cfg.Plex.URL, cfg.Plex.Token)
		if err != nil {
			log.Fatal("failed to create plex client", zap.Error(err))
		}

		libraries, err := client.Libraries(ctx, cfg.Plex.ExcludedLibraries)
		if err != nil {
			log.Fatal("failed to list libraries", zap.Error(err))
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Key", "Title", "Type"})
		for _, lib := range libraries {
			tw.AppendRow(table.Row{lib.Key, lib.Title, lib.Type})
		}
		tw.Render()
	},
}

func init() {
	rootCmd.AddCommand(librariesCmd)
}
