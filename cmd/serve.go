package cmd

import (
	"context"

	"github.com/mediasweep/purgarr/config"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/storage/sqlite"
	"github.com/mediasweep/purgarr/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the run API server",
	Long:  `serve recorded analysis runs over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		store, err := sqlite.New(cfg.Storage.FilePath)
		if err != nil {
			log.Fatal("failed to open storage", zap.Error(err))
		}
		defer store.Close()

		if err := store.RunMigrations(ctx); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}

		srv := server.New(log, store)
		log.Error(srv.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
