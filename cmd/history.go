package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mediasweep/purgarr/config"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/media"
	"github.com/mediasweep/purgarr/pkg/tautulli"
	"github.com/mediasweep/purgarr/pkg/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var historyKind string

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <rating-key>",
	Short: "show the aggregated watch state for one item",
	Long:  `aggregate the Tautulli history for a single rating key and print the resulting watch state`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		kind := media.Kind(historyKind)
		if kind != media.KindMovie && kind != media.KindShow {
			log.Fatal("kind must be movie or show")
		}

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		if cfg.Tautulli.URL == "" || cfg.Tautulli.APIKey == "" {
			log.Fatal("tautulli.url and tautulli.apiKey are required")
		}

		client, err := tautulli.New(cfg.Tautulli.URL, cfg.Tautulli.APIKey)
		if err != nil {
			log.Fatal("failed to create tautulli client", zap.Error(err))
		}

		state := watch.New(client, client).Aggregate(ctx, args[0], kind)

		out, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			log.Fatal("failed to marshal watch state", zap.Error(err))
		}
		fmt.Fprintln(os.Stdout, string(out))
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyKind, "kind", "movie", "media kind: movie|show")
}
