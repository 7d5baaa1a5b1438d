package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mediasweep/purgarr/config"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/storage/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "list recorded analysis runs",
	Long:  `list recorded analysis runs, most recent first`,
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

		runs, err := store.ListRuns(ctx)
		if err != nil {
			log.Fatal("failed to list runs", zap.Error(err))
		}

		summary, err := store.GetSummary(ctx)
		if err != nil {
			log.Fatal("failed to summarize runs", zap.Error(err))
		}

		fmt.Fprintf(os.Stdout, "Recorded runs: %d\n", summary.RunCount)

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"ID", "Started", "Sort", "Scanned", "Classified", "Size"})
		for _, run := range runs {
			tw.AppendRow(table.Row{
				run.ID,
				run.StartedAt.Format("2006-01-02 15:04"),
				run.SortMode,
				run.ItemsScanned,
				run.ItemsClassified,
				fmt.Sprintf("%.2f GB", run.TotalSizeGB),
			})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight},
			{Number: 6, Align: text.AlignRight},
		})
		tw.Render()
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
