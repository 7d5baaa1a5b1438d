package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/mediasweep/purgarr/config"
	"github.com/mediasweep/purgarr/pkg/analyzer"
	"github.com/mediasweep/purgarr/pkg/arr"
	mhttp "github.com/mediasweep/purgarr/pkg/http"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/media"
	"github.com/mediasweep/purgarr/pkg/plex"
	"github.com/mediasweep/purgarr/pkg/report"
	"github.com/mediasweep/purgarr/pkg/storage"
	"github.com/mediasweep/purgarr/pkg/storage/sqlite"
	"github.com/mediasweep/purgarr/pkg/tautulli"
	"github.com/mediasweep/purgarr/pkg/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	analyzeFormat     string
	analyzeSortBy     string
	analyzeNoProgress bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "analyze the library for purge candidates",
	Long:  `analyze every movie and show, classify purge candidates, and render a report`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		if err := cfg.Validate(); err != nil {
			log.Fatal("invalid configuration", zap.Error(err))
		}

		format, err := report.ParseFormat(analyzeFormat)
		if err != nil {
			log.Fatal(err.Error())
		}

		sortMode := analyzer.SortMode(analyzeSortBy)
		if sortMode != analyzer.SortBySize && sortMode != analyzer.SortByDate {
			log.Fatal("sort-by must be size or date")
		}

		var httpOpts []mhttp.ClientOption
		if cfg.Plex.MaxRetries > 0 {
			httpOpts = append(httpOpts, mhttp.WithMaxRetries(cfg.Plex.MaxRetries))
		}
		if cfg.Plex.BaseBackoff > 0 {
			httpOpts = append(httpOpts, mhttp.WithBaseBackoff(cfg.Plex.BaseBackoff))
		}
		httpClient := mhttp.NewRateLimitedHTTPClient(httpOpts...)

		plexClient, err := plex.New(cfg.Plex.URL, cfg.Plex.Token, plex.WithHTTPClient(httpClient))
		if err != nil {
			log.Fatal("failed to create plex client", zap.Error(err))
		}

		tautulliClient, err := tautulli.New(cfg.Tautulli.URL, cfg.Tautulli.APIKey, tautulli.WithHTTPClient(httpClient))
		if err != nil {
			log.Fatal("failed to create tautulli client", zap.Error(err))
		}

		// both backends must answer before the pass starts
		identity, err := plexClient.Identity(ctx)
		if err != nil {
			log.Fatal("failed to connect to plex", zap.Error(err))
		}
		if err := tautulliClient.Ping(ctx); err != nil {
			log.Fatal("failed to connect to tautulli", zap.Error(err))
		}

		log.Infow("connected", "server", identity.Name)

		items, err := collectItems(ctx, plexClient, cfg.Plex.ExcludedLibraries)
		if err != nil {
			log.Fatal("failed to list library items", zap.Error(err))
		}
		log.Infow("collected library items", "count", len(items))

		aggregator := watch.New(tautulliClient, tautulliClient)
		analysis, err := analyzer.New(aggregator, cfg.Thresholds)
		if err != nil {
			log.Fatal("failed to create analyzer", zap.Error(err))
		}

		var progress analyzer.ProgressFunc
		if !analyzeNoProgress {
			progress = func(done, total int) {
				fmt.Fprintf(os.Stderr, "\rAnalyzing media items... %d/%d", done, total)
				if done == total {
					fmt.Fprintln(os.Stderr)
				}
			}
		}

		startedAt := time.Now()
		result, err := analysis.Analyze(ctx, items, progress)
		if err != nil {
			log.Fatal("analysis aborted", zap.Error(err))
		}
		result.Sort(sortMode)

		reportCfg := report.Config{
			OutputDir:    cfg.Output.Dir,
			PlexURL:      cfg.Plex.URL,
			TautulliURL:  cfg.Tautulli.URL,
			PlexServerID: identity.MachineIdentifier,
		}
		if radarr := arrLinker(ctx, arr.Radarr, cfg.Radarr, httpClient); radarr != nil {
			reportCfg.Radarr = radarr
		}
		if sonarr := arrLinker(ctx, arr.Sonarr, cfg.Sonarr, httpClient); sonarr != nil {
			reportCfg.Sonarr = sonarr
		}
		reporter := report.New(reportCfg)

		if format == report.FormatTerminal || format == report.FormatAll {
			reporter.Terminal(ctx, os.Stdout, result)
		}
		if format == report.FormatMarkdown || format == report.FormatAll {
			if _, err := reporter.WriteMarkdown(ctx, result); err != nil {
				log.Error("failed to write markdown report", zap.Error(err))
			}
		}
		if format == report.FormatHTML || format == report.FormatAll {
			if _, err := reporter.WriteHTML(ctx, result); err != nil {
				log.Error("failed to write html report", zap.Error(err))
			}
		}

		if err := recordRun(ctx, cfg.Storage.FilePath, result, sortMode, startedAt, len(items)); err != nil {
			log.Error("failed to record run", zap.Error(err))
		}
	},
}

func collectItems(ctx context.Context, client *plex.Client, excluded []string) ([]media.Item, error) {
	libraries, err := client.Libraries(ctx, excluded)
	if err != nil {
		return nil, err
	}

	var items []media.Item
	for _, lib := range libraries {
		libItems, err := client.Items(ctx, lib)
		if err != nil {
			return nil, fmt.Errorf("listing %q: %w", lib.Title, err)
		}
		items = append(items, libItems...)
	}

	return items, nil
}

// arrLinker builds a link resolver for an optional arr instance. An
// unreachable instance is skipped rather than failing the run.
func arrLinker(ctx context.Context, service arr.Service, cfg config.Arr, httpClient mhttp.HTTPClient) *arr.Client {
	if !cfg.Enabled() {
		return nil
	}

	log := logger.FromCtx(ctx)
	client, err := arr.New(service, cfg.URL, cfg.APIKey, arr.WithHTTPClient(httpClient))
	if err != nil {
		log.Warnw("skipping link resolver", "service", service, "error", err)
		return nil
	}

	if err := client.Ping(ctx); err != nil {
		log.Warnw("link resolver unreachable, skipping", "service", service, "error", err)
		return nil
	}

	return client
}

func recordRun(ctx context.Context, dbPath string, result *analyzer.Result, sortMode analyzer.SortMode, startedAt time.Time, scanned int) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RunMigrations(ctx); err != nil {
		return err
	}

	finishedAt := time.Now()
	run := storage.Run{
		ID:              uuid.New().String(),
		StartedAt:       startedAt,
		FinishedAt:      &finishedAt,
		SortMode:        string(sortMode),
		ItemsScanned:    scanned,
		ItemsClassified: result.TotalItems(),
		TotalSizeGB:     result.TotalSizeGB(),
	}

	for _, cat := range analyzer.Categories() {
		stats := result.Stats(cat)
		run.Categories = append(run.Categories, storage.CategoryStats{
			Category:    cat.String(),
			MovieCount:  stats.MovieCount,
			ShowCount:   stats.ShowCount,
			TotalSizeGB: stats.TotalSizeGB,
		})
	}

	return store.RecordRun(ctx, run)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "terminal", "report format: terminal|markdown|html|all")
	analyzeCmd.Flags().StringVar(&analyzeSortBy, "sort-by", "size", "ordering inside categories: size|date")
	analyzeCmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false, "disable the per-item progress display")
}
