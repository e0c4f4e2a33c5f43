package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/ai"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/config"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/embedcache"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/filestore"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/handler"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/index"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/job"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/middleware"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/schedule"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/service"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/transcript"
)

type deps struct {
	cfg     *config.Config
	ingest  *service.IngestService
	answers *service.AnswerService
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "clipfinder",
		Short: "answer questions about video transcripts with timestamp citations",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the http api",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(configPath)
			if err != nil {
				return err
			}
			return runServer(d)
		},
	}

	ingestCmd := &cobra.Command{
		Use:   "ingest [video_id...]",
		Short: "ingest configured videos into the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(configPath)
			if err != nil {
				return err
			}
			return runIngest(d, args)
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "ask one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(configPath)
			if err != nil {
				return err
			}
			return runAsk(d, strings.Join(args, " "))
		},
	}

	rootCmd.AddCommand(serveCmd, ingestCmd, askCmd)
	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func setup(configPath string) (*deps, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	embedder, err := buildEmbedder(cfg.AI)
	if err != nil {
		return nil, err
	}
	chatter, err := buildChatter(cfg.AI)
	if err != nil {
		return nil, err
	}
	reranker, err := buildReranker(cfg.AI)
	if err != nil {
		return nil, err
	}

	gateway, err := index.New(cfg.Index.Type, cfg.Index.Data, embedder)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	source := transcript.Source(transcript.NewHTTPSource(cfg.Transcript.BaseURL, nil))
	if cfg.Transcript.Cache != nil {
		store, err := filestore.New(cfg.Transcript.Cache.Type, cfg.Transcript.Cache.Data)
		if err != nil {
			return nil, fmt.Errorf("init transcript cache: %w", err)
		}
		source = transcript.NewCachingSource(source, store)
	}

	return &deps{
		cfg:    cfg,
		ingest: service.NewIngestService(source, gateway, cfg.Retrieval.DocumentSize),
		answers: service.NewAnswerService(gateway, reranker, chatter, service.AnswerOptions{
			CandidateLimit: cfg.Retrieval.CandidateLimit,
			RerankTopK:     cfg.Retrieval.RerankTopK,
		}),
	}, nil
}

func buildEmbedder(cfg config.AIConfig) (ai.IEmbedder, error) {
	entries := make([]ai.EmbedderEntry, 0, len(cfg.Embed))
	for _, item := range cfg.Embed {
		provider, err := ai.NewEmbedProvider(item.Provider, item.Args)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ai.EmbedderEntry{
			Name:     item.Provider,
			Embedder: ai.NewEmbedder(provider, item.Model),
		})
	}
	embedder := ai.NewGroupEmbedder(entries)
	if cfg.EmbedCacheSize > 0 && cfg.EmbedCacheTTL > 0 {
		embedder = embedcache.WrapLRU(embedder, cfg.EmbedCacheSize, time.Duration(cfg.EmbedCacheTTL)*time.Hour)
	}
	return embedder, nil
}

func buildChatter(cfg config.AIConfig) (ai.IChatter, error) {
	entries := make([]ai.ChatterEntry, 0, len(cfg.Chat))
	for _, item := range cfg.Chat {
		provider, err := ai.NewChatProvider(item.Provider, item.Args)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ai.ChatterEntry{
			Name:    item.Provider,
			Chatter: ai.NewChatter(provider, item.Model),
		})
	}
	return ai.NewGroupChatter(entries), nil
}

func buildReranker(cfg config.AIConfig) (ai.IReranker, error) {
	if cfg.Rerank == nil {
		return nil, nil
	}
	provider, err := ai.NewRerankProvider(cfg.Rerank.Provider, cfg.Rerank.Args)
	if err != nil {
		return nil, err
	}
	return ai.NewReranker(provider, cfg.Rerank.Model), nil
}

func configuredVideos(cfg *config.Config) []model.VideoRef {
	refs := make([]model.VideoRef, 0, len(cfg.Videos))
	for _, v := range cfg.Videos {
		refs = append(refs, model.VideoRef{ID: v.ID, Title: v.Title})
	}
	return refs
}

func runServer(d *deps) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	routerDeps := handler.RouterDeps{
		Ask:    handler.NewAskHandler(d.answers),
		Videos: handler.NewVideoHandler(d.ingest, configuredVideos(d.cfg)),
	}
	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", d.cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, routerDeps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(d.cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	if d.cfg.RefreshCron != "" && len(d.cfg.Videos) > 0 {
		scheduler := schedule.NewCronScheduler()
		refresh := job.NewTranscriptRefreshJob(d.ingest, configuredVideos(d.cfg))
		if err := scheduler.AddJob(refresh, d.cfg.RefreshCron); err != nil {
			return err
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(ctx).Info("http server listening", zap.Int("port", d.cfg.Port))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func runIngest(d *deps, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refs := configuredVideos(d.cfg)
	if len(args) > 0 {
		byID := make(map[string]model.VideoRef, len(refs))
		for _, ref := range refs {
			byID[ref.ID] = ref
		}
		selected := make([]model.VideoRef, 0, len(args))
		for _, id := range args {
			if ref, ok := byID[id]; ok {
				selected = append(selected, ref)
				continue
			}
			selected = append(selected, model.VideoRef{ID: id, Title: id})
		}
		refs = selected
	}
	if len(refs) == 0 {
		return fmt.Errorf("no videos to ingest: configure videos or pass ids")
	}

	failed := 0
	for _, result := range d.ingest.IngestAll(ctx, refs) {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", result.Video.ID, result.Err)
			continue
		}
		fmt.Printf("%s: %d units\n", result.Video.ID, result.Units)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d videos failed", failed, len(refs))
	}
	return nil
}

func runAsk(d *deps, question string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	answer, err := d.answers.Ask(ctx, question)
	if err != nil {
		return err
	}
	fmt.Println(answer.Text)
	for _, citation := range answer.Citations {
		fmt.Printf("  [%d] video=%s start=%s (%ds) end=%s\n",
			citation.SourceIndex,
			citation.VideoID,
			service.FormatTimestamp(citation.StartSeconds),
			citation.StartSeconds,
			service.FormatTimestamp(citation.EndSeconds),
		)
	}
	return nil
}
