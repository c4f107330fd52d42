package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"memobot/internal/ai_model/deepseek"
	internalbot "memobot/internal/bot"
	"memobot/internal/chat"
	"memobot/internal/config"
	"memobot/internal/memory"
	"memobot/internal/observability"
	"memobot/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	policy := memory.Policy{
		Cap:    cfg.HistoryCap,
		Target: cfg.ContextTarget,
		Recent: cfg.RecentWindow,
		Anchor: cfg.AnchorTurns,
		Sample: cfg.SampleTurns,
	}
	if err := policy.Validate(); err != nil {
		log.Fatal(err)
	}

	repository, err := store.NewRepository(ctx, cfg.DatabaseUrl)
	if err != nil {
		log.Fatal("Cannot initialize repository: ", err)
	}
	defer func(r store.Repository) {
		if err := r.Close(); err != nil {
			log.Println(err)
		}
	}(repository)

	metrics := observability.NewMetrics("memobot")
	model := deepseek.NewAiModelDeepSeek(
		cfg.DeepSeekApiKey, cfg.DeepSeekBaseUrl, cfg.DeepSeekModel,
		cfg.Temperature, cfg.MaxTokens, cfg.RequestTimeout,
	)
	selector := memory.NewSelector(repository, policy, memory.RandSampler{})

	session := &chat.Session{
		Repository:   repository,
		Selector:     selector,
		Model:        model,
		Metrics:      metrics,
		SystemPrompt: cfg.SystemPrompt,
		TruncateAt:   cfg.TruncateAt,
		Timeout:      cfg.RequestTimeout,
	}

	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, u *models.Update) {}))
	if err != nil {
		log.Fatal(err)
	}

	cmd := internalbot.NewCommandHandler(metrics)
	his := internalbot.NewHistoryHandler(repository, policy.Target, metrics)
	clr := internalbot.NewClearHandler(repository, metrics)
	sts := internalbot.NewStatsHandler(repository, metrics)
	pol := internalbot.NewPolicyHandler(policy, metrics)
	txt := internalbot.NewTextHandler(session, metrics)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, cmd.Handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypeExact, his.Handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypeExact, clr.Handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, sts.Handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/policy", bot.MatchTypeExact, pol.Handle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, txt.Handle)

	go serveOps(ctx, cfg.MetricsAddr)

	log.Println("[main] bot started")
	b.Start(ctx)
}

func serveOps(ctx context.Context, addr string) {
	r := chi.NewRouter()
	r.Handle("/metrics", observability.MetricsHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Println("[main.serveOps] listening on", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Println("[main.serveOps]", err)
	}
}
