package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"support-orchestrator/config"
	_ "support-orchestrator/docs" // Swagger docs
	"support-orchestrator/internal/httpserver"
	"support-orchestrator/internal/model"
	"support-orchestrator/internal/router"
	supportDelivery "support-orchestrator/internal/support/delivery/http"
	supportUC "support-orchestrator/internal/support/usecase"
	"support-orchestrator/pkg/chatwoot"
	"support-orchestrator/pkg/knowledge"
	"support-orchestrator/pkg/log"
	"support-orchestrator/pkg/maritalk"
)

// @title       Support Orchestrator API
// @description Routes inbound Chatwoot messages to a canned reply, the knowledge answering agent or a human team.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Support Orchestrator...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Chatwoot URL: %s", cfg.Chatwoot.BaseURL)

	labels := model.ManagedLabels{
		Orchestrator: cfg.Router.OrchestratorLabel,
		Mec:          cfg.Router.MecLabel,
		Human:        cfg.Router.HumanLabel,
		Failure:      cfg.Router.FailureLabel,
	}

	// 3. Chatwoot client + team warm-up
	chatwootClient := chatwoot.NewClient(cfg.Chatwoot.BaseURL, cfg.Chatwoot.APIToken)

	activeTeams := cfg.Router.ActiveTeams
	if teams, warmErr := chatwootClient.WarmTeams(ctx, cfg.Chatwoot.AccountID); warmErr != nil {
		logger.Warnf(ctx, "Team cache warm-up failed (teams resolve lazily): %v", warmErr)
	} else {
		logger.Infof(ctx, "Team cache warmed with %d teams", len(teams))
		if len(activeTeams) == 0 {
			for _, team := range teams {
				activeTeams = append(activeTeams, team.Name)
			}
			logger.Infof(ctx, "Active teams adopted from Chatwoot: %v", activeTeams)
		}
	}

	// 4. Knowledge service behind the answer cache
	knowledgeSvc := knowledge.NewCachedService(
		knowledge.NewClient(knowledge.Config{
			BaseURL: cfg.Knowledge.BaseURL,
			APIKey:  cfg.Knowledge.APIKey,
		}),
		cfg.Knowledge.CacheTTL,
		cfg.Knowledge.CacheCapacity,
	)

	// 5. Intent classifier, optionally with the semantic fallback
	var semantic router.SemanticClassifier
	if cfg.Router.SemanticEnabled {
		maritalkClient, mErr := maritalk.New(maritalk.Config{
			APIKey:  cfg.Maritalk.APIKey,
			BaseURL: cfg.Maritalk.BaseURL,
			Model:   cfg.Maritalk.Model,
		})
		if mErr != nil {
			logger.Warnf(ctx, "Semantic fallback disabled: %v", mErr)
		} else {
			semantic = router.NewLLMClassifier(logger, maritalkClient, cfg.Maritalk.Model, activeTeams)
			logger.Infof(ctx, "Semantic fallback enabled (model=%s)", cfg.Maritalk.Model)
		}
	}

	classifier := router.New(logger, router.Config{
		Labels:      labels,
		ActiveTeams: activeTeams,
		Semantic:    semantic,
	})

	// 6. Orchestrator
	supportUseCase := supportUC.New(logger, classifier, chatwootClient, knowledgeSvc, supportUC.Config{
		Labels:              labels,
		ConfidenceThreshold: cfg.Router.ConfidenceThreshold,
		ActiveTeams:         activeTeams,
		SupportTeam:         cfg.Router.SupportTeam,
		DefaultHumanTeam:    cfg.Router.DefaultHumanTeam,
		FallbackTeamID:      cfg.Chatwoot.FallbackTeamID,
	})

	// 7. Webhook delivery
	supportHandler := supportDelivery.NewHandler(supportUseCase, chatwootClient, chatwootClient, supportDelivery.HandlerConfig{
		Security: supportDelivery.SecurityConfig{
			Token:           cfg.Webhook.Token,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		},
		AccountID:      cfg.Chatwoot.AccountID,
		DedupTTL:       cfg.Webhook.DedupTTL,
		DedupCapacity:  cfg.Webhook.DedupCapacity,
		ProcessTimeout: cfg.Webhook.ProcessTimeout,
	}, logger)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		SupportHandler: supportHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
