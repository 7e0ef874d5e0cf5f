package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/config"
	"github.com/xavierca1/leadlocal/internal/enrich"
	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/export"
	"github.com/xavierca1/leadlocal/internal/infra/database"
	"github.com/xavierca1/leadlocal/internal/infra/http/handlers"
	"github.com/xavierca1/leadlocal/internal/infra/http/middleware"
	"github.com/xavierca1/leadlocal/internal/infra/integration/census"
	"github.com/xavierca1/leadlocal/internal/infra/integration/gemini"
	"github.com/xavierca1/leadlocal/internal/infra/integration/googleplaces"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
	"github.com/xavierca1/leadlocal/internal/infra/integration/yelp"
	"github.com/xavierca1/leadlocal/internal/infra/mail"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/infra/storage"
	"github.com/xavierca1/leadlocal/internal/infra/worker"
	"github.com/xavierca1/leadlocal/internal/insight"
	"github.com/xavierca1/leadlocal/internal/logging"
	"github.com/xavierca1/leadlocal/internal/notify"
	"github.com/xavierca1/leadlocal/internal/search"
	"github.com/xavierca1/leadlocal/internal/templating"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	var (
		db        *sql.DB
		leadRepo  entity.LeadRepositoryInterface
		campaigns entity.CampaignRepositoryInterface
	)
	if cfg.DatabaseEnabled() {
		conn, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		db = conn
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		leadRepo = database.NewLeadRepository(db)
		campaigns = database.NewCampaignRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set; leads will not be stored")
	}

	// 2. Providers and integrations
	// Census answers without a key; the others are skipped when unset.
	providers := []search.Provider{
		census.NewClient(cfg.CensusKey, "", cfg.ProviderTimeout, logger.Named("census")),
	}
	if cfg.GooglePlacesKey != "" {
		providers = append(providers, googleplaces.NewClient(cfg.GooglePlacesKey, "", cfg.ProviderTimeout, logger.Named("google_places")))
	}
	if cfg.YelpKey != "" {
		providers = append(providers, yelp.NewClient(cfg.YelpKey, "", cfg.ProviderTimeout, logger.Named("yelp")))
	}
	aggregator := search.NewAggregator(logger.Named("search"), providers...)

	var enricher usecase.LeadEnricher
	if cfg.EnrichWebsites {
		enricher = enrich.NewWebsiteEnricher(cfg.ProviderTimeout, 8, logger.Named("enrich"))
	}

	var analyzer insight.Analyzer
	if cfg.GeminiKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, cfg.GeminiModel, logger.Named("gemini"))
		if err != nil {
			return err
		}
		analyzer = client
	}

	var crm usecase.CRMClient
	if cfg.KommoToken != "" && cfg.KommoBaseURL != "" {
		crm = kommo.NewClient(cfg.KommoToken, cfg.KommoBaseURL, cfg.KommoStatusID, cfg.ProviderTimeout, logger)
	}

	var archive usecase.ExportArchive
	if cfg.ExportBucket != "" {
		s3Archive, err := storage.NewS3Archive(ctx, cfg.ExportBucket, cfg.AWSRegion, logger.Named("archive"))
		if err != nil {
			return err
		}
		archive = s3Archive
	}

	notifications := notify.NewCenter(notify.DefaultTTL)
	defer notifications.Close()

	catalog, err := templating.Default()
	if err != nil {
		return err
	}

	// 3. Queue
	var (
		rabbitMQ *queue.RabbitMQ
		producer usecase.QueueProducerInterface
	)
	if cfg.QueueEnabled() {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		producer = queue.NewProducer(rabbitMQ.Ch)
	}

	// 4. Use cases
	searchUC := usecase.NewSearchLeadsUseCase(aggregator, enricher, leadRepo, notifications, logger)
	renderUC := usecase.NewRenderTemplateUseCase(catalog, leadRepo)
	exportUC := usecase.NewExportLeadsUseCase(export.NewExporter(), archive, leadRepo, notifications, logger)
	insightsUC := usecase.NewGenerateInsightsUseCase(leadRepo, analyzer, logger)
	syncUC := usecase.NewSyncCRMUseCase(leadRepo, crm, logger)

	var campaignUC *usecase.CampaignUseCase
	if campaigns != nil {
		campaignUC = usecase.NewCampaignUseCase(campaigns, catalog, producer, logger)
		go worker.NewCampaignScheduler(campaigns, campaignUC, logger).Start(ctx)
	}

	// 5. Outreach worker
	if rabbitMQ != nil && leadRepo != nil && cfg.MailEnabled() {
		sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From)
		outreachUC := usecase.NewProcessOutreachUseCase(leadRepo, campaigns, catalog, sender, logger)
		outreachUC.Record = middleware.RecordOutreach

		w := queue.NewWorker(rabbitMQ.Ch, outreachUC, logger)
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				logger.Error("outreach worker stopped", zap.Error(err))
			}
		}()
	}

	// 6. HTTP
	var (
		pinger  handlers.Pinger
		checker handlers.Checker
	)
	if db != nil {
		pinger = db
	}
	if rabbitMQ != nil {
		checker = rabbitMQ
	}
	providerNames := make([]string, 0, len(providers))
	for _, p := range providers {
		providerNames = append(providerNames, p.Name())
	}

	var campaignHandler *handlers.CampaignHandler
	if campaignUC != nil {
		campaignHandler = handlers.NewCampaignHandler(campaignUC, logger)
	}

	router := newRouter(ctx, cfg, routes{
		Health: handlers.NewHealthHandler(pinger, checker, providerNames, map[string]bool{
			"gemini":  analyzer != nil,
			"kommo":   crm != nil,
			"archive": archive != nil,
			"mail":    cfg.MailEnabled(),
		}),
		Search:        handlers.NewSearchHandler(searchUC, logger),
		Leads:         handlers.NewLeadHandler(leadRepo, insightsUC, logger),
		Templates:     handlers.NewTemplateHandler(catalog, renderUC, logger),
		Exports:       handlers.NewExportHandler(exportUC, logger),
		CRM:           handlers.NewCRMHandler(syncUC, logger),
		Campaigns:     campaignHandler,
		Notifications: handlers.NewNotificationHandler(notifications),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("LeadLocal API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
