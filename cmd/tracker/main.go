package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study_tracker/internal/aggregator"
	"study_tracker/internal/config"
	"study_tracker/internal/metrics"
	"study_tracker/internal/notifier"
	"study_tracker/internal/scheduler"
	"study_tracker/internal/service"
	"study_tracker/internal/source/vlc"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if cfg.Sampling.WindowExceeded() {
		logger.Warn("sampling interval does not fit the aggregator window three times",
			"interval", cfg.Sampling.Interval,
			"server_window", cfg.Sampling.ServerWindow,
		)
	}

	// Initialize presenters
	banner := notifier.NewBanner(os.Stderr, cfg.Notifier.DisplayDuration)
	presenters := notifier.Multi{banner}

	// Enter on the terminal clears the banner.
	go func() {
		if err := banner.DismissOn(os.Stdin); err != nil {
			logger.Debug("stdin closed", "error", err)
		}
	}()

	var speech *notifier.Speech
	if cfg.Notifier.Speech.Enabled {
		speech = notifier.NewSpeech(cfg.Notifier.Speech.Command, cfg.Notifier.Speech.Args, logger)
		presenters = append(presenters, speech)
	}

	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := notifier.NewRabbitMQ(notifier.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		presenters = append(presenters, rabbitMQ)
	}

	// Initialize VLC inspector
	vlcSource := vlc.New(vlc.Config{
		BaseURL:  cfg.Inspector.BaseURL,
		Password: cfg.Inspector.Password,
		Timeout:  cfg.Inspector.Timeout,
	}, logger)

	aggregatorClient := aggregator.New(aggregator.Config{
		URL:     cfg.Aggregator.URL,
		Timeout: cfg.Aggregator.Timeout,
	}, logger)

	tracker := service.NewTracker(
		service.NewExtractor(vlcSource, logger),
		service.NewReconciler(cfg.Sampling.SpeedTolerance, time.Now),
		aggregatorClient,
		presenters,
		service.Observers{
			service.NewLogObserver(logger),
			metrics.NewObserver(),
		},
		logger,
	)

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, logger)
	}

	sched := scheduler.NewScheduler(tracker, cfg.Sampling.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting study tracker",
		"inspector", vlcSource.Name(),
		"aggregator", cfg.Aggregator.URL,
		"interval", cfg.Sampling.Interval,
		"speed_tolerance", cfg.Sampling.SpeedTolerance,
	)

	err = sched.Start(ctx)
	tracker.Wait()
	if speech != nil {
		speech.Wait()
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
