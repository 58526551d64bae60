package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyentantai21042004/meeting-notes/internal/chunker"
	"github.com/nguyentantai21042004/meeting-notes/internal/config"
	"github.com/nguyentantai21042004/meeting-notes/internal/consumer"
	"github.com/nguyentantai21042004/meeting-notes/internal/llm"
	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
	"github.com/nguyentantai21042004/meeting-notes/internal/metrics"
	"github.com/nguyentantai21042004/meeting-notes/internal/notifier"
	"github.com/nguyentantai21042004/meeting-notes/internal/persister"
	"github.com/nguyentantai21042004/meeting-notes/internal/processor"
	"github.com/nguyentantai21042004/meeting-notes/internal/records"
	"github.com/nguyentantai21042004/meeting-notes/internal/storage"
	"github.com/nguyentantai21042004/meeting-notes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-notes/internal/translator"
	"github.com/nguyentantai21042004/meeting-notes/internal/watcher"
)

// trigger is the storage-event source driving the pipeline
type trigger interface {
	Start(ctx context.Context) error
	Stop() error
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	once := flag.String("process", "", "process a single transcription object key and exit")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Meeting notes pipeline starting")
	log.Info(ctx, "Storage: %s, records: %s, trigger: %s", cfg.Storage.Backend, cfg.Records.Backend, cfg.Trigger.Mode)
	log.Info(ctx, "Model: %s (%d API keys), map concurrency: %d", cfg.LLM.Model, len(cfg.LLM.APIKeys), cfg.Summary.MaxConcurrent)

	// Create context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	if cfg.Metrics.Enabled {
		srv := serveMetrics(ctx, cfg.Metrics.Addr, reg, log)
		defer srv.Close()
	}

	// Initialize dependencies
	objects, closeObjects, err := newObjectStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "Failed to open object store: %v", err)
		os.Exit(1)
	}
	defer closeObjects()

	rs, err := newRecordStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "Failed to open record store: %v", err)
		os.Exit(1)
	}
	defer rs.Close()

	proc, closeNotifier, err := newProcessor(ctx, cfg, objects, rs, log, m)
	if err != nil {
		log.Error(ctx, "Failed to build pipeline: %v", err)
		os.Exit(1)
	}
	defer closeNotifier()

	if *once != "" {
		if err := proc.Process(ctx, *once); err != nil {
			os.Exit(1)
		}
		return
	}

	t, err := newTrigger(cfg, proc.Process, log)
	if err != nil {
		log.Error(ctx, "Failed to create %s trigger: %v", cfg.Trigger.Mode, err)
		os.Exit(1)
	}
	defer t.Stop()

	log.Info(ctx, "Pipeline is ready. Press Ctrl+C to stop")

	if err := t.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Trigger error: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Meeting notes pipeline stopped")
}

func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, func() error, error) {
	if cfg.Storage.Backend == "redis" {
		return storage.NewRedis(ctx, storage.RedisConfig{
			Addr:      cfg.Storage.Redis.Addr,
			Password:  cfg.Storage.Redis.Password,
			DB:        cfg.Storage.Redis.DB,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
		})
	}

	if err := os.MkdirAll(cfg.Storage.Root, 0755); err != nil {
		return nil, nil, fmt.Errorf("create storage root %s: %w", cfg.Storage.Root, err)
	}
	return storage.NewFS(cfg.Storage.Root), func() error { return nil }, nil
}

func newRecordStore(ctx context.Context, cfg *config.Config) (records.Store, error) {
	if cfg.Records.Backend == "cassandra" {
		return records.NewCassandra(records.CassandraConfig{
			Hosts:    cfg.Records.Cassandra.Hosts,
			Keyspace: cfg.Records.Cassandra.Keyspace,
			Table:    cfg.Records.Cassandra.Table,
			Timeout:  cfg.Records.Cassandra.Timeout,
		})
	}
	return records.NewPostgres(ctx, cfg.Records.Postgres.DSN, cfg.Records.Postgres.Table)
}

func newProcessor(ctx context.Context, cfg *config.Config, objects storage.ObjectStore, rs records.Store, log logger.Logger, m *metrics.Metrics) (processor.Processor, func() error, error) {
	completer, err := llm.NewGemini(ctx, llm.GeminiConfig{
		APIKeys:         cfg.LLM.APIKeys,
		Model:           cfg.LLM.Model,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Temperature:     cfg.LLM.Temperature,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create completer: %w", err)
	}

	c, err := chunker.New(chunker.Options{
		ChunkSize:  cfg.Summary.ChunkSize,
		Overlap:    *cfg.Summary.ChunkOverlap,
		Separators: cfg.Summary.Separators,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create chunker: %w", err)
	}

	sum, err := summarizer.New(completer, summarizer.Options{
		MaxWords:                cfg.Summary.MaxWords,
		MaxConcurrent:           cfg.Summary.MaxConcurrent,
		ReduceContextChars:      cfg.Summary.ReduceContextChars,
		MaxReduceDepth:          cfg.Summary.MaxReduceDepth,
		Separators:              cfg.Summary.Separators,
		ReturnIntermediateSteps: cfg.Summary.ReturnIntermediateSteps,
	}, log, m)
	if err != nil {
		return nil, nil, fmt.Errorf("create summarizer: %w", err)
	}

	n := notifier.New(notifier.Config{
		Brokers: cfg.Notification.Brokers,
		Topic:   cfg.Notification.Topic,
		Enabled: cfg.Notification.Enabled,
	}, log)

	p, err := persister.New(objects, rs, n, persister.Options{
		NotesPrefix:        cfg.Storage.NotesPrefix,
		CompiledPrefix:     cfg.Storage.CompiledPrefix,
		TranslationsPrefix: cfg.Storage.TranslationsPrefix,
		DocumentsPrefix:    cfg.Storage.DocumentsPrefix,
		Docx:               cfg.Output.Docx,
		Notify:             cfg.Notification.Enabled,
		From:               cfg.Notification.From,
		Subject:            cfg.Notification.Subject,
	}, log, m)
	if err != nil {
		n.Close()
		return nil, nil, fmt.Errorf("create persister: %w", err)
	}

	proc, err := processor.New(processor.Deps{
		Objects:    objects,
		Chunker:    c,
		Summarizer: sum,
		Translator: translator.NewFallback(translator.NewLLM(completer, 0), log),
		Persister:  p,
	}, cfg.Storage.TranscriptsPrefix, log, m)
	if err != nil {
		n.Close()
		return nil, nil, err
	}

	return proc, n.Close, nil
}

func newTrigger(cfg *config.Config, handle func(context.Context, string) error, log logger.Logger) (trigger, error) {
	if cfg.Trigger.Mode == "kafka" {
		return consumer.New(consumer.Config{
			Brokers: cfg.Trigger.Brokers,
			Topic:   cfg.Trigger.Topic,
			GroupID: cfg.Trigger.GroupID,
		}, handle, log)
	}
	return watcher.New(cfg.Storage.Root, cfg.Storage.TranscriptsPrefix, handle, log, cfg.Trigger.MaxConcurrent)
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(ctx, "Metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "Metrics server error: %v", err)
		}
	}()

	return srv
}
