package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"

	"fenrir/api/grpcserver"
	"fenrir/api/pb"
	"fenrir/config"
	"fenrir/domain/dlob"
	"fenrir/infra/feed"
	"fenrir/infra/journal"
	"fenrir/infra/mirror"
	"fenrir/infra/outbox"
	"fenrir/jobs/publisher"
	"fenrir/service"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// ---------------- Config ----------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// ---------------- Logger ----------------

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// ---------------- Durability ----------------

	jnl, err := journal.Open(journal.Config{
		Dir:         cfg.Journal.Dir,
		SegmentSize: cfg.Journal.SegmentSize,
	})
	if err != nil {
		logger.Fatal("journal init failed", zap.Error(err))
	}
	defer jnl.Close()

	mir, err := mirror.Open(cfg.Mirror.Dir)
	if err != nil {
		logger.Fatal("mirror init failed", zap.Error(err))
	}
	defer mir.Close()

	box, err := outbox.Open(cfg.Outbox.Dir)
	if err != nil {
		logger.Fatal("outbox init failed", zap.Error(err))
	}
	defer box.Close()

	// ---------------- Feeds ----------------

	oracles := feed.NewOracleCache()
	clock := feed.NewSlotClock(0)

	// ---------------- Service + Rebuild ----------------

	metrics := service.NewMetrics(prometheus.DefaultRegisterer)

	book := dlob.NewDLOB()
	svc := service.NewBookService(
		book,
		jnl,
		cfg.Journal.Dir,
		mir,
		oracles,
		clock,
		logger.Named("book"),
		metrics,
	)
	if err := svc.Rebuild(); err != nil {
		logger.Fatal("rebuild failed", zap.Error(err))
	}

	// ---------------- Background Jobs ----------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := feed.NewConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, cfg.Kafka.GroupID,
		logger.Named("feed"), service.EventHandler(svc))
	oracleFeed := feed.NewConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.OracleTopic, cfg.Kafka.GroupID,
		logger.Named("feed"), feed.OracleHandler(oracles, clock))
	slotFeed := feed.NewConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.SlotTopic, cfg.Kafka.GroupID,
		logger.Named("feed"), feed.SlotHandler(clock))

	for _, c := range []*feed.Consumer{events, oracleFeed, slotFeed} {
		defer c.Close()
		go func() {
			if err := c.Run(ctx); err != nil {
				logger.Error("consumer stopped", zap.Error(err))
			}
		}()
	}

	filler := service.NewFiller(
		svc, box, marketsFromConfig(cfg.Markets),
		cfg.Filler.ScanInterval.Std(), logger.Named("filler"), metrics)
	go filler.Run(ctx)

	pub, err := publisher.New(
		box, cfg.Kafka.Brokers, cfg.Kafka.CandidateTopic,
		cfg.Kafka.DrainInterval.Std(), logger.Named("publisher"))
	if err != nil {
		logger.Fatal("publisher init failed", zap.Error(err))
	}
	defer pub.Close()
	go pub.Run(ctx)

	go checkpointLoop(ctx, svc, cfg.Filler.CheckpointInterval.Std(), logger)

	// ---------------- Metrics ----------------

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
			logger.Error("metrics server exited", zap.Error(err))
		}
	}()

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen failed", zap.Error(err))
	}

	grpcSrv := grpc.NewServer()
	pb.RegisterBookQueryServer(grpcSrv, grpcserver.NewServer(svc, logger.Named("grpc")))

	go func() {
		logger.Info("fenrir filler running",
			zap.String("grpc", cfg.GRPCAddr),
			zap.String("metrics", cfg.MetricsAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("gRPC server exited", zap.Error(err))
			cancel()
		}
	}()

	// ---------------- Shutdown ----------------

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	grpcSrv.GracefulStop()
	cancel()
	if err := svc.Checkpoint(); err != nil {
		logger.Error("final checkpoint failed", zap.Error(err))
	}
}

func checkpointLoop(ctx context.Context, svc *service.BookService, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.Checkpoint(); err != nil {
				logger.Error("checkpoint failed", zap.Error(err))
			}
		}
	}
}

func marketsFromConfig(mcs []config.MarketConfig) []service.Market {
	out := make([]service.Market, 0, len(mcs))
	for _, mc := range mcs {
		mt := dlob.Perp
		if mc.Type == "spot" {
			mt = dlob.Spot
		}
		out = append(out, service.Market{
			Type:      mt,
			Index:     mc.Index,
			SpreadBps: mc.SpreadBps,
		})
	}
	return out
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
