package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Leonidos67/t-sync-sub000/internal/config"
	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/pkg"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/redis"
	"github.com/Leonidos67/t-sync-sub000/internal/router"
	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

func main() {
	cfg := config.Load()

	if err := pkg.InitLogger(cfg); err != nil {
		panic(err)
	}

	if err := mysql.InitDB(cfg.DatabaseDSN); err != nil {
		pkg.Sugar.Fatalw("mysql init failed", "err", err)
	}
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.SocialOutbox{},
		&model.Club{},
		&model.ClubMember{},
		&model.Post{},
		&model.PostReaction{},
	); err != nil {
		pkg.Sugar.Fatalw("auto migrate failed", "err", err)
	}

	// One-time normalization of rows that predate the author-kind column,
	// so read paths never carry legacy branches.
	postRepo := &mysql.PostRepository{DB: mysql.DB}
	if n, err := postRepo.BackfillAuthorKind(context.Background()); err != nil {
		pkg.Sugar.Fatalw("author-kind backfill failed", "err", err)
	} else if n > 0 {
		pkg.Sugar.Infow("author-kind backfill applied", "rows", n)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		pkg.Sugar.Fatalw("redis init failed", "err", err)
	}
	defer redis.Close()

	cache := redis.NewReactionCacheRepository()
	lock := &redis.DistLock{RDB: redis.Client}

	// Outbox drain: Kafka when brokers are configured, log otherwise.
	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			pkg.Sugar.Fatalw("kafka init failed", "err", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relayer := service.NewOutboxRelayer(mysql.DB, cfg.OutboxBatchSize, cfg.OutboxInterval, sender)
	go relayer.Run(ctx)

	reconciler := service.NewFollowCountReconciler(mysql.DB, cfg.ReconcileBatch, cfg.ReconcileInterval)
	go reconciler.Run(ctx)

	r := router.InitRouter(cfg, mysql.DB, cache, lock)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		pkg.Sugar.Infow("server starting", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkg.Sugar.Fatalw("server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	pkg.Sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkg.Sugar.Errorw("shutdown error", "err", err)
	}
	_ = pkg.Logger.Sync()
}
