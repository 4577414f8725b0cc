package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/pkg"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/mysql"
)

// Sender delivers one outbox event downstream.
type Sender func(ctx context.Context, ob *model.SocialOutbox) error

// OutboxRelayer drains pending social events from the outbox table to the
// configured sender on a fixed interval.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, batchSize int, interval time.Duration, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: batchSize,
		interval:  interval,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		pkg.Sugar.Errorw("outbox query failed", "err", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender delivers events to Kafka keyed by follower id.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.SocialOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.Follower), []byte(ob.Payload))
	}
}

// LogSender is the fallback when no brokers are configured.
func LogSender(ctx context.Context, ob *model.SocialOutbox) error {
	pkg.Sugar.Infow("outbox send",
		"type", ob.EventType, "follower", ob.Follower, "followee", ob.Followee)
	return nil
}

// FollowCountReconciler periodically sweeps the user table and repairs the
// cached follower/following counters against the edge table.
type FollowCountReconciler struct {
	repo      *mysql.CountReconcilerRepo
	batchSize int
	interval  time.Duration
	cursor    uint64
}

func NewFollowCountReconciler(db *gorm.DB, batchSize int, interval time.Duration) *FollowCountReconciler {
	return &FollowCountReconciler{
		repo:      &mysql.CountReconcilerRepo{DB: db},
		batchSize: batchSize,
		interval:  interval,
	}
}

func (r *FollowCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *FollowCountReconciler) reconcileOnce(ctx context.Context) {
	users, next, err := r.repo.ListUsers(ctx, r.batchSize, r.cursor)
	if err != nil {
		pkg.Sugar.Errorw("reconcile list failed", "err", err)
		return
	}
	if len(users) == 0 {
		// Wrapped around; start the next sweep from the beginning.
		r.cursor = 0
		return
	}
	r.cursor = next

	for _, u := range users {
		realFollowing, err := r.repo.RealFollowing(ctx, u.ID)
		if err != nil {
			continue
		}
		realFollowers, err := r.repo.RealFollowers(ctx, u.ID)
		if err != nil {
			continue
		}
		if realFollowing != u.FollowingCount {
			_ = r.repo.FixFollowingCount(ctx, u.ID, realFollowing)
		}
		if realFollowers != u.FollowerCount {
			_ = r.repo.FixFollowerCount(ctx, u.ID, realFollowers)
		}
	}
}
