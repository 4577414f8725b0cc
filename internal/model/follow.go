package model

import "time"

// Follow is a directed edge follower -> followee. Edges are created and
// deleted, never updated; the composite unique index makes duplicates
// structurally impossible. CreatedAt is recorded for audit only.
type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	FollowerID uint64 `gorm:"not null;index:idx_follower;uniqueIndex:uk_follower_followee"`
	FolloweeID uint64 `gorm:"not null;index:idx_followee;uniqueIndex:uk_follower_followee"`
	CreatedAt  time.Time
}

func (Follow) TableName() string {
	return "follows"
}

// SocialOutbox records follow/unfollow events written in the same
// transaction as the edge mutation and drained asynchronously to Kafka.
type SocialOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	Follower  uint64 `gorm:"not null"`
	Followee  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending,1=sent,2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SocialOutbox) TableName() string { return "social_outbox" }
