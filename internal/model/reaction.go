package model

import "time"

// Reaction kinds. Independent sets: an actor may hold all three on one post.
const (
	ReactionLike = "like"
	ReactionFire = "fire"
	ReactionWow  = "wow"
)

// ReactionKinds lists every valid kind, in display order.
var ReactionKinds = []string{ReactionLike, ReactionFire, ReactionWow}

// ValidReactionKind reports whether k names a reaction set.
func ValidReactionKind(k string) bool {
	return k == ReactionLike || k == ReactionFire || k == ReactionWow
}

// PostReaction is one actor's membership in one reaction set of one post.
// The composite unique index is what makes the set a set.
type PostReaction struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_post_user_kind"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_post_user_kind"`
	Kind      string `gorm:"size:8;not null;uniqueIndex:uk_post_user_kind"`
	CreatedAt time.Time
}

func (PostReaction) TableName() string { return "post_reactions" }
