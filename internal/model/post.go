package model

import "time"

// AuthorKind discriminates which collection Post.AuthorID refers to.
type AuthorKind string

const (
	AuthorUser AuthorKind = "user"
	AuthorClub AuthorKind = "club"
)

// Visibility values. Advisory only: reads do not enforce it.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Post is authored either by a user or by a club. AuthorID is the user or
// club id depending on AuthorKind; CreatedByID is always the acting user,
// and is the only identity allowed to delete the post. The per-kind counter
// columns mirror the cardinality of the post_reactions rows and are adjusted
// in the same transaction as the row mutation.
type Post struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	AuthorID    uint64     `gorm:"not null;index:idx_author" json:"author_id"`
	AuthorKind  AuthorKind `gorm:"size:8;not null;default:'user';index:idx_author" json:"author_kind"`
	CreatedByID uint64     `gorm:"not null;index" json:"created_by_id"`
	Text        string     `gorm:"type:text;not null" json:"text"`
	ImageURL    string     `gorm:"size:255" json:"image_url,omitempty"`
	Location    string     `gorm:"size:64" json:"location,omitempty"`
	Visibility  string     `gorm:"size:8;not null;default:'public'" json:"visibility"`
	LikeCount   int64      `gorm:"not null;default:0" json:"like_count"`
	FireCount   int64      `gorm:"not null;default:0" json:"fire_count"`
	WowCount    int64      `gorm:"not null;default:0" json:"wow_count"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}
