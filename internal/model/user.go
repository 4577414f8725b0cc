package model

import "time"

// Role tags carried on the actor record. The platform distinguishes coaches
// from athletes for display purposes only; the core never branches on it.
const (
	RoleCoach   = "coach"
	RoleAthlete = "athlete"
	RoleNone    = ""
)

// User is the local projection of an actor owned by the external identity
// service. This core reads it for display resolution and only ever writes
// the follower/following counters.
type User struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Handle         string    `gorm:"uniqueIndex;size:32;not null" json:"handle"` // stored lowercase
	DisplayName    string    `gorm:"size:64;not null" json:"display_name"`
	AvatarURL      string    `gorm:"size:255" json:"avatar_url,omitempty"`
	Role           string    `gorm:"size:16;not null;default:''" json:"role,omitempty"`
	FollowerCount  int64     `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64     `gorm:"not null;default:0" json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}
