package model

import "time"

// Action button kinds a club may pin to its page.
const (
	ActionWebsite = "website"
	ActionPhone   = "phone"
	ActionEmail   = "email"
)

// ValidActionKind reports whether k is an allowed call-to-action kind.
func ValidActionKind(k string) bool {
	return k == ActionWebsite || k == ActionPhone || k == ActionEmail
}

// Club groups athletes under a creator. The creator is always a member and
// cannot leave; membership rows live in ClubMember.
type Club struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Handle      string    `gorm:"uniqueIndex;size:32;not null" json:"handle"` // stored lowercase
	Name        string    `gorm:"size:64;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	AvatarURL   string    `gorm:"size:255" json:"avatar_url,omitempty"`
	CreatorID   uint64    `gorm:"not null;index" json:"creator_id"` // immutable after creation
	ShowCreator bool      `gorm:"not null;default:true" json:"show_creator"`
	ActionKind  string    `gorm:"size:16" json:"action_kind,omitempty"` // empty = no button
	ActionValue string    `gorm:"size:255" json:"action_value,omitempty"`
	ActionLabel string    `gorm:"size:64" json:"action_label,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

type ClubMember struct {
	ID        uint64 `gorm:"primaryKey"`
	ClubID    uint64 `gorm:"not null;index;uniqueIndex:uk_club_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_club_user"`
	CreatedAt time.Time
}
