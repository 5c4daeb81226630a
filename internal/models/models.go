package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pitch types.
const (
	PitchTypeIdea    = "idea"
	PitchTypeOpinion = "opinion"
	PitchTypePitch   = "pitch"
)

// Vote types.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

const AnonymousSubmitter = "Anonymous"

// Pitch is an idea, opinion or pitch that users swipe on.
// Submitter is the creator's username at creation time, not a reference to User.
type Pitch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Type        string    `gorm:"not null;size:16" json:"type"`
	Submitter   string    `gorm:"not null;default:Anonymous" json:"submitter"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Pitch) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Submitter == "" {
		p.Submitter = AnonymousSubmitter
	}
	return nil
}

// Vote is a like or dislike on a pitch. PitchID is not a foreign key; votes
// whose pitch no longer exists are kept as orphans.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PitchID   uuid.UUID `gorm:"type:uuid;not null;index" json:"pitch_id"`
	VoteType  string    `gorm:"not null;size:16" json:"vote_type"`
	CreatedAt time.Time `json:"-"`
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"not null;size:320;uniqueIndex" json:"email"`
	Username       string    `gorm:"not null;size:20;uniqueIndex" json:"username"`
	HashedPassword string    `gorm:"not null;size:255" json:"-"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	IsSuperuser    bool      `gorm:"not null" json:"is_superuser"`
	IsVerified     bool      `gorm:"not null" json:"is_verified"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// All lists every table the service owns, in migration order.
func All() []any {
	return []any{&Pitch{}, &Vote{}, &User{}}
}
