// Package pitch lists pitches, creates them for signed-in users and records
// anonymous votes.
package pitch

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/models"
)

// Event names sent to the Publisher.
const (
	EventPitchCreated = "pitch_created"
	EventVoteRecorded = "vote_recorded"
)

// Publisher receives committed changes. Publish must not block.
type Publisher interface {
	Publish(event string, payload any)
}

type CreateInput struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
	Type        string `json:"type" binding:"required"`
}

type VoteInput struct {
	PitchID  uuid.UUID `json:"pitch_id" binding:"required"`
	VoteType string    `json:"vote_type" binding:"required"`
}

type Tally struct {
	PitchID  uuid.UUID `json:"pitch_id"`
	Likes    int64     `json:"likes"`
	Dislikes int64     `json:"dislikes"`
}

type Service struct {
	db  *gorm.DB
	pub Publisher
}

// NewService returns a Service; pub may be nil.
func NewService(db *gorm.DB, pub Publisher) *Service {
	return &Service{db: db, pub: pub}
}

func (s *Service) publish(event string, payload any) {
	if s.pub != nil {
		s.pub.Publish(event, payload)
	}
}

func ValidPitchType(t string) bool {
	switch t {
	case models.PitchTypeIdea, models.PitchTypeOpinion, models.PitchTypePitch:
		return true
	}
	return false
}

func ValidVoteType(t string) bool {
	return t == models.VoteLike || t == models.VoteDislike
}

// List returns every pitch, oldest first.
func (s *Service) List(ctx context.Context) ([]models.Pitch, error) {
	pitches := []models.Pitch{}
	if err := s.db.WithContext(ctx).Order("created_at asc, id asc").Find(&pitches).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return pitches, nil
}

// Create stores a pitch attributed to caller.
func (s *Service) Create(ctx context.Context, in CreateInput, caller *models.User) (*models.Pitch, error) {
	if caller == nil {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}
	if !ValidPitchType(in.Type) {
		return nil, apperr.Validation(apperr.CodeInvalidPitchType)
	}

	p := &models.Pitch{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Submitter:   caller.Username,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	s.publish(EventPitchCreated, p)
	return p, nil
}

// Vote appends a vote row. The pitch is not looked up and repeat votes are
// accepted.
func (s *Service) Vote(ctx context.Context, in VoteInput) (*models.Vote, error) {
	if !ValidVoteType(in.VoteType) {
		return nil, apperr.Validation(apperr.CodeInvalidVoteType)
	}

	v := &models.Vote{PitchID: in.PitchID, VoteType: in.VoteType}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(v).Error
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	s.publish(EventVoteRecorded, v)
	return v, nil
}

// Tally counts likes and dislikes for pitchID. Unknown ids yield zero counts.
func (s *Service) Tally(ctx context.Context, pitchID uuid.UUID) (*Tally, error) {
	var rows []struct {
		VoteType string
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Select("vote_type, count(*) as count").
		Where("pitch_id = ?", pitchID).
		Group("vote_type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Store(err)
	}

	t := &Tally{PitchID: pitchID}
	for _, r := range rows {
		switch r.VoteType {
		case models.VoteLike:
			t.Likes = r.Count
		case models.VoteDislike:
			t.Dislikes = r.Count
		}
	}
	return t, nil
}
