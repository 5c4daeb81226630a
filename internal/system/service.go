// Package system holds the health probe and the demo data seeder.
package system

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/models"
)

const (
	StatusOK          = "ok"
	DatabaseConnected = "connected"
	MessageSeeded     = "Already seeded"
)

type Health struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

type Service struct {
	db  *gorm.DB
	env string
}

func NewService(db *gorm.DB, env string) *Service {
	return &Service{db: db, env: env}
}

// Health runs a trivial query. A store failure is reported in the Database
// field, never returned.
func (s *Service) Health(ctx context.Context) Health {
	h := Health{Status: StatusOK, Environment: s.env, Database: DatabaseConnected}
	if err := s.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		h.Database = fmt.Sprintf("error: %v", err)
	}
	return h
}

// DemoPitches is the fixed seed set.
func DemoPitches() []models.Pitch {
	return []models.Pitch{
		{
			Title:       "Cat Café & Laundromat",
			Description: "Drink coffee and pet cats while waiting for your laundry.",
			Type:        models.PitchTypeIdea,
			Submitter:   "Alice",
		},
		{
			Title:       "Pineapple on Pizza is Good",
			Description: "The sweetness cuts the saltiness. Ideally with jalapeños.",
			Type:        models.PitchTypeOpinion,
			Submitter:   "Bob",
		},
	}
}

// Seed inserts DemoPitches when no pitch exists. Two concurrent calls on an
// empty store can both insert.
func (s *Service) Seed(ctx context.Context) (string, error) {
	var message string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Pitch{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			message = MessageSeeded
			return nil
		}

		pitches := DemoPitches()
		for i := range pitches {
			if err := tx.Create(&pitches[i]).Error; err != nil {
				return err
			}
		}
		message = fmt.Sprintf("Seeded %d pitches", len(pitches))
		return nil
	})
	if err != nil {
		return "", apperr.Store(err)
	}

	logger.Info(message)
	return message, nil
}
