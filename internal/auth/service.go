package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sujalbistaa/swipe/internal/apperr"
	"github.com/sujalbistaa/swipe/internal/logger"
	"github.com/sujalbistaa/swipe/internal/models"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput accepts JSON {email, password} or the form fields
// username=<email>&password=.
type LoginInput struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserUpdate carries optional changes. The flag fields are applied only by a
// superuser.
type UserUpdate struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsVerified  *bool   `json:"is_verified"`
}

type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

type Service struct {
	db                *gorm.DB
	tokens            *TokenIssuer
	revoker           Revoker
	minPasswordLength int
	bcryptCost        int
}

func NewService(db *gorm.DB, tokens *TokenIssuer, revoker Revoker, minPasswordLength int, opts ...Option) *Service {
	s := &Service{
		db:                db,
		tokens:            tokens,
		revoker:           revoker,
		minPasswordLength: minPasswordLength,
		bcryptCost:        bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register validates the input, hashes the password and stores an active,
// unverified user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(in.Password, s.minPasswordLength); err != nil {
		return nil, err
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, apperr.Store(err)
	}

	user := &models.User{
		Email:          normalizeEmail(in.Email),
		Username:       in.Username,
		HashedPassword: hashed,
		IsActive:       true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ? OR username = ?", user.Email, user.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict(apperr.CodeRegisterUserAlreadyExists)
		}
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.Conflict(apperr.CodeRegisterUserAlreadyExists)
	}
	if err != nil {
		return nil, apperr.Store(err)
	}

	logger.Infof("user %s registered", user.ID)
	return user, nil
}

// Login checks the credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AccessToken, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized(apperr.CodeLoginBadCredentials)
	}
	if err != nil {
		return nil, apperr.Store(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)) != nil || !user.IsActive {
		return nil, apperr.Unauthorized(apperr.CodeLoginBadCredentials)
	}

	signed, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	return &AccessToken{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.Lifetime() / time.Second),
	}, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *Service) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if revoked {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}

	var user models.User
	err = s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized(apperr.CodeUnauthorized)
	}
	return &user, nil
}

// Logout revokes the token until it expires.
func (s *Service) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return apperr.Unauthorized(apperr.CodeUnauthorized)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound()
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &user, nil
}

// UpdateUser applies in to the user with id. Only a superuser may change the
// is_* flags; for everyone else they are ignored.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UserUpdate, asSuperuser bool) (*models.User, error) {
	changes := map[string]any{}

	if in.Username != nil {
		if err := ValidateUsername(*in.Username); err != nil {
			return nil, err
		}
		changes["username"] = *in.Username
	}
	if in.Password != nil {
		if ValidatePassword(*in.Password, s.minPasswordLength) != nil {
			return nil, apperr.Validation(apperr.CodeUpdateUserInvalidPassword)
		}
		hashed, err := s.hash(*in.Password)
		if err != nil {
			return nil, apperr.Store(err)
		}
		changes["hashed_password"] = hashed
	}
	if in.Email != nil {
		changes["email"] = normalizeEmail(*in.Email)
	}
	if asSuperuser {
		if in.IsActive != nil {
			changes["is_active"] = *in.IsActive
		}
		if in.IsSuperuser != nil {
			changes["is_superuser"] = *in.IsSuperuser
		}
		if in.IsVerified != nil {
			changes["is_verified"] = *in.IsVerified
		}
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if email, ok := changes["email"]; ok {
			if taken, err := exists(tx, "email = ? AND id <> ?", email, id); err != nil {
				return err
			} else if taken {
				return apperr.Conflict(apperr.CodeUpdateUserEmailAlreadyExists)
			}
		}
		if username, ok := changes["username"]; ok {
			if taken, err := exists(tx, "username = ? AND id <> ?", username, id); err != nil {
				return err
			} else if taken {
				return apperr.Conflict(apperr.CodeUpdateUserNameAlreadyExists)
			}
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&user, "id = ?", id).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.NotFound()
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, apperr.Conflict(duplicateUpdateCode(changes))
	case err != nil:
		return nil, apperr.Store(err)
	}
	return &user, nil
}

// duplicateUpdateCode names the unique column an update collided on when the
// store, not the pre-check, caught it.
func duplicateUpdateCode(changes map[string]any) string {
	if _, ok := changes["email"]; ok {
		return apperr.CodeUpdateUserEmailAlreadyExists
	}
	return apperr.CodeUpdateUserNameAlreadyExists
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound()
	}
	return nil
}

// PurgeInvalidUsernames deletes users whose username no longer passes
// ValidateUsername and returns the removed usernames. Pitches they submitted
// keep their submitter string.
func (s *Service) PurgeInvalidUsernames(ctx context.Context) ([]string, error) {
	var removed []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Select("id", "username").Find(&users).Error; err != nil {
			return err
		}
		for _, u := range users {
			if ValidateUsername(u.Username) == nil {
				continue
			}
			if err := tx.Delete(&models.User{}, "id = ?", u.ID).Error; err != nil {
				return err
			}
			removed = append(removed, u.Username)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Store(err)
	}
	return removed, nil
}

func exists(tx *gorm.DB, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
