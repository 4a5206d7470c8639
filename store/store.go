// Package store persists users, sessions, occasions and contributions.
//
// Every occasion read or delete is scoped by owner, so a foreign id behaves
// exactly like a missing one (ErrNotFound).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/nevta-digital/nevta-api/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error)
	UpdateUserName(ctx context.Context, id, name string) error
	UpdateUserLanguage(ctx context.Context, id, language string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetTOTP(ctx context.Context, id, secret string, enabled bool) error
	// SetUPIQR stores the payment QR; nil clears it.
	SetUPIQR(ctx context.Context, id string, qr *models.UPIQR) error
	GetUPIQR(ctx context.Context, id string) (*models.UPIQR, error)
	// DeleteUser removes the user and everything they own.
	DeleteUser(ctx context.Context, id string) error

	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteUserSessions(ctx context.Context, userID string) error
	// DeleteExpiredSessions removes sessions that expired before the cutoff.
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)

	CreateOccasion(ctx context.Context, occasion *models.Occasion) error
	GetOccasion(ctx context.Context, ownerID, id string) (*models.Occasion, error)
	// ListOccasions returns the owner's occasions, newest first.
	ListOccasions(ctx context.Context, ownerID string) ([]models.Occasion, error)
	// DeleteOccasion removes the occasion and its contributions atomically.
	DeleteOccasion(ctx context.Context, ownerID, id string) error

	CreateContribution(ctx context.Context, contribution *models.Contribution) error
	// ListContributions returns an occasion's contributions, newest first.
	ListContributions(ctx context.Context, occasionID string) ([]models.Contribution, error)
	DeleteContribution(ctx context.Context, occasionID, id string) error

	Ping(ctx context.Context) error
	Close() error
}
