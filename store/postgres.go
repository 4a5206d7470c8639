package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/utils"
)

const uniqueViolation = "23505"

// A path id that is not a UUID fails the cast to the id column.
const invalidTextRepresentation = "22P02"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isMalformedID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
		return ErrNotFound
	}
	return err
}

func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return notFound(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// USERS
// ============================================================================

const userColumns = `id, name, mobile, login_id, password_hash, preferred_language,
	upi_qr_code IS NOT NULL, COALESCE(totp_secret, ''), totp_enabled, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Mobile, &u.LoginID, &u.PasswordHash, &u.PreferredLanguage,
		&u.HasUPIQR, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, mobile, login_id, password_hash, preferred_language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Name, user.Mobile, user.LoginID, user.PasswordHash, user.PreferredLanguage, user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE login_id = $1`, loginID))
}

func (s *PostgresStore) UpdateUserName(ctx context.Context, id, name string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`, name, id))
}

func (s *PostgresStore) UpdateUserLanguage(ctx context.Context, id, language string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`UPDATE users SET preferred_language = $1, updated_at = NOW() WHERE id = $2`, language, id))
}

func (s *PostgresStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, hash, id))
}

func (s *PostgresStore) SetTOTP(ctx context.Context, id, secret string, enabled bool) error {
	var secretArg any
	if secret != "" {
		secretArg = secret
	}
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`UPDATE users SET totp_secret = $1, totp_enabled = $2, updated_at = NOW() WHERE id = $3`, secretArg, enabled, id))
}

func (s *PostgresStore) SetUPIQR(ctx context.Context, id string, qr *models.UPIQR) error {
	var image, payload any
	if qr != nil {
		image = qr.Image
		if qr.Payload != "" {
			payload = qr.Payload
		}
	}
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`UPDATE users SET upi_qr_code = $1, upi_payload = $2, updated_at = NOW() WHERE id = $3`, image, payload, id))
}

func (s *PostgresStore) GetUPIQR(ctx context.Context, id string) (*models.UPIQR, error) {
	var image, payload sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT upi_qr_code, upi_payload FROM users WHERE id = $1`, id).Scan(&image, &payload)
	if err != nil {
		return nil, notFound(err)
	}
	if !image.Valid {
		return nil, ErrNotFound
	}
	return &models.UPIQR{Image: image.String, Payload: payload.String}, nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	return utils.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM contributions WHERE occasion_id IN (SELECT id FROM occasions WHERE owner_id = $1)
		`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM occasions WHERE owner_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, id); err != nil {
			return err
		}
		return affectedOrNotFound(tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
	})
}

// ============================================================================
// SESSIONS
// ============================================================================

func (s *PostgresStore) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.UserID, session.RefreshToken, session.ExpiresAt, session.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *PostgresStore) GetSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, refresh_token, expires_at, created_at
		FROM sessions
		WHERE refresh_token = $1
	`, refreshToken).Scan(&session.ID, &session.UserID, &session.RefreshToken, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func (s *PostgresStore) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (s *PostgresStore) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ============================================================================
// OCCASIONS
// ============================================================================

func scanOccasion(row interface{ Scan(...any) error }) (*models.Occasion, error) {
	var o models.Occasion
	var eventDate time.Time
	if err := row.Scan(&o.ID, &o.OwnerID, &o.Name, &eventDate, &o.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	o.EventDate = eventDate.Format(time.DateOnly)
	return &o, nil
}

func (s *PostgresStore) CreateOccasion(ctx context.Context, occasion *models.Occasion) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO occasions (id, owner_id, name, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, occasion.ID, occasion.OwnerID, occasion.Name, occasion.EventDate, occasion.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert occasion: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetOccasion(ctx context.Context, ownerID, id string) (*models.Occasion, error) {
	return scanOccasion(s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, event_date, created_at
		FROM occasions
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
}

func (s *PostgresStore) ListOccasions(ctx context.Context, ownerID string) ([]models.Occasion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, event_date, created_at
		FROM occasions
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list occasions: %w", err)
	}
	defer rows.Close()

	occasions := []models.Occasion{}
	for rows.Next() {
		o, err := scanOccasion(rows)
		if err != nil {
			return nil, err
		}
		occasions = append(occasions, *o)
	}
	return occasions, rows.Err()
}

func (s *PostgresStore) DeleteOccasion(ctx context.Context, ownerID, id string) error {
	return utils.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM occasions WHERE id = $1 AND owner_id = $2)
		`, id, ownerID).Scan(&exists)
		if err != nil {
			return notFound(err)
		}
		if !exists {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM contributions WHERE occasion_id = $1`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM occasions WHERE id = $1`, id)
		return err
	})
}

// ============================================================================
// CONTRIBUTIONS
// ============================================================================

func (s *PostgresStore) CreateContribution(ctx context.Context, c *models.Contribution) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contributions (id, occasion_id, guest_name, location, amount, contributed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.OccasionID, c.GuestName, c.Location, c.Amount, c.ContributedAt)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListContributions(ctx context.Context, occasionID string) ([]models.Contribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, occasion_id, guest_name, COALESCE(location, ''), amount, contributed_at
		FROM contributions
		WHERE occasion_id = $1
		ORDER BY contributed_at DESC
	`, occasionID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", notFound(err))
	}
	defer rows.Close()

	contributions := []models.Contribution{}
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.OccasionID, &c.GuestName, &c.Location, &c.Amount, &c.ContributedAt); err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}

func (s *PostgresStore) DeleteContribution(ctx context.Context, occasionID, id string) error {
	return affectedOrNotFound(s.db.ExecContext(ctx,
		`DELETE FROM contributions WHERE id = $1 AND occasion_id = $2`, id, occasionID))
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
