package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

const (
	mobileDigits      = 10
	minPasswordLength = 6
	encryptedPrefix   = "enc:"
)

// AuthService signs users up and in. Users type a mobile number; the
// identity provider only knows an email-shaped login ID derived from it.
type AuthService struct {
	store         store.Store
	jwt           *utils.JWTManager
	loginDomain   string
	refreshTTL    time.Duration
	encryptionKey []byte
	now           func() time.Time
}

func NewAuthService(st store.Store, jwt *utils.JWTManager, loginDomain string, refreshTTL time.Duration, encryptionKey []byte) *AuthService {
	return &AuthService{
		store:         st,
		jwt:           jwt,
		loginDomain:   loginDomain,
		refreshTTL:    refreshTTL,
		encryptionKey: encryptionKey,
		now:           time.Now,
	}
}

// SynthesizeLoginID maps a mobile number to its login ID.
func (s *AuthService) SynthesizeLoginID(mobile string) string {
	return mobile + "@" + s.loginDomain
}

// ValidateMobile accepts exactly ten ASCII digits after trimming.
func ValidateMobile(mobile string) (string, error) {
	m := strings.TrimSpace(mobile)
	if len(m) != mobileDigits {
		return "", invalid("invalidMobile", "Please enter a valid 10-digit mobile number")
	}
	for i := 0; i < len(m); i++ {
		if m[i] < '0' || m[i] > '9' {
			return "", invalid("invalidMobile", "Please enter a valid 10-digit mobile number")
		}
	}
	return m, nil
}

func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("passwordTooShort", "Password must be at least 6 characters")
	}
	return nil
}

// ============================================================================
// SIGNUP / LOGIN / REFRESH
// ============================================================================

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("nameRequired", "Name is required")
	}
	if tooLong(name) {
		return nil, invalid("textTooLong", "Name is too long")
	}
	mobile, err := ValidateMobile(req.Mobile)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:                uuid.NewString(),
		Name:              name,
		Mobile:            mobile,
		LoginID:           s.SynthesizeLoginID(mobile),
		PreferredLanguage: string(i18n.Default),
		PasswordHash:      hash,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, &ConflictError{Key: "mobileTaken", Message: "This mobile number is already registered"}
		}
		return nil, err
	}

	utils.LogAuthAction("signup", mobile, true)
	return s.issue(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	mobile, err := ValidateMobile(req.Mobile)
	if err != nil {
		return nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByLoginID(ctx, s.SynthesizeLoginID(mobile))
	if errors.Is(err, store.ErrNotFound) {
		utils.LogAuthAction("login", mobile, false)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		utils.LogAuthAction("login", mobile, false)
		return nil, ErrInvalidCredentials
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, ErrTOTPRequired
		}
		if !s.verifyTOTP(user.TOTPSecret, req.TOTPCode) {
			utils.LogAuthAction("login_2fa", mobile, false)
			return nil, ErrInvalidTOTP
		}
	}

	utils.LogAuthAction("login", mobile, true)
	return s.issue(ctx, user)
}

// Refresh trades a live refresh token for a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	session, err := s.store.GetSession(ctx, refreshToken)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}
	if s.now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.LoginID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{Token: token, RefreshToken: refreshToken, User: *user}, nil
}

// Logout drops every refresh session of the user.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.store.DeleteUserSessions(ctx, userID)
}

// ParseToken validates a bearer token.
func (s *AuthService) ParseToken(token string) (*utils.Claims, error) {
	return s.jwt.ParseAccessToken(token)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	token, err := s.jwt.GenerateAccessToken(user.ID, user.LoginID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	now := s.now().UTC()
	err = s.store.CreateSession(ctx, &models.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.refreshTTL),
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &models.AuthResponse{Token: token, RefreshToken: refresh, User: *user}, nil
}

// ============================================================================
// PASSWORD & 2FA
// ============================================================================

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := ValidatePassword(req.NewPassword); err != nil {
		return err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	return s.store.DeleteUserSessions(ctx, userID)
}

// SetupTOTP stores a new, not yet enabled secret and returns it with its
// otpauth URL.
func (s *AuthService) SetupTOTP(ctx context.Context, userID string) (*models.TOTPSetupResponse, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	secret, url, err := utils.GenerateTOTPSecret(user.LoginID)
	if err != nil {
		return nil, fmt.Errorf("generate totp: %w", err)
	}
	sealed, err := s.sealSecret(secret)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetTOTP(ctx, userID, sealed, false); err != nil {
		return nil, err
	}
	return &models.TOTPSetupResponse{Secret: secret, QRCode: url}, nil
}

// EnableTOTP turns 2FA on once the user proves the pending secret works.
func (s *AuthService) EnableTOTP(ctx context.Context, userID, code string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" || !s.verifyTOTP(user.TOTPSecret, code) {
		return ErrInvalidTOTP
	}
	return s.store.SetTOTP(ctx, userID, user.TOTPSecret, true)
}

func (s *AuthService) DisableTOTP(ctx context.Context, userID, code string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled || !s.verifyTOTP(user.TOTPSecret, code) {
		return ErrInvalidTOTP
	}
	return s.store.SetTOTP(ctx, userID, "", false)
}

func (s *AuthService) sealSecret(secret string) (string, error) {
	if len(s.encryptionKey) == 0 {
		return secret, nil
	}
	sealed, err := utils.Encrypt(s.encryptionKey, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("encrypt totp secret: %w", err)
	}
	return encryptedPrefix + sealed, nil
}

func (s *AuthService) verifyTOTP(stored, code string) bool {
	secret := stored
	if strings.HasPrefix(stored, encryptedPrefix) {
		plain, err := utils.Decrypt(s.encryptionKey, strings.TrimPrefix(stored, encryptedPrefix))
		if err != nil {
			utils.SafeError("❌ Cannot decrypt TOTP secret: %v", err)
			return false
		}
		secret = string(plain)
	}
	return utils.VerifyTOTP(secret, code)
}
