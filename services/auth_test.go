package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

// lookupSpy fails on any store access made through it.
type lookupSpy struct {
	store.Store
	lookups int
}

func (s *lookupSpy) GetUserByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	s.lookups++
	return nil, store.ErrNotFound
}

func newAuth(st store.Store, key []byte) *AuthService {
	return NewAuthService(st, utils.NewJWTManager("test-secret", 15*time.Minute), "nevta.digital", time.Hour, key)
}

func TestSynthesizeLoginID(t *testing.T) {
	if got := newAuth(nil, nil).SynthesizeLoginID("9876543210"); got != "9876543210@nevta.digital" {
		t.Fatalf("got %q", got)
	}
}

func TestValidateMobile(t *testing.T) {
	cases := map[string]bool{
		"9876543210":   true,
		" 9876543210 ": true,
		"987654321":    false,
		"98765432100":  false,
		"98765o4321":   false,
		"+919876543":   false,
		"":             false,
	}
	for in, ok := range cases {
		_, err := ValidateMobile(in)
		if ok && err != nil {
			t.Errorf("ValidateMobile(%q) unexpected error %v", in, err)
		}
		if !ok && !errors.Is(err, ErrValidation) {
			t.Errorf("ValidateMobile(%q) expected validation error, got %v", in, err)
		}
	}
}

func TestLoginRejectsShortMobileBeforeLookup(t *testing.T) {
	spy := &lookupSpy{}
	_, err := newAuth(spy, nil).Login(context.Background(), models.LoginRequest{Mobile: "987654321", Password: "secret1"})

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Key != "invalidMobile" {
		t.Fatalf("expected invalidMobile, got %v", err)
	}
	if spy.lookups != 0 {
		t.Fatalf("store was queried %d times", spy.lookups)
	}
}

func TestLoginRejectsShortPasswordBeforeLookup(t *testing.T) {
	spy := &lookupSpy{}
	_, err := newAuth(spy, nil).Login(context.Background(), models.LoginRequest{Mobile: "9876543210", Password: "12345"})
	if !errors.Is(err, ErrValidation) || spy.lookups != 0 {
		t.Fatalf("err=%v lookups=%d", err, spy.lookups)
	}
}

func TestLoginWithValidMobileLooksUpSynthesizedID(t *testing.T) {
	spy := &lookupSpy{}
	_, err := newAuth(spy, nil).Login(context.Background(), models.LoginRequest{Mobile: "9876543210", Password: "secret1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if spy.lookups != 1 {
		t.Fatalf("lookups = %d, want 1", spy.lookups)
	}
}

func TestSignupLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	auth := newAuth(st, nil)

	signed, err := auth.Signup(ctx, models.SignupRequest{Name: " Ramesh ", Mobile: "9876543210", Password: "secret1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if signed.User.LoginID != "9876543210@nevta.digital" || signed.User.Name != "Ramesh" || signed.User.PreferredLanguage != "hi" {
		t.Fatalf("unexpected user %+v", signed.User)
	}
	claims, err := auth.ParseToken(signed.Token)
	if err != nil || claims.UserID != signed.User.ID {
		t.Fatalf("token: %v %+v", err, claims)
	}

	_, err = auth.Signup(ctx, models.SignupRequest{Name: "Other", Mobile: "9876543210", Password: "secret2"})
	var cerr *ConflictError
	if !errors.As(err, &cerr) || cerr.Key != "mobileTaken" || !errors.Is(err, store.ErrConflict) {
		t.Fatalf("duplicate signup: %v", err)
	}

	if _, err := auth.Login(ctx, models.LoginRequest{Mobile: "9876543210", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}

	logged, err := auth.Login(ctx, models.LoginRequest{Mobile: "9876543210", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := auth.Refresh(ctx, logged.RefreshToken)
	if err != nil || refreshed.Token == "" || refreshed.User.ID != signed.User.ID {
		t.Fatalf("refresh: %v %+v", err, refreshed)
	}

	if err := auth.Logout(ctx, signed.User.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.Refresh(ctx, logged.RefreshToken); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("refresh after logout: %v", err)
	}
}

func TestRefreshExpiredSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	auth := newAuth(st, nil)
	resp, err := auth.Signup(ctx, models.SignupRequest{Name: "A", Mobile: "9876543210", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := auth.Refresh(ctx, resp.RefreshToken); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	auth := newAuth(st, nil)
	resp, err := auth.Signup(ctx, models.SignupRequest{Name: "A", Mobile: "9876543210", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	err = auth.ChangePassword(ctx, resp.User.ID, models.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "secret2"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password: %v", err)
	}
	err = auth.ChangePassword(ctx, resp.User.ID, models.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, err := auth.Login(ctx, models.LoginRequest{Mobile: "9876543210", Password: "secret2"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestTOTPFlowWithEncryptedSecret(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	key := []byte(strings.Repeat("k", 32))
	auth := newAuth(st, key)

	resp, err := auth.Signup(ctx, models.SignupRequest{Name: "A", Mobile: "9876543210", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	setup, err := auth.SetupTOTP(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	stored, _ := st.GetUserByID(ctx, resp.User.ID)
	if !strings.HasPrefix(stored.TOTPSecret, "enc:") || strings.Contains(stored.TOTPSecret, setup.Secret) {
		t.Fatalf("secret stored in clear: %q", stored.TOTPSecret)
	}

	if err := auth.EnableTOTP(ctx, resp.User.ID, "000000"); !errors.Is(err, ErrInvalidTOTP) {
		t.Fatalf("bad code accepted: %v", err)
	}
	code, err := totp.GenerateCode(setup.Secret, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := auth.EnableTOTP(ctx, resp.User.ID, code); err != nil {
		t.Fatalf("enable: %v", err)
	}

	_, err = auth.Login(ctx, models.LoginRequest{Mobile: "9876543210", Password: "secret1"})
	if !errors.Is(err, ErrTOTPRequired) {
		t.Fatalf("expected 2FA required, got %v", err)
	}
	if _, err := auth.Login(ctx, models.LoginRequest{Mobile: "9876543210", Password: "secret1", TOTPCode: code}); err != nil {
		t.Fatalf("login with code: %v", err)
	}

	if err := auth.DisableTOTP(ctx, resp.User.ID, code); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if _, err := auth.Login(ctx, models.LoginRequest{Mobile: "9876543210", Password: "secret1"}); err != nil {
		t.Fatalf("login after disable: %v", err)
	}
}
