package models

import "time"

// ============================================================================
// USER MODEL
// ============================================================================

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Mobile            string    `json:"mobile"`
	LoginID           string    `json:"login_id"`
	PreferredLanguage string    `json:"preferred_language"`
	HasUPIQR          bool      `json:"has_upi_qr"`
	PasswordHash      string    `json:"-"` // Never expose in JSON
	TOTPSecret        string    `json:"-"` // Never expose in JSON
	TOTPEnabled       bool      `json:"totp_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UPIQR is the payment QR shown to guests. Image is a data URI.
type UPIQR struct {
	Image   string `json:"image"`
	Payload string `json:"payload,omitempty"`
}

type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

type SignupRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// ============================================================================
// PROFILE, PASSWORD & 2FA
// ============================================================================

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type UpdateLanguageRequest struct {
	Language string `json:"language"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qr_code"`
}

type VerifyTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// ============================================================================
// UPI QR
// ============================================================================

type UploadQRRequest struct {
	Image string `json:"image"`
}

type GenerateQRRequest struct {
	VPA       string  `json:"vpa"`
	PayeeName string  `json:"payee_name" binding:"required"`
	Amount    float64 `json:"amount,omitempty"`
}
