package utils

import (
	"github.com/pquerna/otp/totp"
)

// GenerateTOTPSecret returns the secret and the otpauth:// URL for authenticator apps.
func GenerateTOTPSecret(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Nevta Digital",
		AccountName: accountName,
	})
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

func VerifyTOTP(secret, code string) bool {
	return totp.Validate(code, secret)
}
