package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
)

var (
	configuredJWTSecret string
	accessCodeLength    = 8
)

// SetSecurityConfig seeds the JWT secret and portal access-code length from
// the loaded configuration. The JWT_SECRET env var still wins.
func SetSecurityConfig(jwtSecret string, codeLen int) {
	if jwtSecret != "" {
		configuredJWTSecret = jwtSecret
	}
	if codeLen > 0 {
		accessCodeLength = codeLen
	}
}

func getJWTSecret() string {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = getenv("DEALDESK_JWT_SECRET", "")
	}
	if secret == "" {
		secret = configuredJWTSecret
	}
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return secret
}

func signHS256JWT(secret string, claims map[string]any) (string, error) {
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	headB, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadB, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString(headB) + "." + enc.EncodeToString(payloadB)

	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(unsigned))
	sig := enc.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
