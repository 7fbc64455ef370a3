// Package token verifies the shared site password and issues compact
// HS256-signed session tokens. There is no server-side session state:
// possession of a token with a valid signature and unexpired exp claim is
// the whole authorization model.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oakvale/wedding-backend/pkg/objects"
)

const (
	// SubjectGuest is the sub claim for every visitor: the site has one
	// shared password, not per-user identities.
	SubjectGuest = "wedding-guest"

	// CookieName carries the session token in browsers.
	CookieName = "wedding_auth"

	// TTLSeconds is the token lifetime.
	TTLSeconds = 86400

	// passwordSalt keys the password digest. A fixed salt is fine here:
	// there is exactly one password for the whole site, so rainbow-table
	// resistance per user is not a concern.
	passwordSalt = "oakvale-wedding-site"
)

var timeNow = time.Now

// ConfigError reports a missing configuration value.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Key)
}

// SecretSource tags where the signing secret came from, so callers and
// tests can tell the degraded fallback mode from the intended one.
type SecretSource int

const (
	SecretDedicated SecretSource = iota
	SecretFallback
)

func (s SecretSource) String() string {
	if s == SecretFallback {
		return "fallback"
	}
	return "dedicated"
}

type Secret struct {
	Source SecretSource
	Value  []byte
}

// Payload is the signed claim set.
type Payload struct {
	Sub string `json:"sub"`
	Iat int64  `json:"iat"`
	Exp int64  `json:"exp"`
}

// HashPassword digests a password case-insensitively: the couple hands the
// password out in person and guests should not be locked out by caps lock.
func HashPassword(password string) string {
	mac := hmac.New(sha256.New, []byte(passwordSalt))
	mac.Write([]byte(strings.ToLower(password)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPassword compares a plaintext password against the stored hex
// digest in constant time.
func VerifyPassword(password, expectedHex string) bool {
	computed := HashPassword(password)
	return hmac.Equal([]byte(computed), []byte(strings.ToLower(expectedHex)))
}

// PasswordHash reads the configured site password digest.
func PasswordHash() (string, error) {
	hash := objects.Config.GetString("site.password_hash")
	if hash == "" {
		return "", &ConfigError{Key: "SITE_PASSWORD_HASH"}
	}
	return strings.ToLower(hash), nil
}

// ResolveSecret picks the token signing secret: JWT_SECRET when set,
// otherwise the password hash itself. The fallback keeps a half-configured
// deployment working instead of locking everyone out.
func ResolveSecret() (Secret, error) {
	if secret := objects.Config.GetString("site.jwt_secret"); secret != "" {
		return Secret{Source: SecretDedicated, Value: []byte(secret)}, nil
	}
	hash, err := PasswordHash()
	if err != nil {
		return Secret{}, &ConfigError{Key: "JWT_SECRET"}
	}
	return Secret{Source: SecretFallback, Value: []byte(hash)}, nil
}

// Create issues a fresh token for subject, valid for 24 hours.
func Create(subject string) (string, error) {
	if subject == "" {
		subject = SubjectGuest
	}
	secret, err := ResolveSecret()
	if err != nil {
		return "", err
	}

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	iat := timeNow().Unix()
	payload, err := json.Marshal(Payload{Sub: subject, Iat: iat, Exp: iat + TTLSeconds})
	if err != nil {
		return "", err
	}

	msg := b64(header) + "." + b64(payload)
	return msg + "." + sign(msg, secret.Value), nil
}

// Verify checks a token's structure, signature, and expiry. It returns nil
// for anything short of a fully valid token; "not authenticated" is a
// normal outcome here, not an error.
func Verify(tok string) *Payload {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil
	}

	secret, err := ResolveSecret()
	if err != nil {
		return nil
	}

	expected := sign(parts[0]+"."+parts[1], secret.Value)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}
	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if payload.Exp < timeNow().Unix() {
		return nil
	}
	return &payload
}

// Extract pulls a token from request headers. A Bearer Authorization
// header wins over the session cookie.
func Extract(get func(string) string) string {
	if auth := get("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimSpace(auth[len("Bearer "):])
		}
	}
	cookies := get("Cookie")
	marker := CookieName + "="
	idx := strings.Index(cookies, marker)
	if idx < 0 {
		return ""
	}
	value := cookies[idx+len(marker):]
	if semi := strings.IndexByte(value, ';'); semi >= 0 {
		value = value[:semi]
	}
	return strings.TrimSpace(value)
}

// VerifyRequest extracts and verifies in one step.
func VerifyRequest(get func(string) string) *Payload {
	tok := Extract(get)
	if tok == "" {
		return nil
	}
	return Verify(tok)
}

func sign(msg string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(msg))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func b64(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
