package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// CookieName is the browser cookie carrying the signed session identifier.
const CookieName = "session"

// CookieCodec signs session identifiers for cookie delivery. The cookie value
// is "<id>.<base64url hmac>"; a tampered or unsigned value decodes as absent.
type CookieCodec struct {
	secret []byte
}

// NewCookieCodec returns a codec keyed with SESSION_SECRET.
func NewCookieCodec(secret string) CookieCodec {
	return CookieCodec{secret: []byte(secret)}
}

// Encode returns the signed cookie value for a session identifier.
func (cc CookieCodec) Encode(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(cc.sign(id))
}

// Decode verifies a cookie value and returns the session identifier.
func (cc CookieCodec) Decode(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(got, cc.sign(id)) {
		return "", false
	}
	return id, true
}

func (cc CookieCodec) sign(id string) []byte {
	mac := hmac.New(sha256.New, cc.secret)
	mac.Write([]byte(id))
	return mac.Sum(nil)
}
