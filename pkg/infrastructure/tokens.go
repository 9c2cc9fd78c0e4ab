package infrastructure

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HS256Verifier verifies bearer tokens issued by the external identity
// provider (HS256 JWTs over a shared secret). This service only consumes
// tokens; it never issues them.
type HS256Verifier struct {
	secret []byte
}

func NewHS256Verifier(secret string) *HS256Verifier {
	return &HS256Verifier{secret: []byte(secret)}
}

type tokenClaims struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

func (v *HS256Verifier) Verify(tokenString string) (uuid.UUID, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return uuid.Nil, errors.New("invalid token format")
	}
	signingInput := parts[0] + "." + parts[1]
	if !verifyHS256(signingInput, parts[2], v.secret) {
		return uuid.Nil, errors.New("invalid token signature")
	}
	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return uuid.Nil, err
	}
	var claims tokenClaims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return uuid.Nil, err
	}
	if claims.Exp > 0 && time.Now().UTC().Unix() > claims.Exp {
		return uuid.Nil, errors.New("token expired")
	}
	userID, err := uuid.Parse(claims.Sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid subject claim")
	}
	return userID, nil
}

func signHS256(input string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func verifyHS256(input, signature string, secret []byte) bool {
	expected := signHS256(input, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}
