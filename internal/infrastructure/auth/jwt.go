package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/biztime"
)

// SessionClaims is the payload of the session cookie token.
type SessionClaims struct {
	UserID   uint                   `json:"user_id"`
	Username string                 `json:"username"`
	Role     authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies the HMAC-signed session tokens stored in
// the HTTP-only session cookie. There is a single token kind; the form UI
// has no refresh flow.
type JWTService struct {
	secret          []byte
	sessionExpHours int
}

func NewJWTService(secret string, sessionExpHours int) *JWTService {
	if sessionExpHours <= 0 {
		sessionExpHours = 24
	}
	return &JWTService{
		secret:          []byte(secret),
		sessionExpHours: sessionExpHours,
	}
}

func (s *JWTService) Generate(userID uint, username string, role authorization.UserRole) (string, error) {
	now := biztime.NowUTC()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.sessionExpHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid session token")
}

// SessionTTL reports the configured session lifetime, used to set the
// cookie's max age.
func (s *JWTService) SessionTTL() time.Duration {
	return time.Duration(s.sessionExpHours) * time.Hour
}
