package identity

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL   = 24 * time.Hour
	magicLinkTTL = 15 * time.Minute

	purposeSession   = "session"
	purposeMagicLink = "magic_link"
)

type Claims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Branch  string `json:"branch,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return []byte(secret), nil
}

// GenerateSessionToken issues the 24 hour token set as the access_token
// cookie after sign-in.
func GenerateSessionToken(u User) (string, error) {
	return generateToken(u, purposeSession, sessionTTL)
}

// GenerateMagicLinkToken issues the short-lived token embedded in a
// passwordless sign-in email. It is only accepted by VerifyMagicLinkToken,
// never as a session.
func GenerateMagicLinkToken(u User) (string, error) {
	return generateToken(u, purposeMagicLink, magicLinkTTL)
}

func generateToken(u User, purpose string, ttl time.Duration) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID:  u.ID,
		Email:   u.Email,
		Role:    string(u.Role),
		Branch:  u.Branch,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseSessionToken validates a session token and rejects magic-link
// tokens presented as sessions.
func ParseSessionToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, purposeSession)
}

// VerifyMagicLinkToken validates a magic-link token from the emailed URL.
func VerifyMagicLinkToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, purposeMagicLink)
}

func parseToken(tokenStr, purpose string) (*Claims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return key, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractAccessToken reads the session token from the access_token
// cookie, falling back to the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
