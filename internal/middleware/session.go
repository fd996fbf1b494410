package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/logging"
)

const (
	sessionIssuer = "cinesuggest-web"
	localSession  = "sessionId"
)

// SessionClaims is the payload of the session cookie
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionMiddleware gives every browser a signed session cookie.
// A missing, expired or tampered cookie starts a new session.
type SessionMiddleware struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewSessionMiddleware(cfg *config.SessionConfig) *SessionMiddleware {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionMiddleware{
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        ttl,
		secure:     cfg.Secure,
	}
}

// Handler resolves the session id and stores it in c.Locals
func (m *SessionMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, err := m.parse(c.Cookies(m.cookieName))
		if err != nil {
			sessionID = uuid.NewString()
			token, err := m.GenerateToken(sessionID)
			if err != nil {
				logging.Error().Err(err).Msg("failed to sign session cookie")
				return err
			}
			c.Cookie(&fiber.Cookie{
				Name:     m.cookieName,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(m.ttl),
				HTTPOnly: true,
				Secure:   m.secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(localSession, sessionID)
		return c.Next()
	}
}

func (m *SessionMiddleware) parse(tokenString string) (string, error) {
	if tokenString == "" {
		return "", jwt.ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.SessionID, nil
}

// GetSessionID extracts the session ID from context
func GetSessionID(c *fiber.Ctx) string {
	if sessionID, ok := c.Locals(localSession).(string); ok {
		return sessionID
	}
	return ""
}

// GenerateToken signs a session cookie value (useful for testing)
func (m *SessionMiddleware) GenerateToken(sessionID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
