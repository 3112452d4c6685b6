package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"atelier-store/internal/domain"
	"atelier-store/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenExpiration bounds the admin cookie lifetime; the persisted
	// session itself has no expiry, matching the source behavior.
	TokenExpiration = 24 * time.Hour

	bcryptCost = 10
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Guard is the admin authentication state machine: logged out or
// logged in. Exactly one credential pair is accepted; everything else
// fails without side effects. State is persisted to the durable store
// on every change and restored from it on demand.
type Guard struct {
	email        string
	passwordHash []byte
	jwtSecret    string

	store  store.Store
	logger *zap.Logger
}

// NewGuard creates an admin guard for the configured credential pair.
// The password is hashed once up front so login compares hashes, never
// plaintext.
func NewGuard(st store.Store, email, password, jwtSecret string, logger *zap.Logger) (*Guard, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &Guard{
		email:        email,
		passwordHash: hash,
		jwtSecret:    jwtSecret,
		store:        st,
		logger:       logger,
	}, nil
}

// Login checks the credential pair and, on success, persists the
// logged-in session and returns a signed token for the admin cookie.
func (g *Guard) Login(ctx context.Context, sessionID, email, password string) (string, error) {
	if email != g.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	session := domain.AdminSession{IsLoggedIn: true, Email: email}
	if err := g.persist(ctx, sessionID, session); err != nil {
		return "", err
	}

	token, err := g.signToken(email)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	g.logger.Info("Admin logged in", zap.String("email", email))
	return token, nil
}

// Logout transitions to logged out unconditionally and persists it.
func (g *Guard) Logout(ctx context.Context, sessionID string) error {
	if err := g.persist(ctx, sessionID, domain.AdminSession{IsLoggedIn: false}); err != nil {
		return err
	}
	g.logger.Info("Admin logged out")
	return nil
}

// Session restores the persisted admin session. A missing or corrupt
// snapshot is treated as logged out, never as an error.
func (g *Guard) Session(ctx context.Context, sessionID string) domain.AdminSession {
	snapshot, err := g.store.Get(ctx, store.AdminSessionKey(sessionID))
	if err != nil {
		if err != store.ErrNotFound {
			g.logger.Warn("Failed to read admin session, treating as logged out", zap.Error(err))
		}
		return domain.AdminSession{IsLoggedIn: false}
	}

	var session domain.AdminSession
	if err := json.Unmarshal(snapshot, &session); err != nil {
		g.logger.Warn("Corrupt admin session snapshot, treating as logged out", zap.Error(err))
		return domain.AdminSession{IsLoggedIn: false}
	}

	return session
}

// ValidateToken checks an admin token and returns the email it was
// issued for.
func (g *Guard) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(g.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse admin token: %w", err)
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	return email, nil
}

func (g *Guard) persist(ctx context.Context, sessionID string, session domain.AdminSession) error {
	snapshot, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize admin session: %w", err)
	}
	if err := g.store.Set(ctx, store.AdminSessionKey(sessionID), snapshot); err != nil {
		return fmt.Errorf("failed to persist admin session: %w", err)
	}
	return nil
}

func (g *Guard) signToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(TokenExpiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(g.jwtSecret))
}
