// Package auth validates credentials and issues and resolves the signed
// bearer tokens used by the API. Tokens are stateless HS256 JWTs whose
// subject is the user id; nothing is stored server side.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/recipe-api/internal/models"
	"github.com/crucial707/recipe-api/internal/repo"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized covers every way a bearer token can fail to resolve.
	ErrUnauthorized = errors.New("unauthorized")
)

// DefaultTokenTTL is used when the configured lifetime is not positive.
const DefaultTokenTTL = 24 * time.Hour

// Compared against when the email is unknown so both failure paths cost a
// bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recipe-api-dummy-password"), bcrypt.DefaultCost)

// Claims is the token payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service implements credential checks and token handling on top of a UserStore.
type Service struct {
	Users  repo.UserStore
	Secret []byte
	TTL    time.Duration

	// now is overridden in tests.
	now func() time.Time
}

// NewService returns a Service signing with secret. ttl <= 0 selects DefaultTokenTTL.
func NewService(users repo.UserStore, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{Users: users, Secret: secret, TTL: ttl, now: time.Now}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// ValidateCredentials returns the user owning email when password matches.
// Any mismatch yields ErrInvalidCredentials; store failures are returned as is.
func (s *Service) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a token for user that expires after the service TTL.
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := s.clock()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ResolveToken verifies tokenStr and loads the user it names. Invalid,
// expired or orphaned tokens yield ErrUnauthorized.
func (s *Service) ResolveToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil || claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.Users.GetByID(ctx, claims.Subject)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// Register hashes password and stores a new user.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.Users.Create(ctx, email, string(hash), firstName, lastName)
}
