package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
	"github.com/lovweb/transcript-studio/internal/domain/repositories"
	"github.com/lovweb/transcript-studio/pkg/jwt"
)

// TokenStore keeps revoked access tokens until they expire on their own
type TokenStore interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// Service validates bearer tokens and resolves them to active users. Token
// issuance happens outside this service; it only consumes pre-issued JWTs.
type Service struct {
	userRepo   repositories.UserRepository
	tokens     TokenStore
	jwtManager *jwt.Manager
}

// NewService creates a new auth service
func NewService(userRepo repositories.UserRepository, tokens TokenStore, jwtManager *jwt.Manager) *Service {
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		jwtManager: jwtManager,
	}
}

// ValidateSession checks the access token and returns the owning user
func (s *Service) ValidateSession(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	hash, err := s.jwtManager.HashToken(token)
	if err != nil {
		return nil, err
	}
	if _, revoked, err := s.tokens.Get(ctx, revocationKey(hash)); err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	} else if revoked {
		return nil, entities.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, entities.ErrUserNotActive
	}
	return user, nil
}

// Logout revokes the presented access token until its natural expiry
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		// Already invalid tokens have nothing to revoke.
		return nil
	}

	hash, err := s.jwtManager.HashToken(token)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.tokens.Set(ctx, revocationKey(hash), "revoked", ttl)
}

func revocationKey(hash string) string {
	return "auth:revoked:" + hash
}
