package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/umsproject/ums/internal/db/models"
)

// Users finds users by login name.
type Users interface {
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}

// Permissions lists the active permissions granted by a role.
type Permissions interface {
	GetByRoleID(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error)
}

// Service provides authentication and authorization functionality.
type Service struct {
	users       Users
	permissions Permissions
	hasher      *Hasher
	tokens      *Tokens
}

// NewService creates a new auth service.
func NewService(users Users, permissions Permissions, hasher *Hasher, tokens *Tokens) *Service {
	return &Service{
		users:       users,
		permissions: permissions,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Authenticate returns the user when password matches its digest.
func (s *Service) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	match, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password of %s: %w", name, err)
	}

	if !match {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// Scopes returns the names of the active permissions of roleID.
func (s *Service) Scopes(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	permissions, err := s.permissions.GetByRoleID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions of role %s: %w", roleID, err)
	}

	scopes := make([]string, 0, len(permissions))
	for i := range permissions {
		scopes = append(scopes, permissions[i].Name)
	}

	return scopes, nil
}

// Login authenticates the user and issues a token carrying the scopes of its role.
func (s *Service) Login(ctx context.Context, name, password string) (Token, error) {
	user, err := s.Authenticate(ctx, name, password)
	if err != nil {
		log.Warn().Err(err).Str("user", name).Msg("authentication failed")
		return Token{}, err
	}

	if user.RoleID == nil {
		log.Warn().Str("user", name).Msg("user has no role assigned")
		return Token{}, ErrNoRole
	}

	scopes, err := s.Scopes(ctx, *user.RoleID)
	if err != nil {
		return Token{}, err
	}

	access, err := s.tokens.Issue(user.Name, scopes)
	if err != nil {
		return Token{}, err
	}

	log.Info().Str("user", user.Name).Strs("scopes", scopes).Msg("user successfully logged in")

	return Token{AccessToken: access, TokenType: TokenType}, nil
}

// Verify returns the user of token after checking that it grants every required scope
// and that the user is still active.
func (s *Service) Verify(ctx context.Context, token string, required ...string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		log.Error().Err(err).Msg("error decoding or validating token")
		return nil, &ChallengeError{Err: err, Scopes: required}
	}

	user, err := s.users.GetUserByName(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if user == nil {
		log.Warn().Str("user", claims.Subject).Msg("token subject does not exist")
		return nil, &ChallengeError{Err: ErrCredentials, Scopes: required}
	}

	for _, scope := range required {
		if !slices.Contains(claims.Scopes, scope) {
			log.Warn().Str("user", user.Name).Str("scope", scope).Msg("user does not have enough permissions")
			return nil, &ChallengeError{Err: ErrInsufficientScope, Scopes: required}
		}
	}

	if !user.Usable() {
		return nil, ErrInactiveUser
	}

	return user, nil
}
