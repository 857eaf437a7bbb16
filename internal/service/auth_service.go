package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/repository"
	"blkout_community_go/pkg/hash"
	"blkout_community_go/pkg/log"
	"blkout_community_go/pkg/token"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const tokenBlacklistPrefix = "token_blacklist:"

// AuthService handles moderator login and token lifecycle. The moderation
// queue is admin-only; everything else on the API is public.
type AuthService interface {
	Login(username, password string) (*LoginResult, error)
	Refresh(refreshToken string) (*LoginResult, error)
	// Logout blacklists the access token in Redis for its remaining
	// lifetime, after which it would have expired anyway.
	Logout(ctx context.Context, accessToken string) error
	GetProfile(username string) (*model.Moderator, error)
	IsTokenBlacklisted(ctx context.Context, accessToken string) (bool, error)
	// EnsureDefaultAdmin seeds the first admin account when the moderators
	// table is empty, so a fresh install can be logged into.
	EnsureDefaultAdmin(username, password string) error
}

// LoginResult carries the issued token pair and the account it belongs to.
type LoginResult struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Moderator    *model.Moderator `json:"moderator"`
}

type authService struct {
	moderatorRepo repository.ModeratorRepository
	jwtManager    *token.JWTManager
	// rdb may be nil in tests; blacklisting is then skipped.
	rdb *redis.Client
}

func NewAuthService(moderatorRepo repository.ModeratorRepository, jwtManager *token.JWTManager, rdb *redis.Client) AuthService {
	return &authService{moderatorRepo: moderatorRepo, jwtManager: jwtManager, rdb: rdb}
}

func (s *authService) Login(username, password string) (*LoginResult, error) {
	if s.moderatorRepo == nil || s.jwtManager == nil {
		return nil, ErrInternal
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	moderator, err := s.moderatorRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a wrong password, so usernames can't be probed.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPasswordHash(password, moderator.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.jwtManager.GenerateToken(moderator.ID, moderator.Username, moderator.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, Moderator: moderator}, nil
}

func (s *authService) Refresh(refreshToken string) (*LoginResult, error) {
	if s.moderatorRepo == nil || s.jwtManager == nil {
		return nil, ErrInternal
	}

	claims, err := s.jwtManager.VerifyToken(refreshToken)
	if err != nil || claims == nil {
		return nil, ErrInvalidCredentials
	}
	if claims.TokenType != token.TokenTypeRefresh {
		return nil, ErrInvalidCredentials
	}

	moderator, err := s.moderatorRepo.FindByUsername(claims.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	access, refresh, err := s.jwtManager.GenerateToken(moderator.ID, moderator.Username, moderator.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: access, RefreshToken: refresh, Moderator: moderator}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if s.jwtManager == nil {
		return ErrInternal
	}

	claims, err := s.jwtManager.VerifyToken(accessToken)
	if err != nil || claims == nil {
		return ErrInvalidCredentials
	}
	if s.rdb == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, tokenBlacklistPrefix+accessToken, "1", ttl).Err(); err != nil {
		return err
	}
	return nil
}

func (s *authService) GetProfile(username string) (*model.Moderator, error) {
	if s.moderatorRepo == nil {
		return nil, ErrInternal
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}

	moderator, err := s.moderatorRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModeratorNotFound
		}
		return nil, err
	}
	return moderator, nil
}

func (s *authService) EnsureDefaultAdmin(username, password string) error {
	if s.moderatorRepo == nil {
		return ErrInternal
	}
	if username == "" || password == "" {
		return nil
	}

	count, err := s.moderatorRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	moderator := &model.Moderator{
		Username:     username,
		PasswordHash: passwordHash,
		DisplayName:  "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := s.moderatorRepo.Create(moderator); err != nil {
		return err
	}
	log.Warnf("seeded default admin account %q, change its password after first login", username)
	return nil
}

// IsTokenBlacklisted is used by the auth middleware.
func (s *authService) IsTokenBlacklisted(ctx context.Context, accessToken string) (bool, error) {
	if s.rdb == nil {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, tokenBlacklistPrefix+accessToken).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
