package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"leadbook/internal/config"
	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"
	"leadbook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

// NormalizeUsername applies the account-store normalization rule: lowercase,
// trimmed. Used at login, account creation and anywhere a username is
// compared.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, NormalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password — never reveal which one failed.
			return nil, domain.E(domain.KindUnauthenticated, "invalid username or password")
		}
		return nil, domain.Wrap(domain.KindStoreUnavailable, "account lookup failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.E(domain.KindUnauthenticated, "invalid username or password")
	}

	return s.tokenResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.E(domain.KindUnauthenticated, "refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "malformed token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, domain.E(domain.KindUnauthenticated, "malformed token")
	}

	// Re-read the account so a deleted user cannot refresh indefinitely.
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.E(domain.KindUnauthenticated, "account no longer exists")
		}
		return nil, domain.Wrap(domain.KindStoreUnavailable, "account lookup failed", err)
	}

	return s.tokenResponse(user)
}

func (s *authService) tokenResponse(user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         UserToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":         user.ID.String(),
		"username":        user.Username,
		"role":            user.Role,
		"user_branch":     user.Branch,
		"can_bulk_ingest": user.CanBulkIngest,
		"exp":             time.Now().Add(duration).Unix(),
		"iat":             time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// UserToResponse projects an account for clients. The password hash stays
// behind on the model.
func UserToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID.String(),
		Username:      u.Username,
		Role:          u.Role,
		Branch:        u.Branch,
		CanBulkIngest: u.CanBulkIngest,
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
