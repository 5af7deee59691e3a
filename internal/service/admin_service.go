package service

import (
	"context"
	"errors"
	"strings"

	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"
	"leadbook/internal/policy"
	"leadbook/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService covers account management and the administrative aggregates.
// Every operation is gated by CanManageAccounts.
type AdminService interface {
	ListUsersWithCounts(ctx context.Context, p policy.Principal) ([]dto.UserWithCount, error)
	CreateUser(ctx context.Context, p policy.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, p policy.Principal, id uuid.UUID) error
	Stats(ctx context.Context, p policy.Principal) (*dto.StatsResponse, error)
}

type adminService struct {
	users repository.UserRepository
	leads repository.LeadRepository
}

func NewAdminService(users repository.UserRepository, leads repository.LeadRepository) AdminService {
	return &adminService{users: users, leads: leads}
}

func (s *adminService) ListUsersWithCounts(ctx context.Context, p policy.Principal) ([]dto.UserWithCount, error) {
	if err := policy.CanManageAccounts(p); err != nil {
		return nil, err
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to list users", err)
	}

	// Counts are computed per account, not inside one snapshot: a lead
	// created concurrently with this listing may or may not be counted.
	resp := make([]dto.UserWithCount, len(users))
	for i := range users {
		count, err := s.leads.CountByAddedBy(ctx, users[i].Username)
		if err != nil {
			return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to count leads", err)
		}
		resp[i] = dto.UserWithCount{
			UserResponse: UserToResponse(&users[i]),
			LeadCount:    count,
		}
	}
	return resp, nil
}

func (s *adminService) CreateUser(ctx context.Context, p policy.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := policy.CanManageAccounts(p); err != nil {
		return nil, err
	}

	username := NormalizeUsername(req.Username)
	if username == "" || req.Password == "" || strings.TrimSpace(req.Branch) == "" {
		return nil, domain.E(domain.KindValidation, "username, password, and branch are required")
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.E(domain.KindConflict, "username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "account lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	// Admin-created accounts are always plain users; the sole admin account
	// exists only through the startup seed.
	user := &model.User{
		Username:      username,
		PasswordHash:  string(hash),
		Role:          model.RoleUser,
		Branch:        strings.TrimSpace(req.Branch),
		CanBulkIngest: req.CanBulkIngest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to create user", err)
	}

	resp := UserToResponse(user)
	return &resp, nil
}

func (s *adminService) DeleteUser(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	if err := policy.CanManageAccounts(p); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.E(domain.KindNotFound, "user not found")
		}
		return domain.Wrap(domain.KindStoreUnavailable, "account lookup failed", err)
	}

	if err := policy.CanDeleteAccount(p, *user); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.E(domain.KindNotFound, "user not found")
		}
		return domain.Wrap(domain.KindStoreUnavailable, "failed to delete user", err)
	}
	return nil
}

func (s *adminService) Stats(ctx context.Context, p policy.Principal) (*dto.StatsResponse, error) {
	if err := policy.CanManageAccounts(p); err != nil {
		return nil, err
	}

	totalLeads, err := s.leads.CountAll(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to count leads", err)
	}
	totalUsers, err := s.users.CountByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to count users", err)
	}

	return &dto.StatsResponse{TotalLeads: totalLeads, TotalUsers: totalUsers}, nil
}
