package service

import (
	"context"
	"encoding/json"
	"testing"

	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersWithCounts(t *testing.T) {
	users := newStubUserRepo()
	leads := newStubLeadRepo()
	svc := NewAdminService(users, leads)
	ctx := context.Background()

	users.mustAdd("sam", model.RoleUser, "east", false)
	users.mustAdd("rita", model.RoleUser, "west", false)

	leadSvc := NewLeadService(leads)
	for i := 0; i < 3; i++ {
		_, err := leadSvc.Create(ctx, samPrincipal(), dto.CreateLeadRequest{Name: "x"})
		require.NoError(t, err)
	}

	resp, err := svc.ListUsersWithCounts(ctx, adminPrincipal())
	require.NoError(t, err)
	require.Len(t, resp, 2)

	counts := make(map[string]int64)
	for _, u := range resp {
		counts[u.Username] = u.LeadCount
	}
	assert.Equal(t, int64(3), counts["sam"])
	assert.Equal(t, int64(0), counts["rita"])

	// The serialized listing must never contain a credential field.
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "hash")

	// Non-admins get a role denial.
	_, err = svc.ListUsersWithCounts(ctx, samPrincipal())
	assert.Equal(t, domain.KindForbiddenRole, domain.KindOf(err))
}

func TestCreateUserNormalizesAndConflicts(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, newStubLeadRepo())
	ctx := context.Background()

	resp, err := svc.CreateUser(ctx, adminPrincipal(), dto.CreateUserRequest{
		Username: "  NewBranch ",
		Password: "secret1",
		Branch:   " north ",
	})
	require.NoError(t, err)
	assert.Equal(t, "newbranch", resp.Username)
	assert.Equal(t, "north", resp.Branch)
	// Admin-created accounts are always plain users.
	assert.Equal(t, model.RoleUser, resp.Role)

	// Same username (any casing) conflicts.
	_, err = svc.CreateUser(ctx, adminPrincipal(), dto.CreateUserRequest{
		Username: "NEWBRANCH",
		Password: "secret2",
		Branch:   "south",
	})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewAdminService(newStubUserRepo(), newStubLeadRepo())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, adminPrincipal(), dto.CreateUserRequest{Username: "a", Password: "b"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateUser(ctx, samPrincipal(), dto.CreateUserRequest{
		Username: "a", Password: "b", Branch: "c",
	})
	assert.Equal(t, domain.KindForbiddenRole, domain.KindOf(err))
}

func TestDeleteUserProtectsAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAdminService(users, newStubLeadRepo())
	ctx := context.Background()

	adminAcct := users.mustAdd("admin", model.RoleAdmin, "main", false)
	userAcct := users.mustAdd("sam", model.RoleUser, "east", false)

	// Even the admin cannot delete an admin account.
	err := svc.DeleteUser(ctx, adminPrincipal(), adminAcct.ID)
	assert.Equal(t, domain.KindProtectedAdmin, domain.KindOf(err))

	require.NoError(t, svc.DeleteUser(ctx, adminPrincipal(), userAcct.ID))

	// Deleting again: NotFound.
	err = svc.DeleteUser(ctx, adminPrincipal(), userAcct.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// Unknown id: NotFound.
	err = svc.DeleteUser(ctx, adminPrincipal(), uuid.New())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestStats(t *testing.T) {
	users := newStubUserRepo()
	leads := newStubLeadRepo()
	svc := NewAdminService(users, leads)
	ctx := context.Background()

	users.mustAdd("admin", model.RoleAdmin, "main", false)
	users.mustAdd("sam", model.RoleUser, "east", false)
	users.mustAdd("rita", model.RoleUser, "west", false)

	leadSvc := NewLeadService(leads)
	for i := 0; i < 5; i++ {
		_, err := leadSvc.Create(ctx, samPrincipal(), dto.CreateLeadRequest{Name: "x"})
		require.NoError(t, err)
	}

	resp, err := svc.Stats(ctx, adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalLeads)
	// The admin account is excluded from the user total.
	assert.Equal(t, int64(2), resp.TotalUsers)

	_, err = svc.Stats(ctx, samPrincipal())
	assert.Equal(t, domain.KindForbiddenRole, domain.KindOf(err))
}
