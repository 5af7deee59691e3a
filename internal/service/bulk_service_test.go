package service

import (
	"context"
	"fmt"
	"testing"

	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"
	"leadbook/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaderPrincipal() policy.Principal {
	return policy.Principal{ID: "u9", Username: "loader", Role: model.RoleUser, Branch: "east", CanBulkIngest: true}
}

func TestBulkIngestRequiresCapability(t *testing.T) {
	repo := newStubLeadRepo()
	svc := NewBulkService(repo)

	req := dto.BulkIngestRequest{Leads: []dto.BulkLeadItem{{Name: "a"}, {Name: "b"}}}

	// Role does not matter — only the capability does. Zero rows persisted.
	for _, p := range []policy.Principal{samPrincipal(), adminPrincipal()} {
		_, err := svc.Ingest(context.Background(), p, req)
		assert.Equal(t, domain.KindRestrictedOperation, domain.KindOf(err))
	}
	assert.Empty(t, repo.leads)
}

func TestBulkIngestEmptyBatch(t *testing.T) {
	svc := NewBulkService(newStubLeadRepo())
	_, err := svc.Ingest(context.Background(), loaderPrincipal(), dto.BulkIngestRequest{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestBulkIngestPartialFailure(t *testing.T) {
	repo := newStubLeadRepo()
	repo.failOnName = "BAD"
	svc := NewBulkService(repo)

	items := []dto.BulkLeadItem{
		{Name: "one"}, {Name: "two"}, {Name: "BAD"}, {Name: "four"}, {Name: "five"},
	}
	resp, err := svc.Ingest(context.Background(), loaderPrincipal(), dto.BulkIngestRequest{Leads: items})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Inserted)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	// Row numbers are 1-based.
	assert.Contains(t, resp.Errors[0], "Row 3")

	// The store holds exactly the valid rows, all attributed to the caller.
	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, l := range all {
		assert.Equal(t, "loader", l.AddedBy)
		assert.NotEqual(t, "BAD", l.Name)
	}
}

func TestBulkIngestNormalization(t *testing.T) {
	repo := newStubLeadRepo()
	svc := NewBulkService(repo)

	resp, err := svc.Ingest(context.Background(), loaderPrincipal(), dto.BulkIngestRequest{
		Leads: []dto.BulkLeadItem{{
			Name:      "  Asha  ",
			Board:     " cbse ",
			Area:      " navrangpura ",
			Reference: "  Ravi-east ",
		}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Inserted)

	all, _ := repo.ListAll(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "Asha", all[0].Name)
	assert.Equal(t, "CBSE", all[0].Board)
	assert.Equal(t, "NAVRANGPURA", all[0].Area)
	// Reference is trusted verbatim (trimmed) — the resolver is bypassed on
	// purpose, so the branch is NOT appended.
	assert.Equal(t, "Ravi-east", all[0].Reference)
}

func TestBulkIngestErrorsCappedAtTen(t *testing.T) {
	repo := newStubLeadRepo()
	repo.failOnName = "BAD"
	svc := NewBulkService(repo)

	var items []dto.BulkLeadItem
	for i := 0; i < 12; i++ {
		items = append(items, dto.BulkLeadItem{Name: "BAD"})
	}
	items = append(items, dto.BulkLeadItem{Name: "ok"})

	resp, err := svc.Ingest(context.Background(), loaderPrincipal(), dto.BulkIngestRequest{Leads: items})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Inserted)
	assert.Equal(t, 12, resp.Failed)
	// Only the first 10 row errors are surfaced.
	assert.Len(t, resp.Errors, 10)
	assert.Equal(t, fmt.Sprintf("Bulk upload complete: %d inserted, %d failed", 1, 12), resp.Message)
}

func TestBulkIngestRowValidation(t *testing.T) {
	repo := newStubLeadRepo()
	svc := NewBulkService(repo)

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	resp, err := svc.Ingest(context.Background(), loaderPrincipal(), dto.BulkIngestRequest{
		Leads: []dto.BulkLeadItem{
			{Name: string(long)}, // exceeds max=200 → row error, not batch error
			{Name: "fine"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Inserted)
	assert.Equal(t, 1, resp.Failed)
	assert.Contains(t, resp.Errors[0], "Row 1")
}
