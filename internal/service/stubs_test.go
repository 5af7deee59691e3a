package service

import (
	"context"
	"errors"
	"strings"

	"leadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubLeadRepo struct {
	leads map[uuid.UUID]model.Lead
	order []uuid.UUID
	// failOnName makes Create reject any lead whose Name matches, to
	// exercise per-row failure paths.
	failOnName string
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{leads: make(map[uuid.UUID]model.Lead)}
}

func (r *stubLeadRepo) Create(_ context.Context, l *model.Lead) error {
	if r.failOnName != "" && l.Name == r.failOnName {
		return errors.New("store rejected row")
	}
	l.ID = uuid.New()
	r.leads[l.ID] = *l
	r.order = append(r.order, l.ID)
	return nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := l
	return &cp, nil
}

func (r *stubLeadRepo) Save(_ context.Context, l *model.Lead) error {
	r.leads[l.ID] = *l
	return nil
}

func (r *stubLeadRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.leads[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *stubLeadRepo) ListAll(_ context.Context) ([]model.Lead, error) {
	out := make([]model.Lead, 0, len(r.leads))
	for _, id := range r.order {
		if l, ok := r.leads[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) ListByAddedBy(_ context.Context, username string) ([]model.Lead, error) {
	var out []model.Lead
	for _, id := range r.order {
		if l, ok := r.leads[id]; ok && l.AddedBy == username {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.leads)), nil
}

func (r *stubLeadRepo) CountByAddedBy(_ context.Context, username string) (int64, error) {
	var n int64
	for _, l := range r.leads {
		if l.AddedBy == username {
			n++
		}
	}
	return n, nil
}

func (r *stubLeadRepo) DistinctSchools(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, l := range r.leads {
		if !seen[l.School] {
			seen[l.School] = true
			out = append(out, l.School)
		}
	}
	return out, nil
}

type stubUserRepo struct {
	users map[uuid.UUID]model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := u
	return &cp, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// mustAdd seeds a stub account and returns it.
func (r *stubUserRepo) mustAdd(username, role, branch string, bulk bool) model.User {
	u := model.User{
		ID:            uuid.New(),
		Username:      strings.ToLower(username),
		PasswordHash:  "x",
		Role:          role,
		Branch:        branch,
		CanBulkIngest: bulk,
	}
	r.users[u.ID] = u
	return u
}
