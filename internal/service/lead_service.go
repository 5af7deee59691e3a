package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"
	"leadbook/internal/policy"
	"leadbook/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadService interface {
	Create(ctx context.Context, p policy.Principal, req dto.CreateLeadRequest) (*dto.LeadResponse, error)
	ListMine(ctx context.Context, p policy.Principal) (*dto.LeadListResponse, error)
	ListAll(ctx context.Context, p policy.Principal) (*dto.LeadListResponse, error)
	Update(ctx context.Context, p policy.Principal, id uuid.UUID, req dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error
	Schools(ctx context.Context, p policy.Principal) ([]dto.SchoolOption, error)
}

type leadService struct {
	leads repository.LeadRepository
}

func NewLeadService(leads repository.LeadRepository) LeadService {
	return &leadService{leads: leads}
}

func (s *leadService) Create(ctx context.Context, p policy.Principal, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := policy.CanCreateLead(p); err != nil {
		return nil, err
	}

	lead := &model.Lead{
		Name:         strings.TrimSpace(req.Name),
		Std:          strings.TrimSpace(req.Std),
		School:       strings.TrimSpace(req.School),
		Board:        strings.TrimSpace(req.Board),
		MotherMobile: strings.TrimSpace(req.MotherMobile),
		FatherMobile: strings.TrimSpace(req.FatherMobile),
		Address:      strings.TrimSpace(req.Address),
		Area:         strings.TrimSpace(req.Area),
		Reference: policy.Reference(policy.RefDerived, policy.RefInput{
			ReferrerName: req.ReferrerName,
			Branch:       p.Branch,
			Create:       true,
		}),
		AddedBy: p.Username,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to save lead", err)
	}
	resp := leadToResponse(lead)
	return &resp, nil
}

func (s *leadService) ListMine(ctx context.Context, p policy.Principal) (*dto.LeadListResponse, error) {
	if err := policy.CanListOwn(p); err != nil {
		return nil, err
	}
	leads, err := s.leads.ListByAddedBy(ctx, p.Username)
	if err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to list leads", err)
	}
	return leadListResponse(leads), nil
}

func (s *leadService) ListAll(ctx context.Context, p policy.Principal) (*dto.LeadListResponse, error) {
	if err := policy.CanListAll(p); err != nil {
		return nil, err
	}
	leads, err := s.leads.ListAll(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to list leads", err)
	}
	return leadListResponse(leads), nil
}

func (s *leadService) Update(ctx context.Context, p policy.Principal, id uuid.UUID, req dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := s.findLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModify(p, *lead); err != nil {
		return nil, err
	}

	// One rule for every plain field: omitted (nil) keeps the stored value,
	// a provided value overwrites it — even when empty.
	setIfProvided(&lead.Name, req.Name)
	setIfProvided(&lead.Std, req.Std)
	setIfProvided(&lead.School, req.School)
	setIfProvided(&lead.Board, req.Board)
	setIfProvided(&lead.MotherMobile, req.MotherMobile)
	setIfProvided(&lead.FatherMobile, req.FatherMobile)
	setIfProvided(&lead.Address, req.Address)
	setIfProvided(&lead.Area, req.Area)

	// AddedBy is immutable; only the reference is recomputed, and only when
	// a non-empty referrer name was supplied.
	lead.Reference = policy.Reference(policy.RefDerived, policy.RefInput{
		ReferrerName: req.ReferrerName,
		Branch:       p.Branch,
		Existing:     lead.Reference,
		Create:       false,
	})

	if err := s.leads.Save(ctx, lead); err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to save lead", err)
	}
	resp := leadToResponse(lead)
	return &resp, nil
}

func (s *leadService) Delete(ctx context.Context, p policy.Principal, id uuid.UUID) error {
	lead, err := s.findLead(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanModify(p, *lead); err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.E(domain.KindNotFound, "lead not found")
		}
		return domain.Wrap(domain.KindStoreUnavailable, "failed to delete lead", err)
	}
	return nil
}

func (s *leadService) Schools(ctx context.Context, p policy.Principal) ([]dto.SchoolOption, error) {
	if err := policy.CanListOwn(p); err != nil {
		return nil, err
	}
	schools, err := s.leads.DistinctSchools(ctx)
	if err != nil {
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to list schools", err)
	}

	options := make([]dto.SchoolOption, 0, len(schools))
	for _, name := range schools {
		if strings.TrimSpace(name) == "" {
			continue
		}
		options = append(options, dto.SchoolOption{Name: name})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options, nil
}

func (s *leadService) findLead(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.E(domain.KindNotFound, "lead not found")
		}
		return nil, domain.Wrap(domain.KindStoreUnavailable, "failed to load lead", err)
	}
	return lead, nil
}

func setIfProvided(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func leadToResponse(l *model.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:           l.ID.String(),
		Name:         l.Name,
		Std:          l.Std,
		School:       l.School,
		Board:        l.Board,
		MotherMobile: l.MotherMobile,
		FatherMobile: l.FatherMobile,
		Address:      l.Address,
		Area:         l.Area,
		Reference:    l.Reference,
		AddedBy:      l.AddedBy,
		CreatedAt:    l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func leadListResponse(leads []model.Lead) *dto.LeadListResponse {
	resp := &dto.LeadListResponse{
		Count: len(leads),
		Leads: make([]dto.LeadResponse, len(leads)),
	}
	for i := range leads {
		resp.Leads[i] = leadToResponse(&leads[i])
	}
	return resp
}
