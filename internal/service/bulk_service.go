package service

import (
	"context"
	"fmt"
	"strings"

	"leadbook/internal/domain"
	"leadbook/internal/dto"
	"leadbook/internal/model"
	"leadbook/internal/policy"
	"leadbook/internal/repository"

	"github.com/go-playground/validator/v10"
)

// maxSurfacedErrors bounds the response size; rows beyond it are still
// counted as failed, just not itemized.
const maxSurfacedErrors = 10

var bulkValidate = validator.New()

// BulkService ingests externally supplied lead batches. Processing is
// strictly sequential and non-transactional: each row is normalized,
// attributed to the acting principal and persisted independently, so one bad
// row never aborts the batch.
type BulkService interface {
	Ingest(ctx context.Context, p policy.Principal, req dto.BulkIngestRequest) (*dto.BulkIngestResponse, error)
}

type bulkService struct {
	leads repository.LeadRepository
}

func NewBulkService(leads repository.LeadRepository) BulkService {
	return &bulkService{leads: leads}
}

func (s *bulkService) Ingest(ctx context.Context, p policy.Principal, req dto.BulkIngestRequest) (*dto.BulkIngestResponse, error) {
	// Capability check comes first: an unauthorized caller gets a
	// restricted-operation error and nothing is persisted, regardless of
	// what the batch looks like.
	if err := policy.CanBulkIngest(p); err != nil {
		return nil, err
	}
	if len(req.Leads) == 0 {
		return nil, domain.E(domain.KindValidation, "no lead data provided")
	}

	inserted := 0
	var rowErrors []string

	for i, item := range req.Leads {
		if err := s.ingestRow(ctx, p, item); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		inserted++
	}

	surfaced := rowErrors
	if len(surfaced) > maxSurfacedErrors {
		surfaced = surfaced[:maxSurfacedErrors]
	}
	if surfaced == nil {
		surfaced = []string{}
	}

	return &dto.BulkIngestResponse{
		Message:  fmt.Sprintf("Bulk upload complete: %d inserted, %d failed", inserted, len(rowErrors)),
		Inserted: inserted,
		Failed:   len(rowErrors),
		Errors:   surfaced,
	}, nil
}

func (s *bulkService) ingestRow(ctx context.Context, p policy.Principal, item dto.BulkLeadItem) error {
	if err := bulkValidate.Struct(item); err != nil {
		return domain.Wrap(domain.KindValidation, "invalid row", err)
	}

	lead := &model.Lead{
		Name:         strings.TrimSpace(item.Name),
		Std:          strings.TrimSpace(item.Std),
		School:       strings.TrimSpace(item.School),
		Board:        strings.ToUpper(strings.TrimSpace(item.Board)),
		MotherMobile: strings.TrimSpace(item.MotherMobile),
		FatherMobile: strings.TrimSpace(item.FatherMobile),
		Address:      strings.TrimSpace(item.Address),
		Area:         strings.ToUpper(strings.TrimSpace(item.Area)),
		// Bulk rows carry their final reference; trusted verbatim, trimmed.
		Reference: policy.Reference(policy.RefTrusted, policy.RefInput{Raw: item.Reference}),
		AddedBy:   p.Username,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return domain.Wrap(domain.KindValidation, "row rejected by store", err)
	}
	return nil
}
