package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateLeadRequest struct {
	Name         string `json:"name"     validate:"max=200"`
	Std          string `json:"std"      validate:"max=50"`
	School       string `json:"school"   validate:"max=200"`
	Board        string `json:"board"    validate:"max=100"`
	MotherMobile string `json:"m_mob_no" validate:"max=20"`
	FatherMobile string `json:"f_mob_no" validate:"max=20"`
	Address      string `json:"address"  validate:"max=500"`
	Area         string `json:"area"     validate:"max=100"`
	// ReferrerName feeds the attribution resolver; the stored reference is
	// derived from it plus the caller's branch. Optional.
	ReferrerName *string `json:"reference_name" validate:"omitempty,max=100"`
}

// UpdateLeadRequest uses pointers for every field: nil means "leave the
// stored value alone", a non-nil value overwrites — even when empty. The one
// exception is ReferrerName, which feeds the resolver and is never a clear.
type UpdateLeadRequest struct {
	Name         *string `json:"name"     validate:"omitempty,max=200"`
	Std          *string `json:"std"      validate:"omitempty,max=50"`
	School       *string `json:"school"   validate:"omitempty,max=200"`
	Board        *string `json:"board"    validate:"omitempty,max=100"`
	MotherMobile *string `json:"m_mob_no" validate:"omitempty,max=20"`
	FatherMobile *string `json:"f_mob_no" validate:"omitempty,max=20"`
	Address      *string `json:"address"  validate:"omitempty,max=500"`
	Area         *string `json:"area"     validate:"omitempty,max=100"`
	ReferrerName *string `json:"reference_name" validate:"omitempty,max=100"`
}

// BulkLeadItem is one candidate row in a bulk ingestion batch. Unlike the
// single-create path, the reference arrives pre-computed and is trusted.
type BulkLeadItem struct {
	Name         string `json:"name"      validate:"max=200"`
	Std          string `json:"std"       validate:"max=50"`
	School       string `json:"school"    validate:"max=200"`
	Board        string `json:"board"     validate:"max=100"`
	MotherMobile string `json:"m_mob_no"  validate:"max=20"`
	FatherMobile string `json:"f_mob_no"  validate:"max=20"`
	Address      string `json:"address"   validate:"max=500"`
	Area         string `json:"area"      validate:"max=100"`
	Reference    string `json:"reference" validate:"max=200"`
}

// BulkIngestRequest deliberately has no dive validation on items: a bad row
// must become a per-row error, not a whole-batch rejection.
type BulkIngestRequest struct {
	Leads []BulkLeadItem `json:"leads"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LeadResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Std          string `json:"std"`
	School       string `json:"school"`
	Board        string `json:"board"`
	MotherMobile string `json:"m_mob_no"`
	FatherMobile string `json:"f_mob_no"`
	Address      string `json:"address"`
	Area         string `json:"area"`
	Reference    string `json:"reference"`
	AddedBy      string `json:"added_by"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type LeadListResponse struct {
	Count int            `json:"count"`
	Leads []LeadResponse `json:"leads"`
}

type BulkIngestResponse struct {
	Message  string   `json:"message"`
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	// Errors holds at most the first 10 per-row messages.
	Errors []string `json:"errors"`
}

type SchoolOption struct {
	Name string `json:"name"`
}
