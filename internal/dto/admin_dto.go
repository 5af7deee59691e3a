package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string `json:"username"    validate:"required,min=1,max=150"`
	Password string `json:"password"    validate:"required,min=4,max=72"`
	Branch   string `json:"user_branch" validate:"required,min=1,max=100"`
	// CanBulkIngest grants the bulk ingestion capability at creation time;
	// there is no way to toggle it later short of recreating the account.
	CanBulkIngest bool `json:"can_bulk_ingest"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UserWithCount annotates an account with the number of leads attributed to
// it. Counts are computed per account with no isolation guarantee.
type UserWithCount struct {
	UserResponse
	LeadCount int64 `json:"lead_count"`
}

type StatsResponse struct {
	TotalLeads int64 `json:"total_leads"`
	TotalUsers int64 `json:"total_users"` // non-admin accounts only
}
