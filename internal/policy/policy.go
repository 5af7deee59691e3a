// Package policy holds the access-control decisions for the service. Every
// function here is a pure predicate over a principal and (optionally) a
// target; no store access, no side effects. Denials come back as domain
// errors with a distinct kind so the transport layer can map them.
package policy

import (
	"leadbook/internal/domain"
	"leadbook/internal/model"
)

// Principal is the authenticated actor attached to an incoming operation.
// The zero value represents "unauthenticated".
type Principal struct {
	ID            string
	Username      string
	Role          string
	Branch        string
	CanBulkIngest bool
}

// Authenticated reports whether the principal was resolved from a real
// account.
func (p Principal) Authenticated() bool { return p.Username != "" }

// CanManageAccounts gates account listing, creation, deletion and the stats
// aggregate. Admin only.
func CanManageAccounts(p Principal) error {
	if !p.Authenticated() {
		return domain.E(domain.KindUnauthenticated, "not authenticated")
	}
	if p.Role != model.RoleAdmin {
		return domain.E(domain.KindForbiddenRole, "admin access required")
	}
	return nil
}

// CanCreateLead allows any authenticated principal. The created record is
// attributed to the principal by the caller.
func CanCreateLead(p Principal) error {
	if !p.Authenticated() {
		return domain.E(domain.KindUnauthenticated, "not authenticated")
	}
	return nil
}

// CanListAll gates the unrestricted record listing. Admin only.
func CanListAll(p Principal) error {
	if !p.Authenticated() {
		return domain.E(domain.KindUnauthenticated, "not authenticated")
	}
	if p.Role != model.RoleAdmin {
		return domain.E(domain.KindForbiddenRole, "admin access required")
	}
	return nil
}

// CanListOwn allows any authenticated principal; the caller must scope the
// listing to added_by == p.Username.
func CanListOwn(p Principal) error {
	if !p.Authenticated() {
		return domain.E(domain.KindUnauthenticated, "not authenticated")
	}
	return nil
}

// CanModify applies to both edit and delete of a lead: admins may touch any
// record, everyone else only their own entries.
func CanModify(p Principal, lead model.Lead) error {
	if !p.Authenticated() {
		return domain.E(domain.KindUnauthenticated, "not authenticated")
	}
	if p.Role == model.RoleAdmin || lead.AddedBy == p.Username {
		return nil
	}
	return domain.E(domain.KindForbiddenOwnership, "you can only modify your own entries")
}

// CanBulkIngest gates batch ingestion. This is a per-account capability, not
// a role: it is granted explicitly on the account at creation time.
func CanBulkIngest(p Principal) error {
	if !p.Authenticated() {
		return domain.E(domain.KindUnauthenticated, "not authenticated")
	}
	if !p.CanBulkIngest {
		return domain.E(domain.KindRestrictedOperation, "bulk ingestion is restricted")
	}
	return nil
}

// CanDeleteAccount layers the protected-admin rule on top of
// CanManageAccounts: admin accounts can never be deleted, no matter who asks.
func CanDeleteAccount(p Principal, target model.User) error {
	if err := CanManageAccounts(p); err != nil {
		return err
	}
	if target.Role == model.RoleAdmin {
		return domain.E(domain.KindProtectedAdmin, "cannot delete admin user")
	}
	return nil
}
