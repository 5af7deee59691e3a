package policy

import "strings"

// RefMode selects how a lead's reference string is computed. Normal create
// and edit derive it from the referrer name and the principal's branch; bulk
// ingestion trusts the caller-supplied string. Both paths go through the one
// resolver so they cannot drift apart.
type RefMode int

const (
	RefDerived RefMode = iota
	RefTrusted
)

// RefInput carries everything the resolver may need. ReferrerName is a
// pointer so "field omitted" and "field present but empty" stay
// distinguishable on edits.
type RefInput struct {
	ReferrerName *string // RefDerived only; nil = omitted
	Raw          string  // RefTrusted only
	Branch       string
	Existing     string // stored value, for edits
	Create       bool
}

// Reference resolves the attribution string for a record.
//
// RefDerived, create: empty/omitted referrer yields the branch alone;
// otherwise trim(referrer)+"-"+branch.
//
// RefDerived, edit: an omitted referrer keeps the stored value, a non-empty
// one recomputes, and a present-but-empty one also keeps the stored value —
// an empty referrer is never a clear.
//
// RefTrusted: the raw caller string, trimmed, verbatim.
func Reference(mode RefMode, in RefInput) string {
	if mode == RefTrusted {
		return strings.TrimSpace(in.Raw)
	}

	name := ""
	if in.ReferrerName != nil {
		name = strings.TrimSpace(*in.ReferrerName)
	}

	if in.Create {
		if name == "" {
			return in.Branch
		}
		return name + "-" + in.Branch
	}

	if name == "" {
		return in.Existing
	}
	return name + "-" + in.Branch
}
