// Package authz holds the single ownership predicate shared by every handler so
// the owner-or-elevated rule cannot drift between entities.
package authz

// Subject is the authenticated caller extracted from a verified token.
type Subject struct {
	UserID   int64
	Elevated bool
}

// CanAccess reports whether the subject may act on a resource owned by ownerID.
// Owners always pass; elevated subjects pass regardless of ownership.
func (s Subject) CanAccess(ownerID int64) bool {
	return s.Elevated || s.UserID == ownerID
}

// CanManage reports whether the subject may perform elevated-only operations such
// as catalog management or cross-tenant listing.
func (s Subject) CanManage() bool {
	return s.Elevated
}

// OwnerScope returns the owner filter for list queries: 0 means no filter
// (elevated subjects see every row), otherwise rows are restricted to the
// subject's own user id before the query runs.
func (s Subject) OwnerScope() int64 {
	if s.Elevated {
		return 0
	}
	return s.UserID
}
