package report

import (
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// Scope is the set of staff ids whose records an acting user may see.
// Unbounded means every record is visible (admin).
type Scope struct {
	Unbounded bool
	IDs       map[string]struct{}
}

// Contains reports whether records created by staffID are visible.
func (s Scope) Contains(staffID string) bool {
	if s.Unbounded {
		return true
	}
	_, ok := s.IDs[staffID]
	return ok
}

// ResolveScope computes record visibility for an acting user.
//
// Admins see everything. Everyone else sees themselves plus their direct
// reportees; managers additionally see reportees of their reportees. The
// traversal is bounded at two levels and deduplicated by id, so cyclic or
// dangling reporter references cannot loop or double count.
func ResolveScope(actingUser *domain.StaffUser, allStaff []domain.StaffUser) Scope {
	if actingUser.Designation == domain.DesignationAdmin {
		return Scope{Unbounded: true}
	}

	ids := map[string]struct{}{actingUser.ID: {}}

	directs := reporteesOf(allStaff, actingUser.ID)
	for _, id := range directs {
		ids[id] = struct{}{}
	}

	if actingUser.Designation == domain.DesignationManager {
		for _, mid := range directs {
			if mid == actingUser.ID {
				continue
			}
			for _, id := range reporteesOf(allStaff, mid) {
				ids[id] = struct{}{}
			}
		}
	}

	return Scope{IDs: ids}
}

func reporteesOf(allStaff []domain.StaffUser, reporterID string) []string {
	var out []string
	for i := range allStaff {
		if allStaff[i].ReporterID != nil && *allStaff[i].ReporterID == reporterID {
			out = append(out, allStaff[i].ID)
		}
	}
	return out
}
