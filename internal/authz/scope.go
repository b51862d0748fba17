package authz

import (
	"strconv"

	"kinderpost/internal/models"
)

// ScopeKind says how a visibility scope narrows a child set
type ScopeKind int

const (
	// ScopeNone matches nothing; the safe default
	ScopeNone ScopeKind = iota
	// ScopeAll matches every child (superadmin)
	ScopeAll
	// ScopeKindergarten matches children of one kindergarten (admin)
	ScopeKindergarten
	// ScopeClasses matches children of the listed classes (teacher)
	ScopeClasses
	// ScopeParent matches children of one parent account (parent)
	ScopeParent
)

// Scope is the set of children visible to an actor, in a form list
// queries can translate into WHERE clauses. Caller-supplied filters
// (child id, date, date range) AND-compose with it; an unsatisfiable
// composition yields an empty result set, never an error.
type Scope struct {
	Kind           ScopeKind
	KindergartenID int64
	ClassIDs       []int64
	ParentID       int64
}

// Scope derives the actor's visibility scope. An actor whose role-specific
// affiliation is missing gets ScopeNone.
func (a Actor) Scope() Scope {
	switch a.Role {
	case models.RoleSuperadmin:
		return Scope{Kind: ScopeAll}

	case models.RoleAdmin:
		if a.KindergartenID == 0 {
			return Scope{Kind: ScopeNone}
		}
		return Scope{Kind: ScopeKindergarten, KindergartenID: a.KindergartenID}

	case models.RoleTeacher:
		if len(a.ClassIDs) == 0 {
			return Scope{Kind: ScopeNone}
		}
		// KindergartenID rides along for feeds that mix class-level and
		// kindergarten-wide entries; child queries ignore it.
		return Scope{Kind: ScopeClasses, KindergartenID: a.KindergartenID, ClassIDs: a.ClassIDs}

	case models.RoleParent:
		if a.UserID == 0 {
			return Scope{Kind: ScopeNone}
		}
		return Scope{Kind: ScopeParent, ParentID: a.UserID}
	}
	return Scope{Kind: ScopeNone}
}

// AllowsChild is the predicate form of the scope, for callers that filter
// an already-loaded child set instead of pushing the scope into SQL.
func (s Scope) AllowsChild(c *models.Child) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeKindergarten:
		return c.KindergartenID == s.KindergartenID
	case ScopeClasses:
		return c.ClassID != 0 && containsID(s.ClassIDs, c.ClassID)
	case ScopeParent:
		return c.ParentID == s.ParentID
	}
	return false
}

// CacheKey returns a stable string identifying the scope, used to key
// cached aggregates so actors with different visibility never share an
// entry. Class lists are small (a teacher's assignments), so the simple
// join is fine.
func (s Scope) CacheKey() string {
	switch s.Kind {
	case ScopeAll:
		return "all"
	case ScopeKindergarten:
		return "kg:" + itoa(s.KindergartenID)
	case ScopeClasses:
		key := "cls"
		for _, id := range s.ClassIDs {
			key += ":" + itoa(id)
		}
		return key
	case ScopeParent:
		return "par:" + itoa(s.ParentID)
	}
	return "none"
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
