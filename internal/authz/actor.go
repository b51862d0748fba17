// Package authz is the single authorization engine for the whole API.
// Every resource attaches to the kindergarten -> class -> child hierarchy;
// a decision is a walk over an Actor's affiliations and the hierarchy path
// of the target. Role checks live here and nowhere else.
package authz

import "kinderpost/internal/models"

// Actor is an authenticated account plus the affiliations its role implies.
// Only the fields relevant to the role are populated:
//
//	admin    -> KindergartenID
//	teacher  -> KindergartenID, ClassIDs
//	parent   -> ChildIDs
//
// A missing affiliation (zero value) always resolves to deny.
type Actor struct {
	UserID         int64
	Role           models.Role
	KindergartenID int64
	ClassIDs       []int64
	ChildIDs       []int64
}

// Target is the hierarchy path of the entity an action is aimed at.
// Unset levels stay zero: a kindergarten-level target has no ClassID,
// ChildID or ParentID.
type Target struct {
	KindergartenID int64
	ClassID        int64
	ChildID        int64
	ParentID       int64
}

// ChildTarget builds the target path for anything attached to a child
// (attendance, meals, naps, hygiene, moods).
func ChildTarget(c *models.Child) Target {
	return Target{
		KindergartenID: c.KindergartenID,
		ClassID:        c.ClassID,
		ChildID:        c.ID,
		ParentID:       c.ParentID,
	}
}

// ClassTarget builds the target path for class-level entities
// (activities, class posts).
func ClassTarget(cl *models.Class) Target {
	return Target{
		KindergartenID: cl.KindergartenID,
		ClassID:        cl.ID,
	}
}

// KindergartenTarget builds the target path for kindergarten-level entities.
func KindergartenTarget(kindergartenID int64) Target {
	return Target{KindergartenID: kindergartenID}
}

// CanRead reports whether the actor may see the target.
func (a Actor) CanRead(t Target) bool {
	return a.decide(t, false)
}

// CanWrite reports whether the actor may create, update or delete the target.
func (a Actor) CanWrite(t Target) bool {
	return a.decide(t, true)
}

// decide is the decision table, evaluated in precedence order; the first
// matching rule wins and anything unmatched is denied. Visibility and
// mutability share the same hierarchy walk, with the parent role as the
// only read/write asymmetry. It never fails: malformed actors and targets
// fall through to deny.
func (a Actor) decide(t Target, write bool) bool {
	switch a.Role {
	case models.RoleSuperadmin:
		return true

	case models.RoleAdmin:
		return a.KindergartenID != 0 && t.KindergartenID == a.KindergartenID

	case models.RoleTeacher:
		return t.ClassID != 0 && containsID(a.ClassIDs, t.ClassID)

	case models.RoleParent:
		if write {
			return false
		}
		return a.UserID != 0 && t.ParentID == a.UserID
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
