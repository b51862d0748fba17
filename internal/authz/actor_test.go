package authz

import (
	"testing"

	"kinderpost/internal/models"
)

func childIn(kindergartenID, classID, parentID int64) *models.Child {
	return &models.Child{
		ID:             42,
		KindergartenID: kindergartenID,
		ClassID:        classID,
		ParentID:       parentID,
	}
}

func TestSuperadminAlwaysPermitted(t *testing.T) {
	actor := Actor{UserID: 1, Role: models.RoleSuperadmin}

	targets := []Target{
		ChildTarget(childIn(1, 2, 3)),
		ClassTarget(&models.Class{ID: 7, KindergartenID: 9}),
		KindergartenTarget(5),
		{}, // even a fully empty path
	}

	for _, target := range targets {
		if !actor.CanRead(target) {
			t.Errorf("CanRead(%+v) = false, want true", target)
		}
		if !actor.CanWrite(target) {
			t.Errorf("CanWrite(%+v) = false, want true", target)
		}
	}
}

func TestAdminScopedToOwnKindergarten(t *testing.T) {
	actor := Actor{UserID: 10, Role: models.RoleAdmin, KindergartenID: 1}

	tests := []struct {
		name   string
		target Target
		want   bool
	}{
		{"child in own kindergarten", ChildTarget(childIn(1, 2, 3)), true},
		{"child in other kindergarten", ChildTarget(childIn(2, 2, 3)), false},
		{"own kindergarten itself", KindergartenTarget(1), true},
		{"other kindergarten", KindergartenTarget(2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := actor.CanRead(tt.target); got != tt.want {
				t.Errorf("CanRead() = %v, want %v", got, tt.want)
			}
			if got := actor.CanWrite(tt.target); got != tt.want {
				t.Errorf("CanWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdminWithoutAffiliationDenied(t *testing.T) {
	actor := Actor{UserID: 10, Role: models.RoleAdmin}

	if actor.CanRead(ChildTarget(childIn(1, 2, 3))) {
		t.Error("admin with no affiliation must be denied")
	}
	if actor.Scope().Kind != ScopeNone {
		t.Errorf("Scope().Kind = %v, want ScopeNone", actor.Scope().Kind)
	}
}

func TestTeacherScopedToAssignedClasses(t *testing.T) {
	actor := Actor{UserID: 20, Role: models.RoleTeacher, KindergartenID: 1, ClassIDs: []int64{4, 5}}

	tests := []struct {
		name   string
		target Target
		want   bool
	}{
		{"child in assigned class", ChildTarget(childIn(1, 4, 3)), true},
		{"child in other class, same kindergarten", ChildTarget(childIn(1, 6, 3)), false},
		{"child with no class", ChildTarget(childIn(1, 0, 3)), false},
		{"kindergarten-level target", KindergartenTarget(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := actor.CanWrite(tt.target); got != tt.want {
				t.Errorf("CanWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeacherWithNoAssignmentsDenied(t *testing.T) {
	actor := Actor{UserID: 20, Role: models.RoleTeacher, KindergartenID: 1}

	if actor.CanWrite(ChildTarget(childIn(1, 4, 3))) {
		t.Error("teacher with no assignments must be denied")
	}
}

func TestParentReadOnlyOwnChildren(t *testing.T) {
	actor := Actor{UserID: 30, Role: models.RoleParent, ChildIDs: []int64{42}}

	own := ChildTarget(childIn(1, 2, 30))
	other := ChildTarget(childIn(1, 2, 31))

	if !actor.CanRead(own) {
		t.Error("parent must be able to read own child's records")
	}
	if actor.CanWrite(own) {
		t.Error("parent must never write, even for own child")
	}
	if actor.CanRead(other) {
		t.Error("parent must not read another parent's child")
	}
	if actor.CanWrite(other) {
		t.Error("parent must not write another parent's child")
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	actor := Actor{UserID: 1, Role: models.Role("visitor")}

	if actor.CanRead(ChildTarget(childIn(1, 2, 3))) || actor.CanWrite(KindergartenTarget(1)) {
		t.Error("unknown role must fall through to deny")
	}
	if actor.Scope().Kind != ScopeNone {
		t.Error("unknown role must scope to nothing")
	}
}

func TestScopeMatchesDecisionTable(t *testing.T) {
	children := []*models.Child{
		childIn(1, 4, 30),
		childIn(1, 5, 31),
		childIn(2, 6, 30),
		childIn(2, 0, 32),
	}

	tests := []struct {
		name  string
		actor Actor
		want  []bool
	}{
		{
			"superadmin sees all",
			Actor{UserID: 1, Role: models.RoleSuperadmin},
			[]bool{true, true, true, true},
		},
		{
			"admin sees own kindergarten exactly",
			Actor{UserID: 10, Role: models.RoleAdmin, KindergartenID: 1},
			[]bool{true, true, false, false},
		},
		{
			"teacher sees assigned classes",
			Actor{UserID: 20, Role: models.RoleTeacher, ClassIDs: []int64{4}},
			[]bool{true, false, false, false},
		},
		{
			"parent sees own children across kindergartens",
			Actor{UserID: 30, Role: models.RoleParent},
			[]bool{true, false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := tt.actor.Scope()
			for i, child := range children {
				if got := scope.AllowsChild(child); got != tt.want[i] {
					t.Errorf("AllowsChild(children[%d]) = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestScopeCacheKeyDistinguishesActors(t *testing.T) {
	a := Actor{UserID: 10, Role: models.RoleAdmin, KindergartenID: 1}
	b := Actor{UserID: 11, Role: models.RoleAdmin, KindergartenID: 2}
	c := Actor{UserID: 12, Role: models.RoleSuperadmin}

	keys := map[string]bool{
		a.Scope().CacheKey(): true,
		b.Scope().CacheKey(): true,
		c.Scope().CacheKey(): true,
	}
	if len(keys) != 3 {
		t.Errorf("expected 3 distinct cache keys, got %d", len(keys))
	}
}
