package service

import (
	"errors"
	"testing"

	"kinderpost/internal/models"
)

func TestChildPlacementMustMatchKindergarten(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "placement-a")
	other := env.seedHierarchy(t, "placement-b")

	_, err := env.hierarchy.CreateChild(fx.superadmin, &models.Child{
		Name:           "Noah",
		KindergartenID: fx.kindergarten.ID,
		ClassID:        other.class.ID,
		ParentID:       fx.parentUser.ID,
	})
	if !errors.Is(err, ErrKindergartenMismatch) {
		t.Fatalf("CreateChild with foreign class = %v, want ErrKindergartenMismatch", err)
	}
}

func TestChildParentMustHoldParentRole(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "parentrole")

	_, err := env.hierarchy.CreateChild(fx.superadmin, &models.Child{
		Name:           "Noah",
		KindergartenID: fx.kindergarten.ID,
		ParentID:       fx.teacherUser.ID,
	})
	if !errors.Is(err, ErrWrongRole) {
		t.Fatalf("CreateChild with teacher as parent = %v, want ErrWrongRole", err)
	}
}

func TestAdminUniquePerKindergarten(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "adminuniq")

	second := env.createUser(t, "adminuniq-second@example.com", models.RoleAdmin)
	if _, err := env.hierarchy.AttachAdmin(fx.superadmin, second.ID, fx.kindergarten.ID); !errors.Is(err, ErrAdminTaken) {
		t.Fatalf("AttachAdmin to occupied kindergarten = %v, want ErrAdminTaken", err)
	}
}

func TestAttachAdminRequiresSuperadmin(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "adminsuper")

	user := env.createUser(t, "adminsuper-new@example.com", models.RoleAdmin)
	if _, err := env.hierarchy.AttachAdmin(fx.admin, user.ID, fx.kindergarten.ID); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("AttachAdmin by admin = %v, want ErrAccessDenied", err)
	}
}

func TestAssignTeacherSameKindergarten(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "assign-a")
	other := env.seedHierarchy(t, "assign-b")

	teacher := env.createUser(t, "assign-extra@example.com", models.RoleTeacher)
	profile, err := env.hierarchy.AttachTeacher(fx.superadmin, teacher.ID, fx.kindergarten.ID)
	if err != nil {
		t.Fatalf("AttachTeacher failed: %v", err)
	}

	if _, err := env.hierarchy.AssignTeacherToClass(fx.superadmin, profile.ID, other.class.ID); !errors.Is(err, ErrKindergartenMismatch) {
		t.Fatalf("cross-kindergarten assignment = %v, want ErrKindergartenMismatch", err)
	}
}

func TestListChildrenScoped(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "children-a")
	other := env.seedHierarchy(t, "children-b")

	own, err := env.hierarchy.ListChildren(fx.parent)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(own) != 1 || own[0].ID != fx.child.ID {
		t.Fatalf("parent sees %d children, want exactly their own", len(own))
	}

	all, err := env.hierarchy.ListChildren(fx.superadmin)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("superadmin sees %d children, want 2", len(all))
	}

	admin, err := env.hierarchy.ListChildren(other.admin)
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(admin) != 1 || admin[0].ID != other.child.ID {
		t.Errorf("admin sees %d children, want their kindergarten's only", len(admin))
	}
}

func TestGetChildMasked(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "mask-a")
	other := env.seedHierarchy(t, "mask-b")

	if _, err := env.hierarchy.GetChild(other.parent, fx.child.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign parent GetChild = %v, want ErrNotFound", err)
	}
	// Only parents get the mask; foreign staff are denied outright
	if _, err := env.hierarchy.GetChild(other.admin, fx.child.ID); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("foreign admin GetChild = %v, want ErrAccessDenied", err)
	}
	if _, err := env.hierarchy.GetChild(fx.parent, fx.child.ID); err != nil {
		t.Fatalf("own parent GetChild failed: %v", err)
	}
}

func TestUpdateChildPlacement(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "moveclass")
	other := env.seedHierarchy(t, "moveclass-other")

	// Moving a child into another kindergarten's class is rejected
	if _, err := env.hierarchy.UpdateChild(fx.admin, fx.child.ID, fx.child.Name, "", other.class.ID, ""); !errors.Is(err, ErrKindergartenMismatch) {
		t.Fatalf("UpdateChild into foreign class = %v, want ErrKindergartenMismatch", err)
	}

	// Unplacing is allowed
	updated, err := env.hierarchy.UpdateChild(fx.admin, fx.child.ID, fx.child.Name, "", 0, "")
	if err != nil {
		t.Fatalf("UpdateChild failed: %v", err)
	}
	if updated.ClassID != 0 {
		t.Errorf("ClassID after unplacing = %d, want 0", updated.ClassID)
	}
}

func TestListClassChildrenForParent(t *testing.T) {
	env := newTestEnv(t)
	fx := env.seedHierarchy(t, "classlist")

	// Second child of a different parent in the same class
	otherParent := env.createUser(t, "classlist-p2@example.com", models.RoleParent)
	if _, err := env.hierarchy.CreateChild(fx.superadmin, &models.Child{
		Name:           "Leo",
		KindergartenID: fx.kindergarten.ID,
		ClassID:        fx.class.ID,
		ParentID:       otherParent.ID,
	}); err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	teacherView, err := env.hierarchy.ListClassChildren(fx.teacher, fx.class.ID)
	if err != nil {
		t.Fatalf("ListClassChildren failed: %v", err)
	}
	if len(teacherView) != 2 {
		t.Errorf("teacher sees %d children in class, want 2", len(teacherView))
	}

	parentView, err := env.hierarchy.ListClassChildren(fx.parent, fx.class.ID)
	if err != nil {
		t.Fatalf("ListClassChildren failed: %v", err)
	}
	if len(parentView) != 1 || parentView[0].ID != fx.child.ID {
		t.Errorf("parent sees %d children in class, want only their own", len(parentView))
	}
}
