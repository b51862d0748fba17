package service

import (
	"errors"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
	"kinderpost/internal/validation"
)

var (
	ErrKindergartenMismatch = errors.New("class belongs to a different kindergarten")
	ErrAdminTaken           = errors.New("kindergarten already has an admin")
	ErrAlreadyAffiliated    = errors.New("user already affiliated with a kindergarten")
	ErrWrongRole            = errors.New("user has the wrong role for this affiliation")
)

// HierarchyService manages the kindergarten -> class -> child tree and the
// staff affiliations hanging off it
type HierarchyService struct {
	kindergartenRepo *repository.KindergartenRepository
	childRepo        *repository.ChildRepository
	userRepo         *repository.UserRepository
}

// NewHierarchyService creates a new hierarchy service
func NewHierarchyService(kindergartenRepo *repository.KindergartenRepository, childRepo *repository.ChildRepository, userRepo *repository.UserRepository) *HierarchyService {
	return &HierarchyService{
		kindergartenRepo: kindergartenRepo,
		childRepo:        childRepo,
		userRepo:         userRepo,
	}
}

// CreateKindergarten creates a kindergarten; superadmin only
func (s *HierarchyService) CreateKindergarten(actor authz.Actor, name, location string) (*models.Kindergarten, error) {
	if actor.Role != models.RoleSuperadmin {
		return nil, ErrAccessDenied
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	return s.kindergartenRepo.CreateKindergarten(name, location)
}

// GetKindergarten retrieves a kindergarten the actor can see
func (s *HierarchyService) GetKindergarten(actor authz.Actor, id int64) (*models.Kindergarten, error) {
	k, err := s.kindergartenRepo.GetKindergartenByID(id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, ErrNotFound
	}
	if !s.canSeeKindergarten(actor, id) {
		return nil, maskDenied(actor)
	}
	return k, nil
}

// canSeeKindergarten is looser than the target check: anyone affiliated
// with a kindergarten may read its basic record, parents included.
func (s *HierarchyService) canSeeKindergarten(actor authz.Actor, id int64) bool {
	switch actor.Role {
	case models.RoleSuperadmin:
		return true
	case models.RoleAdmin, models.RoleTeacher:
		return actor.KindergartenID == id
	case models.RoleParent:
		children, err := s.childRepo.ListChildrenByParent(actor.UserID)
		if err != nil {
			return false
		}
		for _, c := range children {
			if c.KindergartenID == id {
				return true
			}
		}
	}
	return false
}

// ListKindergartens lists the kindergartens visible to the actor
func (s *HierarchyService) ListKindergartens(actor authz.Actor) ([]models.Kindergarten, error) {
	if actor.Role == models.RoleSuperadmin {
		return s.kindergartenRepo.ListKindergartens()
	}

	// Everyone else sees at most their own kindergarten(s)
	var ids []int64
	switch actor.Role {
	case models.RoleAdmin, models.RoleTeacher:
		if actor.KindergartenID != 0 {
			ids = append(ids, actor.KindergartenID)
		}
	case models.RoleParent:
		children, err := s.childRepo.ListChildrenByParent(actor.UserID)
		if err != nil {
			return nil, err
		}
		seen := map[int64]bool{}
		for _, c := range children {
			if !seen[c.KindergartenID] {
				seen[c.KindergartenID] = true
				ids = append(ids, c.KindergartenID)
			}
		}
	}

	var result []models.Kindergarten
	for _, id := range ids {
		k, err := s.kindergartenRepo.GetKindergartenByID(id)
		if err != nil {
			return nil, err
		}
		if k != nil {
			result = append(result, *k)
		}
	}
	return result, nil
}

// DeleteKindergarten removes a kindergarten; superadmin only
func (s *HierarchyService) DeleteKindergarten(actor authz.Actor, id int64) error {
	if actor.Role != models.RoleSuperadmin {
		return ErrAccessDenied
	}
	return s.kindergartenRepo.DeleteKindergarten(id)
}

// AttachAdmin makes a user the admin of a kindergarten; superadmin only.
// A kindergarten has at most one admin and an admin at most one
// kindergarten.
func (s *HierarchyService) AttachAdmin(actor authz.Actor, userID, kindergartenID int64) (*models.AdminProfile, error) {
	if actor.Role != models.RoleSuperadmin {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Role != models.RoleAdmin {
		return nil, ErrWrongRole
	}

	k, err := s.kindergartenRepo.GetKindergartenByID(kindergartenID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, ErrNotFound
	}

	if existing, err := s.kindergartenRepo.GetAdminProfileByKindergarten(kindergartenID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAdminTaken
	}
	if existing, err := s.kindergartenRepo.GetAdminProfileByUserID(userID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyAffiliated
	}

	return s.kindergartenRepo.CreateAdminProfile(userID, kindergartenID)
}

// DetachAdmin removes the admin of a kindergarten; superadmin only
func (s *HierarchyService) DetachAdmin(actor authz.Actor, kindergartenID int64) error {
	if actor.Role != models.RoleSuperadmin {
		return ErrAccessDenied
	}
	return s.kindergartenRepo.DeleteAdminProfile(kindergartenID)
}

// CreateClass creates a class; the kindergarten's admin or superadmin
func (s *HierarchyService) CreateClass(actor authz.Actor, name string, kindergartenID int64) (*models.Class, error) {
	if !actor.CanWrite(authz.KindergartenTarget(kindergartenID)) {
		return nil, ErrAccessDenied
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	k, err := s.kindergartenRepo.GetKindergartenByID(kindergartenID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, ErrNotFound
	}
	return s.kindergartenRepo.CreateClass(name, kindergartenID)
}

// GetClass retrieves a class the actor can see
func (s *HierarchyService) GetClass(actor authz.Actor, id int64) (*models.Class, error) {
	class, err := s.kindergartenRepo.GetClassByID(id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}
	if !s.canSeeClass(actor, class) {
		return nil, maskDenied(actor)
	}
	return class, nil
}

func (s *HierarchyService) canSeeClass(actor authz.Actor, class *models.Class) bool {
	if actor.CanRead(authz.ClassTarget(class)) {
		return true
	}
	// A parent may read the class their child is placed in
	if actor.Role == models.RoleParent {
		children, err := s.childRepo.ListChildrenByParent(actor.UserID)
		if err != nil {
			return false
		}
		for _, c := range children {
			if c.ClassID == class.ID {
				return true
			}
		}
	}
	return false
}

// ListClasses lists the classes visible to the actor
func (s *HierarchyService) ListClasses(actor authz.Actor) ([]models.Class, error) {
	switch actor.Role {
	case models.RoleSuperadmin:
		return s.kindergartenRepo.ListAllClasses()
	case models.RoleAdmin:
		if actor.KindergartenID == 0 {
			return nil, nil
		}
		return s.kindergartenRepo.ListClassesByKindergarten(actor.KindergartenID)
	case models.RoleTeacher:
		if len(actor.ClassIDs) == 0 {
			return nil, nil
		}
		return s.kindergartenRepo.ListClassesByIDs(actor.ClassIDs)
	case models.RoleParent:
		children, err := s.childRepo.ListChildrenByParent(actor.UserID)
		if err != nil {
			return nil, err
		}
		var ids []int64
		seen := map[int64]bool{}
		for _, c := range children {
			if c.ClassID != 0 && !seen[c.ClassID] {
				seen[c.ClassID] = true
				ids = append(ids, c.ClassID)
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}
		return s.kindergartenRepo.ListClassesByIDs(ids)
	}
	return nil, nil
}

// ListClassChildren lists the children placed in a class the actor can
// see. A parent only sees their own children.
func (s *HierarchyService) ListClassChildren(actor authz.Actor, classID int64) ([]models.Child, error) {
	class, err := s.kindergartenRepo.GetClassByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}
	if !s.canSeeClass(actor, class) {
		return nil, maskDenied(actor)
	}

	children, err := s.childRepo.ListChildrenByClass(classID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleParent {
		var own []models.Child
		for _, c := range children {
			if c.ParentID == actor.UserID {
				own = append(own, c)
			}
		}
		return own, nil
	}
	return children, nil
}

// DeleteClass removes a class; the kindergarten's admin or superadmin.
// Children placed in it become unplaced.
func (s *HierarchyService) DeleteClass(actor authz.Actor, id int64) error {
	class, err := s.kindergartenRepo.GetClassByID(id)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}
	if !actor.CanWrite(authz.KindergartenTarget(class.KindergartenID)) {
		return ErrAccessDenied
	}
	return s.kindergartenRepo.DeleteClass(id)
}

// AttachTeacher affiliates a teacher account with a kindergarten; the
// kindergarten's admin or superadmin
func (s *HierarchyService) AttachTeacher(actor authz.Actor, userID, kindergartenID int64) (*models.TeacherProfile, error) {
	if !actor.CanWrite(authz.KindergartenTarget(kindergartenID)) {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Role != models.RoleTeacher {
		return nil, ErrWrongRole
	}

	if existing, err := s.kindergartenRepo.GetTeacherProfileByUserID(userID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyAffiliated
	}

	return s.kindergartenRepo.CreateTeacherProfile(userID, kindergartenID)
}

// ListTeachers lists teacher affiliations visible to the actor
func (s *HierarchyService) ListTeachers(actor authz.Actor) ([]models.TeacherProfile, error) {
	switch actor.Role {
	case models.RoleSuperadmin:
		return s.kindergartenRepo.ListAllTeachers()
	case models.RoleAdmin:
		if actor.KindergartenID == 0 {
			return nil, nil
		}
		return s.kindergartenRepo.ListTeachersByKindergarten(actor.KindergartenID)
	}
	return nil, ErrAccessDenied
}

// DetachTeacher removes a teacher's affiliation and with it, via cascade,
// their class assignments
func (s *HierarchyService) DetachTeacher(actor authz.Actor, userID int64) error {
	profile, err := s.kindergartenRepo.GetTeacherProfileByUserID(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	if !actor.CanWrite(authz.KindergartenTarget(profile.KindergartenID)) {
		return ErrAccessDenied
	}
	return s.kindergartenRepo.DeleteTeacherProfileByUserID(userID)
}

// AssignTeacherToClass assigns a teacher to a class; the kindergarten's
// admin or superadmin. The teacher and the class must belong to the same
// kindergarten.
func (s *HierarchyService) AssignTeacherToClass(actor authz.Actor, teacherProfileID, classID int64) (*models.TeacherClass, error) {
	profile, err := s.kindergartenRepo.GetTeacherProfileByID(teacherProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	class, err := s.kindergartenRepo.GetClassByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}

	if !actor.CanWrite(authz.KindergartenTarget(class.KindergartenID)) {
		return nil, ErrAccessDenied
	}
	if profile.KindergartenID != class.KindergartenID {
		return nil, ErrKindergartenMismatch
	}

	return s.kindergartenRepo.CreateTeacherClass(teacherProfileID, classID)
}

// UnassignTeacherFromClass removes an assignment
func (s *HierarchyService) UnassignTeacherFromClass(actor authz.Actor, assignmentID int64) error {
	assignment, err := s.kindergartenRepo.GetTeacherClassByID(assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return ErrNotFound
	}

	class, err := s.kindergartenRepo.GetClassByID(assignment.ClassID)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}
	if !actor.CanWrite(authz.KindergartenTarget(class.KindergartenID)) {
		return ErrAccessDenied
	}
	return s.kindergartenRepo.DeleteTeacherClass(assignmentID)
}

// CreateChild registers a child. The writer must hold write access on the
// intended placement; a placed child's class must belong to the child's
// kindergarten and the parent account must have the parent role.
func (s *HierarchyService) CreateChild(actor authz.Actor, child *models.Child) (*models.Child, error) {
	if err := validation.ValidateName(child.Name); err != nil {
		return nil, err
	}

	parent, err := s.userRepo.GetUserByID(child.ParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	if parent.Role != models.RoleParent {
		return nil, ErrWrongRole
	}

	if child.ClassID != 0 {
		class, err := s.kindergartenRepo.GetClassByID(child.ClassID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, ErrNotFound
		}
		if class.KindergartenID != child.KindergartenID {
			return nil, ErrKindergartenMismatch
		}
	}

	if !actor.CanWrite(authz.ChildTarget(child)) {
		return nil, ErrAccessDenied
	}
	return s.childRepo.CreateChild(child)
}

// GetChild retrieves a child the actor can see. A foreign parent gets
// ErrNotFound, out-of-scope staff ErrAccessDenied.
func (s *HierarchyService) GetChild(actor authz.Actor, id int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(id)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	if !actor.CanRead(authz.ChildTarget(child)) {
		return nil, maskDenied(actor)
	}
	return child, nil
}

// ListChildren lists the children visible to the actor
func (s *HierarchyService) ListChildren(actor authz.Actor) ([]models.Child, error) {
	return s.childRepo.ListChildren(actor.Scope())
}

// UpdateChild changes a child's profile or placement. Both the current and
// the new placement must be writable by the actor.
func (s *HierarchyService) UpdateChild(actor authz.Actor, id int64, name, bio string, classID int64, profilePicture string) (*models.Child, error) {
	child, err := s.childRepo.GetChildByID(id)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	if !actor.CanWrite(authz.ChildTarget(child)) {
		return nil, ErrAccessDenied
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	if classID != 0 && classID != child.ClassID {
		class, err := s.kindergartenRepo.GetClassByID(classID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, ErrNotFound
		}
		if class.KindergartenID != child.KindergartenID {
			return nil, ErrKindergartenMismatch
		}
	}

	child.Name = name
	child.Bio = bio
	child.ClassID = classID
	child.ProfilePicture = profilePicture

	if !actor.CanWrite(authz.ChildTarget(child)) {
		return nil, ErrAccessDenied
	}
	if err := s.childRepo.UpdateChild(child); err != nil {
		return nil, err
	}
	return child, nil
}

// DeleteChild removes a child and its records
func (s *HierarchyService) DeleteChild(actor authz.Actor, id int64) error {
	child, err := s.childRepo.GetChildByID(id)
	if err != nil {
		return err
	}
	if child == nil {
		return ErrNotFound
	}
	if !actor.CanWrite(authz.ChildTarget(child)) {
		return ErrAccessDenied
	}
	return s.childRepo.DeleteChild(id)
}
