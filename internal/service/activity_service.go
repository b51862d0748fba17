package service

import (
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
	"kinderpost/internal/validation"
)

// ActivityService manages class activities
type ActivityService struct {
	activityRepo     *repository.ActivityRepository
	kindergartenRepo *repository.KindergartenRepository
	childRepo        *repository.ChildRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo *repository.ActivityRepository, kindergartenRepo *repository.KindergartenRepository, childRepo *repository.ChildRepository) *ActivityService {
	return &ActivityService{
		activityRepo:     activityRepo,
		kindergartenRepo: kindergartenRepo,
		childRepo:        childRepo,
	}
}

// CreateActivity creates an activity in a class the actor can write to.
// Linked children must be placed in that class.
func (s *ActivityService) CreateActivity(actor authz.Actor, name string, at time.Time, classID int64, image string, children []int64) (*models.Activity, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	class, err := s.kindergartenRepo.GetClassByID(classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}
	if !actor.CanWrite(authz.ClassTarget(class)) {
		return nil, ErrAccessDenied
	}
	if err := s.checkParticipants(classID, children); err != nil {
		return nil, err
	}

	return s.activityRepo.CreateActivity(&models.Activity{
		Name:     name,
		Time:     at,
		ClassID:  classID,
		Image:    image,
		Children: children,
	})
}

// checkParticipants verifies every linked child is placed in the class
func (s *ActivityService) checkParticipants(classID int64, children []int64) error {
	if len(children) == 0 {
		return nil
	}
	loaded, err := s.childRepo.ListChildrenByIDs(children)
	if err != nil {
		return err
	}
	inClass := map[int64]bool{}
	for _, c := range loaded {
		if c.ClassID == classID {
			inClass[c.ID] = true
		}
	}
	for _, id := range children {
		if !inClass[id] {
			return ErrKindergartenMismatch
		}
	}
	return nil
}

// GetActivity retrieves an activity the actor can see
func (s *ActivityService) GetActivity(actor authz.Actor, id int64) (*models.Activity, error) {
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrNotFound
	}
	if !s.canSeeActivity(actor, activity) {
		return nil, maskDenied(actor)
	}
	return activity, nil
}

func (s *ActivityService) canSeeActivity(actor authz.Actor, activity *models.Activity) bool {
	class, err := s.kindergartenRepo.GetClassByID(activity.ClassID)
	if err != nil || class == nil {
		return false
	}
	if actor.CanRead(authz.ClassTarget(class)) {
		return true
	}
	// A parent sees activities of the classes their children are placed in
	if actor.Role == models.RoleParent {
		children, err := s.childRepo.ListChildrenByParent(actor.UserID)
		if err != nil {
			return false
		}
		for _, c := range children {
			if c.ClassID == activity.ClassID {
				return true
			}
		}
	}
	return false
}

// ListActivities lists the activities visible to the actor
func (s *ActivityService) ListActivities(actor authz.Actor) ([]models.Activity, error) {
	return s.activityRepo.ListActivities(actor.Scope())
}

// ListChildActivities lists the activities a child took part in. The child
// must be readable by the actor.
func (s *ActivityService) ListChildActivities(actor authz.Actor, childID int64) ([]models.Activity, error) {
	child, err := s.childRepo.GetChildByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	if !actor.CanRead(authz.ChildTarget(child)) {
		return nil, maskDenied(actor)
	}
	return s.activityRepo.ListActivitiesByChild(childID)
}

// UpdateActivity updates an activity the actor can write to
func (s *ActivityService) UpdateActivity(actor authz.Actor, id int64, name string, at time.Time, image string, children []int64) (*models.Activity, error) {
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrNotFound
	}

	class, err := s.kindergartenRepo.GetClassByID(activity.ClassID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}
	if !actor.CanWrite(authz.ClassTarget(class)) {
		return nil, ErrAccessDenied
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := s.checkParticipants(activity.ClassID, children); err != nil {
		return nil, err
	}

	activity.Name = name
	activity.Time = at
	activity.Image = image
	activity.Children = children
	if err := s.activityRepo.UpdateActivity(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// DeleteActivity removes an activity the actor can write to
func (s *ActivityService) DeleteActivity(actor authz.Actor, id int64) error {
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrNotFound
	}

	class, err := s.kindergartenRepo.GetClassByID(activity.ClassID)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrNotFound
	}
	if !actor.CanWrite(authz.ClassTarget(class)) {
		return ErrAccessDenied
	}
	return s.activityRepo.DeleteActivity(id)
}
