package service

import (
	"fmt"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
)

// ActorService assembles the authorization view of an account: its role
// plus the affiliations the role draws scope from.
type ActorService struct {
	kindergartenRepo *repository.KindergartenRepository
	childRepo        *repository.ChildRepository
}

// NewActorService creates a new actor service
func NewActorService(kindergartenRepo *repository.KindergartenRepository, childRepo *repository.ChildRepository) *ActorService {
	return &ActorService{
		kindergartenRepo: kindergartenRepo,
		childRepo:        childRepo,
	}
}

// Load builds the Actor for a user. Missing affiliations stay zero, which
// the decision table treats as deny, so a teacher without class assignments
// or an admin without a kindergarten simply sees nothing.
func (s *ActorService) Load(user *models.User) (authz.Actor, error) {
	actor := authz.Actor{UserID: user.ID, Role: user.Role}

	switch user.Role {
	case models.RoleAdmin:
		profile, err := s.kindergartenRepo.GetAdminProfileByUserID(user.ID)
		if err != nil {
			return authz.Actor{}, fmt.Errorf("failed to load admin affiliation: %w", err)
		}
		if profile != nil {
			actor.KindergartenID = profile.KindergartenID
		}

	case models.RoleTeacher:
		profile, err := s.kindergartenRepo.GetTeacherProfileByUserID(user.ID)
		if err != nil {
			return authz.Actor{}, fmt.Errorf("failed to load teacher affiliation: %w", err)
		}
		if profile != nil {
			actor.KindergartenID = profile.KindergartenID
		}
		classIDs, err := s.kindergartenRepo.ListClassIDsByTeacherUser(user.ID)
		if err != nil {
			return authz.Actor{}, fmt.Errorf("failed to load class assignments: %w", err)
		}
		actor.ClassIDs = classIDs

	case models.RoleParent:
		childIDs, err := s.childRepo.ListChildIDsByParent(user.ID)
		if err != nil {
			return authz.Actor{}, fmt.Errorf("failed to load children: %w", err)
		}
		actor.ChildIDs = childIDs
	}

	return actor, nil
}
