package service

import (
	"log/slog"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
	"kinderpost/internal/validation"
)

// PostService manages the social feed: posts, likes and comments
type PostService struct {
	postRepo         *repository.PostRepository
	kindergartenRepo *repository.KindergartenRepository
	childRepo        *repository.ChildRepository
	notifications    *NotificationService
}

// NewPostService creates a new post service. notifications may be nil; new
// posts are then silent.
func NewPostService(postRepo *repository.PostRepository, kindergartenRepo *repository.KindergartenRepository, childRepo *repository.ChildRepository, notifications *NotificationService) *PostService {
	return &PostService{
		postRepo:         postRepo,
		kindergartenRepo: kindergartenRepo,
		childRepo:        childRepo,
		notifications:    notifications,
	}
}

// postTarget builds the authz target of a post: a class post targets the
// class, a kindergarten-wide post the kindergarten
func (s *PostService) postTarget(kindergartenID, classID int64) (authz.Target, error) {
	if classID == 0 {
		return authz.KindergartenTarget(kindergartenID), nil
	}
	class, err := s.kindergartenRepo.GetClassByID(classID)
	if err != nil {
		return authz.Target{}, err
	}
	if class == nil {
		return authz.Target{}, ErrNotFound
	}
	if class.KindergartenID != kindergartenID {
		return authz.Target{}, ErrKindergartenMismatch
	}
	return authz.ClassTarget(class), nil
}

// CreatePost publishes a post; classID 0 publishes it kindergarten-wide
func (s *PostService) CreatePost(actor authz.Actor, kindergartenID, classID int64, title, description, images string) (*models.Post, error) {
	if title == "" {
		return nil, &validation.FieldError{Field: "title", Message: "title is required"}
	}

	k, err := s.kindergartenRepo.GetKindergartenByID(kindergartenID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, ErrNotFound
	}

	target, err := s.postTarget(kindergartenID, classID)
	if err != nil {
		return nil, err
	}
	if !actor.CanWrite(target) {
		return nil, ErrAccessDenied
	}

	post, err := s.postRepo.CreatePost(kindergartenID, classID, title, description, images)
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		// Best effort; the post is already published
		if err := s.notifications.NotifyNewPost(post); err != nil {
			slog.Warn("post notification failed", "post_id", post.ID, "error", err)
		}
	}
	return post, nil
}

// GetPost retrieves a post the actor can see
func (s *PostService) GetPost(actor authz.Actor, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	visible, err := s.canSeePost(actor, post)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, maskDenied(actor)
	}
	return post, nil
}

// canSeePost mirrors the feed visibility for a single post: class posts for
// those who can see the class, kindergarten-wide posts for anyone
// affiliated with the kindergarten.
func (s *PostService) canSeePost(actor authz.Actor, post *models.Post) (bool, error) {
	switch actor.Role {
	case models.RoleSuperadmin:
		return true, nil
	case models.RoleAdmin:
		return actor.KindergartenID == post.KindergartenID, nil
	case models.RoleTeacher:
		if post.ClassID == 0 {
			return actor.KindergartenID == post.KindergartenID, nil
		}
		for _, id := range actor.ClassIDs {
			if id == post.ClassID {
				return true, nil
			}
		}
		return false, nil
	case models.RoleParent:
		children, err := s.childRepo.ListChildrenByParent(actor.UserID)
		if err != nil {
			return false, err
		}
		for _, c := range children {
			if post.ClassID == 0 && c.KindergartenID == post.KindergartenID {
				return true, nil
			}
			if post.ClassID != 0 && c.ClassID == post.ClassID {
				return true, nil
			}
		}
	}
	return false, nil
}

// ListPosts retrieves the feed visible to the actor, newest first.
// kindergartenID and classID narrow the feed when non-zero; they compose
// with visibility, they never widen it.
func (s *PostService) ListPosts(actor authz.Actor, kindergartenID, classID int64) ([]models.Post, error) {
	posts, err := s.postRepo.ListPosts(actor.Scope(), actor.UserID)
	if err != nil {
		return nil, err
	}
	if kindergartenID == 0 && classID == 0 {
		return posts, nil
	}

	var filtered []models.Post
	for _, p := range posts {
		if kindergartenID != 0 && p.KindergartenID != kindergartenID {
			continue
		}
		if classID != 0 && p.ClassID != classID {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// UpdatePost edits a post the actor can write to
func (s *PostService) UpdatePost(actor authz.Actor, id int64, title, description, images string) (*models.Post, error) {
	post, err := s.writablePost(actor, id)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, &validation.FieldError{Field: "title", Message: "title is required"}
	}

	post.Title = title
	post.Description = description
	post.Images = images
	if err := s.postRepo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post the actor can write to
func (s *PostService) DeletePost(actor authz.Actor, id int64) error {
	if _, err := s.writablePost(actor, id); err != nil {
		return err
	}
	return s.postRepo.DeletePost(id)
}

func (s *PostService) writablePost(actor authz.Actor, id int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	visible, err := s.canSeePost(actor, post)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, maskDenied(actor)
	}

	target, err := s.postTarget(post.KindergartenID, post.ClassID)
	if err != nil {
		return nil, err
	}
	if !actor.CanWrite(target) {
		return nil, ErrAccessDenied
	}
	return post, nil
}

// LikePost records the actor's like on a visible post
func (s *PostService) LikePost(actor authz.Actor, postID int64) error {
	if _, err := s.GetPost(actor, postID); err != nil {
		return err
	}
	return s.postRepo.LikePost(postID, actor.UserID)
}

// UnlikePost removes the actor's like
func (s *PostService) UnlikePost(actor authz.Actor, postID int64) error {
	if _, err := s.GetPost(actor, postID); err != nil {
		return err
	}
	return s.postRepo.UnlikePost(postID, actor.UserID)
}

// CreateComment adds a comment to a visible post. Commenting is open to
// every role that can see the post, parents included.
func (s *PostService) CreateComment(actor authz.Actor, postID int64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, &validation.FieldError{Field: "content", Message: "content is required"}
	}
	if _, err := s.GetPost(actor, postID); err != nil {
		return nil, err
	}
	return s.postRepo.CreateComment(postID, actor.UserID, content)
}

// ListComments lists the comments of a visible post, oldest first
func (s *PostService) ListComments(actor authz.Actor, postID int64) ([]models.Comment, error) {
	if _, err := s.GetPost(actor, postID); err != nil {
		return nil, err
	}
	return s.postRepo.ListComments(postID, actor.UserID)
}

// DeleteComment removes a comment. The author may always delete their own;
// staff with write access on the post may moderate any comment.
func (s *PostService) DeleteComment(actor authz.Actor, commentID int64) error {
	comment, err := s.postRepo.GetCommentByID(commentID, actor.UserID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if _, err := s.GetPost(actor, comment.PostID); err != nil {
		return err
	}

	if comment.UserID == actor.UserID {
		return s.postRepo.DeleteComment(commentID)
	}
	if _, err := s.writablePost(actor, comment.PostID); err != nil {
		return err
	}
	return s.postRepo.DeleteComment(commentID)
}

// LikeComment records the actor's like on a comment of a visible post
func (s *PostService) LikeComment(actor authz.Actor, commentID int64) error {
	comment, err := s.postRepo.GetCommentByID(commentID, actor.UserID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if _, err := s.GetPost(actor, comment.PostID); err != nil {
		return err
	}
	return s.postRepo.LikeComment(commentID, actor.UserID)
}

// UnlikeComment removes the actor's like from a comment
func (s *PostService) UnlikeComment(actor authz.Actor, commentID int64) error {
	comment, err := s.postRepo.GetCommentByID(commentID, actor.UserID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if _, err := s.GetPost(actor, comment.PostID); err != nil {
		return err
	}
	return s.postRepo.UnlikeComment(commentID, actor.UserID)
}
