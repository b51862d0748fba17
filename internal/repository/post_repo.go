package repository

import (
	"database/sql"
	"fmt"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
	"kinderpost/internal/models"
)

// PostRepository handles database operations for posts, likes and comments
type PostRepository struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) *PostRepository {
	return &PostRepository{db: db}
}

// postScopeClause renders the feed visibility of a scope against a posts
// table aliased as p. A kindergarten-wide post (class_id NULL) is visible to
// everyone affiliated with the kindergarten; a class post only to those who
// can see the class.
func postScopeClause(s authz.Scope) (string, []interface{}) {
	switch s.Kind {
	case authz.ScopeAll:
		return "1 = 1", nil
	case authz.ScopeKindergarten:
		return "p.kindergarten_id = ?", []interface{}{s.KindergartenID}
	case authz.ScopeClasses:
		placeholders, args := inClause(s.ClassIDs)
		clause := "(p.class_id IN (" + placeholders + ") OR (p.class_id IS NULL AND p.kindergarten_id = ?))"
		return clause, append(args, s.KindergartenID)
	case authz.ScopeParent:
		clause := `(p.class_id IN (SELECT class_id FROM children WHERE parent_id = ? AND class_id IS NOT NULL)
			OR (p.class_id IS NULL AND p.kindergarten_id IN (SELECT kindergarten_id FROM children WHERE parent_id = ?)))`
		return clause, []interface{}{s.ParentID, s.ParentID}
	}
	return "1 = 0", nil
}

func scanPost(row interface{ Scan(...interface{}) error }) (*models.Post, error) {
	p := &models.Post{}
	var classID sql.NullInt64
	var likedBy int
	err := row.Scan(&p.ID, &p.KindergartenID, &classID, &p.Title, &p.Description, &p.Images, &p.CreatedAt, &p.LikeCount, &likedBy)
	if err != nil {
		return nil, err
	}
	if classID.Valid {
		p.ClassID = classID.Int64
	}
	p.LikedByCaller = likedBy > 0
	return p, nil
}

// postSelect returns post rows with the like count and whether callerID has
// liked each post.
const postSelect = `
	SELECT p.id, p.kindergarten_id, p.class_id, p.title, p.description, p.images, p.created_at,
		(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id),
		(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = ?)
	FROM posts p`

// CreatePost creates a post; classID 0 publishes it kindergarten-wide
func (r *PostRepository) CreatePost(kindergartenID, classID int64, title, description, images string) (*models.Post, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO posts (kindergarten_id, class_id, title, description, images) VALUES (?, ?, ?, ?, ?)",
		kindergartenID, classIDValue(classID), title, description, images,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return r.GetPostByID(id, 0)
}

// GetPostByID retrieves a post with like information relative to callerID
func (r *PostRepository) GetPostByID(id, callerID int64) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRow(postSelect+" WHERE p.id = ?", callerID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

// UpdatePost updates a post's content
func (r *PostRepository) UpdatePost(p *models.Post) error {
	_, err := r.db.Exec(
		"UPDATE posts SET class_id = ?, title = ?, description = ?, images = ? WHERE id = ?",
		classIDValue(p.ClassID), p.Title, p.Description, p.Images, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// DeletePost removes a post along with its likes and comments
func (r *PostRepository) DeletePost(id int64) error {
	_, err := r.db.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// ListPosts retrieves the feed visible to a scope, newest first
func (r *PostRepository) ListPosts(scope authz.Scope, callerID int64) ([]models.Post, error) {
	clause, args := postScopeClause(scope)
	query := postSelect + " WHERE " + clause + " ORDER BY p.created_at DESC, p.id DESC"
	rows, err := r.db.Query(query, append([]interface{}{callerID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

// LikePost records a like; liking twice is a no-op
func (r *PostRepository) LikePost(postID, userID int64) error {
	liked, err := r.postLiked(postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}
	if _, err := r.db.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", postID, userID); err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

// UnlikePost removes a like; removing a missing like is a no-op
func (r *PostRepository) UnlikePost(postID, userID int64) error {
	if _, err := r.db.Exec("DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID); err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (r *PostRepository) postLiked(postID, userID int64) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check post like: %w", err)
	}
	return count > 0, nil
}

const commentSelect = `
	SELECT cm.id, cm.post_id, cm.user_id, u.name, cm.content, cm.created_at,
		(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = cm.id),
		(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = cm.id AND cl.user_id = ?)
	FROM comments cm
	JOIN users u ON u.id = cm.user_id`

func scanComment(row interface{ Scan(...interface{}) error }) (*models.Comment, error) {
	c := &models.Comment{}
	var likedBy int
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Content, &c.CreatedAt, &c.LikeCount, &likedBy)
	if err != nil {
		return nil, err
	}
	c.LikedByCaller = likedBy > 0
	return c, nil
}

// CreateComment adds a comment to a post
func (r *PostRepository) CreateComment(postID, userID int64, content string) (*models.Comment, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO comments (post_id, user_id, content) VALUES (?, ?, ?)",
		postID, userID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return r.GetCommentByID(id, userID)
}

// GetCommentByID retrieves a comment with like information relative to callerID
func (r *PostRepository) GetCommentByID(id, callerID int64) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRow(commentSelect+" WHERE cm.id = ?", callerID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// ListComments retrieves the comments of a post, oldest first
func (r *PostRepository) ListComments(postID, callerID int64) ([]models.Comment, error) {
	rows, err := r.db.Query(commentSelect+" WHERE cm.post_id = ? ORDER BY cm.created_at ASC, cm.id ASC", callerID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, nil
}

// DeleteComment removes a comment
func (r *PostRepository) DeleteComment(id int64) error {
	_, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// LikeComment records a like; liking twice is a no-op
func (r *PostRepository) LikeComment(commentID, userID int64) error {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM comment_likes WHERE comment_id = ? AND user_id = ?", commentID, userID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check comment like: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := r.db.Exec("INSERT INTO comment_likes (comment_id, user_id) VALUES (?, ?)", commentID, userID); err != nil {
		return fmt.Errorf("failed to like comment: %w", err)
	}
	return nil
}

// UnlikeComment removes a like; removing a missing like is a no-op
func (r *PostRepository) UnlikeComment(commentID, userID int64) error {
	if _, err := r.db.Exec("DELETE FROM comment_likes WHERE comment_id = ? AND user_id = ?", commentID, userID); err != nil {
		return fmt.Errorf("failed to unlike comment: %w", err)
	}
	return nil
}
