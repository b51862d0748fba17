package handlers

import (
	"net/http"

	"kinderpost/internal/service"
)

// PostHandler serves the social feed: posts, comments and likes
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost handles POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KindergartenID int64  `json:"kindergarten_id"`
		ClassID        int64  `json:"class_id"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		Images         string `json:"images"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.CreatePost(actorFrom(r), req.KindergartenID, req.ClassID, req.Title, req.Description, req.Images)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, postView(post))
}

// ListPosts handles GET /api/posts with optional kindergarten_id and
// class_id filters
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	kindergartenID, ok := queryInt64(r, "kindergarten_id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid kindergarten_id")
		return
	}
	classID, ok := queryInt64(r, "class_id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid class_id")
		return
	}

	posts, err := h.postService.ListPosts(actorFrom(r), kindergartenID, classID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, postView(&posts[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// GetPost handles GET /api/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.GetPost(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, postView(post))
}

// UpdatePost handles PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Images      string `json:"images"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.UpdatePost(actorFrom(r), id, req.Title, req.Description, req.Images)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, postView(post))
}

// DeletePost handles DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.DeletePost(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// LikePost handles POST /api/posts/{id}/like
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.LikePost(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// UnlikePost handles DELETE /api/posts/{id}/like
func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.UnlikePost(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// CreateComment handles POST /api/posts/{id}/comments
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.postService.CreateComment(actorFrom(r), id, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, commentView(comment))
}

// ListComments handles GET /api/posts/{id}/comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	comments, err := h.postService.ListComments(actorFrom(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, commentView(&comments[i]))
	}
	JSONResponse(w, http.StatusOK, views)
}

// DeleteComment handles DELETE /api/comments/{id}
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.postService.DeleteComment(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// LikeComment handles POST /api/comments/{id}/like
func (h *PostHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.postService.LikeComment(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// UnlikeComment handles DELETE /api/comments/{id}/like
func (h *PostHandler) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.postService.UnlikeComment(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}
