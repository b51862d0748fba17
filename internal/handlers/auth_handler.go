package handlers

import (
	"net/http"

	"kinderpost/internal/models"
	"kinderpost/internal/service"
)

// AuthHandler serves registration, login and account management
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleParent
	}
	if role == models.RoleSuperadmin {
		ErrorResponse(w, http.StatusBadRequest, "cannot register as superadmin")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusCreated, userView(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, AuthView{Token: token, User: userView(user)})
}

// SetPin handles POST /api/auth/pin
func (h *AuthHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pin string `json:"pin"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.SetPin(userFrom(r).ID, req.Pin); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// LoginWithPin handles POST /api/auth/pin-login
func (h *AuthHandler) LoginWithPin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Pin   string `json:"pin"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.authService.LoginWithPin(req.Email, req.Pin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, AuthView{Token: token, User: userView(user)})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, userView(userFrom(r)))
}

// UpdateProfile handles PUT /api/auth/me
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(userFrom(r).ID, req.Name, req.ProfilePicture)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, userView(user))
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(userFrom(r).ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// UpdateDeviceToken handles PUT /api/auth/device-token
func (h *AuthHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceToken string `json:"device_token"`
	}
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.UpdateDeviceToken(userFrom(r).ID, req.DeviceToken); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.authService.DeleteUser(actorFrom(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}

// DeleteAccount handles DELETE /api/auth/me
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.DeleteAccount(userFrom(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	JSONResponse(w, http.StatusNoContent, nil)
}
