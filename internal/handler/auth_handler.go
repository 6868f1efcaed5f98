package handler

import (
	"net/http"

	"complaint-desk/internal/middleware"
	"complaint-desk/internal/model"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	payload, ok := middleware.BodyFromContext[model.RegisterRequest](r.Context())
	if !ok {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	token, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, token)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, ok := middleware.BodyFromContext[model.LoginRequest](r.Context())
	if !ok {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	token, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, token)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	payload, ok := middleware.BodyFromContext[model.ChangePasswordRequest](r.Context())
	if !ok {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if err := h.service.ChangePassword(r.Context(), user, payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	writeSuccess(w, http.StatusOK, user)
}
