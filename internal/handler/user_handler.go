package handler

import (
	"net/http"

	"complaint-desk/internal/middleware"
	"complaint-desk/internal/model"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/apierror"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateStaff provisions an admin or approver account.
func (h *UserHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	payload, ok := middleware.BodyFromContext[model.CreateStaffRequest](r.Context())
	if !ok {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	user, err := h.service.CreateStaff(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user)
}
