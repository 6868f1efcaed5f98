package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"complaint-desk/internal/middleware"
	"complaint-desk/internal/model"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/apierror"
)

type ComplaintHandler struct {
	service *service.ComplaintService
}

func NewComplaintHandler(service *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	complaints, err := h.service.ListFor(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, complaints)
}

func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	payload, ok := middleware.BodyFromContext[model.CreateComplaintRequest](r.Context())
	if !ok {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	complaint, err := h.service.Create(r.Context(), user, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, complaint)
}

func (h *ComplaintHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.Approve)
}

func (h *ComplaintHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.Reject)
}

func (h *ComplaintHandler) review(w http.ResponseWriter, r *http.Request, apply func(context.Context, model.User, int64) error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	rawID := chi.URLParam(r, "id")
	complaintID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || complaintID <= 0 {
		writeError(w, apierror.BadRequest("complaint id must be a positive integer", rawID))
		return
	}

	if err := apply(r.Context(), user, complaintID); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}
