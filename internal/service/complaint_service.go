package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"complaint-desk/internal/event"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/util"
	"complaint-desk/pkg/apierror"
)

type PhotoUploader interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

type ComplaintService struct {
	store    repository.Store
	uploader PhotoUploader
	events   event.Publisher
}

// NewComplaintService wires the complaint workflow. uploader may be nil, in
// which case complaints must reference an existing photo_url.
func NewComplaintService(store repository.Store, uploader PhotoUploader, events event.Publisher) *ComplaintService {
	if events == nil {
		events = event.Discard{}
	}
	return &ComplaintService{store: store, uploader: uploader, events: events}
}

// Create files a complaint owned by caller. The status always starts as
// pending, whatever the request carried.
func (s *ComplaintService) Create(ctx context.Context, caller model.User, req model.CreateComplaintRequest) (model.Complaint, error) {
	photoURL := strings.TrimSpace(req.PhotoURL)
	if req.Photo != "" {
		uploaded, err := s.uploadPhoto(ctx, caller.ID, req.Photo, req.PhotoExtension)
		if err != nil {
			return model.Complaint{}, err
		}
		photoURL = uploaded
	}

	complaint := model.Complaint{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		PhotoURL:     photoURL,
		Amount:       req.Amount,
		Status:       model.StatusPending,
		ComplainerID: caller.ID,
	}

	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		return tx.Complaints().Create(ctx, &complaint)
	})
	if errors.Is(err, model.ErrComplainerMissing) {
		return model.Complaint{}, apierror.Unauthorized("invalid token")
	}
	if err != nil {
		return model.Complaint{}, fmt.Errorf("create complaint: %w", err)
	}

	slog.Info("complaint created", "complaint_id", complaint.ID, "complainer_id", caller.ID)
	s.events.Publish(event.New(event.TypeComplaintCreated, caller.ID, complaint))

	return complaint, nil
}

// ListFor returns the caller's own complaints for complainers and every
// complaint for staff.
func (s *ComplaintService) ListFor(ctx context.Context, caller model.User) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		switch caller.Role {
		case model.RoleComplainer:
			complaints, err = tx.Complaints().ListByComplainer(ctx, caller.ID)
		case model.RoleApprover, model.RoleAdmin:
			complaints, err = tx.Complaints().List(ctx)
		default:
			err = apierror.Forbidden("you do not have permission to access this resource")
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

func (s *ComplaintService) Approve(ctx context.Context, actor model.User, complaintID int64) error {
	return s.setStatus(ctx, actor, complaintID, model.StatusApproved, event.TypeComplaintApproved)
}

func (s *ComplaintService) Reject(ctx context.Context, actor model.User, complaintID int64) error {
	return s.setStatus(ctx, actor, complaintID, model.StatusRejected, event.TypeComplaintRejected)
}

// setStatus overwrites the status without checking the current one, so an
// approved complaint can still be rejected and vice versa.
func (s *ComplaintService) setStatus(ctx context.Context, actor model.User, complaintID int64, status model.Status, typ event.Type) error {
	var previous model.Status
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		current, err := tx.Complaints().FindByID(ctx, complaintID)
		if err != nil {
			return err
		}
		previous = current.Status
		return tx.Complaints().UpdateStatus(ctx, complaintID, status)
	})
	if errors.Is(err, model.ErrComplaintNotFound) {
		return apierror.NotFound("complaint not found", strconv.FormatInt(complaintID, 10))
	}
	if err != nil {
		return fmt.Errorf("set complaint %d status: %w", complaintID, err)
	}

	if previous != model.StatusPending {
		slog.Warn("complaint status overwritten", "complaint_id", complaintID, "from", previous, "to", status)
	}
	slog.Info("complaint reviewed", "complaint_id", complaintID, "status", status, "approver_id", actor.ID)
	s.events.Publish(event.New(typ, actor.ID, map[string]any{
		"complaint_id":    complaintID,
		"status":          status,
		"previous_status": previous,
	}))
	return nil
}

func (s *ComplaintService) uploadPhoto(ctx context.Context, ownerID int64, encoded string, extension string) (string, error) {
	if s.uploader == nil {
		return "", apierror.Validation(map[string]string{"photo": "photo uploads are not enabled, send photo_url instead"})
	}

	ext, err := util.NormalizePhotoExtension(extension)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apierror.Validation(map[string]string{"photo": "must be base64 encoded"})
	}

	contentType, err := util.PhotoContentType(data)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("complaints/%d/%04d/%02d/%s%s", ownerID, now.Year(), now.Month(), uuid.NewString(), ext)
	url, err := s.uploader.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload complaint photo: %w", err)
	}
	return url, nil
}
