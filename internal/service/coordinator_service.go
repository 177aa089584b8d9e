package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stitchpoint/orderdesk/internal/analytics"
	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"github.com/stitchpoint/orderdesk/internal/store"
)

// CoordinatorService manages sales coordinators.
type CoordinatorService struct {
	store    *store.Store
	notifier *NotificationService
}

// NewCoordinatorService creates a coordinator service.
func NewCoordinatorService(st *store.Store, notifier *NotificationService) *CoordinatorService {
	return &CoordinatorService{store: st, notifier: notifier}
}

// CoordinatorRequest is the create/update payload.
type CoordinatorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

func (r *CoordinatorRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &store.ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// List returns all coordinators, sorted by name.
func (s *CoordinatorService) List() []entity.SalesCoordinator {
	return s.store.Snapshot().Coordinators
}

// Create adds a new coordinator and announces it to every session.
func (s *CoordinatorService) Create(ctx context.Context, req *CoordinatorRequest) (*entity.SalesCoordinator, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	coordinator := &entity.SalesCoordinator{
		ID:        uuid.New().String()[:32],
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	}
	if err := s.store.CreateCoordinator(ctx, coordinator); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(ctx, Notification{
		Type:    "success",
		Title:   "Coordinator Added",
		Message: fmt.Sprintf("%s has been added successfully.", coordinator.Name),
		Sound:   "ding",
	})
	return coordinator, nil
}

// Update modifies an existing coordinator.
func (s *CoordinatorService) Update(ctx context.Context, id string, req *CoordinatorRequest) (*entity.SalesCoordinator, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.FindCoordinator(id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(req.Name)
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.AvatarURL = req.AvatarURL

	if err := s.store.UpdateCoordinator(ctx, existing); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(ctx, Notification{
		Type:    "success",
		Title:   "Coordinator Updated",
		Message: fmt.Sprintf("%s has been updated successfully.", existing.Name),
		Sound:   "ding",
	})
	return existing, nil
}

// SalesPerformance returns per-coordinator order and revenue totals for the
// trailing number of days.
func (s *CoordinatorService) SalesPerformance(days int) []analytics.CoordinatorRow {
	if days <= 0 {
		days = 30
	}
	snap := s.store.Snapshot()
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	orders := analytics.FilterByDateRange(snap.Orders, from, to)
	return analytics.SalesByCoordinator(orders, snap.Coordinators)
}
