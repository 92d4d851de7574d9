package maintenance

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/property"
)

var (
	ErrNotFound         = errors.New("maintenance request not found")
	ErrForbidden        = errors.New("maintenance request belongs to another company")
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrTerminalStatus   = errors.New("request is in a terminal status")
)

type Service struct {
	repo        *Repository
	propertySvc *property.Service
}

func NewService(repo *Repository, propertySvc *property.Service) *Service {
	return &Service{repo: repo, propertySvc: propertySvc}
}

func (s *Service) Create(ctx context.Context, companyID, requestedBy uuid.UUID, input *CreateRequestInput) (*Request, error) {
	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if input.PropertyID != nil {
		if _, err := s.propertySvc.Get(ctx, companyID, *input.PropertyID); err != nil {
			if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrForbidden) {
				return nil, ErrPropertyNotFound
			}
			return nil, err
		}
	}

	req := &Request{
		ID:          uuid.New(),
		CompanyID:   companyID,
		PropertyID:  input.PropertyID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      StatusPending,
		RequestedBy: &requestedBy,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	if req.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, limit, offset int) (*ListRequestsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	requests, total, err := s.repo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*Request{}
	}

	return &ListRequestsResponse{
		Requests: requests,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *Service) ListByProperty(ctx context.Context, companyID, propertyID uuid.UUID) ([]*Request, error) {
	if _, err := s.propertySvc.Get(ctx, companyID, propertyID); err != nil {
		if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrForbidden) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, input *UpdateRequestInput) (*Request, error) {
	req, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.Description != nil {
		req.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		req.Priority = *input.Priority
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus moves a request through its lifecycle. Completed and
// cancelled are terminal: once there, no further transitions are accepted.
func (s *Service) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status Status) (*Request, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	req, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() && status != req.Status {
		return nil, ErrTerminalStatus
	}

	req.Status = status
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
