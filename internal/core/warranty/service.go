package warranty

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/property"
)

var (
	ErrNotFound         = errors.New("warranty not found")
	ErrForbidden        = errors.New("warranty belongs to another company")
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidPeriod    = errors.New("end date must not be before start date")
)

type Service struct {
	repo        *Repository
	propertySvc *property.Service
}

func NewService(repo *Repository, propertySvc *property.Service) *Service {
	return &Service{repo: repo, propertySvc: propertySvc}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req *CreateWarrantyRequest) (*Warranty, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidPeriod
	}

	if _, err := s.propertySvc.Get(ctx, companyID, req.PropertyID); err != nil {
		if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrForbidden) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	w := &Warranty{
		ID:          uuid.New(),
		CompanyID:   companyID,
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      "active",
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Warranty, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrNotFound
	}
	if w.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return w, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, limit, offset int) (*ListWarrantiesResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	warranties, total, err := s.repo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	if warranties == nil {
		warranties = []*Warranty{}
	}

	return &ListWarrantiesResponse{
		Warranties: warranties,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (s *Service) ListByProperty(ctx context.Context, companyID, propertyID uuid.UUID) ([]*Warranty, error) {
	if _, err := s.propertySvc.Get(ctx, companyID, propertyID); err != nil {
		if errors.Is(err, property.ErrNotFound) || errors.Is(err, property.ErrForbidden) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req *UpdateWarrantyRequest) (*Warranty, error) {
	w, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Description != nil {
		w.Description = req.Description
	}
	if req.StartDate != nil {
		w.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		w.EndDate = *req.EndDate
	}
	if w.EndDate.Before(w.StartDate) {
		return nil, ErrInvalidPeriod
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
