package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("property not found")
	ErrForbidden = errors.New("property belongs to another company")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req *CreatePropertyRequest) (*Property, error) {
	p := &Property{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Title:      req.Title,
		Address:    req.Address,
		OwnerName:  req.OwnerName,
		OwnerEmail: req.OwnerEmail,
		OwnerPhone: req.OwnerPhone,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, limit, offset int) (*ListPropertiesResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	properties, total, err := s.repo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []*Property{}
	}

	return &ListPropertiesResponse{
		Properties: properties,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req *UpdatePropertyRequest) (*Property, error) {
	p, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.OwnerName != nil {
		p.OwnerName = req.OwnerName
	}
	if req.OwnerEmail != nil {
		p.OwnerEmail = req.OwnerEmail
	}
	if req.OwnerPhone != nil {
		p.OwnerPhone = req.OwnerPhone
	}
	if req.ContractAddress != nil {
		p.ContractAddress = req.ContractAddress
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
