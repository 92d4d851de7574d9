package contractor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("contractor not found")
	ErrForbidden   = errors.New("contractor belongs to another company")
	ErrInvalidRate = errors.New("hourly rate must not be negative")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req *CreateContractorRequest) (*Contractor, error) {
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, ErrInvalidRate
	}

	c := &Contractor{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
		HourlyRate:  req.HourlyRate,
	}
	if c.Specialties == nil {
		c.Specialties = []string{}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Contractor, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, limit, offset int) (*ListContractorsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	contractors, total, err := s.repo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	if contractors == nil {
		contractors = []*Contractor{}
	}

	return &ListContractorsResponse{
		Contractors: contractors,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req *UpdateContractorRequest) (*Contractor, error) {
	c, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.CompanyName != nil {
		c.CompanyName = req.CompanyName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Specialties != nil {
		c.Specialties = req.Specialties
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, ErrInvalidRate
		}
		c.HourlyRate = req.HourlyRate
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
