package workorder

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/core/contractor"
	"github.com/propdesk/propdesk/internal/core/maintenance"
)

var (
	ErrNotFound           = errors.New("work order not found")
	ErrForbidden          = errors.New("work order belongs to another company")
	ErrRequestNotFound    = errors.New("maintenance request not found")
	ErrContractorNotFound = errors.New("contractor not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNegativeCost       = errors.New("cost must not be negative")
)

type Service struct {
	repo           *Repository
	maintenanceSvc *maintenance.Service
	contractorSvc  *contractor.Service
}

func NewService(repo *Repository, maintenanceSvc *maintenance.Service, contractorSvc *contractor.Service) *Service {
	return &Service{
		repo:           repo,
		maintenanceSvc: maintenanceSvc,
		contractorSvc:  contractorSvc,
	}
}

func (s *Service) Create(ctx context.Context, companyID, requestID uuid.UUID, req *CreateWorkOrderRequest) (*WorkOrder, error) {
	if _, err := s.maintenanceSvc.Get(ctx, companyID, requestID); err != nil {
		if errors.Is(err, maintenance.ErrNotFound) || errors.Is(err, maintenance.ErrForbidden) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if req.ContractorID != nil {
		if _, err := s.contractorSvc.Get(ctx, companyID, *req.ContractorID); err != nil {
			if errors.Is(err, contractor.ErrNotFound) || errors.Is(err, contractor.ErrForbidden) {
				return nil, ErrContractorNotFound
			}
			return nil, err
		}
	}

	if req.EstimatedCost != nil && *req.EstimatedCost < 0 {
		return nil, ErrNegativeCost
	}

	wo := &WorkOrder{
		ID:            uuid.New(),
		CompanyID:     companyID,
		RequestID:     requestID,
		ContractorID:  req.ContractorID,
		ScheduledDate: req.ScheduledDate,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
		Status:        maintenance.StatusPending,
	}

	if err := s.repo.Create(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*WorkOrder, error) {
	wo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, ErrNotFound
	}
	if wo.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return wo, nil
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, limit, offset int) (*ListWorkOrdersResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	orders, total, err := s.repo.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*WorkOrder{}
	}

	return &ListWorkOrdersResponse{
		WorkOrders: orders,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (s *Service) ListByRequest(ctx context.Context, companyID, requestID uuid.UUID) ([]*WorkOrder, error) {
	if _, err := s.maintenanceSvc.Get(ctx, companyID, requestID); err != nil {
		if errors.Is(err, maintenance.ErrNotFound) || errors.Is(err, maintenance.ErrForbidden) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return s.repo.ListByRequest(ctx, requestID)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req *UpdateWorkOrderRequest) (*WorkOrder, error) {
	wo, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.ContractorID != nil {
		if _, err := s.contractorSvc.Get(ctx, companyID, *req.ContractorID); err != nil {
			if errors.Is(err, contractor.ErrNotFound) || errors.Is(err, contractor.ErrForbidden) {
				return nil, ErrContractorNotFound
			}
			return nil, err
		}
		wo.ContractorID = req.ContractorID
	}
	if req.ScheduledDate != nil {
		wo.ScheduledDate = req.ScheduledDate
	}
	if req.EstimatedCost != nil {
		if *req.EstimatedCost < 0 {
			return nil, ErrNegativeCost
		}
		wo.EstimatedCost = req.EstimatedCost
	}
	if req.ActualCost != nil {
		if *req.ActualCost < 0 {
			return nil, ErrNegativeCost
		}
		wo.ActualCost = req.ActualCost
	}
	if req.Notes != nil {
		wo.Notes = *req.Notes
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		wo.Status = *req.Status
	}

	if err := s.repo.Update(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
