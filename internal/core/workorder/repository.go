package workorder

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/storage/postgres"
)

type Repository struct {
	db *postgres.Client
}

func NewRepository(db *postgres.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, wo *WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, company_id, request_id, contractor_id, scheduled_date, estimated_cost, actual_cost, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		wo.ID, wo.CompanyID, wo.RequestID, wo.ContractorID, wo.ScheduledDate,
		wo.EstimatedCost, wo.ActualCost, wo.Notes, wo.Status,
	).Scan(&wo.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error) {
	query := `
		SELECT id, company_id, request_id, contractor_id, scheduled_date, estimated_cost, actual_cost, notes, status, created_at
		FROM work_orders
		WHERE id = $1`
	return r.scanWorkOrder(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *Repository) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*WorkOrder, int, error) {
	countQuery := `SELECT COUNT(*) FROM work_orders WHERE company_id = $1`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_id, request_id, contractor_id, scheduled_date, estimated_cost, actual_cost, notes, status, created_at
		FROM work_orders
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := r.scanWorkOrders(rows)
	return orders, total, err
}

func (r *Repository) ListAll(ctx context.Context, companyID uuid.UUID) ([]*WorkOrder, error) {
	query := `
		SELECT id, company_id, request_id, contractor_id, scheduled_date, estimated_cost, actual_cost, notes, status, created_at
		FROM work_orders
		WHERE company_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanWorkOrders(rows)
}

func (r *Repository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*WorkOrder, error) {
	query := `
		SELECT id, company_id, request_id, contractor_id, scheduled_date, estimated_cost, actual_cost, notes, status, created_at
		FROM work_orders
		WHERE request_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanWorkOrders(rows)
}

func (r *Repository) Update(ctx context.Context, wo *WorkOrder) error {
	query := `
		UPDATE work_orders
		SET contractor_id = $2, scheduled_date = $3, estimated_cost = $4, actual_cost = $5, notes = $6, status = $7
		WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query,
		wo.ID, wo.ContractorID, wo.ScheduledDate, wo.EstimatedCost, wo.ActualCost, wo.Notes, wo.Status)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM work_orders WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) scanWorkOrder(row *sql.Row) (*WorkOrder, error) {
	wo := &WorkOrder{}
	err := row.Scan(
		&wo.ID, &wo.CompanyID, &wo.RequestID, &wo.ContractorID, &wo.ScheduledDate,
		&wo.EstimatedCost, &wo.ActualCost, &wo.Notes, &wo.Status, &wo.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return wo, nil
}

func (r *Repository) scanWorkOrders(rows *sql.Rows) ([]*WorkOrder, error) {
	var orders []*WorkOrder
	for rows.Next() {
		wo := &WorkOrder{}
		if err := rows.Scan(
			&wo.ID, &wo.CompanyID, &wo.RequestID, &wo.ContractorID, &wo.ScheduledDate,
			&wo.EstimatedCost, &wo.ActualCost, &wo.Notes, &wo.Status, &wo.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, wo)
	}
	return orders, rows.Err()
}
