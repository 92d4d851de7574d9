package maintenance

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

func (r *Repository) Create(ctx context.Context, req *Request) error {
	query := `
		INSERT INTO maintenance_requests (id, company_id, property_id, title, description, priority, status, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return r.db.DB.QueryRowContext(ctx, query,
		req.ID, req.CompanyID, req.PropertyID, req.Title, req.Description, req.Priority, req.Status, req.RequestedBy,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	query := `
		SELECT id, company_id, property_id, title, description, priority, status, requested_by, created_at, updated_at
		FROM maintenance_requests
		WHERE id = $1`
	return r.scanRequest(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *Repository) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*Request, int, error) {
	countQuery := `SELECT COUNT(*) FROM maintenance_requests WHERE company_id = $1`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_id, property_id, title, description, priority, status, requested_by, created_at, updated_at
		FROM maintenance_requests
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests, err := r.scanRequests(rows)
	return requests, total, err
}

func (r *Repository) ListAll(ctx context.Context, companyID uuid.UUID) ([]*Request, error) {
	query := `
		SELECT id, company_id, property_id, title, description, priority, status, requested_by, created_at, updated_at
		FROM maintenance_requests
		WHERE company_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRequests(rows)
}

func (r *Repository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Request, error) {
	query := `
		SELECT id, company_id, property_id, title, description, priority, status, requested_by, created_at, updated_at
		FROM maintenance_requests
		WHERE property_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanRequests(rows)
}

func (r *Repository) Update(ctx context.Context, req *Request) error {
	query := `
		UPDATE maintenance_requests
		SET title = $2, description = $3, priority = $4, status = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	return r.db.DB.QueryRowContext(ctx, query,
		req.ID, req.Title, req.Description, req.Priority, req.Status,
	).Scan(&req.UpdatedAt)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM maintenance_requests WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) scanRequest(row *sql.Row) (*Request, error) {
	req := &Request{}
	err := row.Scan(
		&req.ID, &req.CompanyID, &req.PropertyID, &req.Title, &req.Description,
		&req.Priority, &req.Status, &req.RequestedBy, &req.CreatedAt, &req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repository) scanRequests(rows *sql.Rows) ([]*Request, error) {
	var requests []*Request
	for rows.Next() {
		req := &Request{}
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.PropertyID, &req.Title, &req.Description,
			&req.Priority, &req.Status, &req.RequestedBy, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
