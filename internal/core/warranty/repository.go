package warranty

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

func (r *Repository) Create(ctx context.Context, w *Warranty) error {
	query := `
		INSERT INTO warranties (id, company_id, property_id, title, description, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		w.ID, w.CompanyID, w.PropertyID, w.Title, w.Description, w.StartDate, w.EndDate, w.Status,
	).Scan(&w.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Warranty, error) {
	query := `
		SELECT id, company_id, property_id, title, description, start_date, end_date, status, created_at
		FROM warranties
		WHERE id = $1`
	return r.scanWarranty(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *Repository) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*Warranty, int, error) {
	countQuery := `SELECT COUNT(*) FROM warranties WHERE company_id = $1`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_id, property_id, title, description, start_date, end_date, status, created_at
		FROM warranties
		WHERE company_id = $1
		ORDER BY end_date
		LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	warranties, err := r.scanWarranties(rows)
	return warranties, total, err
}

func (r *Repository) ListAll(ctx context.Context, companyID uuid.UUID) ([]*Warranty, error) {
	query := `
		SELECT id, company_id, property_id, title, description, start_date, end_date, status, created_at
		FROM warranties
		WHERE company_id = $1
		ORDER BY end_date`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanWarranties(rows)
}

// ListEverything returns all warranties across companies, for the nightly
// expiry sweep.
func (r *Repository) ListEverything(ctx context.Context) ([]*Warranty, error) {
	query := `
		SELECT id, company_id, property_id, title, description, start_date, end_date, status, created_at
		FROM warranties
		ORDER BY end_date`
	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanWarranties(rows)
}

func (r *Repository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Warranty, error) {
	query := `
		SELECT id, company_id, property_id, title, description, start_date, end_date, status, created_at
		FROM warranties
		WHERE property_id = $1
		ORDER BY end_date`
	rows, err := r.db.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanWarranties(rows)
}

func (r *Repository) Update(ctx context.Context, w *Warranty) error {
	query := `
		UPDATE warranties
		SET title = $2, description = $3, start_date = $4, end_date = $5, status = $6
		WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query,
		w.ID, w.Title, w.Description, w.StartDate, w.EndDate, w.Status)
	return err
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE warranties SET status = $2 WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id, status)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM warranties WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) scanWarranty(row *sql.Row) (*Warranty, error) {
	w := &Warranty{}
	err := row.Scan(
		&w.ID, &w.CompanyID, &w.PropertyID, &w.Title, &w.Description,
		&w.StartDate, &w.EndDate, &w.Status, &w.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *Repository) scanWarranties(rows *sql.Rows) ([]*Warranty, error) {
	var warranties []*Warranty
	for rows.Next() {
		w := &Warranty{}
		if err := rows.Scan(
			&w.ID, &w.CompanyID, &w.PropertyID, &w.Title, &w.Description,
			&w.StartDate, &w.EndDate, &w.Status, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		warranties = append(warranties, w)
	}
	return warranties, rows.Err()
}
