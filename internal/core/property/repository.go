package property

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

func (r *Repository) Create(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (id, company_id, title, address, owner_name, owner_email, owner_phone, contract_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return r.db.DB.QueryRowContext(ctx, query,
		p.ID, p.CompanyID, p.Title, p.Address, p.OwnerName, p.OwnerEmail, p.OwnerPhone, p.ContractAddress,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	query := `
		SELECT id, company_id, title, address, owner_name, owner_email, owner_phone, contract_address, created_at, updated_at
		FROM properties
		WHERE id = $1`
	return r.scanProperty(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *Repository) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*Property, int, error) {
	countQuery := `SELECT COUNT(*) FROM properties WHERE company_id = $1`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_id, title, address, owner_name, owner_email, owner_phone, contract_address, created_at, updated_at
		FROM properties
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	properties, err := r.scanProperties(rows)
	return properties, total, err
}

// ListAll returns every property for a company without pagination, for
// report assembly.
func (r *Repository) ListAll(ctx context.Context, companyID uuid.UUID) ([]*Property, error) {
	query := `
		SELECT id, company_id, title, address, owner_name, owner_email, owner_phone, contract_address, created_at, updated_at
		FROM properties
		WHERE company_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanProperties(rows)
}

func (r *Repository) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET title = $2, address = $3, owner_name = $4, owner_email = $5, owner_phone = $6, contract_address = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	return r.db.DB.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Address, p.OwnerName, p.OwnerEmail, p.OwnerPhone, p.ContractAddress,
	).Scan(&p.UpdatedAt)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) scanProperty(row *sql.Row) (*Property, error) {
	p := &Property{}
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Address,
		&p.OwnerName, &p.OwnerEmail, &p.OwnerPhone, &p.ContractAddress,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) scanProperties(rows *sql.Rows) ([]*Property, error) {
	var properties []*Property
	for rows.Next() {
		p := &Property{}
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Title, &p.Address,
			&p.OwnerName, &p.OwnerEmail, &p.OwnerPhone, &p.ContractAddress,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}
