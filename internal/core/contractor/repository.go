package contractor

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/propdesk/propdesk/internal/storage/postgres"
)

type Repository struct {
	db *postgres.Client
}

func NewRepository(db *postgres.Client) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Contractor) error {
	specialties, err := json.Marshal(c.Specialties)
	if err != nil {
		return err
	}
	if c.Specialties == nil {
		specialties = []byte(`[]`)
	}
	query := `
		INSERT INTO contractors (id, company_id, name, company_name, email, phone, specialties, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		c.ID, c.CompanyID, c.Name, c.CompanyName, c.Email, c.Phone, specialties, c.HourlyRate,
	).Scan(&c.CreatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Contractor, error) {
	query := `
		SELECT id, company_id, name, company_name, email, phone, specialties, hourly_rate, created_at
		FROM contractors
		WHERE id = $1`
	c := &Contractor{}
	var specialties []byte
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.CompanyName, &c.Email, &c.Phone, &specialties, &c.HourlyRate, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal(specialties, &c.Specialties)
	return c, nil
}

func (r *Repository) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*Contractor, int, error) {
	countQuery := `SELECT COUNT(*) FROM contractors WHERE company_id = $1`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, company_id, name, company_name, email, phone, specialties, hourly_rate, created_at
		FROM contractors
		WHERE company_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contractors []*Contractor
	for rows.Next() {
		c := &Contractor{}
		var specialties []byte
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.CompanyName, &c.Email, &c.Phone, &specialties, &c.HourlyRate, &c.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		json.Unmarshal(specialties, &c.Specialties)
		contractors = append(contractors, c)
	}
	return contractors, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, c *Contractor) error {
	specialties, err := json.Marshal(c.Specialties)
	if err != nil {
		return err
	}
	query := `
		UPDATE contractors
		SET name = $2, company_name = $3, email = $4, phone = $5, specialties = $6, hourly_rate = $7
		WHERE id = $1`
	_, err = r.db.DB.ExecContext(ctx, query,
		c.ID, c.Name, c.CompanyName, c.Email, c.Phone, specialties, c.HourlyRate)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM contractors WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}
