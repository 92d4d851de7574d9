package auth

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

// User methods
func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, status, is_super_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Status, user.IsSuperAdmin,
	).Scan(&user.CreatedAt)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, password_hash, name, status, is_super_admin, super_admin_promoted_at, super_admin_promoted_by, created_at
		FROM users WHERE email = $1`
	user := &User{}
	err := r.db.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Status,
		&user.IsSuperAdmin, &user.SuperAdminPromotedAt, &user.SuperAdminPromotedBy, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT id, email, password_hash, name, status, is_super_admin, super_admin_promoted_at, super_admin_promoted_by, created_at
		FROM users WHERE id = $1`
	user := &User{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Status,
		&user.IsSuperAdmin, &user.SuperAdminPromotedAt, &user.SuperAdminPromotedBy, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *Repository) GetAllUsers(ctx context.Context, limit, offset int) ([]*User, error) {
	query := `SELECT id, email, password_hash, name, status, is_super_admin, super_admin_promoted_at, super_admin_promoted_by, created_at
		FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Status,
			&user.IsSuperAdmin, &user.SuperAdminPromotedAt, &user.SuperAdminPromotedBy, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *Repository) UpdateUser(ctx context.Context, user *User) error {
	query := `UPDATE users SET name = $2, status = $3, is_super_admin = $4, super_admin_promoted_at = $5, super_admin_promoted_by = $6 WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.Status, user.IsSuperAdmin, user.SuperAdminPromotedAt, user.SuperAdminPromotedBy)
	return err
}

func (r *Repository) CountSuperAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_super_admin = true`).Scan(&count)
	return count, err
}

// Company methods
func (r *Repository) CreateCompany(ctx context.Context, company *Company) error {
	settings, err := json.Marshal(company.Settings)
	if err != nil {
		return err
	}
	if company.Settings == nil {
		settings = []byte(`{}`)
	}
	query := `
		INSERT INTO companies (id, name, slug, settings)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		company.ID, company.Name, company.Slug, settings,
	).Scan(&company.CreatedAt)
}

func (r *Repository) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	query := `SELECT id, name, slug, settings, created_at FROM companies WHERE id = $1`
	return r.scanCompany(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetCompanyBySlug(ctx context.Context, slug string) (*Company, error) {
	query := `SELECT id, name, slug, settings, created_at FROM companies WHERE slug = $1`
	return r.scanCompany(r.db.DB.QueryRowContext(ctx, query, slug))
}

func (r *Repository) scanCompany(row *sql.Row) (*Company, error) {
	company := &Company{}
	var settings []byte
	err := row.Scan(&company.ID, &company.Name, &company.Slug, &settings, &company.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal(settings, &company.Settings)
	return company, nil
}

func (r *Repository) GetCompaniesByUserID(ctx context.Context, userID uuid.UUID) ([]*Company, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.settings, c.created_at
		FROM companies c
		INNER JOIN company_memberships cm ON c.id = cm.company_id
		WHERE cm.user_id = $1
		ORDER BY c.created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanCompanies(rows)
}

func (r *Repository) GetAllCompanies(ctx context.Context, limit, offset int) ([]*Company, error) {
	query := `SELECT id, name, slug, settings, created_at FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanCompanies(rows)
}

func (r *Repository) scanCompanies(rows *sql.Rows) ([]*Company, error) {
	var companies []*Company
	for rows.Next() {
		company := &Company{}
		var settings []byte
		if err := rows.Scan(&company.ID, &company.Name, &company.Slug, &settings, &company.CreatedAt); err != nil {
			return nil, err
		}
		json.Unmarshal(settings, &company.Settings)
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *Repository) UpdateCompany(ctx context.Context, company *Company) error {
	settings, err := json.Marshal(company.Settings)
	if err != nil {
		return err
	}
	query := `UPDATE companies SET name = $2, slug = $3, settings = $4 WHERE id = $1`
	_, err = r.db.DB.ExecContext(ctx, query, company.ID, company.Name, company.Slug, settings)
	return err
}

func (r *Repository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM companies WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

// Role methods
func (r *Repository) CreateRole(ctx context.Context, role *Role) error {
	permissions, _ := json.Marshal(role.Permissions)
	query := `
		INSERT INTO roles (id, company_id, name, permissions)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		role.ID, role.CompanyID, role.Name, permissions,
	).Scan(&role.CreatedAt)
}

func (r *Repository) GetRoleByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	query := `SELECT id, company_id, name, permissions, created_at FROM roles WHERE id = $1`
	role := &Role{}
	var permissions []byte
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&role.ID, &role.CompanyID, &role.Name, &permissions, &role.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *Repository) GetRolesByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*Role, error) {
	query := `SELECT id, company_id, name, permissions, created_at FROM roles WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		role := &Role{}
		var permissions []byte
		if err := rows.Scan(&role.ID, &role.CompanyID, &role.Name, &permissions, &role.CreatedAt); err != nil {
			return nil, err
		}
		json.Unmarshal(permissions, &role.Permissions)
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Membership methods
func (r *Repository) CreateMembership(ctx context.Context, membership *CompanyMembership) error {
	query := `
		INSERT INTO company_memberships (id, company_id, user_id, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		membership.ID, membership.CompanyID, membership.UserID, membership.RoleID,
	).Scan(&membership.CreatedAt)
}

func (r *Repository) GetMembership(ctx context.Context, companyID, userID uuid.UUID) (*CompanyMembership, error) {
	query := `SELECT id, company_id, user_id, role_id, created_at FROM company_memberships WHERE company_id = $1 AND user_id = $2`
	m := &CompanyMembership{}
	err := r.db.DB.QueryRowContext(ctx, query, companyID, userID).Scan(
		&m.ID, &m.CompanyID, &m.UserID, &m.RoleID, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return m, err
}

func (r *Repository) GetMembershipsByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*CompanyMembership, error) {
	query := `SELECT id, company_id, user_id, role_id, created_at FROM company_memberships WHERE company_id = $1`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*CompanyMembership
	for rows.Next() {
		m := &CompanyMembership{}
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.UserID, &m.RoleID, &m.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *Repository) DeleteMembership(ctx context.Context, companyID, userID uuid.UUID) error {
	query := `DELETE FROM company_memberships WHERE company_id = $1 AND user_id = $2`
	_, err := r.db.DB.ExecContext(ctx, query, companyID, userID)
	return err
}

// API Key methods
func (r *Repository) CreateAPIKey(ctx context.Context, key *APIKey) error {
	permissions, _ := json.Marshal(key.Permissions)
	query := `
		INSERT INTO api_keys (id, company_id, user_id, name, key_hash, permissions, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		key.ID, key.CompanyID, key.UserID, key.Name, key.KeyHash, permissions, key.ExpiresAt,
	).Scan(&key.CreatedAt)
}

func (r *Repository) GetAPIKeyByHash(ctx context.Context, keyHash string) (*APIKey, error) {
	query := `SELECT id, company_id, user_id, name, key_hash, permissions, expires_at, last_used_at, created_at
		FROM api_keys WHERE key_hash = $1`
	key := &APIKey{}
	var permissions []byte
	err := r.db.DB.QueryRowContext(ctx, query, keyHash).Scan(
		&key.ID, &key.CompanyID, &key.UserID, &key.Name, &key.KeyHash,
		&permissions, &key.ExpiresAt, &key.LastUsedAt, &key.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal(permissions, &key.Permissions)
	return key, nil
}

func (r *Repository) GetAPIKeysByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*APIKey, error) {
	query := `SELECT id, company_id, user_id, name, permissions, expires_at, last_used_at, created_at
		FROM api_keys WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*APIKey
	for rows.Next() {
		key := &APIKey{}
		var permissions []byte
		if err := rows.Scan(&key.ID, &key.CompanyID, &key.UserID, &key.Name,
			&permissions, &key.ExpiresAt, &key.LastUsedAt, &key.CreatedAt); err != nil {
			return nil, err
		}
		json.Unmarshal(permissions, &key.Permissions)
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *Repository) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE api_keys SET last_used_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM api_keys WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id)
	return err
}

// Audit log methods
func (r *Repository) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	oldData, _ := json.Marshal(entry.OldData)
	newData, _ := json.Marshal(entry.NewData)
	query := `
		INSERT INTO audit_logs (id, company_id, user_id, actor_type, entity_type, entity_id, action, old_data, new_data, ip_address, user_agent, result_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`
	return r.db.DB.QueryRowContext(ctx, query,
		entry.ID, entry.CompanyID, entry.UserID, entry.ActorType, entry.EntityType, entry.EntityID,
		entry.Action, oldData, newData, entry.IPAddress, entry.UserAgent, entry.ResultStatus,
	).Scan(&entry.CreatedAt)
}

func (r *Repository) GetAuditLogs(ctx context.Context, limit, offset int) ([]*AuditLog, error) {
	query := `SELECT id, company_id, user_id, actor_type, entity_type, entity_id, action, old_data, new_data, ip_address, user_agent, result_status, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*AuditLog
	for rows.Next() {
		entry := &AuditLog{}
		var oldData, newData []byte
		if err := rows.Scan(
			&entry.ID, &entry.CompanyID, &entry.UserID, &entry.ActorType, &entry.EntityType,
			&entry.EntityID, &entry.Action, &oldData, &newData, &entry.IPAddress,
			&entry.UserAgent, &entry.ResultStatus, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		json.Unmarshal(oldData, &entry.OldData)
		json.Unmarshal(newData, &entry.NewData)
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
