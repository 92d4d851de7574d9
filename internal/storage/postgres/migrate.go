package postgres

import "fmt"

// Migrate applies the schema. Statements are idempotent so the server can
// run them on every boot.
func (c *Client) Migrate() error {
	for i, stmt := range schema {
		if _, err := c.DB.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		is_super_admin BOOLEAN NOT NULL DEFAULT FALSE,
		super_admin_promoted_at TIMESTAMPTZ,
		super_admin_promoted_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		settings JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		permissions JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (company_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS company_memberships (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (company_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		name TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		permissions JSONB NOT NULL DEFAULT '[]',
		expires_at TIMESTAMPTZ,
		last_used_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		address TEXT NOT NULL,
		owner_name TEXT,
		owner_email TEXT,
		owner_phone TEXT,
		contract_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		property_id UUID REFERENCES properties(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'pending',
		requested_by UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		company_name TEXT,
		email TEXT NOT NULL,
		phone TEXT,
		specialties JSONB NOT NULL DEFAULT '[]',
		hourly_rate NUMERIC(10,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS work_orders (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		request_id UUID NOT NULL REFERENCES maintenance_requests(id) ON DELETE CASCADE,
		contractor_id UUID REFERENCES contractors(id) ON DELETE SET NULL,
		scheduled_date TIMESTAMPTZ,
		estimated_cost NUMERIC(12,2),
		actual_cost NUMERIC(12,2),
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS warranties (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		property_id UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		company_id UUID,
		user_id UUID,
		actor_type TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		action TEXT NOT NULL,
		old_data JSONB,
		new_data JSONB,
		ip_address TEXT,
		user_agent TEXT,
		result_status TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_company ON properties(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_company ON maintenance_requests(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_property ON maintenance_requests(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_request ON work_orders(request_id)`,
	`CREATE INDEX IF NOT EXISTS idx_warranties_property ON warranties(property_id)`,
	`CREATE INDEX IF NOT EXISTS idx_warranties_end_date ON warranties(end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)`,
}
