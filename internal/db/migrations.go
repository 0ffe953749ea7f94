package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Company references on listings are deliberately weak: no foreign keys, a
// dangling id renders as an unknown company instead of failing the row.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'company_role') THEN
			CREATE TYPE company_role AS ENUM ('CUSTOMER', 'MANUFACTURER');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('ADMIN', 'CUSTOMER', 'MANUFACTURER');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'demand_status') THEN
			CREATE TYPE demand_status AS ENUM ('RECEIVED', 'PROCESSING', 'COMPLETED', 'CANCELLED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'stock_status') THEN
			CREATE TYPE stock_status AS ENUM ('AVAILABLE', 'RESERVED', 'SOLD');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		role company_role NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		role user_role NOT NULL,
		company_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS demand_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		company_id UUID,
		diameter_type VARCHAR(16) NOT NULL DEFAULT '',
		diameter_from NUMERIC(10,2) NOT NULL DEFAULT 0,
		diameter_to NUMERIC(10,2) NOT NULL DEFAULT 0,
		length NUMERIC(10,2) NOT NULL DEFAULT 0,
		quantity BIGINT NOT NULL DEFAULT 0,
		cubic_meters NUMERIC(18,3) NOT NULL DEFAULT 0,
		notes TEXT,
		submission_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status demand_status NOT NULL DEFAULT 'RECEIVED'
	);`,
	`CREATE TABLE IF NOT EXISTS stock_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		company_id UUID,
		diameter_type VARCHAR(16) NOT NULL DEFAULT '',
		diameter_from NUMERIC(10,2) NOT NULL DEFAULT 0,
		diameter_to NUMERIC(10,2) NOT NULL DEFAULT 0,
		length NUMERIC(10,2) NOT NULL DEFAULT 0,
		quantity BIGINT NOT NULL DEFAULT 0,
		cubic_meters NUMERIC(18,3) NOT NULL DEFAULT 0,
		notes TEXT,
		price TEXT NOT NULL DEFAULT '',
		sustainability_info TEXT NOT NULL DEFAULT '',
		upload_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status stock_status NOT NULL DEFAULT 'AVAILABLE'
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (LOWER(email));`,
	`CREATE INDEX IF NOT EXISTS idx_users_company_id ON users (company_id) WHERE company_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_demand_items_status ON demand_items (status);`,
	`CREATE INDEX IF NOT EXISTS idx_demand_items_company_id ON demand_items (company_id) WHERE company_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_demand_items_submission_date ON demand_items (submission_date);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_items_status ON stock_items (status);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_items_company_id ON stock_items (company_id) WHERE company_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_stock_items_upload_date ON stock_items (upload_date);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
