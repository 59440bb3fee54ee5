package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"timetrack/internal/auth"
	"timetrack/internal/config"
	"timetrack/internal/identity"
)

// Seed creates the admin user and a few employees so a fresh install is
// usable immediately. It is idempotent: existing rows are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, display_name, role, password_hash)
    VALUES ($1, 'Administrator', $2, $3)
    ON CONFLICT (email) DO NOTHING
  `, cfg.SeedAdminEmail, identity.RoleAdmin, hash)
	if err != nil {
		return err
	}

	seedEmployees := []struct {
		name    string
		email   string
		salary  float64
		jobRole string
	}{
		{"Ravi Kumar", "ravi@example.com", 9000, "Technician"},
		{"Anita Sharma", "anita@example.com", 12000, "Supervisor"},
	}
	for _, emp := range seedEmployees {
		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", emp.email).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO employees (name, email, monthly_salary, job_role)
      VALUES ($1, $2, $3, $4)
    `, emp.name, emp.email, emp.salary, emp.jobRole); err != nil {
			return err
		}
	}

	return nil
}
