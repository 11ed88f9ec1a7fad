package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migration is one named schema step applied at startup.
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_users",
		SQL: `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL DEFAULT '',
	hashed_password TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	is_guest BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		Name: "create_profiles",
		SQL: `
CREATE TABLE IF NOT EXISTS profiles (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	full_name TEXT NOT NULL,
	career_role TEXT NOT NULL,
	skills TEXT NOT NULL DEFAULT '',
	resume_content TEXT NOT NULL DEFAULT '',
	resume_file_path TEXT,
	resume_file_name TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		Name: "create_interviews",
		SQL: `
CREATE TABLE IF NOT EXISTS interviews (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	profile_id BIGINT NOT NULL REFERENCES profiles(id),
	job_role TEXT NOT NULL,
	job_description TEXT,
	interview_mode TEXT NOT NULL,
	duration_minutes INT NOT NULL,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at TIMESTAMPTZ
)`,
	},
	{
		Name: "create_interview_questions",
		SQL: `
CREATE TABLE IF NOT EXISTS interview_questions (
	id BIGSERIAL PRIMARY KEY,
	interview_id BIGINT NOT NULL REFERENCES interviews(id),
	question_text TEXT NOT NULL,
	question_type TEXT NOT NULL,
	user_response TEXT,
	response_timestamp TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		Name: "create_user_sessions",
		SQL: `
CREATE TABLE IF NOT EXISTS user_sessions (
	session_id UUID PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	refresh_token TEXT NOT NULL,
	is_revoked BOOLEAN NOT NULL DEFAULT FALSE,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
}

// Migrate applies all schema migrations in order.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Debug("migration applied", zap.String("name", m.Name))
	}
	return nil
}
