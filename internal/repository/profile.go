package repository

import (
	"context"
	"fmt"

	"github.com/VenkataVardineni/careerbuildai/pkg/model"
)

func (r *Repository) CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
INSERT INTO profiles (user_id, full_name, career_role, skills, resume_content, resume_file_path, resume_file_name)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at
`
	row := r.db.QueryRow(ctx, q, p.UserID, p.FullName, p.CareerRole, p.Skills,
		p.ResumeContent, p.ResumeFilePath, p.ResumeFileName)
	if err := row.Scan(&p.ProfileID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

const profileCols = `id, user_id, full_name, career_role, skills, resume_content, resume_file_path, resume_file_name, created_at, updated_at`

func scanProfile(row interface{ Scan(dest ...any) error }, p *model.Profile) error {
	return row.Scan(&p.ProfileID, &p.UserID, &p.FullName, &p.CareerRole, &p.Skills,
		&p.ResumeContent, &p.ResumeFilePath, &p.ResumeFileName, &p.CreatedAt, &p.UpdatedAt)
}

// GetProfileForUser fetches a profile only when the given user owns it.
func (r *Repository) GetProfileForUser(ctx context.Context, profileID, userID int64) (*model.Profile, error) {
	q := `SELECT ` + profileCols + ` FROM profiles WHERE id = $1 AND user_id = $2`
	var p model.Profile
	if err := scanProfile(r.db.QueryRow(ctx, q, profileID, userID), &p); err != nil {
		return nil, notFoundOr(err, "scan profile")
	}
	return &p, nil
}

func (r *Repository) ListProfilesByUser(ctx context.Context, userID int64) ([]model.Profile, error) {
	q := `SELECT ` + profileCols + ` FROM profiles WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) UpdateProfileForUser(ctx context.Context, profileID, userID int64, req *model.UpdateProfileReq) (*model.Profile, error) {
	q := `UPDATE profiles SET updated_at = now()`
	args := []any{}

	appendSet := func(col string, val any) {
		args = append(args, val)
		q += fmt.Sprintf(", %s = $%d", col, len(args))
	}
	if req.FullName != nil {
		appendSet("full_name", *req.FullName)
	}
	if req.CareerRole != nil {
		appendSet("career_role", *req.CareerRole)
	}
	if req.Skills != nil {
		appendSet("skills", *req.Skills)
	}
	if req.ResumeContent != nil {
		appendSet("resume_content", *req.ResumeContent)
	}

	args = append(args, profileID, userID)
	q += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d RETURNING "+profileCols, len(args)-1, len(args))

	var p model.Profile
	if err := scanProfile(r.db.QueryRow(ctx, q, args...), &p); err != nil {
		return nil, notFoundOr(err, "update profile")
	}
	return &p, nil
}

func (r *Repository) DeleteProfileForUser(ctx context.Context, profileID, userID int64) error {
	const q = `DELETE FROM profiles WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, q, profileID, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
