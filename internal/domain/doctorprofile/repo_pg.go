package doctorprofile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicmanager/clinicmanager/internal/platform/db"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.ConnFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const profileCols = `id, doctor_id, specialty, description, years_of_experience, license_number, created_at, updated_at`

func scanProfile(row pgx.Row) (*DoctorProfile, error) {
	var p DoctorProfile
	err := row.Scan(&p.ID, &p.DoctorID, &p.Specialty, &p.Description,
		&p.YearsOfExperience, &p.LicenseNumber, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *DoctorProfile) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor_profiles (doctor_id, specialty, description, years_of_experience, license_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.DoctorID, p.Specialty, p.Description, p.YearsOfExperience, p.LicenseNumber,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errs.Conflictf("doctor %d already has a profile", p.DoctorID)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*DoctorProfile, error) {
	p, err := scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM doctor_profiles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundf("doctor profile %d not found", id)
	}
	return p, err
}

func (r *repoPG) GetByDoctorID(ctx context.Context, doctorID int64) (*DoctorProfile, error) {
	p, err := scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM doctor_profiles WHERE doctor_id = $1`, doctorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundf("no profile for doctor %d", doctorID)
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *DoctorProfile) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor_profiles
		SET specialty = $2, description = $3, years_of_experience = $4,
			license_number = $5, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Specialty, p.Description, p.YearsOfExperience, p.LicenseNumber,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("doctor profile %d not found", p.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("doctor profile %d not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*DoctorProfile, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if f.Specialty != "" {
		where += fmt.Sprintf(" AND specialty ILIKE $%d", idx)
		args = append(args, "%"+f.Specialty+"%")
		idx++
	}
	if f.DoctorID != nil {
		where += fmt.Sprintf(" AND doctor_id = $%d", idx)
		args = append(args, *f.DoctorID)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT count(*) FROM doctor_profiles`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + profileCols + ` FROM doctor_profiles` + where +
		fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []*DoctorProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
