package patientallergy

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

const linkCols = `id, patient_id, allergy_id, severity, diagnosed_at, notes, created_at, updated_at`

func scanLink(row pgx.Row) (*PatientAllergy, error) {
	var pa PatientAllergy
	err := row.Scan(&pa.ID, &pa.PatientID, &pa.AllergyID, &pa.Severity,
		&pa.DiagnosedAt, &pa.Notes, &pa.CreatedAt, &pa.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pa, nil
}

func (r *repoPG) Create(ctx context.Context, pa *PatientAllergy) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_allergies (patient_id, allergy_id, severity, diagnosed_at, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		pa.PatientID, pa.AllergyID, pa.Severity, pa.DiagnosedAt, pa.Notes,
	).Scan(&pa.ID, &pa.CreatedAt, &pa.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errs.Conflictf("patient %d is already linked to allergy %d", pa.PatientID, pa.AllergyID)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*PatientAllergy, error) {
	pa, err := scanLink(r.conn(ctx).QueryRow(ctx,
		`SELECT `+linkCols+` FROM patient_allergies WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundf("patient allergy %d not found", id)
	}
	return pa, err
}

func (r *repoPG) Update(ctx context.Context, pa *PatientAllergy) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_allergies
		SET severity = $2, diagnosed_at = $3, notes = $4, updated_at = now()
		WHERE id = $1`,
		pa.ID, pa.Severity, pa.DiagnosedAt, pa.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("patient allergy %d not found", pa.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient_allergies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("patient allergy %d not found", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*PatientAllergy, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1

	if f.PatientID != nil {
		where += fmt.Sprintf(" AND patient_id = $%d", idx)
		args = append(args, *f.PatientID)
		idx++
	}
	if f.AllergyID != nil {
		where += fmt.Sprintf(" AND allergy_id = $%d", idx)
		args = append(args, *f.AllergyID)
		idx++
	}
	if f.Severity != "" {
		where += fmt.Sprintf(" AND severity = $%d", idx)
		args = append(args, f.Severity)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT count(*) FROM patient_allergies`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + linkCols + ` FROM patient_allergies` + where +
		fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var links []*PatientAllergy
	for rows.Next() {
		pa, err := scanLink(rows)
		if err != nil {
			return nil, 0, err
		}
		links = append(links, pa)
	}
	return links, total, rows.Err()
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
