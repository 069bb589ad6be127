package consultation

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	kpool "github.com/sklowrylaw/website/pkg/conn/db/postgres/pool"
	"github.com/sklowrylaw/website/pkg/domain/consultation"
	kdbcons "github.com/sklowrylaw/website/pkg/domain/consultation/db"
	kpgerr "github.com/sklowrylaw/website/pkg/domain/errors/dberrors/postgres"
)

type pgConsultation struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbcons.ConsultationInterface {
	return &pgConsultation{pool: pool}
}

const recordColumns = `
	"id", "name", "email", "phone", "legal_service",
	"message", "notes", "status", "created_at", "updated_at"
`

func scanRecord(row pgx.Row) (consultation.Record, error) {
	rec := consultation.Record{}
	phone := pgtype.Text{}
	var status string

	if err := row.Scan(
		&rec.Id, &rec.Name, &rec.Email, &phone, &rec.LegalService,
		&rec.Message, &rec.Notes, &status, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return consultation.Record{}, err
	}

	if phone.Status == pgtype.Present {
		p := phone.String
		rec.Phone = &p
	}
	rec.Status = consultation.Status(status)
	return rec, nil
}

func (c *pgConsultation) Register(ctx context.Context, spec consultation.NewRecord) (consultation.Record, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return consultation.Record{}, err
	}
	defer conn.Release()

	return scanRecord(conn.QueryRow(
		ctx,
		`
		insert into "consultation_requests"
			("name", "email", "phone", "legal_service", "message", "status")
		values ($1, $2, $3, $4, $5, 'unread')
		returning `+recordColumns,
		spec.Name, spec.Email, spec.Phone, spec.LegalService, spec.Message,
	))
}

func (c *pgConsultation) Find(ctx context.Context) ([]consultation.Record, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select `+recordColumns+`
		from "consultation_requests"
		order by "created_at" desc, "id" desc
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := []consultation.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, rec)
	}
	return found, rows.Err()
}

func (c *pgConsultation) Update(ctx context.Context, id int, delta consultation.Delta) (consultation.Record, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return consultation.Record{}, err
	}
	defer conn.Release()

	var status *string
	if delta.Status != nil {
		s := string(*delta.Status)
		status = &s
	}

	rec, err := scanRecord(conn.QueryRow(
		ctx,
		`
		update "consultation_requests"
		set
			"status" = coalesce($2, "status"),
			"notes" = coalesce($3, "notes"),
			"updated_at" = now()
		where "id" = $1
		returning `+recordColumns,
		id, status, delta.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return consultation.Record{}, kpgerr.Missing{
			Table: "consultation_requests", Identity: strconv.Itoa(id),
		}
	}
	return rec, err
}

func (c *pgConsultation) Delete(ctx context.Context, id int) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx, `delete from "consultation_requests" where "id" = $1`, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "consultation_requests", Identity: strconv.Itoa(id),
		}
	}
	return nil
}
