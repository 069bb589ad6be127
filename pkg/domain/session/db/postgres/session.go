package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	kpool "github.com/sklowrylaw/website/pkg/conn/db/postgres/pool"
	kpgerr "github.com/sklowrylaw/website/pkg/domain/errors/dberrors/postgres"
	"github.com/sklowrylaw/website/pkg/domain/session"
	kdbsess "github.com/sklowrylaw/website/pkg/domain/session/db"
	"github.com/sklowrylaw/website/pkg/domain/user"
)

type pgSession struct {
	pool kpool.Pool

	// now is swapped in tests against a live database.
	now func() time.Time
}

func New(pool kpool.Pool) kdbsess.SessionInterface {
	return &pgSession{pool: pool, now: time.Now}
}

func (s *pgSession) New(ctx context.Context, u user.User) (session.Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return session.Session{}, err
	}
	defer conn.Release()

	sess := session.Session{
		Id:       uuid.NewString(),
		UserId:   u.Id,
		Username: u.Username,
		Role:     u.Role,
	}
	now := s.now()

	if err := conn.QueryRow(
		ctx,
		`
		insert into "site_sessions"
			("id", "user_id", "username", "role", "expires_at", "created_at")
		values ($1, $2, $3, $4, $5, $6)
		returning "expires_at", "created_at"
		`,
		sess.Id, sess.UserId, sess.Username, string(sess.Role),
		now.Add(session.TTL), now,
	).Scan(&sess.ExpiresAt, &sess.CreatedAt); err != nil {
		return session.Session{}, err
	}

	return sess, nil
}

func (s *pgSession) Get(ctx context.Context, id string) (session.Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return session.Session{}, err
	}
	defer conn.Release()

	sess := session.Session{}
	var role string
	err = conn.QueryRow(
		ctx,
		`
		select "id", "user_id", "username", "role", "expires_at", "created_at"
		from "site_sessions"
		where "id" = $1
		`,
		id,
	).Scan(
		&sess.Id, &sess.UserId, &sess.Username, &role,
		&sess.ExpiresAt, &sess.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return session.Session{}, kpgerr.Missing{Table: "site_sessions", Identity: id}
	}
	if err != nil {
		return session.Session{}, err
	}
	sess.Role = user.Role(role)

	if sess.Expired(s.now()) {
		// lazy cleanup; an expired session is as good as a missing one
		if _, err := conn.Exec(
			ctx, `delete from "site_sessions" where "id" = $1`, id,
		); err != nil {
			return session.Session{}, err
		}
		return session.Session{}, kpgerr.Missing{Table: "site_sessions", Identity: id}
	}

	return sess, nil
}

func (s *pgSession) Delete(ctx context.Context, id string) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `delete from "site_sessions" where "id" = $1`, id)
	return err
}
