package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	kpool "github.com/sklowrylaw/website/pkg/conn/db/postgres/pool"
	kpgerr "github.com/sklowrylaw/website/pkg/domain/errors/dberrors/postgres"
	"github.com/sklowrylaw/website/pkg/domain/user"
	kdbuser "github.com/sklowrylaw/website/pkg/domain/user/db"
)

type pgUser struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbuser.UserInterface {
	return &pgUser{pool: pool}
}

const userColumns = `
	"id", "username", "email", "password_hash",
	"provider", "provider_id", "role", "created_at"
`

func scanUser(row pgx.Row) (user.User, error) {
	u := user.User{}
	passwordHash := pgtype.Text{}
	provider := pgtype.Text{}
	providerId := pgtype.Text{}
	var role string

	if err := row.Scan(
		&u.Id, &u.Username, &u.Email, &passwordHash,
		&provider, &providerId, &role, &u.CreatedAt,
	); err != nil {
		return user.User{}, err
	}

	if passwordHash.Status == pgtype.Present {
		h := passwordHash.String
		u.PasswordHash = &h
	}
	if provider.Status == pgtype.Present {
		p := provider.String
		u.Provider = &p
	}
	if providerId.Status == pgtype.Present {
		p := providerId.String
		u.ProviderId = &p
	}
	u.Role = user.Role(role)
	return u, nil
}

func (s *pgUser) GetByLogin(ctx context.Context, login string) (user.User, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return user.User{}, err
	}
	defer conn.Release()

	u, err := scanUser(conn.QueryRow(
		ctx,
		`
		select `+userColumns+`
		from "site_users"
		where "email" = $1 or "username" = $1
		`,
		login,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, kpgerr.Missing{Table: "site_users", Identity: login}
	}
	return u, err
}

func (s *pgUser) EnsureFederated(ctx context.Context, ident user.FederatedIdentity) (user.User, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return user.User{}, err
	}
	defer conn.Release()

	u, err := scanUser(conn.QueryRow(
		ctx,
		`
		insert into "site_users"
			("username", "email", "provider", "provider_id", "role")
		values ($1, $2, $3, $4, 'admin')
		on conflict ("provider", "provider_id")
			do update set "role" = 'admin'
		returning `+userColumns,
		usernameFor(ident), ident.Email, ident.Provider, ident.ProviderId,
	))
	if err == nil {
		return u, nil
	}

	// The email (or derived username) may already belong to a local
	// account. Adopt that account for this identity instead.
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
		u, err := scanUser(conn.QueryRow(
			ctx,
			`
			update "site_users"
			set "provider" = $2, "provider_id" = $3, "role" = 'admin'
			where "email" = $1
			returning `+userColumns,
			ident.Email, ident.Provider, ident.ProviderId,
		))
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, kpgerr.Missing{Table: "site_users", Identity: ident.Email}
		}
		return u, err
	}

	return user.User{}, err
}

func usernameFor(ident user.FederatedIdentity) string {
	if local, _, found := strings.Cut(ident.Email, "@"); found && local != "" {
		return local
	}
	return ident.Email
}
