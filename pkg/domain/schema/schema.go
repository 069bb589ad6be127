package schema

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	kpool "github.com/sklowrylaw/website/pkg/conn/db/postgres/pool"
)

//go:embed sql/*.sql
var repository embed.FS

// Apply brings the database up to the latest embedded schema version.
//
// Each sql/NNNN_*.sql file is one version, applied in one transaction
// together with its "schema_version" bookkeeping row. Versions at or
// below the database's current version are skipped, so Apply is safe to
// run at every daemon start.
func Apply(ctx context.Context, pool kpool.Pool) error {
	current, err := currentVersion(ctx, pool)
	if err != nil {
		return err
	}

	versions, err := embeddedVersions()
	if err != nil {
		return err
	}

	for _, v := range versions {
		if v.version <= current {
			continue
		}
		if err := v.apply(ctx, pool); err != nil {
			return fmt.Errorf("applying schema version %d: %w", v.version, err)
		}
	}
	return nil
}

func currentVersion(ctx context.Context, pool kpool.Pool) (int, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	var version *int
	if err := conn.QueryRow(
		ctx, `select max("version") from "schema_version"`,
	).Scan(&version); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UndefinedTable {
			// fresh database
			return 0, nil
		}
		return -1, err
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

type version struct {
	version int
	path    string
}

func embeddedVersions() ([]version, error) {
	entries, err := repository.ReadDir("sql")
	if err != nil {
		return nil, err
	}

	versions := make([]version, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		num, _, found := strings.Cut(name, "_")
		if !found {
			return nil, fmt.Errorf("schema file %s is not named NNNN_description.sql", name)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("schema file %s is not named NNNN_description.sql: %w", name, err)
		}
		versions = append(versions, version{version: n, path: "sql/" + name})
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].version < versions[j].version
	})
	return versions, nil
}

func (v version) apply(ctx context.Context, pool kpool.Pool) error {
	ddl, err := repository.ReadFile(v.path)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(ddl)); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		`insert into "schema_version" ("version") values ($1) on conflict do nothing`,
		v.version,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
