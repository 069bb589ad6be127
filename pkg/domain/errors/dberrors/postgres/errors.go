package postgres

import (
	"fmt"

	domerr "github.com/sklowrylaw/website/pkg/domain/errors"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}
