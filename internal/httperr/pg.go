package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsSerializationConflict identifica a derrota numa corrida de escrita:
// serialization_failure, deadlock_detected ou exclusion_violation.
// Quem perde tenta a sequência inteira de novo uma única vez.
func IsSerializationConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case "40001", "40P01", "23P01":
		return true
	}
	return false
}
