package salarydata

import (
	"errors"
	"strings"

	salarydataerrors "github.com/nrk16p/api-payslip-v2/internal/salarydata/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError recognizes a unique violation on the (sheet, employee,
// item name) index: two replaces raced and the later insert lost.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_sheet_employee_item" {
			return salarydataerrors.ErrConcurrentReplace
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_sheet_employee_item") {
		return salarydataerrors.ErrConcurrentReplace
	}

	return err
}
