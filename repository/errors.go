package repository

import (
	"errors"

	apperrors "travel-app/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATE
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mysql error numbers
const (
	myDuplicateEntry      uint16 = 1062
	myNoReferencedRow     uint16 = 1452
	myRowIsReferenced     uint16 = 1451
	myCheckConstraintFail uint16 = 3819
)

// mapDBError chuyển lỗi của driver sang AppError
func mapDBError(err error, notFound *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound != nil {
			return notFound
		}
		return apperrors.NewAppError(apperrors.ErrCodeDBNotFound, "Record not found", err)
	}
	if apperrors.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "Duplicate record", err)
		case pgForeignKeyViolation, pgCheckViolation:
			return apperrors.NewAppError(apperrors.ErrCodeDBConstraint, "Constraint violation: "+pgErr.ConstraintName, err)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDuplicateEntry:
			return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "Duplicate record", err)
		case myNoReferencedRow, myRowIsReferenced, myCheckConstraintFail:
			return apperrors.NewAppError(apperrors.ErrCodeDBConstraint, "Constraint violation", err)
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "Duplicate record", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.NewAppError(apperrors.ErrCodeDBConstraint, "Constraint violation", err)
	}

	return apperrors.NewAppError(apperrors.ErrCodeDBError, "Database error", err)
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
