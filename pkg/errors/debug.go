package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump flattens an error for structured logs.
type ErrorDump struct {
	TopMessage string
	Code       Code
	Chain      []string
	Database   *DatabaseError
}

// DatabaseError holds the Postgres diagnostics of a failed catalog query.
type DatabaseError struct {
	Driver     string
	Code       string
	Constraint string
	Table      string
	Column     string
	Detail     string
	Message    string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.Database = databaseError(err)
	return d
}

// Fields renders the dump as log fields; database fields appear only when present.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if db := d.Database; db != nil {
		fields["db_driver"] = db.Driver
		fields["pg_code"] = db.Code
		fields["pg_constraint"] = db.Constraint
		fields["pg_table"] = db.Table
		fields["pg_column"] = db.Column
		fields["pg_detail"] = db.Detail
		fields["pg_message"] = db.Message
	}
	return fields
}

// databaseError covers both the pgx driver behind gorm and lib/pq.
func databaseError(err error) *DatabaseError {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &DatabaseError{
			Driver:     "pgx",
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &DatabaseError{
			Driver:     "pq",
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}
