package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeStateConflict, status: http.StatusConflict, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "load session")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if wrapped.Error() != "DEPENDENCY_ERROR: load session: boom" {
		t.Fatalf("unexpected error string %q", wrapped.Error())
	}
}

func TestAsAndHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "menu item not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !HasCode(err, CodeNotFound) {
		t.Fatalf("expected HasCode to match not found")
	}
	if HasCode(err, CodeValidation) {
		t.Fatalf("did not expect validation code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCapturesChainAndPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "menu_items_pkey", TableName: "menu_items", Message: "duplicate key"}
	err := Wrap(CodeDependency, fmt.Errorf("insert item hot-3in1: %w", pgErr), "catalog replace failed")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %q", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected wrapped chain, got %v", dump.Chain)
	}
	if dump.Database == nil || dump.Database.Driver != "pgx" || dump.Database.Constraint != "menu_items_pkey" {
		t.Fatalf("unexpected database diagnostics %+v", dump.Database)
	}
	if fields := dump.Fields(); fields["pg_code"] != "23505" || fields["pg_table"] != "menu_items" {
		t.Fatalf("unexpected fields %v", fields)
	}

	pqDump := Dump(fmt.Errorf("load: %w", &pq.Error{Code: "42P01", Table: "site_settings"}))
	if pqDump.Database == nil || pqDump.Database.Driver != "pq" || pqDump.Database.Code != "42P01" {
		t.Fatalf("unexpected pq diagnostics %+v", pqDump.Database)
	}
}

func TestDumpWithoutDatabaseErrorOmitsDatabaseFields(t *testing.T) {
	dump := Dump(New(CodeValidation, "quantity must be at least 1"))
	if dump.Database != nil {
		t.Fatalf("expected no database diagnostics, got %+v", dump.Database)
	}
	fields := dump.Fields()
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("did not expect pg fields, got %v", fields)
	}
	if fields["error"] != "VALIDATION_ERROR: quantity must be at least 1" {
		t.Fatalf("unexpected error field %v", fields["error"])
	}
	if Dump(nil).TopMessage != "" {
		t.Fatal("expected empty dump for nil error")
	}
}
