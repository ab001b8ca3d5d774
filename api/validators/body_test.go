package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/vendo-storefront/pkg/errors"
	"github.com/angelmondragon/vendo-storefront/pkg/types"
)

type choice struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=99"`
}

type addRequest struct {
	ItemID string   `json:"itemId" validate:"required,max=64"`
	AddOns []choice `json:"addOns" validate:"dive"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"itemId":"coin-kit","addOns":[{"id":"cups","quantity":2}]}`))
	var body addRequest
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.ItemID != "coin-kit" || len(body.AddOns) != 1 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDecodeJSONBodyRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":   ``,
		"syntax":  `{`,
		"unknown": `{"itemId":"x","extra":true}`,
	}
	for name, payload := range cases {
		req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
		var body addRequest
		err := DecodeJSONBody(req, &body)
		if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"addOns":[{"id":"","quantity":500}]}`))
	var body addRequest
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().([]types.FieldError)
	if !ok {
		t.Fatalf("expected field error details, got %T", typed.Details())
	}
	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	if fields["itemId"] != "is required" {
		t.Fatalf("expected itemId required, got %v", fields)
	}
	if fields["addOns[0].id"] != "is required" {
		t.Fatalf("expected nested id required, got %v", fields)
	}
	if fields["addOns[0].quantity"] != "must be less than or equal to 99" {
		t.Fatalf("expected quantity bound, got %v", fields)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hot-drinks ", 64); got != "hot-drinks" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
}
