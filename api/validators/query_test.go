package validators

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
)

func queryRequest(rawQuery string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
}

func TestParseQueryIntDefault(t *testing.T) {
	got, err := ParseQueryInt(queryRequest(""), "page", 1, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected default 1 got %d", got)
	}
}

func TestParseQueryIntValue(t *testing.T) {
	got, err := ParseQueryInt(queryRequest("page=7"), "page", 1, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7 got %d", got)
	}
}

func TestParseQueryIntRejectsNonNumeric(t *testing.T) {
	_, err := ParseQueryInt(queryRequest("page=abc"), "page", 1, 1, 100)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestParseQueryIntRejectsOutOfRange(t *testing.T) {
	if _, err := ParseQueryInt(queryRequest("page=0"), "page", 1, 1, 100); err == nil {
		t.Fatalf("expected range error for 0")
	}
	if _, err := ParseQueryInt(queryRequest("page=101"), "page", 1, 1, 100); err == nil {
		t.Fatalf("expected range error for 101")
	}
}

func TestParseQueryDecimalAbsent(t *testing.T) {
	got, err := ParseQueryDecimal(queryRequest(""), "min_price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent parameter got %s", got)
	}
}

func TestParseQueryDecimalValue(t *testing.T) {
	got, err := ParseQueryDecimal(queryRequest("min_price=19.90"), "min_price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("unexpected decimal %v", got)
	}
}

func TestParseQueryDecimalRejectsGarbage(t *testing.T) {
	_, err := ParseQueryDecimal(queryRequest("min_price=cheap"), "min_price")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}
