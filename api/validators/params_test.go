package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

func requestWithParam(key, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParsePathID(t *testing.T) {
	id, err := ParsePathID(requestWithParam("orderID", "42"), "orderID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestParsePathIDRejectsBadValues(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		_, err := ParsePathID(requestWithParam("orderID", raw), "orderID")
		if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}
