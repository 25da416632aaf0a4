package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nourzaidi/nourfashion-backend/api/middleware"
	cartsvc "github.com/nourzaidi/nourfashion-backend/internal/cart"
	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
)

type stubCartService struct {
	dto      *cartsvc.CartDTO
	checkout *cartsvc.CheckoutDTO
	err      error

	addedInput cartsvc.AddItemInput
	cleared    bool
}

func (s *stubCartService) Get(_ context.Context, sessionID string) (*cartsvc.CartDTO, error) {
	return s.dto, s.err
}

func (s *stubCartService) AddItem(_ context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.CartDTO, error) {
	s.addedInput = input
	return s.dto, s.err
}

func (s *stubCartService) UpdateItem(_ context.Context, sessionID, key string, quantity int) (*cartsvc.CartDTO, error) {
	return s.dto, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, sessionID, key string) (*cartsvc.CartDTO, error) {
	return s.dto, s.err
}

func (s *stubCartService) Clear(_ context.Context, sessionID string) (*cartsvc.CartDTO, error) {
	s.cleared = true
	return s.dto, s.err
}

func (s *stubCartService) SetOpen(_ context.Context, sessionID string, open bool) (*cartsvc.CartDTO, error) {
	return s.dto, s.err
}

func (s *stubCartService) Checkout(_ context.Context, sessionID string) (*cartsvc.CheckoutDTO, error) {
	return s.checkout, s.err
}

func sessionRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
}

func TestCartFetchSuccess(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{SessionID: "sess-1"}}
	handler := CartFetch(stub, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SessionID != "sess-1" {
		t.Fatalf("unexpected session id %q", envelope.Data.SessionID)
	}
}

func TestCartFetchRequiresSession(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemDecodesPayload(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{SessionID: "sess-1"}}
	handler := CartAddItem(stub, nil)

	body := `{"key":"p1:M","name":"Shirt","price":"49.90","quantity":2}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if stub.addedInput.Key != "p1:M" || stub.addedInput.Quantity != 2 {
		t.Fatalf("unexpected input: %+v", stub.addedInput)
	}
	if !stub.addedInput.Price.Equal(decimal.NewFromFloat(49.90)) {
		t.Fatalf("unexpected price: %s", stub.addedInput.Price)
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	body := `{"key":"p1","name":"Shirt","bogus":true}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartCheckoutReturnsLink(t *testing.T) {
	stub := &stubCartService{checkout: &cartsvc.CheckoutDTO{
		Link:    "https://wa.me/21612345678?text=Bonjour",
		Message: "Bonjour",
	}}
	handler := CartCheckout(stub, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/checkout", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cartsvc.CheckoutDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(envelope.Data.Link, "https://wa.me/") {
		t.Fatalf("unexpected link %q", envelope.Data.Link)
	}
}

func TestCartCheckoutEmptyCart(t *testing.T) {
	stub := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := CartCheckout(stub, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/checkout", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClearInvokesService(t *testing.T) {
	stub := &stubCartService{dto: &cartsvc.CartDTO{SessionID: "sess-1"}}
	handler := CartClear(stub, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !stub.cleared {
		t.Fatalf("expected clear to reach the service")
	}
}
