package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/nourzaidi/nourfashion-backend/pkg/errors"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
	pkgredis "github.com/nourzaidi/nourfashion-backend/pkg/redis"
	"github.com/nourzaidi/nourfashion-backend/pkg/whatsapp"
)

type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type snapshotKeyer interface {
	CartSnapshotKey(sessionID string) string
}

type settingsReader interface {
	WhatsAppNumber(ctx context.Context) string
}

// Service exposes the per-session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*CartDTO, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error)
	UpdateItem(ctx context.Context, sessionID, key string, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, sessionID, key string) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) (*CartDTO, error)
	SetOpen(ctx context.Context, sessionID string, open bool) (*CartDTO, error)
	Checkout(ctx context.Context, sessionID string) (*CheckoutDTO, error)
}

// AddItemInput captures one add-to-cart action. Quantity below one
// defaults to a single unit.
type AddItemInput struct {
	Key      string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Image    string
}

// CartDTO is the cart shape returned to API consumers.
type CartDTO struct {
	SessionID string `json:"session_id"`
	Lines     []Line `json:"lines"`
	IsOpen    bool   `json:"is_open"`
	Totals    Totals `json:"totals"`
}

// CheckoutDTO carries the WhatsApp hand-off for the current cart.
type CheckoutDTO struct {
	Message string `json:"message"`
	Link    string `json:"link"`
	Totals  Totals `json:"totals"`
}

type service struct {
	store    snapshotStore
	keyer    snapshotKeyer
	settings settingsReader
	logg     *logger.Logger
	ttl      time.Duration

	mu    sync.Mutex
	carts map[string]*State
}

// NewService builds a cart service backed by the provided stack. The
// in-memory state is authoritative; Redis snapshots only survive
// process restarts.
func NewService(client *pkgredis.Client, settings settingsReader, logg *logger.Logger, snapshotTTL time.Duration) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return newService(client, client, settings, logg, snapshotTTL)
}

func newService(store snapshotStore, keyer snapshotKeyer, settings settingsReader, logg *logger.Logger, snapshotTTL time.Duration) (Service, error) {
	if store == nil || keyer == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if snapshotTTL <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive")
	}
	return &service{
		store:    store,
		keyer:    keyer,
		settings: settings,
		logg:     logg,
		ttl:      snapshotTTL,
		carts:    map[string]*State{},
	}, nil
}

// Get returns the cart, restoring it from its snapshot when the
// session is not yet in memory.
func (s *service) Get(ctx context.Context, sessionID string) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx, sessionID)
	return s.dto(sessionID, state), nil
}

// AddItem merges the item into the cart and snapshots the result.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item key is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx, sessionID)
	state.add(Line{
		Key:   key,
		Name:  name,
		Price: input.Price,
		Image: strings.TrimSpace(input.Image),
	}, input.Quantity)
	s.snapshot(ctx, sessionID, state)
	return s.dto(sessionID, state), nil
}

// UpdateItem sets an absolute quantity; zero or less removes the line.
func (s *service) UpdateItem(ctx context.Context, sessionID, key string, quantity int) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx, sessionID)
	state.updateQuantity(key, quantity)
	s.snapshot(ctx, sessionID, state)
	return s.dto(sessionID, state), nil
}

// RemoveItem drops the line; a missing key is a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionID, key string) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(key) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx, sessionID)
	state.remove(key)
	s.snapshot(ctx, sessionID, state)
	return s.dto(sessionID, state), nil
}

// Clear empties the cart. Clearing an already empty cart succeeds.
func (s *service) Clear(ctx context.Context, sessionID string) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx, sessionID)
	state.clear()
	s.snapshot(ctx, sessionID, state)
	return s.dto(sessionID, state), nil
}

// SetOpen flips the drawer flag without touching the lines.
func (s *service) SetOpen(ctx context.Context, sessionID string, open bool) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx, sessionID)
	state.IsOpen = open
	s.snapshot(ctx, sessionID, state)
	return s.dto(sessionID, state), nil
}

// Checkout builds the WhatsApp hand-off for the current cart without
// mutating it. Clearing after a completed order is a separate call.
func (s *service) Checkout(ctx context.Context, sessionID string) (*CheckoutDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	state := s.load(ctx, sessionID).clone()
	s.mu.Unlock()

	if len(state.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	message := OrderMessage(state)
	number := s.settings.WhatsAppNumber(ctx)
	link, err := whatsapp.Link(number, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build whatsapp link")
	}

	return &CheckoutDTO{
		Message: message,
		Link:    link,
		Totals:  state.Totals(),
	}, nil
}

// load assumes the caller holds the mutex.
func (s *service) load(ctx context.Context, sessionID string) *State {
	if state, ok := s.carts[sessionID]; ok {
		return state
	}

	state := &State{}
	raw, err := s.store.Get(ctx, s.keyer.CartSnapshotKey(sessionID))
	switch {
	case err == nil:
		state = unmarshalState([]byte(raw))
	case !pkgredis.IsMiss(err):
		ctx = s.logg.WithSessionID(ctx, sessionID)
		s.logg.Warn(ctx, fmt.Sprintf("cart snapshot restore failed: %v", err))
	}

	s.carts[sessionID] = state
	return state
}

// snapshot persists best-effort; the in-memory cart stays
// authoritative when the write fails.
func (s *service) snapshot(ctx context.Context, sessionID string, state *State) {
	payload, err := state.marshal()
	if err != nil {
		ctx = s.logg.WithSessionID(ctx, sessionID)
		s.logg.Warn(ctx, fmt.Sprintf("cart snapshot encode failed: %v", err))
		return
	}
	if err := s.store.Set(ctx, s.keyer.CartSnapshotKey(sessionID), payload, s.ttl); err != nil {
		ctx = s.logg.WithSessionID(ctx, sessionID)
		s.logg.Warn(ctx, fmt.Sprintf("cart snapshot write failed: %v", err))
	}
}

func (s *service) dto(sessionID string, state *State) *CartDTO {
	copied := state.clone()
	return &CartDTO{
		SessionID: sessionID,
		Lines:     copied.Lines,
		IsOpen:    copied.IsOpen,
		Totals:    copied.Totals(),
	}
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
