// Package cart holds the session-scoped shopping cart state and the
// WhatsApp order hand-off built from it.
package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Line is one cart row. Key is the product+variant identity the
// storefront merges on; Price is the snapshot taken when the line was
// first added.
type Line struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// Subtotal is the line price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is the serializable cart snapshot for one session. Lines keep
// the insertion order of their first occurrence.
type State struct {
	Lines  []Line `json:"lines"`
	IsOpen bool   `json:"is_open"`
}

// Totals is recomputed from the lines on every read.
type Totals struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Totals sums quantities and line subtotals.
func (s *State) Totals() Totals {
	total := decimal.Zero
	count := 0
	for i := range s.Lines {
		count += s.Lines[i].Quantity
		total = total.Add(s.Lines[i].Subtotal())
	}
	return Totals{ItemCount: count, Subtotal: total}
}

// add merges the line into the cart. An existing key gains delta
// quantity and keeps its original price snapshot and position.
func (s *State) add(line Line, delta int) {
	if delta <= 0 {
		delta = 1
	}
	for i := range s.Lines {
		if s.Lines[i].Key == line.Key {
			s.Lines[i].Quantity += delta
			return
		}
	}
	line.Quantity = delta
	s.Lines = append(s.Lines, line)
}

// updateQuantity sets the quantity for key. Zero or negative removes
// the line; an unknown key is a no-op.
func (s *State) updateQuantity(key string, quantity int) {
	if quantity <= 0 {
		s.remove(key)
		return
	}
	for i := range s.Lines {
		if s.Lines[i].Key == key {
			s.Lines[i].Quantity = quantity
			return
		}
	}
}

// remove drops the line for key, preserving the order of the rest.
func (s *State) remove(key string) {
	for i := range s.Lines {
		if s.Lines[i].Key == key {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return
		}
	}
}

// clear empties the lines and leaves the open flag alone.
func (s *State) clear() {
	s.Lines = nil
}

// clone returns a deep copy safe to hand out.
func (s *State) clone() *State {
	out := &State{IsOpen: s.IsOpen}
	if len(s.Lines) > 0 {
		out.Lines = make([]Line, len(s.Lines))
		copy(out.Lines, s.Lines)
	}
	return out
}

func (s *State) marshal() ([]byte, error) {
	return json.Marshal(s)
}

// unmarshalState decodes a snapshot; any decode failure yields an
// empty cart.
func unmarshalState(raw []byte) *State {
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return &State{}
	}
	return &state
}
