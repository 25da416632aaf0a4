package cart

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func line(key, name string, price float64, qty int) Line {
	return Line{
		Key:      key,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Quantity: qty,
	}
}

func TestAddMergesByKeyAndKeepsOrder(t *testing.T) {
	state := &State{}

	state.add(line("p1:M", "Shirt", 10, 0), 1)
	state.add(line("p2:L", "Dress", 20, 0), 2)
	state.add(line("p1:M", "Shirt", 10, 0), 3)

	if len(state.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Lines))
	}
	if state.Lines[0].Key != "p1:M" || state.Lines[1].Key != "p2:L" {
		t.Fatalf("expected insertion order preserved, got %q, %q", state.Lines[0].Key, state.Lines[1].Key)
	}
	if state.Lines[0].Quantity != 4 {
		t.Fatalf("expected merged quantity 4, got %d", state.Lines[0].Quantity)
	}
}

func TestAddKeepsOriginalPriceSnapshot(t *testing.T) {
	state := &State{}

	state.add(line("p1", "Shirt", 10, 0), 1)
	state.add(line("p1", "Shirt", 99, 0), 1)

	if !state.Lines[0].Price.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected original price snapshot, got %s", state.Lines[0].Price)
	}
}

func TestAddDefaultsDeltaToOne(t *testing.T) {
	state := &State{}

	state.add(line("p1", "Shirt", 10, 0), 0)
	state.add(line("p2", "Dress", 20, 0), -3)

	if state.Lines[0].Quantity != 1 || state.Lines[1].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d and %d", state.Lines[0].Quantity, state.Lines[1].Quantity)
	}
}

func TestUpdateQuantityRemovesAtZeroAndIgnoresUnknown(t *testing.T) {
	state := &State{}
	state.add(line("p1", "Shirt", 10, 0), 2)
	state.add(line("p2", "Dress", 20, 0), 1)

	state.updateQuantity("p1", 5)
	if state.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.Lines[0].Quantity)
	}

	state.updateQuantity("p1", 0)
	if len(state.Lines) != 1 || state.Lines[0].Key != "p2" {
		t.Fatalf("expected p1 removed, got %+v", state.Lines)
	}

	state.updateQuantity("missing", 3)
	if len(state.Lines) != 1 {
		t.Fatalf("expected unknown key to be a no-op, got %+v", state.Lines)
	}
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	state := &State{}
	state.add(line("p1", "Shirt", 10, 0), 1)

	state.remove("missing")
	if len(state.Lines) != 1 {
		t.Fatalf("expected untouched cart, got %+v", state.Lines)
	}

	state.remove("p1")
	if len(state.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Lines)
	}
}

func TestClearIsIdempotentAndKeepsOpenFlag(t *testing.T) {
	state := &State{IsOpen: true}
	state.add(line("p1", "Shirt", 10, 0), 2)

	state.clear()
	state.clear()

	if len(state.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Lines)
	}
	if !state.IsOpen {
		t.Fatalf("expected open flag untouched by clear")
	}
}

func TestTotalsRecomputedFromLines(t *testing.T) {
	state := &State{}
	state.add(line("p1", "Shirt", 10.50, 0), 2)
	state.add(line("p2", "Dress", 89, 0), 1)

	totals := state.Totals()
	if totals.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", totals.ItemCount)
	}
	if !totals.Subtotal.Equal(decimal.NewFromFloat(110.00)) {
		t.Fatalf("expected subtotal 110.00, got %s", totals.Subtotal)
	}

	state.updateQuantity("p1", 1)
	totals = state.Totals()
	if !totals.Subtotal.Equal(decimal.NewFromFloat(99.50)) {
		t.Fatalf("expected subtotal 99.50, got %s", totals.Subtotal)
	}
}

func TestOrderMessageFormat(t *testing.T) {
	state := &State{}
	state.add(line("p1", "Robe Été", 89, 0), 2)
	state.add(line("p2", "Chemise Lin", 45.5, 0), 1)

	got := OrderMessage(state)

	want := "Bonjour, je voudrais commander les produits suivants :\n\n" +
		"1. Robe Été (2 x 89 DNT) = 178.00 DNT\n" +
		"2. Chemise Lin (1 x 45.5 DNT) = 45.50 DNT\n" +
		"\nTotal: 223.50 DNT" +
		"\n\nMerci !"
	if got != want {
		t.Fatalf("unexpected message:\n%q\nwant:\n%q", got, want)
	}
}

func TestOrderMessageDoesNotMutate(t *testing.T) {
	state := &State{}
	state.add(line("p1", "Shirt", 10, 0), 2)

	first := OrderMessage(state)
	second := OrderMessage(state)

	if first != second {
		t.Fatalf("expected deterministic message")
	}
	if len(state.Lines) != 1 || state.Lines[0].Quantity != 2 {
		t.Fatalf("expected cart untouched, got %+v", state.Lines)
	}
}

func TestUnmarshalStateCorruptYieldsEmptyCart(t *testing.T) {
	state := unmarshalState([]byte("{not json"))
	if len(state.Lines) != 0 || state.IsOpen {
		t.Fatalf("expected empty cart for corrupt snapshot, got %+v", state)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	state := &State{IsOpen: true}
	state.add(line("p1", "Shirt", 10.50, 0), 2)

	raw, err := state.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"p1"`) {
		t.Fatalf("unexpected payload: %s", raw)
	}

	restored := unmarshalState(raw)
	if len(restored.Lines) != 1 || !restored.IsOpen {
		t.Fatalf("unexpected restored state: %+v", restored)
	}
	if !restored.Lines[0].Price.Equal(decimal.NewFromFloat(10.50)) {
		t.Fatalf("expected price to survive round trip, got %s", restored.Lines[0].Price)
	}
}
