package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"seatpicker-cli/model"
	"seatpicker-cli/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(model.Config{
		Name:     "Test hall",
		Rows:     3,
		Columns:  6,
		Currency: "$",
		Types: []model.SeatType{
			{Key: model.DefaultTypeKey, Name: "Standard", Price: 10},
			{Key: "vip", Name: "VIP", Price: 20, Rows: []int{2}},
		},
		Disabled: model.Obstructions{Seats: []model.SeatIndex{{Row: 0, Col: 0}}},
		Reserved: []model.SeatIndex{{Row: 1, Col: 2}},
		Selected: []model.SeatIndex{{Row: 2, Col: 5}},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return s
}

func newTestModel(t *testing.T, s *store.Store, opts Options) appModel {
	t.Helper()
	m, err := New(s, opts)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return m.(appModel)
}

func key(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(appModel)
	}
	return m, cmd
}

func TestNew_SeededCart(t *testing.T) {
	m := newTestModel(t, testStore(t), Options{})

	if m.cursor != (model.SeatIndex{Row: 0, Col: 1}) {
		t.Fatalf("expected cursor on first open seat, got %s", m.cursor)
	}
	items := m.cartList.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 cart item, got %d", len(items))
	}
	item := items[0].(cartItem)
	if item.Title() != "C6" || item.Description() != "VIP • $ 20.00" {
		t.Fatalf("unexpected cart item %q / %q", item.Title(), item.Description())
	}
}

func TestMove_ClampsToGrid(t *testing.T) {
	m := newTestModel(t, testStore(t), Options{})

	m, _ = press(t, m, "k", "h", "h")
	if m.cursor != (model.SeatIndex{Row: 0, Col: 0}) {
		t.Fatalf("expected cursor at 0:0, got %s", m.cursor)
	}
	m, _ = press(t, m, "j", "j", "j", "l", "l", "l", "l", "l", "l", "l")
	if m.cursor != (model.SeatIndex{Row: 2, Col: 5}) {
		t.Fatalf("expected cursor at 2:5, got %s", m.cursor)
	}
}

func TestToggleSeat_SelectAndRelease(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{})

	m, _ = press(t, m, " ")
	if s.CountCartItems() != 2 || len(m.cartList.Items()) != 2 {
		t.Fatalf("expected 2 seats in cart, got %d (list %d)", s.CountCartItems(), len(m.cartList.Items()))
	}
	events := strings.Join(m.view.recent(), "\n")
	if !strings.Contains(events, "A2 added to cart") || !strings.Contains(events, "A2 available → selected") {
		t.Fatalf("expected add events, got %q", events)
	}

	m, _ = press(t, m, "enter")
	if s.CountCartItems() != 1 || len(m.cartList.Items()) != 1 {
		t.Fatalf("expected seat to be released, got %d in cart", s.CountCartItems())
	}
	if !strings.Contains(strings.Join(m.view.recent(), "\n"), "A2 removed from cart") {
		t.Fatalf("expected remove event, got %v", m.view.recent())
	}
}

func TestToggleSeat_RefusesGap(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{})

	m, _ = press(t, m, "l", " ")
	if s.CountCartItems() != 1 {
		t.Fatalf("expected selection to be refused, got %d in cart", s.CountCartItems())
	}
	if !strings.Contains(m.view.notice, "A3 would leave a single empty seat") {
		t.Fatalf("expected gap notice, got %q", m.view.notice)
	}

	m, _ = press(t, m, "l")
	if m.view.notice != "" {
		t.Fatalf("expected notice to clear on next key, got %q", m.view.notice)
	}
}

func TestToggleSeat_AllowGaps(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{AllowGaps: true})

	m, _ = press(t, m, "l", " ")
	if s.CountCartItems() != 2 {
		t.Fatalf("expected selection with gaps allowed, got %d in cart", s.CountCartItems())
	}
	gap, err := s.IsGap(model.SeatIndex{Row: 0, Col: 1})
	if err != nil || !gap {
		t.Fatalf("expected A2 to be a gap, got %v (%v)", gap, err)
	}
	if m.view.notice != "" {
		t.Fatalf("expected no notice, got %q", m.view.notice)
	}
}

func TestToggleSeat_ReservedSeat(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{})

	m, _ = press(t, m, "j", "l", " ")
	if m.view.notice != "B3 is reserved." {
		t.Fatalf("expected reserved notice, got %q", m.view.notice)
	}
	if s.CountCartItems() != 1 {
		t.Fatalf("expected cart unchanged, got %d", s.CountCartItems())
	}
}

func TestClearCart(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{})

	m, _ = press(t, m, "c")
	if s.CountCartItems() != 0 || len(m.cartList.Items()) != 0 {
		t.Fatalf("expected empty cart, got %d (list %d)", s.CountCartItems(), len(m.cartList.Items()))
	}
	if !strings.Contains(strings.Join(m.view.recent(), "\n"), "cart cleared (1 seats)") {
		t.Fatalf("expected clear event, got %v", m.view.recent())
	}

	cleared := 0
	if _, err := s.OnCartClear(func(store.CartClearEvent) { cleared++ }); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	m, _ = press(t, m, "c")
	if m.view.notice != "Cart is already empty." {
		t.Fatalf("expected empty cart notice, got %q", m.view.notice)
	}
	if cleared != 0 {
		t.Fatalf("expected no clear on an empty cart, got %d", cleared)
	}
}

func TestSubmit(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{})

	m, cmd := press(t, m, " ", "s")
	if cmd == nil {
		t.Fatal("expected quit command after submit")
	}
	ev, ok := Submitted(m)
	if !ok {
		t.Fatal("expected submitted cart")
	}
	if len(ev.Cart) != 2 || ev.Total != 30 {
		t.Fatalf("expected 2 seats for 30, got %d for %v", len(ev.Cart), ev.Total)
	}
	if s.CountCartItems() != 2 {
		t.Fatalf("expected submit to keep the cart, got %d", s.CountCartItems())
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	s := testStore(t)
	m := newTestModel(t, s, Options{})

	m, _ = press(t, m, "c")
	m, cmd := press(t, m, "s")
	if cmd != nil {
		t.Fatal("expected no command for an empty cart")
	}
	if _, ok := Submitted(m); ok {
		t.Fatal("expected nothing submitted")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, testStore(t), Options{Currency: "€"})

	view := m.View()
	for _, want := range []string{"Test hall", "SCREEN", "Total: € 20.00", "VIP"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}

	m, _ = press(t, m, "n")
	if !m.showSeatNumbers || !strings.Contains(m.View(), "B4") {
		t.Fatal("expected seat labels after toggling numbers")
	}
	m, _ = press(t, m, "g")
	if m.highlightGaps {
		t.Fatal("expected gap highlighting to toggle off")
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("A1", 4); got != " A1 " {
		t.Fatalf("expected centered cell, got %q", got)
	}
	if got := padCell("AB12", 2); got != "AB" {
		t.Fatalf("expected truncated cell, got %q", got)
	}
	if got := padCell("", 3); got != "   " {
		t.Fatalf("expected blank cell, got %q", got)
	}
}
