package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"seatpicker-cli/model"
	"seatpicker-cli/store"
)

const recentEvents = 4

// seatView is the program's side of the store's event bus. It is shared by
// every copy of appModel, so listeners and key handlers see the same state.
type seatView struct {
	cartDirty bool
	notice    string
	events    []string
	submitted *store.SubmitEvent
}

func (v *seatView) attach(s *store.Store) error {
	if _, err := s.OnSeatChange(v.onSeatChange); err != nil {
		return err
	}
	if _, err := s.OnCartChange(v.onCartChange); err != nil {
		return err
	}
	if _, err := s.OnCartClear(v.onCartClear); err != nil {
		return err
	}
	_, err := s.OnSubmit(v.onSubmit)
	return err
}

func (v *seatView) onSeatChange(ev store.SeatChangeEvent) {
	// A selected seat can be relabelled or retyped without leaving the cart.
	if ev.Current.IsSelected() {
		v.cartDirty = true
	}
	if ev.Previous.State != ev.Current.State {
		v.record(fmt.Sprintf("%s %s → %s", ev.Current.Label, ev.Previous.State, ev.Current.State))
		return
	}
	v.record(fmt.Sprintf("%s updated", ev.Current.Label))
}

func (v *seatView) onCartChange(ev store.CartChangeEvent) {
	v.cartDirty = true
	if ev.Action == store.CartAdd {
		v.record(fmt.Sprintf("%s added to cart", ev.Seat.Label))
		return
	}
	v.record(fmt.Sprintf("%s removed from cart", ev.Seat.Label))
}

func (v *seatView) onCartClear(ev store.CartClearEvent) {
	v.cartDirty = true
	v.record(fmt.Sprintf("cart cleared (%d seats)", len(ev.Seats)))
}

func (v *seatView) onSubmit(ev store.SubmitEvent) {
	v.submitted = &ev
	v.record(fmt.Sprintf("submitted %d seats", len(ev.Cart)))
}

func (v *seatView) record(line string) {
	v.events = append(v.events, line)
	if len(v.events) > recentEvents {
		v.events = v.events[len(v.events)-recentEvents:]
	}
}

func (v *seatView) recent() []string {
	return v.events
}

type cartItem struct {
	seat     model.SeatRecord
	typeName string
	price    string
}

func (c cartItem) Title() string {
	return c.seat.Label
}

func (c cartItem) Description() string {
	return c.typeName + " • " + c.price
}

func (c cartItem) FilterValue() string {
	return c.seat.Label
}

func buildCartItems(s *store.Store, currency string) []list.Item {
	seats := s.Cart()
	items := make([]list.Item, 0, len(seats))
	for _, seat := range seats {
		t, _ := s.Type(seat.Type)
		name := t.Name
		if name == "" {
			name = t.Key
		}
		items = append(items, cartItem{seat: seat, typeName: name, price: model.FormatPrice(currency, t.Price)})
	}
	return items
}

func (m appModel) cartView() string {
	var b strings.Builder
	if len(m.cartList.Items()) == 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Cart"))
		b.WriteString("\n")
		b.WriteString(hint("No seats selected."))
	} else {
		b.WriteString(m.cartList.View())
	}
	b.WriteString("\n")
	for _, group := range m.store.CartByType() {
		name := group.Type.Name
		if name == "" {
			name = group.Type.Key
		}
		b.WriteString(hint(fmt.Sprintf("%s x%d  %s", name, len(group.Seats), model.FormatPrice(m.currency(), group.Subtotal))))
		b.WriteString("\n")
	}
	total := fmt.Sprintf("Total: %s", model.FormatPrice(m.currency(), m.store.CartTotal()))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(total))
	return b.String()
}
