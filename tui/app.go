package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"seatpicker-cli/model"
	"seatpicker-cli/store"
)

const cartWidth = 34

type Options struct {
	AllowGaps bool
	// Currency replaces the layout's currency symbol when set.
	Currency string
}

type appModel struct {
	store *store.Store
	view  *seatView
	opts  Options

	width  int
	height int

	cursor          model.SeatIndex
	showSeatNumbers bool
	highlightGaps   bool

	cartList list.Model
}

// New builds the seat map program for s. The program subscribes to the
// store's events; seats changed before New are read from the store directly.
func New(s *store.Store, opts Options) (tea.Model, error) {
	view := &seatView{}
	if err := view.attach(s); err != nil {
		return nil, err
	}
	m := appModel{
		store:         s,
		view:          view,
		opts:          opts,
		cursor:        firstOpenSeat(s),
		highlightGaps: true,
	}
	m.cartList = newList("Cart")
	m.cartList.SetSize(cartWidth, 16)
	m.syncCart()
	return m, nil
}

// Submitted returns the submitted cart once the program has exited through
// a submit.
func Submitted(final tea.Model) (store.SubmitEvent, bool) {
	m, ok := final.(appModel)
	if !ok || m.view.submitted == nil {
		return store.SubmitEvent{}, false
	}
	return *m.view.submitted, true
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCart()
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}
	return m, nil
}

func (m appModel) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSeatMap(), "   ", m.cartView())
	return m.headerView() + "\n\n" + body + "\n" + m.statusView()
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.store.Name())
	sub := []string{
		fmt.Sprintf("%dx%d", m.store.Rows(), m.store.Columns()),
		fmt.Sprintf("Cart: %d", m.store.CountCartItems()),
		fmt.Sprintf("Total: %s", model.FormatPrice(m.currency(), m.store.CartTotal())),
	}
	if m.opts.AllowGaps {
		sub = append(sub, "Gaps allowed")
	}
	meta := "\n" + lipgloss.NewStyle().Faint(true).Render(strings.Join(sub, " • "))
	hints := "ctrl+c quit • arrows/hjkl move • space select • c clear cart • s submit • n toggle labels • g toggle gaps"
	return title + meta + "\n" + hint(hints)
}

func (m appModel) statusView() string {
	var lines []string
	if m.view.notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.view.notice))
	}
	for _, line := range m.view.recent() {
		lines = append(lines, hint(line))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	m.view.notice = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case " ", "enter":
		m.toggleSeat()
	case "c":
		if m.store.CountCartItems() == 0 {
			m.view.notice = "Cart is already empty."
			return m, nil, true
		}
		m.store.ClearCart(true)
	case "s":
		return m.submit()
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "g":
		m.highlightGaps = !m.highlightGaps
	default:
		return m, nil, false
	}
	m.syncCart()
	return m, nil, true
}

func (m *appModel) move(dr, dc int) {
	m.cursor.Row = min(max(m.cursor.Row+dr, 0), m.store.Rows()-1)
	m.cursor.Col = min(max(m.cursor.Col+dc, 0), m.store.Columns()-1)
}

// toggleSeat selects or releases the seat under the cursor. Unless gaps are
// allowed, a selection that would strand a single empty seat is refused.
func (m *appModel) toggleSeat() {
	seat, err := m.store.Seat(m.cursor)
	if err != nil {
		m.view.notice = err.Error()
		return
	}
	switch seat.State {
	case model.SeatAvailable:
		if !m.opts.AllowGaps {
			gap, err := m.store.MakesGap(m.cursor)
			if err != nil {
				m.view.notice = err.Error()
				return
			}
			if gap {
				m.view.notice = fmt.Sprintf("Selecting %s would leave a single empty seat next to it.", seat.Label)
				return
			}
		}
		err = m.store.SetSeat(m.cursor, store.WithState(model.SeatSelected), true)
	case model.SeatSelected:
		err = m.store.SetSeat(m.cursor, store.WithState(model.SeatAvailable), true)
	default:
		m.view.notice = fmt.Sprintf("%s is %s.", seat.Label, seat.State)
		return
	}
	if err != nil {
		m.view.notice = err.Error()
	}
}

func (m appModel) submit() (tea.Model, tea.Cmd, bool) {
	if m.store.CountCartItems() == 0 {
		m.view.notice = "Select at least one seat before submitting."
		return m, nil, true
	}
	m.store.Submit()
	return m, tea.Quit, true
}

func (m *appModel) syncCart() {
	if !m.view.cartDirty && len(m.cartList.Items()) == m.store.CountCartItems() {
		return
	}
	m.cartList.SetItems(buildCartItems(m.store, m.currency()))
	m.view.cartDirty = false
}

func (m *appModel) resizeCart() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 10
	if h < 6 {
		h = 6
	}
	m.cartList.SetSize(cartWidth, h)
}

func (m appModel) currency() string {
	if m.opts.Currency != "" {
		return m.opts.Currency
	}
	return m.store.Currency()
}

func firstOpenSeat(s *store.Store) model.SeatIndex {
	for _, seat := range s.Seats() {
		if seat.IsAvailable() || seat.IsSelected() {
			return seat.Index
		}
	}
	return model.SeatIndex{}
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}
