package cmd

import (
	"log/slog"

	"seatpicker-cli/store"
)

// auditListeners log every store event, including the ones replayed while
// the grid is built.
func auditListeners(log *slog.Logger) []store.Option {
	listener := func(ev store.Event) {
		switch ev := ev.(type) {
		case store.SeatChangeEvent:
			log.Debug("seatchange",
				"seat", ev.Current.Label,
				"from", string(ev.Previous.State),
				"to", string(ev.Current.State),
				"type", ev.Current.Type,
			)
		case store.CartChangeEvent:
			log.Info("cartchange", "action", string(ev.Action), "seat", ev.Seat.Label)
		case store.CartClearEvent:
			log.Info("cartclear", "seats", len(ev.Seats))
		case store.SubmitEvent:
			log.Info("submit", "submission", ev.ID.String(), "seats", len(ev.Cart), "total", ev.Total)
		}
	}
	return []store.Option{
		store.WithListener(store.EventSeatChange, listener),
		store.WithListener(store.EventCartChange, listener),
		store.WithListener(store.EventCartClear, listener),
		store.WithListener(store.EventSubmit, listener),
	}
}
