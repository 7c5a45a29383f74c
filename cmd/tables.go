package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"seatpicker-cli/layout"
	"seatpicker-cli/model"
	"seatpicker-cli/store"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <layout>",
		Short: "Print types, seat counts, cart and gaps of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore(args[0])
			if err != nil {
				return err
			}
			inspect(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently opened layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recent, err := layout.LoadRecentLayouts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recent) == 0 {
				fmt.Fprintln(out, "No recent layouts.")
				return nil
			}
			t := newTable(out)
			t.AppendHeader(table.Row{"#", "Layout", "Path", "Opened"})
			for i, entry := range recent {
				t.AppendRow(table.Row{i + 1, entry.Name, entry.Path, entry.OpenedAt.Local().Format("2006-01-02 15:04")})
			}
			t.Render()
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <path>",
		Short: "Write the demo layout to a .json or .yaml file to start from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := layout.Save(args[0], layout.Demo()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	return t
}

func inspect(out io.Writer, s *store.Store) {
	fmt.Fprintf(out, "%s (%d rows x %d columns)\n", s.Name(), s.Rows(), s.Columns())

	perType := make(map[string]int)
	for _, seat := range s.Seats() {
		perType[seat.Type]++
	}
	types := newTable(out)
	types.AppendHeader(table.Row{"Type", "Name", "Price", "Seats"})
	for _, t := range s.Types() {
		types.AppendRow(table.Row{t.Key, typeName(t), model.FormatPrice(s.Currency(), t.Price), perType[t.Key]})
	}
	types.Render()

	counts := s.Counts()
	states := newTable(out)
	states.AppendHeader(table.Row{"State", "Seats"})
	for _, state := range []model.SeatState{model.SeatAvailable, model.SeatSelected, model.SeatReserved, model.SeatDisabled} {
		states.AppendRow(table.Row{string(state), counts[state]})
	}
	states.AppendFooter(table.Row{"Total", s.Rows() * s.Columns()})
	states.Render()

	if s.CountCartItems() > 0 {
		cartTable(out, s.CartByType(), s.CartTotal(), s.Currency()).Render()
	}

	gaps := s.Gaps()
	labels := make([]string, 0, len(gaps))
	for _, index := range gaps {
		seat, err := s.Seat(index)
		if err != nil {
			continue
		}
		labels = append(labels, seat.Label)
	}
	if len(labels) == 0 {
		fmt.Fprintln(out, "Gaps: none")
		return
	}
	fmt.Fprintf(out, "Gaps: %s\n", strings.Join(labels, ", "))
}

func cartTable(out io.Writer, groups []store.CartGroup, total float64, currency string) table.Writer {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := newTable(out)
	t.AppendHeader(table.Row{"Type", "Seat", "Price"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	for _, group := range groups {
		var items []table.Row
		for _, seat := range group.Seats {
			items = append(items, table.Row{typeName(group.Type), seat.Label, model.FormatPrice(currency, group.Type.Price)})
		}
		t.AppendRows(items, rowConfigAutoMerge)
		t.AppendSeparator()
	}
	t.AppendFooter(table.Row{"", "Total", model.FormatPrice(currency, total)})
	return t
}
