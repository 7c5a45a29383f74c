package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"seatpicker-cli/config"
	"seatpicker-cli/layout"
	"seatpicker-cli/logger"
	"seatpicker-cli/model"
	"seatpicker-cli/store"
	"seatpicker-cli/tui"
)

const appName = "seatpicker-cli"

// Execute runs the command line and returns the first error.
func Execute(version, commit string) error {
	return newRootCmd(version, commit).Execute()
}

func newRootCmd(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName + " [layout]",
		Short:         "Pick seats on a seat map from the terminal",
		Long:          `Open a seat layout (JSON or YAML), pick seats and submit the cart. Without a layout the built-in demo hall is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		RunE:          runSeatMap,
	}
	rootCmd.PersistentFlags().Bool("allow-gaps", false, "allow selections that leave a single empty seat")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().Bool("last", false, "open the most recently used layout")
	rootCmd.PersistentFlags().String("env-file", "", "read settings from this env file instead of ./.env")

	runCmd := &cobra.Command{
		Use:   "run [layout]",
		Short: "Open the seat map",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSeatMap,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + appName,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", appName, version)
			if commit != "none" && commit != "" {
				fmt.Fprintf(out, " (%s)", commit)
			}
			fmt.Fprintln(out)
		},
	}

	rootCmd.AddCommand(runCmd, newInspectCmd(), newRecentCmd(), newInitCmd(), versionCmd)
	return rootCmd
}

func runSeatMap(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		File:   settings.Log.File,
	})
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer log.Close()

	path, err := layoutPath(cmd, args, settings)
	if err != nil {
		return err
	}
	cfg := layout.Demo()
	if path != "" {
		if cfg, err = layout.Load(path); err != nil {
			return err
		}
	}
	log = log.WithLayout(cfg.Name)

	opts := append([]store.Option{store.WithLogger(log.Logger)}, auditListeners(log.Logger)...)
	s, err := store.New(cfg, opts...)
	if err != nil {
		log.WithError(err).Error("layout rejected")
		return err
	}
	if path != "" {
		if err := layout.RememberLayout(cfg.Name, path); err != nil {
			log.WithError(err).Warn("could not update recent layouts")
		}
	}

	program, err := tui.New(s, tui.Options{AllowGaps: settings.AllowGaps, Currency: settings.Currency})
	if err != nil {
		return err
	}
	log.Debug("listeners attached",
		"seatchange", s.ListenerCount(store.EventSeatChange),
		"cartchange", s.ListenerCount(store.EventCartChange),
		"cartclear", s.ListenerCount(store.EventCartClear),
		"submit", s.ListenerCount(store.EventSubmit),
	)
	final, err := tea.NewProgram(program, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	ev, ok := tui.Submitted(final)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "No seats submitted.")
		return nil
	}
	currency := settings.Currency
	if currency == "" {
		currency = s.Currency()
	}
	printSubmission(cmd.OutOrStdout(), ev, currency)
	return nil
}

// loadSettings reads the environment, from --env-file when given, and
// applies the flags on top.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	settings := config.Load()
	if path, _ := cmd.Flags().GetString("env-file"); path != "" {
		var err error
		if settings, err = config.LoadFile(path); err != nil {
			return config.Config{}, fmt.Errorf("load env file: %w", err)
		}
	}
	return applyFlags(cmd, settings), nil
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, settings config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("allow-gaps") {
		settings.AllowGaps, _ = flags.GetBool("allow-gaps")
	}
	if flags.Changed("log-file") {
		settings.Log.File, _ = flags.GetString("log-file")
	}
	return settings
}

// layoutPath picks the layout to open: the argument, then --last, then
// SEATPICKER_LAYOUT. Empty means the demo hall.
func layoutPath(cmd *cobra.Command, args []string, settings config.Config) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if last, _ := cmd.Flags().GetBool("last"); last {
		recent, err := layout.LoadRecentLayouts()
		if err != nil {
			return "", err
		}
		if len(recent) == 0 {
			return "", fmt.Errorf("no recent layouts")
		}
		return recent[0].Path, nil
	}
	return settings.Layout, nil
}

func loadStore(path string) (*store.Store, error) {
	cfg, err := layout.Load(path)
	if err != nil {
		return nil, err
	}
	return store.New(cfg)
}

func typeName(t model.SeatType) string {
	if t.Name != "" {
		return t.Name
	}
	return t.Key
}

func printSubmission(out io.Writer, ev store.SubmitEvent, currency string) {
	fmt.Fprintf(out, "Submission %s\n", ev.ID)
	cartTable(out, ev.Groups, ev.Total, currency).Render()
}
