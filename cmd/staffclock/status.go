package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"staffclock/internal/client"
)

var statusRemote bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's check-in status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusRemote, "remote", false, "ask the server instead of the local session cache")
}

func runStatus(cmd *cobra.Command, args []string) error {
	dateStr, _ := nowStrings()

	store := sessionStore()
	session, err := store.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	if session.Rollover(dateStr) {
		saveSession(store, session)
	}

	if !statusRemote && session.LastAction != "" {
		printSession(session)
		return nil
	}

	view, err := api().Today()
	if err != nil {
		if session.LastAction != "" {
			// Offline fallback: the cached session is better than nothing.
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: server unreachable, showing cached state: %v\n", err)
			printSession(session)
			return nil
		}
		return fmt.Errorf("status failed: %w", err)
	}
	if view == nil {
		fmt.Println("Ready to log. No record for today yet.")
		return nil
	}

	switch {
	case view.CheckOut != "":
		fmt.Printf("Checked out. In %s, out %s", view.CheckIn, view.CheckOut)
		if hours, ok := client.ParseDuration(view.Duration); ok {
			fmt.Printf(", %.2f hours", hours)
		}
		fmt.Println()
	case view.CheckIn != "":
		fmt.Printf("Checked in since %s\n", view.CheckIn)
	default:
		fmt.Println("Ready to log.")
	}
	return nil
}

func printSession(s client.Session) {
	switch s.LastAction {
	case "checkin":
		fmt.Printf("Checked in since %s\n", s.LastCheckIn)
	case "checkout":
		if s.TodayHours != "" {
			fmt.Printf("Checked out at %s (%s hours today)\n", s.LastCheckOut, s.TodayHours)
		} else {
			fmt.Printf("Checked out at %s\n", s.LastCheckOut)
		}
	default:
		fmt.Println("Ready to log.")
	}
}
