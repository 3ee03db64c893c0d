package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in for today",
	Args:  cobra.NoArgs,
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	dateStr, timeStr := nowStrings()

	result, message, err := api().CheckIn(dateStr, timeStr, deviceInfo())
	if err != nil {
		// Leave the cached session untouched; the user retries by hand.
		return fmt.Errorf("check-in failed: %w", err)
	}

	store := sessionStore()
	session, err := store.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	session.Rollover(dateStr)
	session.LastAction = "checkin"
	session.LastCheckIn = result.CheckIn
	saveSession(store, session)

	if result.AlreadyCheckedIn {
		fmt.Printf("%s (at %s)\n", message, result.CheckIn)
		return nil
	}
	fmt.Printf("Checked in at %s\n", result.CheckIn)
	return nil
}
