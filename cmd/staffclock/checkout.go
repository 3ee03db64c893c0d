package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out for today",
	Args:  cobra.NoArgs,
	RunE:  runCheckout,
}

func runCheckout(cmd *cobra.Command, args []string) error {
	dateStr, timeStr := nowStrings()

	result, err := api().CheckOut(dateStr, timeStr)
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	store := sessionStore()
	session, err := store.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	session.Rollover(dateStr)
	session.LastAction = "checkout"
	session.LastCheckOut = result.CheckOut
	if result.Duration != nil {
		session.TodayHours = strconv.FormatFloat(*result.Duration, 'f', 2, 64)
	}
	saveSession(store, session)

	if result.Duration != nil {
		fmt.Printf("Checked out at %s (%.2f hours today)\n", result.CheckOut, *result.Duration)
	} else {
		fmt.Printf("Checked out at %s\n", result.CheckOut)
	}
	return nil
}
