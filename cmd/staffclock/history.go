package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyMonth int
	historyYear  int
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded days",
	Long: `Without flags, lists the most recent days newest-first. With --month and
--year (month is 1-based, January = 1), lists that month in day order.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyMonth, "month", 0, "month filter, 1-12")
	historyCmd.Flags().IntVar(&historyYear, "year", 0, "year filter, e.g. 2026")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "max rows without a month filter")
}

func runHistory(cmd *cobra.Command, args []string) error {
	views, err := api().History(historyMonth, historyYear, historyLimit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if len(views) == 0 {
		fmt.Println("No history found.")
		return nil
	}

	fmt.Printf("%-12s %-14s %-14s %s\n", "DATE", "CHECK-IN", "CHECK-OUT", "HOURS")
	for _, v := range views {
		checkIn := v.CheckIn
		if checkIn == "" {
			checkIn = "-"
		}
		checkOut := v.CheckOut
		if checkOut == "" {
			checkOut = "-"
		}
		hours := v.Duration
		if hours == "" {
			hours = "-"
		}
		fmt.Printf("%-12s %-14s %-14s %s\n", v.DateStr, checkIn, checkOut, hours)
	}
	return nil
}
