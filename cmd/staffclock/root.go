package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"staffclock/internal/client"
	"staffclock/internal/timecalc"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "staffclock",
	Short: "Employee time-clock client",
	Long: `staffclock checks you in and out against the time-clock server and keeps a
small local session so status displays work without a round trip.`,
}

func init() {
	defaultServer := os.Getenv("STAFFCLOCK_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8888"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "time-clock server base URL")

	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func api() *client.APIClient {
	return client.NewAPIClient(serverURL)
}

func sessionStore() client.Storage {
	store, err := client.NewFileStorage()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return store
}

// nowStrings renders the current moment in the wire formats the server keys on.
func nowStrings() (dateStr, timeStr string) {
	now := time.Now()
	clock := timecalc.Clock{Hour: now.Hour(), Minute: now.Minute(), Second: now.Second()}
	return timecalc.DayKeyOf(now).String(), clock.String()
}

func deviceInfo() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s (%s/%s)", host, runtime.GOOS, runtime.GOARCH)
}

// saveSession persists display state after a successful action; a failure to
// cache is only a warning, the server already has the truth.
func saveSession(store client.Storage, s client.Session) {
	if err := store.Save(s); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", err)
	}
}
