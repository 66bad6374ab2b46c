package cmd

import (
	"fc2ppvdb-scraper/lib/scrapers/fc2ppvdb"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	sessionCmd.AddCommand(sessionPathCmd)
	sessionCmd.AddCommand(sessionSetCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or update the persisted session cookie.",
}

var sessionPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved location of the session cookie file.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cookieFile())
	},
}

var sessionSetCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Store a session cookie value copied out of a logged-in browser.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := cookieFile()
		err := os.WriteFile(path, []byte(args[0]), 0600)
		if err != nil {
			slog.Error("failed to write session cookie file", "path", path, "err", err.Error())
			os.Exit(1)
		}
		slog.Info("wrote session cookie file", "path", path)
	},
}

func cookieFile() string {
	if config.CookieFile != "" {
		return config.CookieFile
	}
	return fc2ppvdb.DefaultCookieFile()
}
