package cmd

import (
	"errors"
	"fc2ppvdb-scraper/lib/configutil"
	"fc2ppvdb-scraper/lib/osutil"
	"fc2ppvdb-scraper/lib/restyutil"
	"fc2ppvdb-scraper/lib/scrapers/fc2ppvdb"
	"fc2ppvdb-scraper/lib/telemetry"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

const version = "1.1.0"

type Config struct {
	BaseUrl        string           `json:"base_url"`
	CookieFile     string           `json:"cookie_file"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	Debug          bool             `json:"debug"`
	HttpDumpDir    string           `json:"http_dump_dir"`
	Telemetry      telemetry.Config `json:"telemetry"`
}

var configPath string
var debug bool

var config Config
var tel telemetry.Telemetry

var rootCmd = &cobra.Command{
	Use:     "fc2ppvdb",
	Short:   "fc2ppvdb scrapes scene metadata from fc2ppvdb.com for a stash host.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config = loadConfig()
		telemetry.InitSlog(debug || config.Debug)

		if hasOtlpEndpoint(config.Telemetry) {
			t, err := telemetry.Setup(cmd.Context(), "fc2ppvdb", config.Telemetry)
			if err != nil {
				slog.Error("failed to set up telemetry", "err", err.Error())
				os.Exit(1)
			}
			tel = t
		}

		dumpDir := config.HttpDumpDir
		if dumpDir == "" && (debug || config.Debug) {
			dumpDir = filepath.Join(os.TempDir(), "fc2ppvdb-http")
		}
		if dumpDir != "" {
			slog.Debug("dumping http transcripts", "dir", dumpDir)
			fc2ppvdb.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(dumpDir))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := tel.Shutdown(cmd.Context())
		if err != nil {
			slog.Warn("failed to shut down telemetry", "err", err.Error())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "",
		"config file location (defaults to scraper.json5 next to the binary)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.ExecuteContext(osutil.SignalContext()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// a missing config file just means defaults, a broken one is fatal
func loadConfig() Config {
	path := configPath
	if path == "" {
		path = defaultConfigPath()
	}

	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}
	}
	if err != nil {
		telemetry.InitSlog(debug)
		slog.Error("failed to read config file", "path", path, "err", err.Error())
		os.Exit(1)
	}
	return config
}

func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "scraper.json5"
	}
	return filepath.Join(filepath.Dir(exe), "scraper.json5")
}

func hasOtlpEndpoint(c telemetry.Config) bool {
	return c.Otlp.Traces.GrpcEndpoint != "" ||
		c.Otlp.Traces.HttpEndpoint != "" ||
		c.Otlp.Metrics.GrpcEndpoint != "" ||
		c.Otlp.Metrics.HttpEndpoint != ""
}

func newClient() *fc2ppvdb.Client {
	client, err := fc2ppvdb.NewClient(fc2ppvdb.ClientOptions{
		BaseUrl:    config.BaseUrl,
		CookieFile: config.CookieFile,
		Timeout:    time.Duration(config.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		slog.Error("failed to construct client", "err", err.Error())
		os.Exit(1)
	}
	return client
}
