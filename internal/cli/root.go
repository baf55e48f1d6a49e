package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openswim/swim-meets/internal/config"
	"github.com/openswim/swim-meets/internal/logger"
)

// Exit codes. ExitNewMeetings signals a scrape that found meetings not seen
// before, for cron-driven setups that alert on it.
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitNewMeetings = 2
)

var (
	flagConfigFile string
	flagFormat     string
	flagVerbose    bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swim-meets",
		Short: "Track licensed swim meets and convert race times",
		Long: `Scrapes licensed swim-meet listings into a local store, links imported
meetings to scraped ones by license code, and converts race times between
short course (25m) and long course (50m) pools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfigFile, "config", "", "Config file (default: built-in defaults + SWIMMEETS_* env)")
	pf.String("data-dir", "", "Data directory for snapshots")
	pf.String("source", "", "Scrape source profile to use")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.BoolVar(&flagVerbose, "verbose", false, "Include per-meeting detail in text output")

	cmd.AddCommand(
		newScrapeCmd(),
		newRefreshCmd(),
		newListCmd(),
		newMatchCmd(),
		newConvertCmd(),
		newExportCmd(),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig resolves configuration for one command invocation and applies
// the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SWIMMEETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flagConfigFile != "" {
		v.SetConfigFile(flagConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	root := cmd.Root().PersistentFlags()
	for flagName, key := range map[string]string{
		"data-dir":  "data_dir",
		"source":    "scrape.source",
		"log-level": "log_level",
	} {
		if f := root.Lookup(flagName); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger.SetDefault(logger.New(parseLevel(cfg.LogLevel), os.Stderr))
	return cfg, nil
}

func parseLevel(s string) logger.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
