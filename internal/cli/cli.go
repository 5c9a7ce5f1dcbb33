package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/dashgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("dashgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dashgrid - computes dashboard panels from raw queries and derived metrics.

Usage:
  dashgrid [options] [DASHBOARD_PATH]

Arguments:
  DASHBOARD_PATH
    Path to a .hcl dashboard definition.

Options:
`)
		flagSet.PrintDefaults()
	}

	dashboardFlag := flagSet.String("dashboard", "", "Path to the dashboard definition.")
	dFlag := flagSet.String("d", "", "Path to the dashboard definition (shorthand).")
	varsFlag := flagSet.String("vars", "", "Path to a YAML file with variable bindings.")
	concurrencyFlag := flagSet.Int("concurrency", 4, "Maximum in-flight queries per batch.")
	streamFlag := flagSet.Bool("stream", false, "Print each panel as it is produced instead of one aggregate list.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the WebSocket result stream. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *dashboardFlag != "" {
		path = *dashboardFlag
	} else if *dFlag != "" {
		path = *dFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *concurrencyFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid concurrency: must be at least 1"}
	}

	config, err := app.NewConfig(app.Config{
		DashboardPath: path,
		VarsPath:      *varsFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		Concurrency:   *concurrencyFlag,
		Streaming:     *streamFlag,
		ServePort:     *servePortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
