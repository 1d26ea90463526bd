// Package cmd implements the stylematrix CLI commands.
//
// A root command dispatches to subcommands (modes, apply, sheet, animate,
// serve). Global flags and the optional stylematrix.yaml are resolved before
// the subcommand runs.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/stylematrix/cmd/stylematrix/internal/config"
	"github.com/go-drift/stylematrix/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "stylematrix",
	Short: "Color-matrix styling for images",
	Long: `stylematrix applies color-matrix styles (sepia, invert, saturation,
brightness and contrast, ...) to images, renders contact sheets and
animated transitions, and serves styled images over HTTP.

Use "stylematrix <command> --help" for more information about a command.`,
	Usage: "stylematrix [--log-level LEVEL] [--config FILE] <command> [flags]",
}

var (
	commands    = make(map[string]*Command)
	commandList []*Command
)

// Shared state resolved by Execute before a command runs.
var (
	stdout io.Writer = os.Stdout
	cfg              = &config.Config{}
	logger           = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	commandList = append(commandList, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var (
		filteredArgs []string
		logLevel     string
		configPath   string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(filteredArgs) > 0 {
			filteredArgs = append(filteredArgs, arg)
			continue
		}
		switch arg {
		case "-h", "--help", "help":
			printHelp(rootCmd)
			return nil
		case "-v", "--version", "version":
			fmt.Fprintf(stdout, "stylematrix version %s (built %s)\n", Version, BuildTime)
			return nil
		case "--log-level", "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--log-level" {
				logLevel = args[i+1]
			} else {
				configPath = args[i+1]
			}
			i++
		default:
			switch {
			case strings.HasPrefix(arg, "--log-level="):
				logLevel = strings.TrimPrefix(arg, "--log-level=")
			case strings.HasPrefix(arg, "--config="):
				configPath = strings.TrimPrefix(arg, "--config=")
			default:
				filteredArgs = append(filteredArgs, arg)
			}
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := setup(configPath, logLevel); err != nil {
		return err
	}
	logger.Debug("running command", "command", cmd.Name, "args", cmdArgs)
	return cmd.Run(cmdArgs)
}

// setup resolves configuration and installs the logger. Flags override the
// config file, which overrides the environment.
func setup(configPath, logLevel string) error {
	if configPath != "" {
		os.Setenv(config.EnvConfig, configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(wd)
	if err != nil {
		return err
	}
	if err := resolved.CheckVersion(Version); err != nil {
		return err
	}

	if logLevel == "" {
		logLevel = resolved.Log.Level
	}
	if logLevel == "" {
		logLevel = string(LogLevelInfo)
	}
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}

	cfg = resolved
	logger = setupLogger(level, os.Stderr)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: level == LogLevelDebug})
	return nil
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range commandList {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --log-level LEVEL    error, warn, info or debug (default: info)")
	fmt.Fprintln(stdout, "  --config FILE        Config file (default: ./stylematrix.yaml)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Environment:")
	fmt.Fprintln(stdout, "  STYLEMATRIX_LOG_LEVEL  Log level (lower priority than the config file)")
	fmt.Fprintln(stdout, "  STYLEMATRIX_CONFIG     Config file path (lower priority than --config)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  stylematrix modes                          List modes and their matrices")
	fmt.Fprintln(stdout, "  stylematrix apply in.jpg out.png --mode sepia")
	fmt.Fprintln(stdout, "  stylematrix sheet in.jpg sheet.png")
	fmt.Fprintln(stdout, "  stylematrix animate in.png out.gif --from none --to invert")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
