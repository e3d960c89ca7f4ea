// Package cmd implements the uibuild CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (compile, dump, check, store, version).
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/go-drift/uiloader/cmd/uibuild/internal/config"
	uierrors "github.com/go-drift/uiloader/pkg/errors"
	"github.com/go-drift/uiloader/pkg/logging"
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
	Run   func(env *Env, args []string) error
}

// Env is what a command runs with.
type Env struct {
	Config config.Config
	Log    *zap.Logger
	Out    io.Writer
}

// Printf writes to the command output.
func (e *Env) Printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}

var rootCmd = &Command{
	Name:  "uibuild",
	Short: "uibuild - compile, inspect and check UI descriptions",
	Long: `uibuild works with the UI description resources read by the loader.
It compiles YAML descriptions to the binary format, builds them into widget
trees for inspection and reports nodes the builder had to skip.

Use "uibuild <command> --help" for more information about a command.`,
	Usage: "uibuild [--config FILE] [--log-level LEVEL] <command> [args]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:], os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		printHelp(out)
		return nil
	}

	// Handle global flags
	var (
		filteredArgs []string
		configPath   string
		logLevel     string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(out)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion(out)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config", "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--config" {
				configPath = args[i+1]
			} else {
				logLevel = args[i+1]
			}
			i++
		default:
			if v, ok := strings.CutPrefix(arg, "--config="); ok {
				configPath = v
				continue
			}
			if v, ok := strings.CutPrefix(arg, "--log-level="); ok {
				logLevel = v
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(out)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(out)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(out, cmd)
			return nil
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	defer uierrors.Swap(&uierrors.LogHandler{Logger: log, Verbose: cfg.Log.Level == logging.LevelDebug})()

	return cmd.Run(&Env{Config: cfg, Log: log, Out: out}, cmdArgs)
}

func sortedCommands() []*Command {
	cmds := make([]*Command, 0, len(commands))
	for _, c := range commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, rootCmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, sub := range sortedCommands() {
		fmt.Fprintf(out, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -h, --help           Show help for a command")
	fmt.Fprintln(out, "  -v, --version        Show version information")
	fmt.Fprintln(out, "  --config FILE        Config file (default: ./uibuild.yaml)")
	fmt.Fprintln(out, "  --log-level LEVEL    debug, info, warn or error")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment:")
	fmt.Fprintln(out, "  UIBUILD_CONFIG          Config file (lower priority than --config)")
	fmt.Fprintln(out, "  UIBUILD_RESOURCES_DIR   Resource directory")
	fmt.Fprintln(out, "  UIBUILD_RESOURCES_DB    SQLite resource database")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  uibuild compile main        Compile res/ui/main.yaml to res/ui/main.bin")
	fmt.Fprintln(out, "  uibuild dump main           Print the widget tree built from main")
	fmt.Fprintln(out, "  uibuild check main about    Report skipped nodes and missing images")
}

func printCommandHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "uibuild version %s (built %s)\n", Version, BuildTime)
}
