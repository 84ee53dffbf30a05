package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/logging"
	"github.com/hpungsan/folio/internal/mcp"
	"github.com/hpungsan/folio/internal/metrics"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "list": true, "categories": true, "add": true,
	"help": true,
}

// globalValueFlags are app-level flags that consume the following argument.
var globalValueFlags = map[string]bool{"--seed": true, "-seed": true}

// commandArg returns the first argument after any global flags.
func commandArg(args []string) string {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if globalValueFlags[arg] {
			i++
			continue
		}
		if len(arg) > 0 && arg[0] == '-' && !isHelpOrVersionFlag(arg) {
			continue
		}
		return arg
	}
	return ""
}

// seedArg returns the value of a global --seed flag, if present.
func seedArg(args []string) string {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if globalValueFlags[arg] && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--seed="); ok {
			return v
		}
	}
	return ""
}

func isHelpOrVersionFlag(arg string) bool {
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
}

// unknownCommand names the argument to report when no known command matched.
func unknownCommand(args []string) string {
	if arg := commandArg(args); arg != "" {
		return arg
	}
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	arg := commandArg(os.Args)
	if arg == "" {
		return false // No command → MCP server
	}
	// Known subcommand, --help or --version → CLI
	return cliCommands[arg] || isHelpOrVersionFlag(arg)
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	arg := commandArg(os.Args)
	return isHelpOrVersionFlag(arg) || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    __       _ _
   / _| ___ | (_) ___
  | |_ / _ \| | |/ _ \
  |  _| (_) | | | (_) |
  |_|  \___/|_|_|\___/

  Portfolio showcase catalog

  Usage: folio <command> [options]
         folio --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before loading config
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".folio")

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	env := &appEnv{cfg: cfg, logger: logger}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(env)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", unknownCommand(os.Args))
		fmt.Fprintf(os.Stderr, "Run 'folio --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	seedPath := seedArg(os.Args)
	if seedPath == "" {
		seedPath = cfg.SeedPath
	}
	store, err := openStore(seedPath)
	if err != nil {
		logger.Error("failed to load seed", zap.String("path", seedPath), zap.Error(err))
		os.Exit(1)
	}
	if err := mcp.Run(mcp.Deps{
		Store:   store,
		Config:  cfg,
		Metrics: metrics.NewCollector(),
		Logger:  logger,
		Version: Version,
	}); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
