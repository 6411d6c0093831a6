package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"wordlang/interpreter-go/pkg/driver"
)

const cliVersion = "0.1.0-dev"

var errUsage = errors.New("a program file or config target is required")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cli := &app{stdout: stdout, stderr: stderr}
	root := cli.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	errorColor(stderr).Fprintf(stderr, "error: %v\n", err)
	if errors.Is(err, errUsage) {
		fmt.Fprint(stderr, root.UsageString())
	}
	return 1
}

// errorColor paints red only when w is itself a terminal. color.NoColor
// reflects stdout, which may be piped independently of stderr.
func errorColor(w io.Writer) *color.Color {
	c := color.New(color.FgRed)
	f, ok := w.(*os.File)
	_, noColor := os.LookupEnv("NO_COLOR")
	if ok && !noColor && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// app holds flag values and per-invocation state shared by the commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	dividedBy  bool
	noAST      bool
	format     string

	log *logrus.Entry
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordlang [file|target]",
		Short:         "Run wordLang programs",
		Long:          "wordlang tokenizes, parses and evaluates programs written in wordLang, a small English-worded language.",
		Version:       cliVersion,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setupLogger()
		},
		RunE: a.runProgram,
	}
	root.SetVersionTemplate("wordlang {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to wordlang.yml (default: nearest one above the program)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.dividedBy, "divided-by", false, `recognise "divided by" as the division operator`)
	flags.BoolVar(&a.noAST, "no-ast", false, "do not print the AST before running")

	root.AddCommand(a.runCmd(), a.tokensCmd(), a.astCmd(), a.fetchCmd())
	return root
}

func (a *app) setupLogger() {
	logger := logrus.New()
	logger.SetOutput(a.stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if a.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	a.log = logger.WithField("run_id", uuid.New().String())
}

// loadConfig returns the explicit --config file, or the nearest wordlang.yml
// above start, or defaults when there is none. A broken config found by
// search is ignored with a warning when a program file was named directly.
func (a *app) loadConfig(start string, fileGiven bool) (*driver.Config, error) {
	var cfg *driver.Config
	if a.configPath != "" {
		loaded, err := driver.LoadConfig(a.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		path, err := driver.FindConfig(start)
		switch {
		case errors.Is(err, driver.ErrConfigNotFound):
			cfg = driver.DefaultConfig()
		case err != nil:
			return nil, err
		default:
			loaded, err := driver.LoadConfig(path)
			if err != nil {
				if !fileGiven {
					return nil, err
				}
				a.log.WithError(err).Warn("ignoring unusable config; running the file directly")
				loaded = driver.DefaultConfig()
			}
			cfg = loaded
		}
	}

	if !a.verbose {
		a.log.Logger.SetLevel(cfg.LogLevel)
	}
	if cfg.Path != "" {
		a.log.WithField("config", cfg.Path).Debug("loaded config")
	}
	return cfg, nil
}

func (a *app) runOptions(cfg *driver.Config) driver.RunOptions {
	opts := driver.RunOptionsFromConfig(cfg)
	if a.dividedBy {
		opts.Lexer.DividedBy = true
	}
	if a.noAST {
		opts.ShowAST = false
	}
	opts.Stdout = a.stdout
	opts.Log = a.log
	return opts
}

func (a *app) loader() (*driver.Loader, error) {
	home, err := driver.ResolveHome()
	if err != nil {
		return nil, err
	}
	return driver.NewLoader(home, a.log), nil
}

// resolveSource turns the optional command argument into a program: a named
// target of cfg when arg matches one and does not look like a path,
// otherwise a file.
func (a *app) resolveSource(cmd *cobra.Command, cfg *driver.Config, arg string) (*driver.Source, error) {
	loader, err := a.loader()
	if err != nil {
		return nil, err
	}
	if arg == "" {
		if cfg.Path == "" {
			return nil, errUsage
		}
		return loader.LoadTarget(cmd.Context(), cfg, "")
	}
	if !looksLikePath(arg) {
		if _, ok := cfg.FindTarget(arg); ok {
			return loader.LoadTarget(cmd.Context(), cfg, arg)
		}
	}
	return loader.Load(arg)
}

func looksLikePath(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.ContainsAny(arg, `/\`) || strings.HasPrefix(arg, ".") {
		return true
	}
	return filepath.Ext(arg) != ""
}

// configStart is the directory the config search starts from.
func configStart(arg string) string {
	if arg != "" && looksLikePath(arg) {
		return filepath.Dir(arg)
	}
	return "."
}
