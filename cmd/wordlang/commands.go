package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"wordlang/interpreter-go/pkg/ast"
	"wordlang/interpreter-go/pkg/driver"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file|target]",
		Short: "Print the AST of a program and evaluate it",
		Long: `Run prints the program's abstract syntax tree followed by its output.
With no argument the first target of the nearest wordlang.yml is run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runProgram,
	}
}

func (a *app) runProgram(cmd *cobra.Command, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	cfg, err := a.loadConfig(configStart(arg), arg != "" && looksLikePath(arg))
	if err != nil {
		return err
	}
	src, err := a.resolveSource(cmd, cfg, arg)
	if err != nil {
		return err
	}
	a.log.WithField("path", src.Path).Debug("running")
	return driver.Run(src, a.runOptions(cfg))
}

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a program, one token per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(configStart(args[0]), true)
			if err != nil {
				return err
			}
			src, err := a.resolveSource(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			return driver.WriteTokens(a.stdout, src, a.runOptions(cfg))
		},
	}
}

func (a *app) astCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the abstract syntax tree of a program without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(configStart(args[0]), true)
			if err != nil {
				return err
			}
			opts := a.runOptions(cfg)
			if cmd.Flags().Changed("format") {
				format := ast.Format(a.format)
				if !format.IsValid() {
					return errors.Errorf("unsupported format %q (want tree, json, yaml or pretty)", a.format)
				}
				opts.Format = format
			}
			src, err := a.resolveSource(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			return driver.WriteAST(a.stdout, src, opts)
		},
	}
	cmd.Flags().StringVarP(&a.format, "format", "f", string(ast.FormatTree), "output format: tree, json, yaml or pretty")
	return cmd
}

func (a *app) fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [target]",
		Short: "Clone or refresh git-sourced targets into the cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(".", false)
			if err != nil {
				return err
			}
			if cfg.Path == "" {
				return errors.Wrap(driver.ErrConfigNotFound, "fetch")
			}
			var targets []*driver.TargetSpec
			if len(args) == 1 {
				target, ok := cfg.FindTarget(args[0])
				if !ok {
					return errors.Errorf("config %s: unknown target %q", cfg.Path, args[0])
				}
				if !target.IsGit() {
					return errors.Errorf("target %q is not a git target", target.Name)
				}
				targets = append(targets, target)
			} else {
				for _, name := range cfg.TargetOrder {
					if target := cfg.Targets[name]; target.IsGit() {
						targets = append(targets, target)
					}
				}
			}
			if len(targets) == 0 {
				fmt.Fprintln(a.stdout, "no git targets to fetch")
				return nil
			}

			loader, err := a.loader()
			if err != nil {
				return err
			}
			for _, target := range targets {
				dir, commit, err := loader.Fetch(cmd.Context(), target)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%s %s %s\n", color.GreenString("fetched"), target.Name, commit)
				a.log.WithField("dir", dir).Debug("checkout ready")
			}
			return nil
		},
	}
}
