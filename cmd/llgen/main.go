// Command llgen reads a .llg grammar description and either checks it
// for LL(1) conflicts or emits a self-contained recursive-descent Go
// parser for it (spec.md §6). CLI wiring follows the teacher pack's
// dhamidi-sai/cmd/sai/main.go: a single cobra root command with one
// subcommand per verb, flags bound with Flags().*VarP, RunE returning a
// wrapped error for cobra to report. Structured logging uses
// tliron/commonlog, the logging package the pack's dhamidi-sai wires
// for its own LSP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/shadowCow/llgen/codegen"
	"github.com/shadowCow/llgen/firstfollow"
	"github.com/shadowCow/llgen/internal/config"
	"github.com/shadowCow/llgen/llcheck"
	"github.com/shadowCow/llgen/llerr"
	"github.com/shadowCow/llgen/notation"
)

var log = commonlog.GetLogger("llgen")

func main() {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:           "llgen",
		Short:         "Generate or check LL(1) recursive-descent parsers from a .llg grammar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "llgen.toml", "path to the project config file")

	var pkgName, preamblePath, outPath string
	generateCmd := &cobra.Command{
		Use:   "generate <file.llg>",
		Short: "Emit a recursive-descent Go parser for a grammar description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				commonlog.SetMaxLevel(commonlog.Debug)
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if pkgName != "" {
				cfg.Package = pkgName
			}
			if preamblePath != "" {
				cfg.PreamblePath = preamblePath
			}
			if outPath != "" {
				cfg.OutputPath = outPath
			}
			return runGenerate(args[0], cfg)
		},
	}
	generateCmd.Flags().StringVarP(&pkgName, "package", "p", "", "generated package name (default from config, else \"generated\")")
	generateCmd.Flags().StringVar(&preamblePath, "preamble", "", "path to a Go source fragment available to every action")
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path (default from config, else \"parser_gen.go\")")

	checkCmd := &cobra.Command{
		Use:   "check <file.llg>",
		Short: "Report LL(1) conflicts in a grammar description without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				commonlog.SetMaxLevel(commonlog.Debug)
			}
			return runCheck(args[0], verbose)
		},
	}

	root.AddCommand(generateCmd)
	root.AddCommand(checkCmd)

	if err := root.Execute(); err != nil {
		log.Errorf("%s", err)
		os.Exit(llerr.ExitCode(unwrapCoreError(err)))
	}
}

func runGenerate(path string, cfg config.Config) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	desc, err := notation.Parse(string(source))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	preamble := desc.Preamble
	if cfg.PreamblePath != "" {
		extra, err := os.ReadFile(cfg.PreamblePath)
		if err != nil {
			return fmt.Errorf("read preamble %s: %w", cfg.PreamblePath, err)
		}
		preamble += "\n" + string(extra)
	}

	log.Infof("generating package %s from %s", cfg.Package, path)
	src, warnings, err := codegen.Generate(desc.Grammar, codegen.Options{
		Package:  cfg.Package,
		Preamble: preamble,
	})
	for _, w := range warnings {
		log.Warning(w)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.OutputPath, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}
	log.Infof("wrote %s", cfg.OutputPath)
	return nil
}

// runCheck runs analysis only: FIRST/FOLLOW computation and the LL(1)
// conflict scan, without emitting any code. With verbose set it also
// prints the FIRST/FOLLOW/parse-table diagnostics (llcheck.PrintFirstSets/
// PrintFollowSets/PrintParseTable), grounded on the teacher's
// tooling/ll1/debug.go printers.
func runCheck(path string, verbose bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	desc, err := notation.Parse(string(source))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if verr := desc.Grammar.Validate(); verr != nil {
		if llerr.Fatal(verr) {
			return verr
		}
		log.Warning(verr.Error())
	}

	first := firstfollow.Compute(desc.Grammar)
	follow := firstfollow.Compute(desc.Grammar, first)

	if verbose {
		llcheck.PrintFirstSets(desc.Grammar, first, os.Stdout)
		llcheck.PrintFollowSets(desc.Grammar, follow, os.Stdout)
		llcheck.PrintParseTable(desc.Grammar, first, follow, os.Stdout)
	}

	result := llcheck.Check(desc.Grammar, first, follow)
	for _, w := range result.Warnings {
		log.Warning(w)
	}
	if !result.OK() {
		return result.Conflict
	}

	log.Infof("%s is LL(1)", path)
	return nil
}

// unwrapCoreError finds the llerr taxonomy member inside a wrapped
// error chain, if any, so the process exit code matches spec.md §6 even
// when runGenerate/runCheck added a contextual fmt.Errorf wrapper.
func unwrapCoreError(err error) error {
	type unwrapper interface{ Unwrap() error }
	for e := err; e != nil; {
		switch e.(type) {
		case *llerr.LL1Conflict, *llerr.FragmentSyntax, *llerr.UnknownSymbol, *llerr.DuplicateDefinition, llerr.NoEntryPoint:
			return e
		}
		u, ok := e.(unwrapper)
		if !ok {
			return err
		}
		e = u.Unwrap()
	}
	return err
}
