package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pycheck/internal/diag"
	"pycheck/internal/diagfmt"
	"pycheck/internal/driver"
	"pycheck/internal/project"
	"pycheck/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.py|directory>",
	Short: "Check Python sources for whitespace problems",
	Long:  `Check runs the whitespace rules over a file or a directory tree and reports diagnostics`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 uses the config value)")
	checkCmd.Flags().String("ui", "auto", "progress UI for directory checks (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the on-disk check cache")
	checkCmd.Flags().Bool("fixes", false, "list available fixes under each diagnostic")
	checkCmd.Flags().Bool("notes", false, "show attached notes under each diagnostic")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	cfg, err := loadCheckConfig(cmd, target, info.IsDir())
	if err != nil {
		return err
	}

	cache, err := openCache(cmd, cfg)
	if err != nil {
		return err
	}

	var (
		fs  *source.FileSet
		bag *diag.Bag
	)
	if info.IsDir() {
		fs, bag, err = checkDirectory(cmd, target, cfg, cache, format)
	} else {
		var res *driver.CheckResult
		res, err = driver.CheckPath(target, cfg, cache)
		if res != nil {
			fs, bag = res.FileSet, res.Bag
		}
	}
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	if err := printDiagnostics(cmd, fs, bag, format); err != nil {
		return err
	}

	if bag.HasErrors() {
		// Диагностики уже напечатаны, usage не нужен
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("found problems")
	}
	return nil
}

func loadCheckConfig(cmd *cobra.Command, target string, isDir bool) (*project.Config, error) {
	startDir := target
	if !isDir {
		startDir = filepath.Dir(target)
	}
	cfg, err := project.LoadFromDir(startDir)
	if err != nil {
		return nil, err
	}

	if jobs, err := cmd.Flags().GetInt("jobs"); err == nil && jobs > 0 {
		cfg.Check.Jobs = jobs
	}
	if maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && maxDiag > 0 {
		cfg.Check.MaxDiagnostics = maxDiag
	}
	return cfg, nil
}

func openCache(cmd *cobra.Command, cfg *project.Config) (*driver.DiskCache, error) {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	if noCache || !cfg.Cache.Enabled {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("pycheck")
	if err != nil {
		// Кэш — ускорение, не обязательство
		fmt.Fprintf(os.Stderr, "warning: check cache unavailable: %v\n", err)
		return nil, nil
	}
	return cache, nil
}

func checkDirectory(cmd *cobra.Command, dir string, cfg *project.Config, cache *driver.DiskCache, format string) (*source.FileSet, *diag.Bag, error) {
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, nil, err
	}
	mode, err := parseUIMode(uiFlag)
	if err != nil {
		return nil, nil, err
	}
	// JSON-вывод не совместим с интерактивным прогрессом
	withUI := format == "pretty" && mode.useTUI()

	var (
		fs      *source.FileSet
		results []driver.CheckDirResult
	)
	if withUI {
		fs, results, err = runCheckDirWithUI(cmd.Context(), "checking "+dir, dir, cfg, cache)
	} else {
		fs, results, err = driver.CheckDir(cmd.Context(), dir, cfg, cache, nil)
	}
	if err != nil {
		return nil, nil, err
	}
	return fs, driver.MergeBags(results, cfg.Check.MaxDiagnostics), nil
}

func printDiagnostics(cmd *cobra.Command, fs *source.FileSet, bag *diag.Bag, format string) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showFixes, _ := cmd.Flags().GetBool("fixes")
	showNotes, _ := cmd.Flags().GetBool("notes")

	bag.Sort()

	if format == "json" {
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
			PathMode:         diagfmt.PathModeAuto,
		})
	}

	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stdout),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: showNotes,
		ShowFixes: showFixes,
	}
	diagfmt.Pretty(os.Stdout, bag, fs, opts)
	if !quiet {
		diagfmt.PrettySummary(os.Stdout, bag, opts)
	}
	return nil
}
