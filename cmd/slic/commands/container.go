// Package commands wires the CLI's dependency container and its thin
// per-subcommand dispatch, in the same two-layer shape as the teacher's
// cmd/ark/commands package: a Container built once in main, and a CLI
// struct whose methods each delegate to a *Command.Execute.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/gerv/slic/application/license"
	"github.com/gerv/slic/domain"
	"github.com/gerv/slic/infrastructure/classifier"
	"github.com/gerv/slic/infrastructure/commentsyntax"
	"github.com/gerv/slic/infrastructure/fsscanner"
)

// Container holds the services every subcommand needs. Built once by
// NewContainer and shared, read-only, across the scan's worker pool.
type Container struct {
	Log          domain.Logger
	Taxonomy     *classifier.Taxonomy
	SyntaxTable  *commentsyntax.SyntaxTable
	Walker       *fsscanner.Walker
	Orchestrator *license.Orchestrator
}

// Options configures container construction.
type Options struct {
	Verbose      bool
	TaxonomyPath string // optional, overrides the embedded default
	SyntaxPath   string // optional, overrides the embedded default
}

// NewContainer builds a Container: the compiled taxonomy and syntax
// table are loaded once (from the embedded defaults, or from opts'
// override paths) and handed to an Orchestrator that every scan worker
// shares read-only.
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	c := &Container{Log: NewCLILogger(opts.Verbose)}

	tax, err := loadTaxonomy(opts.TaxonomyPath)
	if err != nil {
		return nil, err
	}
	c.Taxonomy = tax

	syntax, err := loadSyntax(opts.SyntaxPath)
	if err != nil {
		return nil, err
	}
	c.SyntaxTable = syntax

	c.Walker = fsscanner.New()
	c.Orchestrator = license.NewOrchestrator(c.SyntaxTable, c.Taxonomy, c.Log)

	return c, nil
}

func loadTaxonomy(path string) (*classifier.Taxonomy, error) {
	if path == "" {
		return classifier.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	return classifier.Load(data)
}

func loadSyntax(path string) (*commentsyntax.SyntaxTable, error) {
	if path == "" {
		return commentsyntax.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading syntax table %s: %w", path, err)
	}
	return commentsyntax.Load(data)
}

// CLILogger is a minimal stderr logger for the slic CLI, in the same
// shape as the teacher's CLILogger.
type CLILogger struct {
	verbose bool
}

// NewCLILogger returns a CLILogger. Debug/Info lines are suppressed
// unless verbose is set; Warning/Error/Fatal always print.
func NewCLILogger(verbose bool) *CLILogger {
	return &CLILogger{verbose: verbose}
}

func (l *CLILogger) Info(message string) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, "[INFO] %s\n", message)
	}
}

func (l *CLILogger) Warning(message string) {
	fmt.Fprintf(os.Stderr, "[WARN] %s\n", message)
}

func (l *CLILogger) Error(message string) {
	fmt.Fprintf(os.Stderr, "[ERROR] %s\n", message)
}

func (l *CLILogger) Debug(message string) {
	if l.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", message)
	}
}

func (l *CLILogger) Fatal(message string) {
	fmt.Fprintf(os.Stderr, "[FATAL] %s\n", message)
	os.Exit(1)
}
