package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/gerv/slic/application/license"
	"github.com/gerv/slic/application/report"
	"github.com/gerv/slic/domain"
	"github.com/gerv/slic/infrastructure/fsscanner"
	"github.com/gerv/slic/infrastructure/watch"
)

// ScanCommand walks a directory tree and writes a ScanRun report for it.
type ScanCommand struct {
	container *Container
}

// NewScanCommand returns a ScanCommand bound to container.
func NewScanCommand(container *Container) *ScanCommand {
	return &ScanCommand{container: container}
}

// Execute parses args ("scan [--details] [--no-gitignore] [--out path]
// [--watch] [--enrich] <root>"; flags after <root> are not parsed) and
// writes the resulting ScanRun JSON to
// stdout or --out. With --watch, it first runs the full scan, then keeps
// running and reclassifies individual files as they change.
func (c *ScanCommand) Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	details := fs.Bool("details", false, "extract copyright and license text per hit, not just tags")
	noGitignore := fs.Bool("no-gitignore", false, "do not exclude .gitignore-matched files")
	out := fs.String("out", "", "write the report to this path instead of stdout")
	watchMode := fs.Bool("watch", false, "keep running and reclassify files as they change")
	enrich := fs.Bool("enrich", false, "best-effort copyright year merging and license-fileref resolution")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	paths, err := c.container.Walker.Walk(ctx, root, fsscanner.WalkOptions{UseGitignore: !*noGitignore})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}

	agg := license.NewAggregator()
	run, err := license.Scan(ctx, root, paths, c.container.Orchestrator, agg, *details)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}
	if *enrich {
		report.Enrich(run)
	}

	reportJSON, err := run.MarshalReport()
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := writeReport(*out, reportJSON); err != nil {
		return err
	}

	if !*watchMode {
		return nil
	}

	w := watch.New(c.container.Orchestrator, agg, c.container.Log)
	return w.Start(ctx, root, func(path string, hits []domain.LicenseHit) {
		for _, hit := range hits {
			fmt.Printf("%s: %s\n", path, hit.Tag)
		}
	})
}
