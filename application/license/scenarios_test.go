package license

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gerv/slic/domain"
	"github.com/gerv/slic/infrastructure/fsscanner"
)

const mixedTreeDir = "testdata/mixed-tree"

func TestScenario_S1_MPLShortFormPythonStyle(t *testing.T) {
	orch := newTestOrchestrator(t)

	hits, err := orch.LicensesIn(filepath.Join(mixedTreeDir, "s1.py"), true)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "MPL-2.0", hits[0].Tag)
	require.Empty(t, hits[0].Copyrights)
	require.Len(t, hits[0].Text, 3)
}

func TestScenario_S2_MPLWithCopyrightsInBlockComment(t *testing.T) {
	orch := newTestOrchestrator(t)

	hits, err := orch.LicensesIn(filepath.Join(mixedTreeDir, "s2.c"), true)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "MPL-2.0", hits[0].Tag)
	require.ElementsMatch(t, []string{
		"Copyright (C) 2010 Fred Bloggs",
		"Copyright (C) 2009-2012 George Jones",
	}, hits[0].Copyrights)
}

func TestScenario_S3_BSDRefinesToThreeClause(t *testing.T) {
	orch := newTestOrchestrator(t)

	hits, err := orch.LicensesIn(filepath.Join(mixedTreeDir, "s3.c"), false)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "BSD-3-Clause", hits[0].Tag)
}

func TestScenario_S4_DualMITGPLCombinedTag(t *testing.T) {
	orch := newTestOrchestrator(t)

	hits, err := orch.LicensesIn(filepath.Join(mixedTreeDir, "s4.js"), false)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "MIT|GPL-2.0_urlref", hits[0].Tag)
}

func TestScenario_S5_SuspiciousAndroid(t *testing.T) {
	orch := newTestOrchestrator(t)

	hits, err := orch.LicensesIn(filepath.Join(mixedTreeDir, "s5.go"), false)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, domain.SuspiciousAndroid, hits[0].Tag)
}

func TestScenario_S6_UnknownExtension(t *testing.T) {
	log := &spyLogger{}
	orch := newTestOrchestratorWithLogger(t, log)

	path := filepath.Join(mixedTreeDir, "s6.xyz")
	hits, err := orch.LicensesIn(path, false)
	require.NoError(t, err)
	require.Empty(t, hits)
	require.Len(t, log.Infos, 1)
	require.Contains(t, log.Infos[0], path)
}

func TestScenario_S7_FullTreeScanDedupesIdenticalFiles(t *testing.T) {
	orch := newTestOrchestrator(t)
	agg := NewAggregator()

	w := fsscanner.New()
	paths, err := w.Walk(context.Background(), mixedTreeDir, fsscanner.WalkOptions{UseGitignore: false})
	require.NoError(t, err)

	run, err := Scan(context.Background(), mixedTreeDir, paths, orch, agg, false)
	require.NoError(t, err)

	var s1Entry *domain.AggregatedEntry
	for i := range run.Entries {
		if run.Entries[i].Tag == "MPL-2.0" {
			s1Entry = &run.Entries[i]
		}
	}
	require.NotNil(t, s1Entry)
	require.ElementsMatch(t, []string{
		filepath.Join(mixedTreeDir, "s1.py"),
		filepath.Join(mixedTreeDir, "s1_copy.py"),
		filepath.Join(mixedTreeDir, "s2.c"),
	}, s1Entry.Files)
}

func TestScenario_S8_GitignoredFileExcludedFromWalkButDirectlyClassifiable(t *testing.T) {
	orch := newTestOrchestrator(t)

	direct, err := orch.LicensesIn(filepath.Join(mixedTreeDir, "s8.c"), false)
	require.NoError(t, err)
	require.Len(t, direct, 1)
	require.Contains(t, direct[0].Tag, "GPL")

	w := fsscanner.New()
	paths, err := w.Walk(context.Background(), mixedTreeDir, fsscanner.WalkOptions{UseGitignore: true})
	require.NoError(t, err)

	var seen []string
	for p := range paths {
		seen = append(seen, p)
	}
	require.NotContains(t, seen, filepath.Join(mixedTreeDir, "s8.c"))
}
