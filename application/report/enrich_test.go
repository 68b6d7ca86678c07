package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gerv/slic/application/license"
	"github.com/gerv/slic/domain"
)

func TestMergeCopyrightYears_CollapsesRanges(t *testing.T) {
	out := mergeCopyrightYears([]string{
		"Copyright 2001 Jane Doe",
		"Copyright 2002 Jane Doe",
		"Copyright 2003 Jane Doe",
		"Copyright 2010 Jane Doe",
	})

	require.Len(t, out, 1)
	require.Contains(t, out[0], "2001-2003")
	require.Contains(t, out[0], "2010")
	require.Contains(t, out[0], "Jane Doe")
}

func TestMergeCopyrightYears_CanonicalizesHolder(t *testing.T) {
	out := mergeCopyrightYears([]string{
		"Copyright 2018 Android Open Source Project",
	})

	require.Len(t, out, 1)
	require.Contains(t, out[0], "The Android Open Source Project")
}

func TestMergeCopyrightYears_DistinctHoldersStaySeparate(t *testing.T) {
	out := mergeCopyrightYears([]string{
		"Copyright 2001 Jane Doe",
		"Copyright 2001 John Smith",
	})

	require.Len(t, out, 2)
}

func TestResolveLicenseFile_FindsInParentDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "LICENSE"), []byte("MIT"), 0o644))
	sub := filepath.Join(root, "pkg", "inner")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	filePath := filepath.Join(sub, "main.go")

	got := resolveLicenseFile([]string{filePath})
	require.Equal(t, filepath.Join(root, "LICENSE"), got)
}

func TestEnrich_PopulatesLicenseFileForFilerefTags(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "LICENSE"), []byte("Apache-2.0"), 0o644))
	filePath := filepath.Join(root, "main.go")

	run := &license.ScanRun{
		Entries: []domain.AggregatedEntry{
			{Tag: "Apache-2.0_fileref", Files: []string{filePath}},
		},
	}

	Enrich(run)

	require.Equal(t, filepath.Join(root, "LICENSE"), run.Entries[0].LicenseFile)
}
