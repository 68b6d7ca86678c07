package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile_DuplicateTagFails(t *testing.T) {
	_, err := Compile([]Rule{
		{Tag: "MIT", Match: "Permission"},
		{Tag: "MIT", Match: "Something else"},
	})
	require.Error(t, err)
}

func TestCompile_ReservedPrefixFails(t *testing.T) {
	_, err := Compile([]Rule{
		{Tag: "_internal", Match: "foo"},
	})
	require.Error(t, err)
}

func TestCompile_MissingTagFails(t *testing.T) {
	_, err := Compile([]Rule{
		{Tag: "", Match: "foo"},
	})
	require.Error(t, err)
}

func TestCompile_DuplicateGroupLabelFails(t *testing.T) {
	_, err := Compile([]Rule{
		{Tag: "A.B", Match: "foo"},
		{Tag: "A B", Match: "bar"},
	})
	require.Error(t, err)
}

func TestClassify_BSDRefinement(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	text := "Redistribution and use in source and binary forms are permitted. " +
		"Neither the name of the copyright holder nor the names of its contributors " +
		"may be used to endorse or promote products. ARISING IN ANY WAY OUT OF."

	tags := tax.Classify(text)
	require.Equal(t, []string{"BSD-3-Clause"}, tags)
}

func TestClassify_DualMITGPL(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	text := "jQuery v1.x Dual licensed under the MIT and GPL licenses: http://jquery.org/license"
	tags := tax.Classify(text)
	require.Equal(t, []string{"MIT|GPL-2.0_urlref"}, tags)
}

func TestClassify_CancelsSuppression(t *testing.T) {
	tax, err := Compile([]Rule{
		{Tag: "A", Match: "alpha", Cancels: []string{"B"}},
		{Tag: "B", Match: "beta"},
	})
	require.NoError(t, err)

	tags := tax.Classify("alpha and beta both present")
	require.Equal(t, []string{"A"}, tags)
}

func TestClassify_IgnoreHidden(t *testing.T) {
	tax, err := Compile([]Rule{
		{Tag: "Ignore_foo", Match: "alpha"},
	})
	require.NoError(t, err)

	tags := tax.Classify("alpha text")
	require.Empty(t, tags)
}

func TestClassify_NoMatch(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	tags := tax.Classify("just some ordinary comment about nothing in particular")
	require.Empty(t, tags)
}
