package pep440_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-90/pydist/pkg/python/pep440"
)

func TestParseSpecifier(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input       string
		Expected    string // round-tripped canonical spelling
		ExpectedErr string
	}{
		"empty":      {Input: "", Expected: ""},
		"whitespace": {Input: "  ", Expected: ""},
		"single":     {Input: ">= 3.13", Expected: ">=3.13"},
		"multi":      {Input: "~= 0.9, != 0.9.3", Expected: "~=0.9,!=0.9.3"},
		"prefix":     {Input: "== 1.1.*", Expected: "==1.1.*"},
		"normalize":  {Input: "==1.0alpha1", Expected: "==1.0a1"},
		"trailing-comma": {
			Input:    ">=1.0,",
			Expected: ">=1.0",
		},
		"err-no-op": {
			Input:       "1.0",
			ExpectedErr: `pep440.ParseSpecifier: invalid specifier clause: "1.0"`,
		},
		"err-prefix-op": {
			Input:       ">=1.1.*",
			ExpectedErr: `pep440.ParseSpecifier: prefix-match "1.1.*" may only be used with == or !=`,
		},
		"err-compat-short": {
			Input:       "~=1",
			ExpectedErr: `pep440.ParseSpecifier: compatible-release clause requires at least two release segments: "1"`,
		},
		"err-bad-version": {
			Input:       "==1.0.x",
			ExpectedErr: `pep440.ParseSpecifier: pep440.ParseVersion: invalid version: "1.0.x"`,
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			spec, err := pep440.ParseSpecifier(tc.Input)
			if tc.ExpectedErr != "" {
				assert.EqualError(t, err, tc.ExpectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, spec.String())
		})
	}
}

func TestSpecifierMatch(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		Spec     string
		Version  string
		Expected bool
	}{
		// compatible release
		{"~=2.2", "2.2.1", true},
		{"~=2.2", "2.3", true},
		{"~=2.2", "2.1", false},
		{"~=2.2", "3.0", false},
		{"~=1.4.5", "1.4.6", true},
		{"~=1.4.5", "1.5", false},

		// version matching
		{"==1.1", "1.1", true},
		{"==1.1", "1.1.0", true},
		{"==1.1", "1.1.post1", false},
		{"==1.1.post1", "1.1.post1", true},
		{"==1.1.*", "1.1.post1", true},
		{"==1.1.*", "1.1a1", true},
		{"==1.1.*", "1.2", false},

		// local version labels
		{"==1.0", "1.0+ubuntu.1", true},
		{"==1.0+ubuntu.1", "1.0+ubuntu.1", true},
		{"==1.0+ubuntu.1", "1.0", false},

		// version exclusion
		{"!=1.1", "1.1", false},
		{"!=1.1", "1.1.post1", true},
		{"!=1.1.*", "1.1.post1", false},

		// inclusive ordered comparison
		{">=3.13", "3.13", true},
		{">=3.13", "3.14", true},
		{">=3.13", "3.12", false},
		{">=1.0", "1.0rc1", false},
		{"<=1.0", "0.9", true},

		// exclusive ordered comparison
		{"<1.0", "0.9", true},
		{"<1.0", "1.0rc1", false},
		{"<1.0", "0.9rc1", true},
		{">1.7", "1.8", true},
		{">1.7", "1.7.post2", false},
		{">1.7", "1.7.1", true},

		// conjunction
		{"~=0.9,!=0.9.3", "0.9.3", false},
		{"~=0.9,!=0.9.3", "0.9.4", true},

		// empty specifier matches everything
		{"", "0.0.1.dev1", true},
	}
	for _, tc := range testcases {
		tc := tc
		t.Run(tc.Spec+"/"+tc.Version, func(t *testing.T) {
			t.Parallel()
			spec, err := pep440.ParseSpecifier(tc.Spec)
			require.NoError(t, err)
			ver, err := pep440.ParseVersion(tc.Version)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, spec.Match(*ver))
		})
	}
}
