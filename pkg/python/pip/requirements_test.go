package pip_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-90/pydist/pkg/python/pip"
)

func TestParseRequirements(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input    string
		Expected []string
	}
	testcases := map[string]testcase{
		"basic": {
			Input: strings.Join([]string{
				"langchain",
				"# comment",
				"-e git+https://github.com/example/repo.git#egg=repo",
				"faiss-cpu",
			}, "\n"),
			Expected: []string{"langchain", "faiss-cpu"},
		},
		"empty": {
			Input:    "",
			Expected: nil,
		},
		"only-excluded": {
			Input: strings.Join([]string{
				"# only",
				"",
				"   ",
				"-e .",
				"#-another comment",
			}, "\n"),
			Expected: nil,
		},
		"whitespace-stripped": {
			Input:    "  pypdf==4.0.1  \n\tstreamlit\t\n",
			Expected: []string{"pypdf==4.0.1", "streamlit"},
		},
		"comment-with-trailing-content": {
			Input:    "#pandas>=2.0 but disabled\nnumpy",
			Expected: []string{"numpy"},
		},
		"editable-with-trailing-content": {
			Input:    "-e ./local/pkg\nuvicorn",
			Expected: []string{"uvicorn"},
		},
		"order-preserved-no-dedup": {
			Input:    "b\na\nb\n",
			Expected: []string{"b", "a", "b"},
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			actual, err := pip.ParseRequirements(strings.NewReader(tcData.Input))
			require.NoError(t, err)
			assert.Equal(t, tcData.Expected, actual)
		})
	}
}

func TestParseRequirementsRoundTrip(t *testing.T) {
	t.Parallel()
	// A manifest of nothing but valid specifiers passes through unchanged,
	// and re-parsing the output is the identity.
	input := []string{"langchain>=0.3", "pypdf", "faiss-cpu==1.8.0"}
	first, err := pip.ParseRequirements(strings.NewReader(strings.Join(input, "\n")))
	require.NoError(t, err)
	assert.Equal(t, input, first)
	second, err := pip.ParseRequirements(strings.NewReader(strings.Join(first, "\n")))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseRequirementsInvalidUTF8(t *testing.T) {
	t.Parallel()
	_, err := pip.ParseRequirements(strings.NewReader("pypdf\n\xff\xfe\n"))
	assert.Error(t, err)
}

func TestReadRequirements(t *testing.T) {
	t.Parallel()
	tmpdir := t.TempDir()
	filename := filepath.Join(tmpdir, "requirements.txt")
	require.NoError(t, os.WriteFile(filename,
		[]byte("# deps\nlangchain\n\nfaiss-cpu\n"), 0o644))

	specifiers, err := pip.ReadRequirements(filename)
	require.NoError(t, err)
	assert.Equal(t, []string{"langchain", "faiss-cpu"}, specifiers)

	_, err = pip.ReadRequirements(filepath.Join(tmpdir, "no-such-file.txt"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestParseRequirement(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Input     string
		Name      string
		Extras    []string
		Specifier string
		URL       string
		Marker    string
		Err       bool
	}
	testcases := map[string]testcase{
		"bare":      {Input: "pypdf", Name: "pypdf"},
		"pinned":    {Input: "faiss-cpu==1.8.0", Name: "faiss-cpu", Specifier: "==1.8.0"},
		"range":     {Input: "langchain >=0.3, <0.4", Name: "langchain", Specifier: ">=0.3,<0.4"},
		"extras":    {Input: "uvicorn[standard]", Name: "uvicorn", Extras: []string{"standard"}},
		"marker":    {Input: `tomli>=1.1.0; python_version < "3.11"`, Name: "tomli", Specifier: ">=1.1.0", Marker: `python_version < "3.11"`},
		"direct":    {Input: "pip @ file:///localbuilds/pip-1.3.1.zip", Name: "pip", URL: "file:///localbuilds/pip-1.3.1.zip"},
		"fragment": {
			Input: "repo @ git+https://example.com/repo.git#egg=repo",
			Name:  "repo",
			URL:   "git+https://example.com/repo.git#egg=repo",
		},
		"trailing-comment": {Input: "pypdf  # pin this later", Name: "pypdf"},
		"parens":    {Input: "requests (>=2.31)", Name: "requests", Specifier: ">=2.31"},
		"bad-name":  {Input: "-not-a-name", Err: true},
		"bad-arrow": {Input: "pypdf @", Err: true},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			req, err := pip.ParseRequirement(tcData.Input)
			if tcData.Err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcData.Name, req.Name)
			assert.Equal(t, tcData.Extras, req.Extras)
			assert.Equal(t, tcData.Specifier, req.Specifier.String())
			assert.Equal(t, tcData.URL, req.URL)
			assert.Equal(t, tcData.Marker, req.Marker)
		})
	}
}
