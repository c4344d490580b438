package pep503_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-90/pydist/pkg/python/pep440"
	"github.com/sumit-90/pydist/pkg/python/pep503"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	testcases := map[string]string{
		"langchain":         "langchain",
		"Faiss_CPU":         "faiss-cpu",
		"zope.interface":    "zope-interface",
		"friendly__bard":    "friendly-bard",
		"FRIENDLY-._.-BARD": "friendly-bard",
	}
	for input, expected := range testcases {
		assert.Equal(t, expected, pep503.Normalize(input), "input=%q", input)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
  <body>
    <a href="../../packages/pypdf-4.0.1.tar.gz#sha256=abc">pypdf-4.0.1.tar.gz</a>
    <a href="../../packages/pypdf-4.0.1-py3-none-any.whl"
       data-requires-python="&gt;=3.6">pypdf-4.0.1-py3-none-any.whl</a>
    <a href="../../packages/pypdf-5.0.0-py3-none-any.whl"
       data-requires-python="&gt;=3.13">pypdf-5.0.0-py3-none-any.whl</a>
  </body>
</html>`

func TestParseIndex(t *testing.T) {
	t.Parallel()
	links, err := pep503.ParseIndex(nil, []byte(indexHTML))
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "pypdf-4.0.1.tar.gz", links[0].Text)
	assert.Equal(t, "../../packages/pypdf-4.0.1.tar.gz#sha256=abc", links[0].HRef)
	assert.Equal(t, ">=3.6", links[1].DataAttrs["data-requires-python"])
}

func TestListProjectFiles(t *testing.T) {
	t.Parallel()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(indexHTML))
	}))
	defer srv.Close()

	python := pep440.MustParseVersion("3.10.2")
	client := pep503.Client{
		BaseURL: srv.URL + "/simple/",
		Python:  &python,
	}
	links, err := client.ListProjectFiles(context.Background(), "PyPDF")
	require.NoError(t, err)
	assert.Equal(t, "/simple/pypdf/", gotPath)

	// The 5.0.0 wheel requires >=3.13 and is filtered out for a 3.10
	// interpreter.
	names := make([]string, 0, len(links))
	for _, link := range links {
		names = append(names, link.Text)
	}
	assert.Equal(t, []string{
		"pypdf-4.0.1.tar.gz",
		"pypdf-4.0.1-py3-none-any.whl",
	}, names)
}

func TestListProjectFilesErrors(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := pep503.Client{BaseURL: srv.URL + "/simple/"}

	_, err := client.ListProjectFiles(context.Background(), "no/slashes")
	assert.Error(t, err)

	_, err = client.ListProjectFiles(context.Background(), "ghost")
	require.Error(t, err)
	var httpErr *pep503.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestLinkVersion(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Filename string
		Project  string
		Expected string // "" means "no version"
	}
	testcases := map[string]testcase{
		"sdist":         {Filename: "pypdf-4.0.1.tar.gz", Project: "pypdf", Expected: "4.0.1"},
		"wheel":         {Filename: "pypdf-4.0.1-py3-none-any.whl", Project: "pypdf", Expected: "4.0.1"},
		"zip":           {Filename: "pip-1.3.1.zip", Project: "pip", Expected: "1.3.1"},
		"dotted-name":   {Filename: "zope.interface-5.0.tar.gz", Project: "Zope-Interface", Expected: "5.0"},
		"dashed-name":   {Filename: "faiss-cpu-1.8.0.tar.gz", Project: "faiss-cpu", Expected: "1.8.0"},
		"wrong-project": {Filename: "otherproj-1.0.tar.gz", Project: "pypdf", Expected: ""},
		"no-version":    {Filename: "pypdf.tar.gz", Project: "pypdf", Expected: ""},
		"bad-version":   {Filename: "pypdf-not.a.version.tar.gz", Project: "pypdf", Expected: ""},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ver, ok := pep503.Link{Text: tc.Filename}.Version(tc.Project)
			if tc.Expected == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.Expected, ver.String())
		})
	}
}

func TestSatisfying(t *testing.T) {
	t.Parallel()
	links := []pep503.FileLink{
		{Link: pep503.Link{Text: "pypdf-4.0.1.tar.gz"}},
		{Link: pep503.Link{Text: "pypdf-4.0.1-py3-none-any.whl"}},
		{Link: pep503.Link{Text: "pypdf-5.0.0-py3-none-any.whl"}},
		{Link: pep503.Link{Text: "not-a-distfile.html"}},
	}

	names := func(links []pep503.FileLink) []string {
		ret := make([]string, 0, len(links))
		for _, link := range links {
			ret = append(ret, link.Text)
		}
		return ret
	}

	spec, err := pep440.ParseSpecifier("==4.0.1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"pypdf-4.0.1.tar.gz",
		"pypdf-4.0.1-py3-none-any.whl",
	}, names(pep503.Satisfying(links, "pypdf", spec)))

	// A pin the index has no release for matches nothing, even though the
	// project itself is served.
	spec, err = pep440.ParseSpecifier("==9.9.9")
	require.NoError(t, err)
	assert.Empty(t, pep503.Satisfying(links, "pypdf", spec))

	spec, err = pep440.ParseSpecifier(">=4,<5")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"pypdf-4.0.1.tar.gz",
		"pypdf-4.0.1-py3-none-any.whl",
	}, names(pep503.Satisfying(links, "pypdf", spec)))
}
