package pep566_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-90/pydist/pkg/python/pep440"
	"github.com/sumit-90/pydist/pkg/python/pep566"
	"github.com/sumit-90/pydist/pkg/testutil"
)

func TestWriteTo(t *testing.T) {
	t.Parallel()
	md := &pep566.Metadata{
		Name:    "document_portal",
		Version: pep440.MustParseVersion("0.1.0"),
		Summary: "An intelligent document analysis and comparison system " +
			"powered by LLMs and vector databases.",
		Author: "Sumit Umbardand",
		Classifiers: []string{
			"Programming Language :: Python :: 3.13",
			"License :: OSI Approved :: MIT License",
		},
		RequiresPython: ">=3.13",
		RequiresDist: []string{
			"langchain",
			"faiss-cpu",
			pep566.ExtraRequirement("pytest", "dev"),
			pep566.ExtraRequirement("pylint", "dev"),
			pep566.ExtraRequirement("ipykernel", "dev"),
		},
		ProvidesExtra:          []string{"dev"},
		Description:            "# Document Portal\n\nAnalyze and compare documents.\n",
		DescriptionContentType: "text/markdown",
	}

	var out strings.Builder
	require.NoError(t, md.WriteTo(&out))

	expected := "" +
		"Metadata-Version: 2.1\n" +
		"Name: document_portal\n" +
		"Version: 0.1.0\n" +
		"Summary: An intelligent document analysis and comparison system powered by LLMs and vector databases.\n" +
		"Author: Sumit Umbardand\n" +
		"Classifier: Programming Language :: Python :: 3.13\n" +
		"Classifier: License :: OSI Approved :: MIT License\n" +
		"Requires-Python: >=3.13\n" +
		"Provides-Extra: dev\n" +
		"Requires-Dist: langchain\n" +
		"Requires-Dist: faiss-cpu\n" +
		"Requires-Dist: pytest; extra == \"dev\"\n" +
		"Requires-Dist: pylint; extra == \"dev\"\n" +
		"Requires-Dist: ipykernel; extra == \"dev\"\n" +
		"Description-Content-Type: text/markdown\n" +
		"\n" +
		"# Document Portal\n" +
		"\n" +
		"Analyze and compare documents.\n"
	testutil.AssertEqualText(t, expected, out.String())
}

func TestValidate(t *testing.T) {
	t.Parallel()
	base := pep566.Metadata{
		Name:    "document_portal",
		Version: pep440.MustParseVersion("0.1.0"),
	}

	md := base
	assert.NoError(t, md.Validate())

	md = base
	md.Name = ""
	assert.Error(t, md.Validate())

	md = base
	md.Version = pep440.Version{}
	assert.Error(t, md.Validate())

	md = base
	md.RequiresPython = "not a specifier"
	assert.Error(t, md.Validate())

	md = base
	md.Classifiers = []string{"evil\nInjected-Header: x"}
	assert.Error(t, md.Validate())

	md = base
	md.Summary = "line one\nInjected-Header: x"
	assert.Error(t, md.Validate())
	var out strings.Builder
	assert.Error(t, md.WriteTo(&out))
	assert.Empty(t, out.String())

	md = base
	md.Author = "a\nb"
	assert.Error(t, md.Validate())

	md = base
	md.RequiresPython = ">=3.13\nInjected-Header: x"
	assert.Error(t, md.Validate())
}

func TestExtraRequirement(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `pytest; extra == "dev"`,
		pep566.ExtraRequirement("pytest", "dev"))
	assert.Equal(t, `tomli>=1.1.0; (python_version < "3.11") and extra == "dev"`,
		pep566.ExtraRequirement(`tomli>=1.1.0; python_version < "3.11"`, "dev"))
}
