// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package pep503 implements PEP 503 -- Simple Repository API.
//
// https://peps.python.org/pep-0503/
package pep503

import (
	"bytes"
	"context"
	"crypto/md5"  //nolint:gosec // verifying upstream-chosen checksums
	"crypto/sha1" //nolint:gosec // verifying upstream-chosen checksums
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sumit-90/pydist/pkg/python/pep440"
)

const PyPIBaseURL = "https://pypi.org/simple/"

var reNormalize = regexp.MustCompile(`[-_.]+`)

// Normalize canonicalizes a project name for index lookup: runs of `-`, `_`,
// and `.` collapse to a single `-`, and the result is lowercased.
func Normalize(name string) string {
	return strings.ToLower(reNormalize.ReplaceAllLiteralString(name, "-"))
}

// Client talks to a PEP 503 "simple" package index.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string

	// Python, if set, filters out files whose data-requires-python
	// attribute excludes that interpreter version.
	Python *pep440.Version
}

func (c *Client) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = PyPIBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "github.com/sumit-90/pydist/pkg/python/pep503"
	}
}

type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s", e.Status)
}

func (c Client) get(ctx context.Context, requestURL string) (_ *url.URL, _ []byte, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q => %w", requestURL, err)
		}
	}()
	c.fillDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, nil, err
	}
	if err := resp.Body.Close(); err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	}

	// An URL fragment like "#sha256=..." is a checksum to verify.
	if u, err := url.Parse(requestURL); err == nil && u.Fragment != "" {
		if keyvals, err := url.ParseQuery(u.Fragment); err == nil {
			for key, vals := range keyvals {
				for _, val := range vals {
					sum := checksum(key, content)
					if sum != "" && sum != val {
						return nil, nil, fmt.Errorf("checksum mismatch: %s: expected=%s actual=%s",
							key, val, sum)
					}
				}
			}
		}
	}

	return resp.Request.URL, content, nil
}

func checksum(algo string, content []byte) string {
	switch algo {
	case "md5":
		sum := md5.Sum(content) //nolint:gosec // upstream-chosen
		return hex.EncodeToString(sum[:])
	case "sha1":
		sum := sha1.Sum(content) //nolint:gosec // upstream-chosen
		return hex.EncodeToString(sum[:])
	case "sha224":
		sum := sha256.Sum224(content)
		return hex.EncodeToString(sum[:])
	case "sha256":
		sum := sha256.Sum256(content)
		return hex.EncodeToString(sum[:])
	case "sha384":
		sum := sha512.Sum384(content)
		return hex.EncodeToString(sum[:])
	case "sha512":
		sum := sha512.Sum512(content)
		return hex.EncodeToString(sum[:])
	default:
		return ""
	}
}

type Link struct {
	Text      string
	HRef      string
	DataAttrs map[string]string
}

func visitHTML(node *html.Node, fn func(*html.Node) error) error {
	if err := fn(node); err != nil {
		return err
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := visitHTML(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// ParseIndex extracts the anchor links from a simple-index HTML page.
// Relative hrefs are resolved against location ("" leaves them as-is).
func ParseIndex(location *url.URL, content []byte) ([]Link, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var links []Link
	if err := visitHTML(doc, func(node *html.Node) error {
		if node.Type != html.ElementNode || node.Data != "a" {
			return nil
		}
		link := Link{
			DataAttrs: make(map[string]string),
		}
		for _, attr := range node.Attr {
			switch {
			case attr.Namespace == "" && attr.Key == "href":
				link.HRef = attr.Val
				if location != nil {
					href, err := location.Parse(attr.Val)
					if err != nil {
						return err
					}
					link.HRef = href.String()
				}
			case attr.Namespace == "" && strings.HasPrefix(attr.Key, "data-"):
				link.DataAttrs[attr.Key] = attr.Val
			}
		}
		var text strings.Builder
		_ = visitHTML(node, func(child *html.Node) error {
			if child.Type == html.TextNode {
				text.WriteString(child.Data)
			}
			return nil
		})
		link.Text = strings.TrimSpace(text.String())
		links = append(links, link)
		return nil
	}); err != nil {
		return nil, err
	}

	return links, nil
}

func (c Client) getHTML5Index(ctx context.Context, requestURL string) ([]Link, error) {
	location, content, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	return ParseIndex(location, content)
}

type FileLink struct {
	client Client
	Link
}

// ListProjectFiles lists the distribution files that the index serves for a
// project.  If c.Python is set, files whose data-requires-python says they
// don't support that interpreter are skipped.
func (c Client) ListProjectFiles(ctx context.Context, projectname string) ([]FileLink, error) {
	// "the only valid characters in a name are the ASCII alphabet, ASCII
	// numbers, `.`, `-`, and `_`."
	for _, char := range projectname {
		if !(('a' <= char && char <= 'z') ||
			('A' <= char && char <= 'Z') ||
			('0' <= char && char <= '9') ||
			char == '.' ||
			char == '-' ||
			char == '_') {
			return nil, fmt.Errorf("illegal character in project name: %q: %s",
				projectname, strconv.QuoteRuneToASCII(char))
		}
	}

	c.fillDefaults()
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	u.Path = path.Join(u.Path, Normalize(projectname)) + "/"
	rawLinks, err := c.getHTML5Index(ctx, u.String())
	if err != nil {
		return nil, err
	}
	links := make([]FileLink, 0, len(rawLinks))
	for _, link := range rawLinks {
		if c.Python != nil {
			if reqPy := link.DataAttrs["data-requires-python"]; reqPy != "" {
				spec, err := pep440.ParseSpecifier(reqPy)
				if err == nil && !spec.Match(*c.Python) {
					continue
				}
			}
		}
		links = append(links, FileLink{
			client: c,
			Link:   link,
		})
	}
	return links, nil
}

// Get downloads the linked file, verifying any checksum fragment in the URL.
func (l FileLink) Get(ctx context.Context) ([]byte, error) {
	_, content, err := l.client.get(ctx, l.HRef)
	return content, err
}

// distExts are the archive extensions of distribution files, longest first
// so that ".tar.gz" wins over a hypothetical ".gz".
var distExts = []string{".tar.gz", ".tar.bz2", ".whl", ".zip", ".egg"}

// Version extracts the release version from the distribution filename that
// the link names: "{name}-{version}.tar.gz" for an sdist,
// "{name}-{version}-{tags...}.whl" for a wheel.  It reports false if the
// filename is not a distribution of the given project or the version does
// not parse.
func (l Link) Version(project string) (*pep440.Version, bool) {
	stem := l.Text
	for _, ext := range distExts {
		if strings.HasSuffix(stem, ext) {
			stem = strings.TrimSuffix(stem, ext)
			break
		}
	}
	// The name may contain separators of its own, so find where it ends
	// by normalization rather than by splitting on the first "-".
	rest := ""
	for i := 0; i < len(stem); i++ {
		if stem[i] != '-' {
			continue
		}
		if Normalize(stem[:i]) == Normalize(project) {
			rest = stem[i+1:]
			break
		}
	}
	if rest == "" {
		return nil, false
	}
	verStr := rest
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		verStr = rest[:i] // wheel compatibility tags follow
	}
	ver, err := pep440.ParseVersion(verStr)
	if err != nil {
		return nil, false
	}
	return ver, true
}

// Satisfying filters links down to those naming a release version that
// matches spec.  Links whose version cannot be determined are dropped.
func Satisfying(links []FileLink, project string, spec pep440.Specifier) []FileLink {
	ret := make([]FileLink, 0, len(links))
	for _, link := range links {
		ver, ok := link.Version(project)
		if !ok {
			continue
		}
		if spec.Match(*ver) {
			ret = append(ret, link)
		}
	}
	return ret
}
