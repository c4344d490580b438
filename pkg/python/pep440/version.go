// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package pep440 implements PEP 440 -- Version Identification and Dependency Specification.
//
// https://peps.python.org/pep-0440/
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// PublicVersion is a public version identifier:
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN]
type PublicVersion struct {
	Epoch   int
	Release []int
	Pre     *PreRelease
	Post    *int
	Dev     *int
}

type PreRelease struct {
	L string // "a", "b", or "rc"
	N int
}

// Version is a public version identifier plus an optional local version label
// ("+ubuntu.1" and the like).  Local segments that consist entirely of digits
// compare numerically, which is why they are stored as intstr.IntOrString.
type Version struct {
	PublicVersion
	Local []intstr.IntOrString
}

// reVersion is the "permissive" regular expression from PEP 440 Appendix B;
// inputs it accepts are normalized during parsing.
var reVersion = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?:[-_.]?(?P<preL>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<preN>[0-9]+)?)?` +
	`(?:(?:-(?P<postN1>[0-9]+))|(?:[-_.]?(?P<postL>post|rev|r)[-_.]?(?P<postN2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?dev[-_.]?(?P<devN>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

// preSpellings maps the alternate pre-release spellings that PEP 440 says to
// normalize to their canonical forms.
var preSpellings = map[string]string{
	"a": "a", "alpha": "a",
	"b": "b", "beta": "b",
	"c": "rc", "rc": "rc", "pre": "rc", "preview": "rc",
}

// ParseVersion parses a version string, performing the normalizations that
// PEP 440 requires of installation tools.
func ParseVersion(str string) (*Version, error) {
	match := reVersion.FindStringSubmatch(str)
	if match == nil {
		return nil, fmt.Errorf("pep440.ParseVersion: invalid version: %q", str)
	}
	group := func(name string) string {
		return match[reVersion.SubexpIndex(name)]
	}

	var ver Version
	if epoch := group("epoch"); epoch != "" {
		n, err := strconv.Atoi(epoch)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseVersion: %w", err)
		}
		ver.Epoch = n
	}
	for _, segStr := range strings.Split(group("release"), ".") {
		n, err := strconv.Atoi(segStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseVersion: %w", err)
		}
		ver.Release = append(ver.Release, n)
	}
	if l := strings.ToLower(group("preL")); l != "" {
		n := 0
		if nStr := group("preN"); nStr != "" {
			n, _ = strconv.Atoi(nStr)
		}
		ver.Pre = &PreRelease{L: preSpellings[l], N: n}
	}
	if n1, l := group("postN1"), strings.ToLower(group("postL")); n1 != "" || l != "" {
		n := 0
		if nStr := n1 + group("postN2"); nStr != "" {
			n, _ = strconv.Atoi(nStr)
		}
		ver.Post = &n
	}
	if group("dev") != "" {
		n := 0
		if nStr := group("devN"); nStr != "" {
			n, _ = strconv.Atoi(nStr)
		}
		ver.Dev = &n
	}
	if local := group("local"); local != "" {
		for _, part := range strings.FieldsFunc(local, func(r rune) bool {
			return strings.ContainsRune("-_.", r)
		}) {
			ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(part)))
		}
	}
	return &ver, nil
}

// MustParseVersion is like ParseVersion, but panics on malformed input.  For
// use with hard-coded strings.
func MustParseVersion(str string) Version {
	ver, err := ParseVersion(str)
	if err != nil {
		panic(err)
	}
	return *ver
}

func (ver PublicVersion) writeTo(ret *strings.Builder) {
	if ver.Epoch > 0 {
		fmt.Fprintf(ret, "%d!", ver.Epoch)
	}
	if len(ver.Release) == 0 {
		panic("invalid version: no release segments")
	}
	fmt.Fprintf(ret, "%d", ver.Release[0])
	for _, segment := range ver.Release[1:] {
		fmt.Fprintf(ret, ".%d", segment)
	}
	if ver.Pre != nil {
		fmt.Fprintf(ret, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(ret, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(ret, ".dev%d", *ver.Dev)
	}
}

// String implements fmt.Stringer, emitting the canonical spelling.
func (ver PublicVersion) String() string {
	var ret strings.Builder
	ver.writeTo(&ret)
	return ret.String()
}

// String implements fmt.Stringer, emitting the canonical spelling.
func (ver Version) String() string {
	var ret strings.Builder
	ver.PublicVersion.writeTo(&ret)
	sep := "+"
	for _, local := range ver.Local {
		ret.WriteString(sep)
		ret.WriteString(local.String())
		sep = "."
	}
	return ret.String()
}

// IsFinal reports whether the version is a final release; that is, whether it
// consists solely of an epoch and a release segment.
func (ver PublicVersion) IsFinal() bool {
	return ver.Pre == nil && ver.Post == nil && ver.Dev == nil
}

func (ver Version) IsFinal() bool {
	return ver.PublicVersion.IsFinal() && len(ver.Local) == 0
}

func (ver PublicVersion) releaseSegment(n int) int {
	if n < len(ver.Release) {
		return ver.Release[n]
	}
	return 0
}

func cmpRelease(a, b PublicVersion) int {
	// The shorter release segment is padded with zeros.
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if d := a.releaseSegment(i) - b.releaseSegment(i); d != 0 {
			return d
		}
	}
	return 0
}

// preRank assigns pre-release phases their ordering: dev-only releases sort
// before all pre-releases, pre-releases before the final release, and a bare
// final release before its post-releases.
func preRank(ver PublicVersion) (phase int, n int) {
	switch {
	case ver.Pre != nil:
		return int(ver.Pre.L[0]), ver.Pre.N // 'a' < 'b' < 'r'(c)
	case ver.Post == nil && ver.Dev != nil:
		return -1, 0
	default:
		return int('z'), 0
	}
}

func cmpIntPtr(a, b *int, nilVal int) int {
	av, bv := nilVal, nilVal
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av - bv
}

// Cmp compares two public versions, returning <0, 0, or >0 in the manner of
// strcmp.
func (a PublicVersion) Cmp(b PublicVersion) int {
	if d := a.Epoch - b.Epoch; d != 0 {
		return d
	}
	if d := cmpRelease(a, b); d != 0 {
		return d
	}
	aPhase, aN := preRank(a)
	bPhase, bN := preRank(b)
	if d := aPhase - bPhase; d != 0 {
		return d
	}
	if d := aN - bN; d != 0 {
		return d
	}
	// 1.0.post1 > 1.0; absent post sorts lowest.
	if d := cmpIntPtr(a.Post, b.Post, -1); d != 0 {
		return d
	}
	// 1.0.dev1 < 1.0; absent dev sorts highest.
	const maxInt = int(^uint(0) >> 1)
	return cmpIntPtr(a.Dev, b.Dev, maxInt)
}

func cmpLocalSegment(a, b *intstr.IntOrString) int {
	switch {
	case a == nil && b != nil:
		return -1
	case a != nil && b == nil:
		return 1
	}
	switch {
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal - b.IntVal)
	case a.Type == intstr.String && b.Type == intstr.String:
		return strings.Compare(a.StrVal, b.StrVal)
	case a.Type == intstr.Int: // numeric segments sort above lexicographic ones
		return 1
	default:
		return -1
	}
}

// Cmp compares two versions, returning <0, 0, or >0 in the manner of strcmp.
// A version with a local label sorts above the same version without one.
func (a Version) Cmp(b Version) int {
	if d := a.PublicVersion.Cmp(b.PublicVersion); d != 0 {
		return d
	}
	for i := 0; i < len(a.Local) || i < len(b.Local); i++ {
		var aSeg, bSeg *intstr.IntOrString
		if i < len(a.Local) {
			aSeg = &(a.Local[i])
		}
		if i < len(b.Local) {
			bSeg = &(b.Local[i])
		}
		if d := cmpLocalSegment(aSeg, bSeg); d != 0 {
			return d
		}
	}
	return 0
}
