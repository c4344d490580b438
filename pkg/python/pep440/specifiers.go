// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package pep440

import (
	"fmt"
	"strings"
)

// Specifier is a comma-separated series of version clauses; a candidate
// version must match every clause in order to match the specifier as a whole.
//
//	~= 0.9, >= 1.0, != 1.3.4.*, < 2.0
type Specifier []SpecifierClause

// ParseSpecifier parses a version specifier.  The empty string parses to the
// empty Specifier, which matches everything.
func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.FieldsFunc(str, func(r rune) bool { return r == ',' })
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		clause, err := parseSpecifierClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

type CmpOp int

const (
	CmpOpCompatible CmpOp = iota // ~=
	CmpOpMatch                   // ==
	CmpOpExclude                 // !=
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
)

func (op CmpOp) String() string {
	str, ok := map[CmpOp]string{
		CmpOpCompatible: "~=",
		CmpOpMatch:      "==",
		CmpOpExclude:    "!=",
		CmpOpLE:         "<=",
		CmpOpGE:         ">=",
		CmpOpLT:         "<",
		CmpOpGT:         ">",
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", int(op)))
	}
	return str
}

type SpecifierClause struct {
	CmpOp   CmpOp
	Version Version

	// Prefix marks a "==" or "!=" clause written with a trailing ".*",
	// which matches on the release-segment prefix rather than requiring
	// full equality.
	Prefix bool
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	var ret SpecifierClause
	switch {
	case strings.HasPrefix(str, "~="):
		ret.CmpOp = CmpOpCompatible
		str = str[2:]
	case strings.HasPrefix(str, "=="):
		ret.CmpOp = CmpOpMatch
		str = str[2:]
	case strings.HasPrefix(str, "!="):
		ret.CmpOp = CmpOpExclude
		str = str[2:]
	case strings.HasPrefix(str, "<="):
		ret.CmpOp = CmpOpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.CmpOp = CmpOpGE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.CmpOp = CmpOpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.CmpOp = CmpOpGT
		str = str[1:]
	default:
		return ret, fmt.Errorf("invalid specifier clause: %q", str)
	}
	str = strings.TrimSpace(str)
	if strings.HasSuffix(str, ".*") {
		if ret.CmpOp != CmpOpMatch && ret.CmpOp != CmpOpExclude {
			return ret, fmt.Errorf("prefix-match %q may only be used with == or !=", str)
		}
		ret.Prefix = true
		str = strings.TrimSuffix(str, ".*")
	}
	ver, err := ParseVersion(str)
	if err != nil {
		return ret, err
	}
	ret.Version = *ver
	if ret.CmpOp == CmpOpCompatible && len(ret.Version.Release) < 2 {
		return ret, fmt.Errorf("compatible-release clause requires at least two release segments: %q", str)
	}
	return ret, nil
}

func (spec SpecifierClause) String() string {
	suffix := ""
	if spec.Prefix {
		suffix = ".*"
	}
	return spec.CmpOp.String() + spec.Version.String() + suffix
}

// sameRelease reports whether ver's release segment, zero-padded as needed,
// begins with spec's release segment.
func sameRelease(spec, ver PublicVersion) bool {
	for i := range spec.Release {
		if ver.releaseSegment(i) != spec.Release[i] {
			return false
		}
	}
	return true
}

// Match implements the clause semantics of PEP 440.  Local version labels on
// the candidate are ignored except by a non-prefix "==" whose spec carries a
// local label of its own.
func (spec SpecifierClause) Match(ver Version) bool {
	switch spec.CmpOp {
	case CmpOpCompatible:
		// "~= V" is ">= V" together with "== V-minus-last-segment.*".
		prefix := SpecifierClause{
			CmpOp: CmpOpMatch,
			Version: Version{PublicVersion: PublicVersion{
				Epoch:   spec.Version.Epoch,
				Release: spec.Version.Release[:len(spec.Version.Release)-1],
			}},
			Prefix: true,
		}
		ge := SpecifierClause{CmpOp: CmpOpGE, Version: spec.Version}
		return ge.Match(ver) && prefix.Match(ver)
	case CmpOpMatch:
		if spec.Prefix {
			return ver.Epoch == spec.Version.Epoch && sameRelease(spec.Version.PublicVersion, ver.PublicVersion)
		}
		if len(spec.Version.Local) > 0 {
			return ver.Cmp(spec.Version) == 0
		}
		return ver.PublicVersion.Cmp(spec.Version.PublicVersion) == 0
	case CmpOpExclude:
		eq := spec
		eq.CmpOp = CmpOpMatch
		return !eq.Match(ver)
	case CmpOpLE:
		return ver.PublicVersion.Cmp(spec.Version.PublicVersion) <= 0
	case CmpOpGE:
		return ver.PublicVersion.Cmp(spec.Version.PublicVersion) >= 0
	case CmpOpLT:
		if ver.PublicVersion.Cmp(spec.Version.PublicVersion) >= 0 {
			return false
		}
		// "< V" does not match a pre-release of V itself unless V is a
		// pre-release.
		if spec.Version.Pre == nil && spec.Version.Dev == nil &&
			(ver.Pre != nil || ver.Dev != nil) &&
			sameRelease(spec.Version.PublicVersion, ver.PublicVersion) &&
			len(ver.Release) <= len(spec.Version.Release) {
			return false
		}
		return true
	case CmpOpGT:
		if ver.PublicVersion.Cmp(spec.Version.PublicVersion) <= 0 {
			return false
		}
		// "> V" does not match a post-release of V itself unless V is a
		// post-release.
		if spec.Version.Post == nil && ver.Post != nil &&
			sameRelease(spec.Version.PublicVersion, ver.PublicVersion) &&
			len(ver.Release) <= len(spec.Version.Release) {
			return false
		}
		return true
	default:
		panic(fmt.Errorf("invalid CmpOp: %q", spec.CmpOp))
	}
}
