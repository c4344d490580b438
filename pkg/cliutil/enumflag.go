// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package cliutil

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// EnumValue is a pflag.Value that only accepts one of a fixed set of
// strings, so that a bad flag value is a usage error at parse time instead
// of something each command has to check for itself.
type EnumValue struct {
	Value   string
	choices []string
}

var _ pflag.Value = (*EnumValue)(nil)

func NewEnumValue(def string, choices ...string) *EnumValue {
	return &EnumValue{
		Value:   def,
		choices: choices,
	}
}

func (v *EnumValue) String() string { return v.Value }

func (v *EnumValue) Set(str string) error {
	for _, choice := range v.choices {
		if str == choice {
			v.Value = str
			return nil
		}
	}
	return fmt.Errorf("must be one of %q", v.choices)
}

// Type returns the choices joined with "|"; pflag shows this next to the
// flag name in help output.
func (v *EnumValue) Type() string { return strings.Join(v.choices, "|") }
