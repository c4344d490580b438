// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package pep440

import (
	"math/rand"
	"reflect"
	"testing/quick"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// Generate implements testing/quick.Generator, producing random (but valid)
// versions for property tests.
func (Version) Generate(rand *rand.Rand, size int) reflect.Value {
	var ver Version

	ver.Epoch = rand.Intn(3)
	nRelease := 1 + rand.Intn(4)
	for i := 0; i < nRelease; i++ {
		ver.Release = append(ver.Release, rand.Intn(size+1))
	}
	if rand.Intn(4) == 0 {
		ver.Pre = &PreRelease{
			L: []string{"a", "b", "rc"}[rand.Intn(3)],
			N: rand.Intn(size + 1),
		}
	}
	if rand.Intn(4) == 0 {
		n := rand.Intn(size + 1)
		ver.Post = &n
	}
	if rand.Intn(4) == 0 {
		n := rand.Intn(size + 1)
		ver.Dev = &n
	}
	if rand.Intn(4) == 0 {
		nLocal := 1 + rand.Intn(3)
		for i := 0; i < nLocal; i++ {
			if rand.Intn(2) == 0 {
				ver.Local = append(ver.Local, intstr.FromInt(rand.Intn(size+1)))
			} else {
				ver.Local = append(ver.Local,
					intstr.FromString([]string{"ubuntu", "local", "patched"}[rand.Intn(3)]))
			}
		}
	}

	return reflect.ValueOf(ver)
}

var _ quick.Generator = Version{}
