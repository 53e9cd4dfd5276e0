// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package schema

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/util/collection/hash"
)

// DerivedTypeVariable identifies a type variable derived from some base
// variable by following zero or more field labels.  For example, "p.load.σ4@0"
// is the type of the four bytes at offset zero of the memory loaded through p.
// An instance identifier distinguishes multiple occurrences of the same base
// symbol (e.g. at different call sites), where zero identifies the canonical
// occurrence.
type DerivedTypeVariable struct {
	base     string
	labels   []label.FieldLabel
	instance uint
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ hash.Hasher[DerivedTypeVariable] = DerivedTypeVariable{}

// NewDerivedTypeVariable constructs a new derived type variable from a given
// base variable and zero or more field labels.
func NewDerivedTypeVariable(base string, labels ...label.FieldLabel) DerivedTypeVariable {
	if base == "" {
		panic("derived type variable requires a base")
	}
	//
	return DerivedTypeVariable{base, slices.Clone(labels), 0}
}

// Var constructs a type variable with no field labels.
func Var(base string) DerivedTypeVariable {
	return NewDerivedTypeVariable(base)
}

// WithInstance returns a copy of this variable with the given instance
// identifier.
func (p DerivedTypeVariable) WithInstance(instance uint) DerivedTypeVariable {
	return DerivedTypeVariable{p.base, p.labels, instance}
}

// Base returns the name of the base variable.
func (p DerivedTypeVariable) Base() string { return p.base }

// Instance returns the instance identifier of this variable.
func (p DerivedTypeVariable) Instance() uint { return p.instance }

// Labels returns the field labels of this variable.
func (p DerivedTypeVariable) Labels() []label.FieldLabel { return slices.Clone(p.labels) }

// Len returns the number of field labels of this variable.
func (p DerivedTypeVariable) Len() int { return len(p.labels) }

// Push constructs the variable derived from this one by a given field label.
func (p DerivedTypeVariable) Push(l label.FieldLabel) DerivedTypeVariable {
	labels := make([]label.FieldLabel, len(p.labels)+1)
	copy(labels, p.labels)
	labels[len(p.labels)] = l
	//
	return DerivedTypeVariable{p.base, labels, p.instance}
}

// Parent splits this variable into the variable from which it is derived, and
// the final label.  This fails if there are no labels.
func (p DerivedTypeVariable) Parent() (DerivedTypeVariable, label.FieldLabel, bool) {
	n := len(p.labels)
	//
	if n == 0 {
		return p, nil, false
	}
	//
	return DerivedTypeVariable{p.base, p.labels[:n-1], p.instance}, p.labels[n-1], true
}

// PathVariance returns the composed variance of all labels of this variable.
func (p DerivedTypeVariable) PathVariance() label.Variance {
	return label.PathVariance(p.labels)
}

// Equals implementation for the hash.Hasher interface.
func (p DerivedTypeVariable) Equals(other DerivedTypeVariable) bool {
	return p.Cmp(other) == 0
}

// Hash implementation for the hash.Hasher interface.
func (p DerivedTypeVariable) Hash() uint64 {
	hashes := make([]uint64, len(p.labels)+2)
	hashes[0] = hash.String(p.base)
	hashes[1] = uint64(p.instance)
	//
	for i, l := range p.labels {
		hashes[i+2] = l.Hash()
	}
	//
	return hash.Combine(hashes...)
}

// Cmp orders variables by base, then instance and then labels.
func (p DerivedTypeVariable) Cmp(other DerivedTypeVariable) int {
	if c := strings.Compare(p.base, other.base); c != 0 {
		return c
	} else if c := cmp.Compare(p.instance, other.instance); c != 0 {
		return c
	}
	//
	return slices.CompareFunc(p.labels, other.labels, label.FieldLabel.Cmp)
}

func (p DerivedTypeVariable) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.base)
	//
	for _, l := range p.labels {
		builder.WriteString(".")
		builder.WriteString(l.String())
	}
	//
	if p.instance != 0 {
		builder.WriteString(fmt.Sprintf("#%d", p.instance))
	}
	//
	return builder.String()
}

// ParseDerivedTypeVariable parses a derived type variable from its string
// representation, such as "x.load.σ4@0#1".
func ParseDerivedTypeVariable(s string) (DerivedTypeVariable, error) {
	var (
		dtv      DerivedTypeVariable
		instance uint64
		err      error
	)
	// Split off instance
	if i := strings.LastIndexByte(s, '#'); i >= 0 {
		if instance, err = strconv.ParseUint(s[i+1:], 10, 32); err != nil {
			return dtv, fmt.Errorf("invalid instance in \"%s\"", s)
		}
		//
		s = s[:i]
	}
	//
	parts := strings.Split(s, ".")
	if parts[0] == "" {
		return dtv, errors.New("missing base variable")
	}
	//
	labels := make([]label.FieldLabel, len(parts)-1)
	//
	for i, part := range parts[1:] {
		if labels[i], err = label.ParseFieldLabel(part); err != nil {
			return dtv, err
		}
	}
	//
	return DerivedTypeVariable{parts[0], labels, uint(instance)}, nil
}

