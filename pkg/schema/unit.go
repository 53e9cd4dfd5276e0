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
	"strings"

	"github.com/consensys/go-retypd/pkg/util/collection/hash"
	"github.com/consensys/go-retypd/pkg/util/source/sexp"
)

// DEFAULT_UNIT is the name given to constraints which appear outside of any
// explicit unit in a constraint file.
const DEFAULT_UNIT = "main"

// Unit is a named set of constraints which are analysed together, such as
// those generated for a single function.
type Unit struct {
	Name        string
	Constraints []Constraint
}

// NewUnit constructs a new unit from a given set of constraints.
func NewUnit(name string, constraints ...Constraint) *Unit {
	return &Unit{name, constraints}
}

// Variables returns every derived type variable referenced in this unit, in
// order of first occurrence and without duplicates.
func (p *Unit) Variables() []DerivedTypeVariable {
	var (
		seen = hash.NewSet[DerivedTypeVariable](uint(len(p.Constraints)))
		vars []DerivedTypeVariable
	)
	//
	for _, c := range p.Constraints {
		for _, v := range c.Variables() {
			if !seen.Insert(v) {
				vars = append(vars, v)
			}
		}
	}
	//
	return vars
}

// Lisp returns the S-Expression representation of this unit.
func (p *Unit) Lisp() sexp.SExp {
	elements := []sexp.SExp{sexp.NewSymbol("unit"), sexp.NewSymbol(p.Name)}
	//
	for _, c := range p.Constraints {
		elements = append(elements, c.Lisp())
	}
	//
	return sexp.NewList(elements)
}

// String formats this unit with one constraint per line.
func (p *Unit) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(unit ")
	builder.WriteString(p.Name)
	//
	for _, c := range p.Constraints {
		builder.WriteString("\n  ")
		builder.WriteString(c.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
