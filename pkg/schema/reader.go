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
	"fmt"

	"github.com/consensys/go-retypd/pkg/util/source"
	"github.com/consensys/go-retypd/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
)

// ParseUnits parses the units of constraints contained in a given source file.
// A constraint file consists of zero or more units of the form "(unit NAME
// C1 ... Cn)", where each constraint is one of "(<= SUB SUP)", "(add LEFT
// RIGHT RESULT)" or "(sub LEFT RIGHT RESULT)".  Constraints occurring outside
// of a unit are collected into the DEFAULT_UNIT.  Syntax errors are reported
// against the offending span of the source file.
func ParseUnits(srcfile *source.File) ([]*Unit, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	// Check for parse errors
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := unitParser{srcmap: srcmap, names: make(map[string]*Unit)}
	//
	for _, term := range terms {
		p.parseTerm(term)
	}
	//
	log.Debugf("parsed %d unit(s) from %s", len(p.units), srcfile.Filename())
	//
	return p.units, p.errors
}

// ReadConstraintFile reads and parses the units of a given constraint file.
// An error is returned only when the file cannot be read, whilst problems with
// its contents are reported as syntax errors.
func ReadConstraintFile(filename string) ([]*Unit, []source.SyntaxError, error) {
	files, err := source.ReadFiles(filename)
	if err != nil {
		return nil, nil, err
	}
	//
	units, errs := ParseUnits(&files[0])
	//
	return units, errs, nil
}

type unitParser struct {
	srcmap *source.Map[sexp.SExp]
	units  []*Unit
	names  map[string]*Unit
	errors []source.SyntaxError
}

func (p *unitParser) parseTerm(term sexp.SExp) {
	list := term.AsList()
	//
	switch {
	case list == nil:
		p.error(term, "expected unit or constraint")
	case list.MatchSymbols(2, "unit"):
		p.parseUnit(list)
	default:
		if c := p.parseConstraint(term); c != nil {
			unit := p.unit(DEFAULT_UNIT)
			unit.Constraints = append(unit.Constraints, c)
		}
	}
}

func (p *unitParser) parseUnit(list *sexp.List) {
	sym := list.Get(1).AsSymbol()
	//
	if sym == nil {
		p.error(list.Get(1), "expected unit name")
		return
	}
	//
	name := sym.Value
	//
	if _, ok := p.names[name]; ok {
		p.error(list.Get(1), fmt.Sprintf("duplicate unit \"%s\"", name))
		return
	}
	//
	unit := p.unit(name)
	//
	for _, e := range list.Elements[2:] {
		if c := p.parseConstraint(e); c != nil {
			unit.Constraints = append(unit.Constraints, c)
		}
	}
}

func (p *unitParser) parseConstraint(term sexp.SExp) Constraint {
	var list = term.AsList()
	//
	switch {
	case list == nil || list.Len() == 0 || list.Get(0).AsSymbol() == nil:
		p.error(term, "expected constraint")
		return nil
	case list.MatchSymbols(1, "<="):
		if vars := p.parseVariables(list, 2); vars != nil {
			return SubType(vars[0], vars[1])
		}
	case list.MatchSymbols(1, "add"):
		if vars := p.parseVariables(list, 3); vars != nil {
			return Add(vars[0], vars[1], vars[2])
		}
	case list.MatchSymbols(1, "sub"):
		if vars := p.parseVariables(list, 3); vars != nil {
			return Sub(vars[0], vars[1], vars[2])
		}
	default:
		p.error(list.Get(0), "unknown constraint")
	}
	//
	return nil
}

// Parse the n operands of a constraint, or return nil if an error arises.
func (p *unitParser) parseVariables(list *sexp.List, n int) []DerivedTypeVariable {
	if list.Len() != n+1 {
		p.error(list, fmt.Sprintf("expected %d operands, found %d", n, list.Len()-1))
		return nil
	}
	//
	vars := make([]DerivedTypeVariable, n)
	ok := true
	//
	for i := range n {
		var (
			ith = list.Get(i + 1)
			err error
		)
		//
		if sym := ith.AsSymbol(); sym == nil {
			p.error(ith, "expected type variable")
			ok = false
		} else if vars[i], err = ParseDerivedTypeVariable(sym.Value); err != nil {
			p.error(ith, err.Error())
			ok = false
		}
	}
	//
	if !ok {
		return nil
	}
	//
	return vars
}

// Get the unit of a given name, creating it if it doesn't already exist.
func (p *unitParser) unit(name string) *Unit {
	if unit, ok := p.names[name]; ok {
		return unit
	}
	//
	unit := NewUnit(name)
	p.names[name] = unit
	p.units = append(p.units, unit)
	//
	return unit
}

func (p *unitParser) error(term sexp.SExp, msg string) {
	p.errors = append(p.errors, *p.srcmap.SyntaxError(term, msg))
}
