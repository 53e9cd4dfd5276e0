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
package rexp

import (
	"fmt"
	"slices"

	"github.com/consensys/go-retypd/pkg/label"
)

// Simplify applies a single rewriting pass over a given expression.  Arguments
// are simplified first, after which the local rules for the expression itself
// are applied.  This is not a fixpoint: some expressions only reach their
// simplest form after several passes (see Normalize).
func Simplify(e *Exp) *Exp {
	switch e.kind {
	case NULL, EMPTY, NODE:
		return e
	case STAR:
		return simplifyStar(Simplify(e.args[0]))
	case OR:
		return simplifyOr(simplifyAll(e.args))
	case AND:
		return simplifyAnd(simplifyAll(e.args))
	}
	//
	panic(fmt.Sprintf("unknown expression kind (%d)", e.kind))
}

// Normalize repeatedly simplifies a given expression until it no longer
// changes.
func Normalize(e *Exp) *Exp {
	for {
		next := Simplify(e)
		//
		if next.Equals(e) {
			return next
		}
		//
		e = next
	}
}

func simplifyAll(args []*Exp) []*Exp {
	nargs := make([]*Exp, len(args))
	//
	for i, arg := range args {
		nargs[i] = Simplify(arg)
	}
	//
	return nargs
}

func simplifyStar(body *Exp) *Exp {
	switch body.kind {
	case NULL, EMPTY:
		// Zero repetitions of nothing is the empty path.
		return emptyExp
	case STAR:
		// (e*)* ==> e*
		return body
	case OR:
		// (ε|e)* ==> e*
		if i := slices.IndexFunc(body.args, (*Exp).IsEmpty); i >= 0 {
			rest := slices.Delete(slices.Clone(body.args), i, i+1)
			return simplifyStar(simplifyOr(rest))
		}
	}
	//
	return Star(body)
}

func simplifyOr(args []*Exp) *Exp {
	var (
		nargs   []*Exp
		hasStar bool
	)
	// Flatten nested unions and remove nulls
	for _, arg := range args {
		switch arg.kind {
		case NULL:
			continue
		case OR:
			nargs = append(nargs, arg.args...)
			hasStar = hasStar || slices.ContainsFunc(arg.args, isStar)
		default:
			nargs = append(nargs, arg)
			hasStar = hasStar || arg.kind == STAR
		}
	}
	// Any star already accepts the empty path.
	if hasStar {
		nargs = slices.DeleteFunc(nargs, (*Exp).IsEmpty)
	}
	//
	nargs = canonicalise(nargs)
	//
	switch len(nargs) {
	case 0:
		return nullExp
	case 1:
		return nargs[0]
	}
	//
	return build(OR, label.One(), nargs)
}

func simplifyAnd(args []*Exp) *Exp {
	var nargs []*Exp
	// Flatten nested concatenations, remove empties and check for null.
	for _, arg := range args {
		switch arg.kind {
		case NULL:
			return nullExp
		case EMPTY:
			continue
		case AND:
			nargs = append(nargs, arg.args...)
		default:
			nargs = append(nargs, arg)
		}
	}
	// e*e* ==> e*
	nargs = slices.CompactFunc(nargs, func(l, r *Exp) bool {
		return l.kind == STAR && l.Equals(r)
	})
	//
	switch len(nargs) {
	case 0:
		return emptyExp
	case 1:
		return nargs[0]
	}
	//
	return build(AND, label.One(), nargs)
}

func isStar(e *Exp) bool {
	return e.kind == STAR
}
