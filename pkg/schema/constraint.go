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
	"github.com/consensys/go-retypd/pkg/util/source/sexp"
)

// Constraint represents a relationship between derived type variables emitted
// by the front end.  The set of constraints is closed: subtyping constraints
// drive the constraint graph, whilst arithmetic constraints (addition and
// subtraction) are retained for the later type assignment phase which uses them
// to distinguish pointers from offsets.
type Constraint interface {
	// Variables returns the derived type variables referenced by this
	// constraint, in order.
	Variables() []DerivedTypeVariable
	// Lisp returns the S-Expression representation of this constraint, as
	// used in constraint files.
	Lisp() sexp.SExp
	// String returns the textual form of the S-Expression representation.
	String() string
	// Seals the interface.
	isConstraint()
}

// SubTypeConstraint states that Sub is a subtype of Sup (i.e. Sub <= Sup).
type SubTypeConstraint struct {
	Sub DerivedTypeVariable
	Sup DerivedTypeVariable
}

// SubType constructs a new subtyping constraint.
func SubType(sub DerivedTypeVariable, sup DerivedTypeVariable) Constraint {
	return &SubTypeConstraint{sub, sup}
}

// Variables implementation for the Constraint interface.
func (p *SubTypeConstraint) Variables() []DerivedTypeVariable {
	return []DerivedTypeVariable{p.Sub, p.Sup}
}

// Lisp implementation for the Constraint interface.
func (p *SubTypeConstraint) Lisp() sexp.SExp {
	return sexp.NewSymbolList("<=", p.Sub.String(), p.Sup.String())
}

func (p *SubTypeConstraint) String() string { return p.Lisp().String(false) }

func (p *SubTypeConstraint) isConstraint() {}

// AddConstraint states that Result is computed as Left + Right.
type AddConstraint struct {
	Left   DerivedTypeVariable
	Right  DerivedTypeVariable
	Result DerivedTypeVariable
}

// Add constructs a new addition constraint.
func Add(left DerivedTypeVariable, right DerivedTypeVariable, result DerivedTypeVariable) Constraint {
	return &AddConstraint{left, right, result}
}

// Variables implementation for the Constraint interface.
func (p *AddConstraint) Variables() []DerivedTypeVariable {
	return []DerivedTypeVariable{p.Left, p.Right, p.Result}
}

// Lisp implementation for the Constraint interface.
func (p *AddConstraint) Lisp() sexp.SExp {
	return sexp.NewSymbolList("add", p.Left.String(), p.Right.String(), p.Result.String())
}

func (p *AddConstraint) String() string { return p.Lisp().String(false) }

func (p *AddConstraint) isConstraint() {}

// SubConstraint states that Result is computed as Left - Right.
type SubConstraint struct {
	Left   DerivedTypeVariable
	Right  DerivedTypeVariable
	Result DerivedTypeVariable
}

// Sub constructs a new subtraction constraint.
func Sub(left DerivedTypeVariable, right DerivedTypeVariable, result DerivedTypeVariable) Constraint {
	return &SubConstraint{left, right, result}
}

// Variables implementation for the Constraint interface.
func (p *SubConstraint) Variables() []DerivedTypeVariable {
	return []DerivedTypeVariable{p.Left, p.Right, p.Result}
}

// Lisp implementation for the Constraint interface.
func (p *SubConstraint) Lisp() sexp.SExp {
	return sexp.NewSymbolList("sub", p.Left.String(), p.Right.String(), p.Result.String())
}

func (p *SubConstraint) String() string { return p.Lisp().String(false) }

func (p *SubConstraint) isConstraint() {}
