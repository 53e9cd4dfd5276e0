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
	"testing"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===================================================================
// Derived Type Variables
// ===================================================================

func Test_DerivedTypeVariable_00(t *testing.T) {
	x := Var("x")
	assert.Equal(t, "x", x.String())
	assert.Equal(t, "x.load", x.Push(label.LoadLabel()).String())
	assert.Equal(t, "x.load.σ4@0#2", x.Push(label.LoadLabel()).
		Push(label.DerefLabel(4, 0, label.NoBound())).WithInstance(2).String())
	assert.Equal(t, "f.in_0.store", NewDerivedTypeVariable("f", label.InLabel("0"), label.StoreLabel()).String())
}

func Test_DerivedTypeVariable_01(t *testing.T) {
	x := NewDerivedTypeVariable("x", label.LoadLabel(), label.OutLabel("1"))
	parent, last, ok := x.Parent()
	//
	require.True(t, ok)
	assert.Equal(t, "x.load", parent.String())
	assert.Equal(t, label.OutLabel("1"), last)
	// Base variables have no parent
	_, _, ok = Var("x").Parent()
	assert.False(t, ok)
	// Push does not alias the parent's labels
	y := parent.Push(label.StoreLabel())
	assert.Equal(t, "x.load.out_1", x.String())
	assert.Equal(t, "x.load.store", y.String())
}

func Test_DerivedTypeVariable_02(t *testing.T) {
	// Structural equality
	x1 := NewDerivedTypeVariable("x", label.LoadLabel())
	x2 := Var("x").Push(label.LoadLabel())
	//
	assert.True(t, x1.Equals(x2))
	assert.Equal(t, x1.Hash(), x2.Hash())
	assert.False(t, x1.Equals(x1.WithInstance(1)))
	assert.False(t, x1.Equals(Var("x")))
	// Ordering
	assert.Equal(t, 0, x1.Cmp(x2))
	assert.Equal(t, -1, Var("x").Cmp(x1))
	assert.Equal(t, -1, Var("a").Cmp(Var("b")))
	assert.Equal(t, 1, x1.WithInstance(1).Cmp(x1))
}

func Test_DerivedTypeVariable_03(t *testing.T) {
	// Two contravariant steps compose to covariant
	assert.Equal(t, label.COVARIANT, Var("f").PathVariance())
	assert.Equal(t, label.CONTRAVARIANT, Var("f").Push(label.InLabel("0")).PathVariance())
	assert.Equal(t, label.COVARIANT, Var("f").Push(label.InLabel("0")).Push(label.StoreLabel()).PathVariance())
}

func Test_DerivedTypeVariable_04(t *testing.T) {
	for _, s := range []string{"x", "x#3", "p.load.σ4@0", "p.store.σ8@-16[*]", "f.in_0.σ1@0[nullterm]",
		"f.out_eax.σ2@4[12]#7"} {
		t.Run(s, func(t *testing.T) {
			dtv, err := ParseDerivedTypeVariable(s)
			require.NoError(t, err)
			assert.Equal(t, s, dtv.String())
		})
	}
}

func Test_DerivedTypeVariable_05(t *testing.T) {
	for _, s := range []string{"", ".load", "x.bogus", "x#y", "x.load.", "x.σ4"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseDerivedTypeVariable(s)
			assert.Error(t, err)
		})
	}
}

func Test_DerivedTypeVariable_06(t *testing.T) {
	assert.Panics(t, func() { NewDerivedTypeVariable("") })
}

// ===================================================================
// Constraints
// ===================================================================

func Test_Constraint_00(t *testing.T) {
	x, y, z := Var("x"), Var("y").Push(label.LoadLabel()), Var("z")
	//
	assert.Equal(t, "(<= x y.load)", SubType(x, y).String())
	assert.Equal(t, "(add x y.load z)", Add(x, y, z).String())
	assert.Equal(t, "(sub x y.load z)", Sub(x, y, z).String())
	assert.Equal(t, []DerivedTypeVariable{x, y, z}, Add(x, y, z).Variables())
}

func Test_Unit_00(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")
	unit := NewUnit("f", SubType(x, y), SubType(y, x), Add(x, z, y))
	//
	assert.Equal(t, []DerivedTypeVariable{x, y, z}, unit.Variables())
	assert.Equal(t, "(unit f (<= x y) (<= y x) (add x z y))", unit.Lisp().String(false))
	assert.Equal(t, "(unit f\n  (<= x y)\n  (<= y x)\n  (add x z y))", unit.String())
}

// ===================================================================
// Constraint Files
// ===================================================================

func Test_ParseUnits_00(t *testing.T) {
	units := checkParse(t, `
; two units
(unit f
  (<= x.load y)
  (<= y.σ4@0[*] z#1))
(unit g (add p i q) (sub q i p))`)
	//
	require.Len(t, units, 2)
	assert.Equal(t, "f", units[0].Name)
	assert.Equal(t, "g", units[1].Name)
	assert.Equal(t, "(<= y.σ4@0[*] z#1)", units[0].Constraints[1].String())
	assert.IsType(t, &SubConstraint{}, units[1].Constraints[1])
}

func Test_ParseUnits_01(t *testing.T) {
	// Constraints outside of a unit are collected together
	units := checkParse(t, "(<= a b) (unit f (<= c d)) (<= b c)")
	//
	require.Len(t, units, 2)
	assert.Equal(t, DEFAULT_UNIT, units[0].Name)
	assert.Len(t, units[0].Constraints, 2)
	assert.Len(t, units[1].Constraints, 1)
}

func Test_ParseUnits_02(t *testing.T) {
	units := checkParse(t, "")
	assert.Empty(t, units)
	//
	units = checkParse(t, "(unit empty)")
	require.Len(t, units, 1)
	assert.Empty(t, units[0].Constraints)
}

func Test_ParseUnits_03(t *testing.T) {
	checkError(t, "(<= x.bogus y)", "x.bogus")
	checkError(t, "(<= x)", "(<= x)")
	checkError(t, "(unit f (<= x y z))", "(<= x y z)")
	checkError(t, "(frob x y)", "frob")
	checkError(t, "(unit f) (unit f)", "f")
	checkError(t, "(unit (f))", "(f)")
	checkError(t, "symbol", "symbol")
	checkError(t, "(<= (x) y)", "(x)")
}

func Test_ParseUnits_04(t *testing.T) {
	// Malformed S-Expressions
	srcfile := source.NewSourceFile("test.lisp", []byte("(unit f (<= x y)"))
	_, errs := ParseUnits(srcfile)
	//
	require.Len(t, errs, 1)
	assert.Equal(t, "unexpected end-of-file", errs[0].Message())
	assert.Equal(t, 0, errs[0].Span().Start())
	assert.Equal(t, "test.lisp:1:1: unexpected end-of-file", errs[0].Error())
}

func Test_ParseUnits_05(t *testing.T) {
	// Every error is reported, not just the first.
	srcfile := source.NewSourceFile("test.lisp", []byte("(unit f (<= x.bogus y) (<= a b) (add a))"))
	units, errs := ParseUnits(srcfile)
	//
	assert.Len(t, errs, 2)
	require.Len(t, units, 1)
	assert.Len(t, units[0].Constraints, 1)
}

// ===================================================================
// Helpers
// ===================================================================

func checkParse(t *testing.T, text string) []*Unit {
	srcfile := source.NewSourceFile("test.lisp", []byte(text))
	units, errs := ParseUnits(srcfile)
	//
	require.Empty(t, errs)
	//
	return units
}

// Check parsing fails with a single error, whose span covers the given text.
func checkError(t *testing.T, text string, highlight string) {
	srcfile := source.NewSourceFile("test.lisp", []byte(text))
	_, errs := ParseUnits(srcfile)
	//
	require.Len(t, errs, 1, text)
	//
	span := errs[0].Span()
	assert.Equal(t, highlight, string(srcfile.Contents()[span.Start():span.End()]), text)
}
