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
package cmd

import (
	"bytes"
	"testing"

	"github.com/consensys/go-retypd/pkg/infer"
	"github.com/consensys/go-retypd/pkg/schema"
	"github.com/consensys/go-retypd/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func Test_SelectUnits_00(t *testing.T) {
	units := parse(t, "(unit f (<= x y)) (unit g (<= a b)) (unit h (<= p q))")
	//
	selected, err := selectUnits(units, nil)
	require.NoError(t, err)
	assert.Equal(t, units, selected)
	//
	selected, err = selectUnits(units, []string{"h", "f"})
	require.NoError(t, err)
	assert.Equal(t, []*schema.Unit{units[2], units[0]}, selected)
	//
	_, err = selectUnits(units, []string{"k"})
	assert.EqualError(t, err, "unknown unit \"k\"")
}

func Test_SyntaxError_00(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(unit f (<= x y)\n  (foo a b))"))
	)
	//
	_, errs := schema.ParseUnits(srcfile)
	require.Len(t, errs, 1)
	//
	printSyntaxErrors(&buf, errs)
	assert.Equal(t, "test.lisp:2: unknown constraint\n\n  (foo a b))\n   ^^^\n", buf.String())
}

func Test_Check_00(t *testing.T) {
	files := []source.File{
		*source.NewSourceFile("a.lisp", []byte("(unit f (<= x y) (add x y z))")),
		*source.NewSourceFile("b.lisp", []byte("(<= p q)\n(<= q r s)")),
	}
	//
	units, errs := checkFiles(files)
	require.Len(t, errs, 1)
	assert.Equal(t, "expected 2 operands, found 3", errs[0].Message())
	assert.Equal(t, "b.lisp", errs[0].SourceFile().Filename())
	//
	var buf bytes.Buffer
	//
	printCheckSummary(&buf, units)
	assert.Equal(t, "ok: 2 unit(s), 3 constraint(s)\n", buf.String())
}

func Test_Solve_00(t *testing.T) {
	var buf bytes.Buffer
	//
	reports := summariseAll(inferAll(t, "(unit f (<= x y) (<= y z))"), nil)
	require.NoError(t, printSummaryTable(&buf, reports, false, 0))
	//
	expected := "unit | source | target | path\n" +
		"f    | x⊕     | y⊕     | ε\n" +
		"f    | x⊕     | z⊕     | ε\n" +
		"f    | y⊕     | z⊕     | ε\n"
	//
	assert.Equal(t, expected, buf.String())
}

func Test_Solve_01(t *testing.T) {
	var buf bytes.Buffer
	// Explicit sources, including one which does not occur.
	reports := summariseAll(inferAll(t, "(unit f (<= x y) (<= y z))"), parseSources([]string{"y", "w"}))
	//
	require.Len(t, reports, 1)
	require.Len(t, reports[0].Summaries, 1)
	assert.Equal(t, "y⊕", reports[0].Summaries[0].Source)
	assert.Equal(t, []pathReport{{"z⊕", "ε"}}, reports[0].Summaries[0].Paths)
	// Sources reaching nothing are still reported.
	reports = summariseAll(inferAll(t, "(unit f (<= x y) (<= y z))"), parseSources([]string{"z"}))
	require.Len(t, reports[0].Summaries, 1)
	assert.Empty(t, reports[0].Summaries[0].Paths)
	// Check YAML output
	require.NoError(t, printSummaryYaml(&buf, reports))
	assert.Contains(t, buf.String(), "unit: f")
	//
	var decoded []unitReport
	//
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, reports, decoded)
}

func Test_Graph_00(t *testing.T) {
	var buf bytes.Buffer
	//
	printGraphs(&buf, inferAll(t, "(unit f (<= x y)) (unit g (<= a b))"), true)
	//
	assert.Contains(t, buf.String(), "unit f (4 nodes, 2 edges):\n")
	assert.Contains(t, buf.String(), "\n\nunit g (4 nodes, 2 edges):\n")
	assert.Contains(t, buf.String(), "sequence:\n")
}

// ===================================================================
// Helpers
// ===================================================================

func parse(t *testing.T, text string) []*schema.Unit {
	units, errs := schema.ParseUnits(source.NewSourceFile("test.lisp", []byte(text)))
	require.Empty(t, errs)
	//
	return units
}

func inferAll(t *testing.T, text string) []*infer.Result {
	results, err := infer.InferAll(t.Context(), parse(t, text), infer.DefaultConfig())
	require.NoError(t, err)
	//
	return results
}
