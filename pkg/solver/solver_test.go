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
package solver

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/consensys/go-retypd/pkg/graph"
	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/rexp"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Labels used throughout.
var (
	la = label.Recall(label.InLabel("a"))
	lb = label.Recall(label.InLabel("b"))
	lc = label.Recall(label.InLabel("c"))
	lp = label.Forget(label.LoadLabel())
	lq = label.Forget(label.StoreLabel())
	lr = label.Recall(label.LoadLabel())
	ls = label.Recall(label.StoreLabel())
)

// ===================================================================
// Elimination
// ===================================================================

func Test_Eliminate_00(t *testing.T) {
	// Three cycle
	g := testGraph{
		"A": {{"B", la}},
		"B": {{"C", lb}},
		"C": {{"A", lc}},
	}
	//
	checkSequence(t, Eliminate[string](g, []string{"A", "B", "C"}),
		"(A, B, recall_in_a)",
		"(B, C, recall_in_b)",
		"(C, C, (recall_in_c.recall_in_a.recall_in_b)*)",
		"(C, A, recall_in_c)",
		"(C, B, recall_in_c.recall_in_a)")
}

func Test_Eliminate_01(t *testing.T) {
	// Three cycle yields a star of the cycle (up to rotation) at the last
	// pivot, regardless of the order of elimination.
	g := testGraph{
		"A": {{"B", la}},
		"B": {{"C", lb}},
		"C": {{"A", lc}},
	}
	cycle := []*rexp.Exp{node(la), node(lb), node(lc)}
	//
	for _, order := range [][]string{{"A", "B", "C"}, {"B", "C", "A"}, {"C", "B", "A"}, {"A", "C", "B"}} {
		sequence := Eliminate[string](g, order)
		last := order[2]
		found := false
		//
		for _, step := range sequence {
			assert.False(t, step.Exp.IsNull())
			//
			if step.From == step.To {
				require.Equal(t, last, step.From)
				require.Equal(t, rexp.STAR, step.Exp.Kind())
				assert.True(t, isRotation(step.Exp.Arg(0).Args(), cycle), step.Exp.String())
				//
				found = true
			}
		}
		//
		assert.True(t, found)
	}
}

func Test_Eliminate_02(t *testing.T) {
	// Elimination is deterministic
	g := testGraph{
		"A": {{"B", la}, {"C", lb}, {"A", lc}},
		"B": {{"C", lp}, {"A", lq}},
		"C": {{"B", lr}, {"C", ls}, {"A", la}},
	}
	nodes := []string{"A", "B", "C"}
	//
	expected := stepStrings(Eliminate[string](g, nodes))
	//
	for range 10 {
		if diff := cmp.Diff(expected, stepStrings(Eliminate[string](g, nodes))); diff != "" {
			t.Errorf("nondeterministic elimination (-want +got):\n%s", diff)
		}
	}
}

func Test_Eliminate_03(t *testing.T) {
	// Missing self-loops are never starred
	g := testGraph{"A": {{"B", la}}, "B": {}}
	assert.Empty(t, Eliminate[string](g, []string{"A"}))
	checkSequence(t, Eliminate[string](g, []string{"A", "B"}), "(A, B, recall_in_a)")
	// Present self-loops are
	g = testGraph{"A": {{"A", la}}}
	checkSequence(t, Eliminate[string](g, []string{"A"}), "(A, A, (recall_in_a)*)")
}

func Test_Eliminate_04(t *testing.T) {
	// Parallel edges are combined
	g := testGraph{"A": {{"B", la}, {"B", lb}, {"B", la}}, "B": {}}
	checkSequence(t, Eliminate[string](g, []string{"A", "B"}), "(A, B, recall_in_a|recall_in_b)")
	// Subtyping edges give the empty path
	g = testGraph{"A": {{"B", label.One()}}, "B": {}}
	checkSequence(t, Eliminate[string](g, []string{"A", "B"}), "(A, B, ε)")
}

// ===================================================================
// Path Sequences
// ===================================================================

func Test_PathSequence_00(t *testing.T) {
	g := diamond()
	//
	checkSequence(t, PathSequence[string](g, []string{"S", "X", "Y", "T"}),
		"(S, Y, recall_in_b)",
		"(S, X, recall_in_a)",
		"(Y, T, forget_store)",
		"(X, T, forget_load)")
}

func Test_PathSequence_01(t *testing.T) {
	// Edges entering a component precede its own sequence
	g := testGraph{
		"S": {{"A", lp}},
		"A": {{"B", la}},
		"B": {{"A", lb}, {"T", lq}},
		"T": {},
	}
	//
	checkSequence(t, PathSequence[string](g, []string{"S", "A", "B", "T"}),
		"(S, A, forget_load)",
		"(A, B, recall_in_a)",
		"(B, B, (recall_in_b.recall_in_a)*)",
		"(B, A, recall_in_b)",
		"(B, T, forget_store)")
}

// ===================================================================
// Solving
// ===================================================================

func Test_Solve_00(t *testing.T) {
	// Reachability
	summary := Solve("S", []Step[string]{{"S", "T1", node(la)}})
	//
	assert.True(t, summary.Get("T1").Equals(node(la)))
	assert.True(t, summary.Get("S").IsEmpty())
	assert.True(t, summary.Get("T2").IsNull())
	assert.Equal(t, uint(1), summary.Size())
}

func Test_Solve_01(t *testing.T) {
	// Accumulation
	a, b := node(la), node(lb)
	summary := Solve("S", []Step[string]{{"S", "M", a}, {"M", "T", b}})
	//
	assert.True(t, summary.Get("T").Equals(rexp.Simplify(rexp.Concat(a, b))))
	assert.Equal(t, "S -> M: recall_in_a\nS -> T: recall_in_a.recall_in_b\n", summary.String())
}

func Test_Solve_02(t *testing.T) {
	// Diamond
	var (
		g       = diamond()
		summary = Solve("S", PathSequence[string](g, []string{"S", "X", "Y", "T"}))
	)
	//
	expected := rexp.NewOr(rexp.NewAnd(node(la), node(lp)), rexp.NewAnd(node(lb), node(lq)))
	assert.True(t, summary.Get("T").Equals(expected), summary.Get("T").String())
	// Nothing reaches the source
	summary = Solve("T", PathSequence[string](g, []string{"S", "X", "Y", "T"}))
	assert.Equal(t, uint(0), summary.Size())
}

func Test_Solve_03(t *testing.T) {
	// Self-loop with exit
	g := testGraph{
		"M": {{"M", lr}, {"T", ls}},
		"T": {},
	}
	summary := Solve("M", PathSequence[string](g, []string{"M", "T"}))
	//
	expected := rexp.NewAnd(rexp.Star(node(lr)), node(ls))
	assert.True(t, summary.Get("T").Equals(expected), summary.Get("T").String())
	assert.True(t, summary.Get("M").Equals(rexp.Star(node(lr))))
}

func Test_Solve_04(t *testing.T) {
	// Three cycle
	g := testGraph{
		"A": {{"B", la}},
		"B": {{"C", lb}},
		"C": {{"A", lc}},
	}
	var (
		a, b, c = node(la), node(lb), node(lc)
		star    = rexp.Star(rexp.NewAnd(c, a, b))
		summary = Solve("A", Eliminate[string](g, []string{"A", "B", "C"}))
	)
	//
	assert.True(t, summary.Get("B").Equals(rexp.NewOr(a, rexp.NewAnd(a, b, star, c, a))))
	assert.True(t, summary.Get("C").Equals(rexp.NewAnd(a, b, star)))
	assert.True(t, summary.Get("A").Equals(rexp.NewOr(rexp.Empty(), rexp.NewAnd(a, b, star, c))))
}

func Test_Solve_05(t *testing.T) {
	// Defaults are not stored
	summary := Solve("S", []Step[string]{{"S", "S", rexp.Empty()}, {"X", "T", node(la)}})
	//
	assert.Equal(t, uint(0), summary.Size())
	assert.Empty(t, summary.Entries())
}

func Test_Summary_00(t *testing.T) {
	summary := Solve("S", []Step[string]{{"S", "M", node(la)}, {"M", "T", node(lb)}})
	lower := Map(summary, func(s string) string { return s + "'" })
	//
	assert.Equal(t, "S'", lower.Source())
	assert.Equal(t, "S' -> M': recall_in_a\nS' -> T': recall_in_a.recall_in_b\n", lower.String())
}

func Test_Solve_06(t *testing.T) {
	// Solving a whole-graph path sequence from any source reaches exactly
	// those nodes reachable in the graph, including graphs with several
	// components feeding into one another.
	var (
		rng    = rand.New(rand.NewPCG(1, 7))
		labels = []label.EdgeLabel{la, lb, lc, lp, lq, lr, ls}
	)
	//
	for i := range 100 {
		g, nodes := randomGraph(rng, 2+rng.IntN(6), labels)
		sequence := PathSequence[string](g, nodes)
		//
		for _, src := range nodes {
			summary := Solve(src, sequence)
			reachable := reachableFrom(g, src)
			//
			for _, dst := range nodes {
				assert.Equal(t, reachable[dst], !summary.Get(dst).IsNull(), "graph %d: %s to %s", i, src, dst)
			}
		}
	}
}

// ===================================================================
// Helpers
// ===================================================================

type testGraph map[string][]graph.Edge[string]

func (p testGraph) Children(node string) []graph.Edge[string] {
	return p[node]
}

// S -a-> X -p-> T and S -b-> Y -q-> T
func diamond() testGraph {
	return testGraph{
		"S": {{"X", la}, {"Y", lb}},
		"X": {{"T", lp}},
		"Y": {{"T", lq}},
		"T": {},
	}
}

func node(l label.EdgeLabel) *rexp.Exp {
	return rexp.Node(l)
}

func stepStrings[N comparable](sequence []Step[N]) []string {
	strs := make([]string, len(sequence))
	//
	for i, s := range sequence {
		strs[i] = s.String()
	}
	//
	return strs
}

func checkSequence[N comparable](t *testing.T, sequence []Step[N], expected ...string) {
	if diff := cmp.Diff(expected, stepStrings(sequence)); diff != "" {
		t.Errorf("unexpected path sequence (-want +got):\n%s", diff)
	}
}

func isRotation(items []*rexp.Exp, cycle []*rexp.Exp) bool {
	if len(items) != len(cycle) {
		return false
	}
	//
	for i := range cycle {
		rotated := append(slices.Clone(cycle[i:]), cycle[:i]...)
		//
		if slices.EqualFunc(items, rotated, (*rexp.Exp).Equals) {
			return true
		}
	}
	//
	return false
}

// Construct a graph with a given number of nodes, where each ordered pair of
// nodes is connected with probability one third.
func randomGraph(rng *rand.Rand, n int, labels []label.EdgeLabel) (testGraph, []string) {
	var (
		g     = make(testGraph)
		nodes = make([]string, n)
	)
	//
	for i := range n {
		nodes[i] = fmt.Sprintf("N%d", i)
	}
	//
	for _, from := range nodes {
		g[from] = nil
		//
		for _, to := range nodes {
			if rng.IntN(3) == 0 {
				g[from] = append(g[from], graph.Edge[string]{Target: to, Label: labels[rng.IntN(len(labels))]})
			}
		}
	}
	//
	return g, nodes
}

// Determine the nodes reachable from a given node (including itself).
func reachableFrom(g testGraph, src string) map[string]bool {
	var (
		visited  = map[string]bool{src: true}
		worklist = []string{src}
	)
	//
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		//
		for _, e := range g.Children(n) {
			if !visited[e.Target] {
				visited[e.Target] = true
				worklist = append(worklist, e.Target)
			}
		}
	}
	//
	return visited
}
