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

	"github.com/consensys/go-retypd/pkg/graph"
	"github.com/consensys/go-retypd/pkg/rexp"
)

// Step is a single entry of a path sequence, stating that the paths from one
// node to another are described by a given path expression.
type Step[N comparable] struct {
	From N
	To   N
	Exp  *rexp.Exp
}

func (p Step[N]) String() string {
	return fmt.Sprintf("(%v, %v, %s)", p.From, p.To, p.Exp.String())
}

// Eliminate computes a path sequence for the subgraph induced by a given set of
// nodes, which is typically a single strongly connected component.  This
// follows Tarjan's elimination method: each node in turn (in the given order)
// is eliminated by folding its self-loop (if any) into a Star, and routing
// every path through it between later nodes directly.  The resulting sequence
// contains every non-Null entry, first those where the source precedes (or is)
// the target ordered by ascending source, and then the remainder ordered by
// descending source.  The output is therefore determined entirely by the order
// of nodes and the order of edges returned by the graph.
func Eliminate[N comparable](g graph.Graph[N], nodes []N) []Step[N] {
	var (
		n     = len(nodes)
		index = make(map[N]int, n)
		paths = make([][]*rexp.Exp, n)
	)
	//
	for i, node := range nodes {
		index[node] = i
		paths[i] = make([]*rexp.Exp, n)
		//
		for j := range n {
			paths[i][j] = rexp.Null()
		}
	}
	// Initialise direct paths, where parallel edges are combined.
	for u, node := range nodes {
		for _, e := range g.Children(node) {
			if w, ok := index[e.Target]; ok {
				paths[u][w] = rexp.Simplify(rexp.Union(paths[u][w], rexp.Label(e.Label)))
			}
		}
	}
	// Eliminate each node in turn
	for v := range n {
		loop := paths[v][v]
		//
		if !loop.IsNull() {
			loop = rexp.Simplify(rexp.Star(loop))
			paths[v][v] = loop
		}
		//
		for u := v + 1; u < n; u++ {
			if paths[u][v].IsNull() {
				continue
			} else if !loop.IsNull() {
				paths[u][v] = rexp.Simplify(rexp.Concat(paths[u][v], loop))
			}
			//
			for w := v + 1; w < n; w++ {
				if !paths[v][w].IsNull() {
					through := rexp.Simplify(rexp.Concat(paths[u][v], paths[v][w]))
					paths[u][w] = rexp.Simplify(rexp.Union(paths[u][w], through))
				}
			}
		}
	}
	//
	return sequenceOf(nodes, paths)
}

// Extract the non-null entries of an eliminated path matrix in the order
// required for solving.
func sequenceOf[N comparable](nodes []N, paths [][]*rexp.Exp) []Step[N] {
	var (
		n        = len(nodes)
		sequence []Step[N]
	)
	// Ascending entries
	for u := range n {
		for w := u; w < n; w++ {
			if !paths[u][w].IsNull() {
				sequence = append(sequence, Step[N]{nodes[u], nodes[w], paths[u][w]})
			}
		}
	}
	// Descending entries
	for u := n - 1; u >= 0; u-- {
		for w := range u {
			if !paths[u][w].IsNull() {
				sequence = append(sequence, Step[N]{nodes[u], nodes[w], paths[u][w]})
			}
		}
	}
	//
	return sequence
}
