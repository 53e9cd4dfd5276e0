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
	"github.com/consensys/go-retypd/pkg/graph"
	"github.com/consensys/go-retypd/pkg/rexp"
	log "github.com/sirupsen/logrus"
)

// PathSequence computes a path sequence for the subgraph induced by a given set
// of nodes, which can be solved from any source node.  The subgraph is first
// decomposed into its strongly connected components, which are then visited in
// topological order.
func PathSequence[N comparable](g graph.Graph[N], nodes []N) []Step[N] {
	return SequenceComponents(g, graph.Components(g, nodes))
}

// SequenceComponents computes a path sequence from a given decomposition of a
// subgraph into strongly connected components, which must be in topological
// order.  For each component, the edges entering it from earlier components are
// given first, followed by the sequence obtained from eliminating the
// component itself.  This allows callers to inspect (and bound) components
// before the cost of eliminating them is incurred.
func SequenceComponents[N comparable](g graph.Graph[N], components [][]N) []Step[N] {
	var (
		component = make(map[N]int)
		entering  = make([][]Step[N], len(components))
		sequence  []Step[N]
		largest   int
	)
	//
	for i, c := range components {
		for _, n := range c {
			component[n] = i
		}
		//
		largest = max(largest, len(c))
	}
	// Collect edges between components
	for i, c := range components {
		for _, n := range c {
			for _, e := range g.Children(n) {
				if j, ok := component[e.Target]; ok && j != i {
					entering[j] = addStep(entering[j], n, e.Target, rexp.Label(e.Label))
				}
			}
		}
	}
	//
	for i, c := range components {
		sequence = append(sequence, entering[i]...)
		sequence = append(sequence, Eliminate(g, c)...)
	}
	//
	log.Debugf("path sequence of %d steps over %d components (largest %d)", len(sequence), len(components), largest)
	//
	return sequence
}

// Add a step to a given sequence, combining it with an existing step between
// the same nodes (if one exists).
func addStep[N comparable](steps []Step[N], from N, to N, exp *rexp.Exp) []Step[N] {
	for i, s := range steps {
		if s.From == from && s.To == to {
			steps[i].Exp = rexp.Simplify(rexp.Union(s.Exp, exp))
			return steps
		}
	}
	//
	return append(steps, Step[N]{from, to, exp})
}
