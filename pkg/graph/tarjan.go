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
package graph

import (
	"slices"

	"github.com/consensys/go-retypd/pkg/util/collection/stack"
)

// Components decomposes the subgraph induced by a given set of nodes into its
// strongly connected components, using Tarjan's algorithm.  Edges leading
// outside of the given nodes are ignored.  Components are returned in
// topological order (i.e. if there is an edge from a node in component i to a
// node in component j, then i <= j).  Within each component, nodes retain the
// order in which they were given.  The result is therefore entirely determined
// by the order of nodes, and the order of edges returned by the graph.
func Components[N comparable](graph Graph[N], nodes []N) [][]N {
	t := tarjan[N]{
		graph: graph,
		order: make(map[N]int, len(nodes)),
		info:  make(map[N]*tarjanInfo, len(nodes)),
		stack: stack.NewStack[N](),
	}
	//
	for i, n := range nodes {
		t.order[n] = i
	}
	//
	for _, n := range nodes {
		if _, ok := t.info[n]; !ok {
			t.strongConnect(n)
		}
	}
	// Tarjan's algorithm emits components in reverse topological order.
	slices.Reverse(t.components)
	//
	return t.components
}

type tarjanInfo struct {
	index   uint
	lowlink uint
	onStack bool
}

type tarjan[N comparable] struct {
	graph      Graph[N]
	order      map[N]int
	info       map[N]*tarjanInfo
	index      uint
	stack      *stack.Stack[N]
	components [][]N
}

func (p *tarjan[N]) strongConnect(v N) {
	vi := &tarjanInfo{p.index, p.index, true}
	p.info[v] = vi
	p.index++
	p.stack.Push(v)
	//
	for _, e := range p.graph.Children(v) {
		w := e.Target
		// Ignore nodes outside the subgraph
		if _, ok := p.order[w]; !ok {
			continue
		}
		//
		if wi, ok := p.info[w]; !ok {
			p.strongConnect(w)
			vi.lowlink = min(vi.lowlink, p.info[w].lowlink)
		} else if wi.onStack {
			vi.lowlink = min(vi.lowlink, wi.index)
		}
	}
	// Check whether v is the root of a component
	if vi.lowlink == vi.index {
		component := p.stack.PopUntil(v)
		//
		for _, w := range component {
			p.info[w].onStack = false
		}
		// Restore the given order of nodes
		slices.SortFunc(component, func(l, r N) int { return p.order[l] - p.order[r] })
		//
		p.components = append(p.components, component)
	}
}
