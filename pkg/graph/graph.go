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
	"fmt"

	"github.com/consensys/go-retypd/pkg/label"
)

// Graph provides read access to a directed graph whose edges are labelled.
// This is the only capability required by the SCC decomposition and the path
// expression solver, hence they can operate over any graph (not just a
// constraint graph).
type Graph[N comparable] interface {
	// Children returns the outgoing edges of a given node.  The order of
	// edges returned must be stable across calls, since it determines the
	// order in which nodes are visited.
	Children(node N) []Edge[N]
}

// Edge represents a labelled edge leading to a given target node.
type Edge[N any] struct {
	Target N
	Label  label.EdgeLabel
}

func (p Edge[N]) String() string {
	return fmt.Sprintf("-%s-> %v", p.Label.String(), p.Target)
}

// Filter returns a view of a graph which retains only those edges accepted by
// a given predicate.
func Filter[N comparable](graph Graph[N], predicate func(label.EdgeLabel) bool) Graph[N] {
	return &filteredGraph[N]{graph, predicate}
}

type filteredGraph[N comparable] struct {
	graph     Graph[N]
	predicate func(label.EdgeLabel) bool
}

func (p *filteredGraph[N]) Children(node N) []Edge[N] {
	var edges []Edge[N]
	//
	for _, e := range p.graph.Children(node) {
		if p.predicate(e.Label) {
			edges = append(edges, e)
		}
	}
	//
	return edges
}
