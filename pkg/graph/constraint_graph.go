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
	"strings"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/schema"
	"github.com/consensys/go-retypd/pkg/util/collection/hash"
	log "github.com/sirupsen/logrus"
)

// NodeID identifies a node within a constraint graph.  Identifiers are
// allocated sequentially in order of insertion, and remain valid for the
// lifetime of the graph (nodes are never deleted).
type NodeID uint

// Node represents a single node of a constraint graph.  Nodes are organised
// into equivalence classes using a union-find structure, where the parent of
// a representative node is itself.
type Node struct {
	key    Key
	parent NodeID
	edges  []Edge[NodeID]
}

// Key returns the key of this node.
func (p *Node) Key() Key { return p.key }

// ConstraintGraph is a directed graph whose nodes are (variance-tagged)
// derived type variables, and whose edges are labelled with either a field
// label being recalled or forgotten, or with one (for subtyping).  Nodes are
// created lazily on first reference and held in an arena, whilst equivalent
// nodes can be merged together.
type ConstraintGraph struct {
	nodes []Node
	// Maps keys to their nodes
	index *hash.Map[Key, NodeID]
	// Arithmetic side constraints
	arithmetic []schema.Constraint
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Graph[NodeID] = &ConstraintGraph{}

// New constructs an empty constraint graph.
func New() *ConstraintGraph {
	return &ConstraintGraph{index: hash.NewMap[Key, NodeID](64)}
}

// NewFromConstraints constructs a constraint graph from a given set of
// constraints.
func NewFromConstraints(constraints ...schema.Constraint) *ConstraintGraph {
	g := New()
	//
	for _, c := range constraints {
		g.AddConstraint(c)
	}
	//
	log.Debugf("constructed constraint graph with %d nodes from %d constraints", g.Size(), len(constraints))
	//
	return g
}

// Size returns the total number of nodes allocated in this graph, including
// those which have since been merged into others.
func (p *ConstraintGraph) Size() uint {
	return uint(len(p.nodes))
}

// Node returns the key of the representative for a given node.
func (p *ConstraintGraph) Node(id NodeID) Key {
	return p.nodes[p.Find(id)].key
}

// Nodes returns the representative nodes of this graph, in order of insertion.
func (p *ConstraintGraph) Nodes() []NodeID {
	var nodes []NodeID
	//
	for i := range p.nodes {
		if p.nodes[i].parent == NodeID(i) {
			nodes = append(nodes, NodeID(i))
		}
	}
	//
	return nodes
}

// Members returns all nodes in the equivalence class of a given node, in order
// of insertion.
func (p *ConstraintGraph) Members(id NodeID) []NodeID {
	var (
		rep     = p.Find(id)
		members []NodeID
	)
	//
	for i := range p.nodes {
		if p.Find(NodeID(i)) == rep {
			members = append(members, NodeID(i))
		}
	}
	//
	return members
}

// Insert ensures both the covariant and contravariant nodes for a given
// variable exist.  Inserting a derived variable x.l additionally inserts x
// (recursively), along with a forget edge from x.l to x and a recall edge in
// the opposite direction for each variance.  The identifier of the covariant
// node is returned.
func (p *ConstraintGraph) Insert(variable schema.DerivedTypeVariable) NodeID {
	id := p.insert(NewKey(variable, label.COVARIANT))
	p.insert(NewKey(variable, label.CONTRAVARIANT))
	//
	return p.Find(id)
}

// Lookup the representative node for a given variable and variance, if it
// exists.
func (p *ConstraintGraph) Lookup(variable schema.DerivedTypeVariable, variance label.Variance) (NodeID, bool) {
	if id, ok := p.index.Get(NewKey(variable, variance)); ok {
		return p.Find(id), true
	}
	//
	return 0, false
}

func (p *ConstraintGraph) insert(key Key) NodeID {
	if id, ok := p.index.Get(key); ok {
		return id
	}
	// Allocate new node
	id := NodeID(len(p.nodes))
	p.nodes = append(p.nodes, Node{key, id, nil})
	p.index.Insert(key, id)
	// Connect with parent (if applicable)
	if parent, field, ok := key.Variable.Parent(); ok {
		pid := p.insert(NewKey(parent, key.Variance.Compose(field.Variance())))
		p.AddEdge(id, pid, label.Forget(field))
		p.AddEdge(pid, id, label.Recall(field))
	}
	//
	return id
}

// Find the representative of the equivalence class containing a given node.
// This performs path compression, such that subsequent queries are faster.
func (p *ConstraintGraph) Find(id NodeID) NodeID {
	root := id
	//
	for p.nodes[root].parent != root {
		root = p.nodes[root].parent
	}
	// Compress path
	for id != root {
		next := p.nodes[id].parent
		p.nodes[id].parent = root
		id = next
	}
	//
	return root
}

// Merge the equivalence classes of two nodes, returning the representative of
// the merged class.  The representative is always whichever of the two
// representatives was inserted first, and it inherits all outgoing edges of
// the other.
func (p *ConstraintGraph) Merge(a NodeID, b NodeID) NodeID {
	ra, rb := p.Find(a), p.Find(b)
	//
	if ra == rb {
		return ra
	} else if rb < ra {
		ra, rb = rb, ra
	}
	//
	p.nodes[rb].parent = ra
	p.nodes[ra].edges = append(p.nodes[ra].edges, p.nodes[rb].edges...)
	p.nodes[rb].edges = nil
	//
	return ra
}

// AddEdge adds a labelled edge between the representatives of two nodes,
// unless an identical edge already exists.  This returns true if the edge was
// added.
func (p *ConstraintGraph) AddEdge(from NodeID, to NodeID, lab label.EdgeLabel) bool {
	from, to = p.Find(from), p.Find(to)
	//
	for _, e := range p.nodes[from].edges {
		if p.Find(e.Target) == to && e.Label.Equals(lab) {
			return false
		}
	}
	//
	p.nodes[from].edges = append(p.nodes[from].edges, Edge[NodeID]{to, lab})
	//
	return true
}

// AddConstraint adds a given constraint to this graph.  A subtyping constraint
// a <= b gives an edge from a⊕ to b⊕, and from b⊖ to a⊖.  Arithmetic
// constraints ensure nodes exist for their operands, and are otherwise
// retained as-is for later phases.
func (p *ConstraintGraph) AddConstraint(constraint schema.Constraint) {
	switch c := constraint.(type) {
	case *schema.SubTypeConstraint:
		p.Insert(c.Sub)
		p.Insert(c.Sup)
		//
		subCo, _ := p.Lookup(c.Sub, label.COVARIANT)
		supCo, _ := p.Lookup(c.Sup, label.COVARIANT)
		subContra, _ := p.Lookup(c.Sub, label.CONTRAVARIANT)
		supContra, _ := p.Lookup(c.Sup, label.CONTRAVARIANT)
		//
		p.AddEdge(subCo, supCo, label.One())
		p.AddEdge(supContra, subContra, label.One())
	case *schema.AddConstraint, *schema.SubConstraint:
		for _, v := range c.Variables() {
			p.Insert(v)
		}
		//
		p.arithmetic = append(p.arithmetic, c)
	default:
		panic(fmt.Sprintf("unknown constraint %s", constraint.String()))
	}
}

// Arithmetic returns the arithmetic constraints added to this graph.
func (p *ConstraintGraph) Arithmetic() []schema.Constraint {
	return p.arithmetic
}

// Children returns the outgoing edges of the equivalence class containing a
// given node.  Targets are given as representatives, duplicate edges are
// removed, and subtyping self-loops (which are trivially satisfied) are
// omitted.  Edges are returned in order of insertion.
func (p *ConstraintGraph) Children(id NodeID) []Edge[NodeID] {
	var (
		rep   = p.Find(id)
		edges []Edge[NodeID]
	)
	//
	for _, e := range p.nodes[rep].edges {
		ne := Edge[NodeID]{p.Find(e.Target), e.Label}
		//
		if ne.Target == rep && ne.Label.IsOne() {
			continue
		} else if !containsEdge(edges, ne) {
			edges = append(edges, ne)
		}
	}
	//
	return edges
}

// EdgeCount returns the number of (distinct) edges between representatives.
func (p *ConstraintGraph) EdgeCount() uint {
	var count uint
	//
	for _, n := range p.Nodes() {
		count += uint(len(p.Children(n)))
	}
	//
	return count
}

func (p *ConstraintGraph) String() string {
	var builder strings.Builder
	//
	for _, n := range p.Nodes() {
		builder.WriteString(p.Node(n).String())
		//
		for _, e := range p.Children(n) {
			builder.WriteString(fmt.Sprintf("\n  -%s-> %s", e.Label.String(), p.Node(e.Target).String()))
		}
		//
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

func containsEdge(edges []Edge[NodeID], edge Edge[NodeID]) bool {
	for _, e := range edges {
		if e.Target == edge.Target && e.Label.Equals(edge.Label) {
			return true
		}
	}
	//
	return false
}
