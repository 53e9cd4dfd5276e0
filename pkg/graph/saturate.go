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
	"cmp"
	"slices"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/util/collection/hash"
	log "github.com/sirupsen/logrus"
)

// Saturate adds shortcut subtyping edges to this graph.  Specifically, whenever
// a node z can reach a node x via a path which forgets some label l and then
// follows only subtyping edges, and x recalls l to reach y, then an edge z --1->
// y is added.  Furthermore, a store reaching either variance of x reaches the
// other as a load, which accounts for values flowing through memory.  This
// repeats until no more edges can be added, and returns the number of edges
// added.
func (p *ConstraintGraph) Saturate() uint {
	var (
		reaching = make(map[NodeID]*hash.Set[reach])
		nodes    = p.Nodes()
		added    uint
		rounds   uint
	)
	// Initialise reaching forgets
	for _, x := range nodes {
		for _, e := range p.Children(x) {
			if e.Label.Kind() == label.FORGET {
				addReach(reaching, e.Target, reach{e.Label.Field(), x})
			}
		}
	}
	//
	for changed := true; changed; rounds++ {
		changed = false
		//
		for _, x := range nodes {
			rx := reachingFrom(reaching, x)
			//
			for _, e := range p.Children(x) {
				switch e.Label.Kind() {
				case label.ONE:
					for _, r := range rx {
						changed = addReach(reaching, e.Target, r) || changed
					}
				case label.RECALL:
					for _, r := range rx {
						if r.origin == e.Target || r.field.Cmp(e.Label.Field()) != 0 {
							continue
						} else if p.AddEdge(r.origin, e.Target, label.One()) {
							added++
							changed = true
						}
					}
				}
			}
			// Stores reaching one variance are loads at the other
			inverse, ok := p.index.Get(p.nodes[x].key.Inverse())
			//
			for _, r := range rx {
				if _, store := r.field.(label.Store); store && ok {
					changed = addReach(reaching, p.Find(inverse), reach{label.LoadLabel(), r.origin}) || changed
				}
			}
		}
	}
	//
	log.Debugf("saturation added %d edges in %d rounds", added, rounds)
	//
	return added
}

// Reach records that a given field label was forgotten at an origin node, and
// reaches some other node via subtyping edges only.
type reach struct {
	field  label.FieldLabel
	origin NodeID
}

// Equals implementation for the hash.Hasher interface.
func (p reach) Equals(other reach) bool {
	return p.origin == other.origin && p.field.Cmp(other.field) == 0
}

// Hash implementation for the hash.Hasher interface.
func (p reach) Hash() uint64 {
	return hash.Combine(p.field.Hash(), uint64(p.origin))
}

func addReach(reaching map[NodeID]*hash.Set[reach], node NodeID, r reach) bool {
	set, ok := reaching[node]
	//
	if !ok {
		set = hash.NewSet[reach](4)
		reaching[node] = set
	}
	// Insert returns true if already present
	return !set.Insert(r)
}

// Get the forgets reaching a given node in a deterministic order, such that
// edges are always added in the same order.
func reachingFrom(reaching map[NodeID]*hash.Set[reach], node NodeID) []reach {
	set, ok := reaching[node]
	//
	if !ok {
		return nil
	}
	//
	items := set.Items()
	//
	slices.SortFunc(items, func(l, r reach) int {
		if c := cmp.Compare(l.origin, r.origin); c != 0 {
			return c
		}
		//
		return l.field.Cmp(r.field)
	})
	//
	return items
}
