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
	"github.com/consensys/go-retypd/pkg/label"
	log "github.com/sirupsen/logrus"
)

// CollapseEquivalences merges together nodes which are mutual subtypes of each
// other.  That is, every strongly connected component formed only from
// subtyping edges becomes a single equivalence class.  Edges of merged nodes
// are inherited by the class representative, and subtyping self-loops are
// subsequently dropped.  This returns the number of nodes merged away.
func (p *ConstraintGraph) CollapseEquivalences() uint {
	var (
		subtyping = Filter[NodeID](p, label.EdgeLabel.IsOne)
		merged    uint
	)
	//
	for _, component := range Components(subtyping, p.Nodes()) {
		for _, n := range component[1:] {
			p.Merge(component[0], n)
			merged++
		}
	}
	//
	log.Debugf("collapsed %d equivalent nodes", merged)
	//
	return merged
}
