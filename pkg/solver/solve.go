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
	"strings"

	"github.com/consensys/go-retypd/pkg/rexp"
)

// Solve folds a given path sequence from a given source node, producing a
// summary of the paths from that source to every node it reaches.  Initially,
// the source reaches itself via the empty path and nothing else.  Then, for
// each step (From, To, E) in order: a self-loop (From == To) extends the paths
// to From with E; otherwise, paths to From extended with E are added to the
// paths to To.
func Solve[N comparable](source N, sequence []Step[N]) *Summary[N] {
	summary := newSummary(source)
	//
	for _, step := range sequence {
		var (
			from = summary.Get(step.From)
			exp  *rexp.Exp
		)
		//
		if from.IsNull() {
			// Nothing to propagate
			continue
		} else if step.From == step.To {
			exp = rexp.Simplify(rexp.Concat(from, step.Exp))
		} else {
			through := rexp.Simplify(rexp.Concat(from, step.Exp))
			exp = rexp.Simplify(rexp.Union(summary.Get(step.To), through))
		}
		//
		summary.set(step.To, exp)
	}
	//
	return summary
}

// Summary records the paths from a given source node to every node it reaches,
// as determined by solving a path sequence.  Only entries which differ from
// their defaults are stored.
type Summary[N comparable] struct {
	source N
	paths  map[N]*rexp.Exp
	// Targets in order of first assignment
	order   []N
	ordered map[N]bool
}

func newSummary[N comparable](source N) *Summary[N] {
	return &Summary[N]{source: source, paths: make(map[N]*rexp.Exp), ordered: make(map[N]bool)}
}

// Source returns the source node of this summary.
func (p *Summary[N]) Source() N {
	return p.source
}

// Get returns the paths from the source to a given target.  If no entry is
// stored, then this is Empty for the source itself and Null otherwise.
func (p *Summary[N]) Get(target N) *rexp.Exp {
	if e, ok := p.paths[target]; ok {
		return e
	} else if target == p.source {
		return rexp.Empty()
	}
	//
	return rexp.Null()
}

// Size returns the number of stored entries.
func (p *Summary[N]) Size() uint {
	return uint(len(p.paths))
}

// Entries returns the stored entries of this summary, in order of first
// assignment.
func (p *Summary[N]) Entries() []Step[N] {
	var entries []Step[N]
	//
	for _, target := range p.order {
		if e, ok := p.paths[target]; ok {
			entries = append(entries, Step[N]{p.source, target, e})
		}
	}
	//
	return entries
}

// Map returns a summary whose nodes are transformed by a given function, where
// the function must be injective over the nodes of this summary.
func Map[N comparable, M comparable](summary *Summary[N], fn func(N) M) *Summary[M] {
	result := newSummary(fn(summary.source))
	//
	for _, e := range summary.Entries() {
		result.set(fn(e.To), e.Exp)
	}
	//
	return result
}

func (p *Summary[N]) String() string {
	var builder strings.Builder
	//
	for _, e := range p.Entries() {
		builder.WriteString(fmt.Sprintf("%v -> %v: %s\n", e.From, e.To, e.Exp.String()))
	}
	//
	return builder.String()
}

func (p *Summary[N]) set(target N, exp *rexp.Exp) {
	var def = rexp.Null()
	//
	if target == p.source {
		def = rexp.Empty()
	}
	//
	if exp.Equals(def) {
		delete(p.paths, target)
		return
	} else if !p.ordered[target] {
		p.order = append(p.order, target)
		p.ordered[target] = true
	}
	//
	p.paths[target] = exp
}
