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
package infer

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/consensys/go-retypd/pkg/graph"
	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/rexp"
	"github.com/consensys/go-retypd/pkg/schema"
	"github.com/consensys/go-retypd/pkg/solver"
	"github.com/consensys/go-retypd/pkg/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrComponentTooLarge indicates a unit was aborted because its constraint
// graph contains a strongly connected component exceeding the configured
// bound.
var ErrComponentTooLarge = errors.New("strongly connected component too large")

// Result holds the constraint graph constructed for a given unit, along with
// its path sequence.  The sequence can be solved from any node of the graph.
type Result struct {
	unit     *schema.Unit
	graph    *graph.ConstraintGraph
	sequence []solver.Step[graph.NodeID]
	table    *rexp.Table
}

// Unit returns the unit from which this result was inferred.
func (p *Result) Unit() *schema.Unit { return p.unit }

// Graph returns the constraint graph of this result.
func (p *Result) Graph() *graph.ConstraintGraph { return p.graph }

// Sequence returns the path sequence of this result.
func (p *Result) Sequence() []solver.Step[graph.NodeID] { return p.sequence }

// Table returns the table of path expressions shared by this result.
func (p *Result) Table() *rexp.Table { return p.table }

// Solve computes the paths from the covariant node of a given variable to every
// node it reaches, where nodes are identified by their keys (e.g. "x.load⊕").
// This returns false if the variable does not occur in the graph.
func (p *Result) Solve(source schema.DerivedTypeVariable) (*solver.Summary[string], bool) {
	id, ok := p.graph.Lookup(source, label.COVARIANT)
	//
	if !ok {
		return nil, false
	}
	//
	summary := solver.Solve(id, p.sequence)
	//
	return solver.Map(summary, func(n graph.NodeID) string {
		return p.graph.Node(n).String()
	}), true
}

// Sources returns the base variables of this result's unit, which are the
// natural sources from which to solve.
func (p *Result) Sources() []schema.DerivedTypeVariable {
	var sources []schema.DerivedTypeVariable
	//
	for _, v := range p.unit.Variables() {
		if v.Len() == 0 {
			sources = append(sources, v)
		}
	}
	//
	return sources
}

// Infer constructs and sequences the constraint graph for a given unit.  This
// fails if the graph contains a strongly connected component larger than
// permitted by the configuration.
func Infer(unit *schema.Unit, config Config) (*Result, error) {
	stats := util.NewPerfStats()
	g := graph.NewFromConstraints(unit.Constraints...)
	//
	if config.Saturate {
		g.Saturate()
	}
	//
	if config.CollapseEquivalences {
		g.CollapseEquivalences()
	}
	//
	components := graph.Components(g, g.Nodes())
	//
	for _, c := range components {
		if config.MaxComponentSize != 0 && uint(len(c)) > config.MaxComponentSize {
			return nil, fmt.Errorf("unit %s has %d nodes in one component: %w", unit.Name, len(c), ErrComponentTooLarge)
		}
	}
	//
	sequence := solver.SequenceComponents(g, components)
	// Share path expressions across the unit
	table := rexp.NewTable()
	//
	for i := range sequence {
		sequence[i].Exp = table.Intern(sequence[i].Exp)
	}
	//
	stats.Log(fmt.Sprintf("Inferring unit %s (%d nodes, %d steps)", unit.Name, len(g.Nodes()), len(sequence)))
	//
	return &Result{unit, g, sequence, table}, nil
}

// InferAll infers a given set of units in parallel, where each unit has its own
// independent graph.  Results are returned in the order of the given units.
// The first failure cancels any units not yet started, and is returned.
func InferAll(ctx context.Context, units []*schema.Unit, config Config) ([]*Result, error) {
	var (
		results = make([]*Result, len(units))
		workers = int(config.Workers)
	)
	//
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	//
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	//
	for i, unit := range units {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			//
			result, err := Infer(unit, config)
			results[i] = result
			//
			return err
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	log.Debugf("inferred %d units using %d workers", len(units), workers)
	//
	return results, nil
}
