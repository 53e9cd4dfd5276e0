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
package rexp

import (
	"fmt"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/util"
)

// FirstNode determines the label of the first edge taken by every path
// described by this expression.  If no such label exists (e.g. the expression
// admits the empty path, or alternatives begin with different labels) then
// None is returned.
func FirstNode(e *Exp) util.Option[label.EdgeLabel] {
	return endNode(e, true)
}

// LastNode determines the label of the final edge taken by every path
// described by this expression, or None if no such label exists.
func LastNode(e *Exp) util.Option[label.EdgeLabel] {
	return endNode(e, false)
}

func endNode(e *Exp, first bool) util.Option[label.EdgeLabel] {
	switch e.kind {
	case NULL, EMPTY, STAR:
		// A star may repeat zero times, hence its ends are not determined.
		return util.None[label.EdgeLabel]()
	case NODE:
		return util.Some(e.label)
	case AND:
		return endNodeOfSequence(e.args, first)
	case OR:
		return endNodeOfUnion(e.args, first)
	}
	//
	panic(fmt.Sprintf("unknown expression kind (%d)", e.kind))
}

func endNodeOfSequence(args []*Exp, first bool) util.Option[label.EdgeLabel] {
	n := len(args)
	//
	for i := range n {
		ith := args[i]
		if !first {
			ith = args[n-i-1]
		}
		// Skip over empty paths
		if ith.kind != EMPTY {
			return endNode(ith, first)
		}
	}
	//
	return util.None[label.EdgeLabel]()
}

func endNodeOfUnion(args []*Exp, first bool) util.Option[label.EdgeLabel] {
	var result util.Option[label.EdgeLabel]
	//
	for i, arg := range args {
		ith := endNode(arg, first)
		//
		if ith.IsEmpty() {
			return ith
		} else if i == 0 {
			result = ith
		} else if !result.Unwrap().Equals(ith.Unwrap()) {
			return util.None[label.EdgeLabel]()
		}
	}
	//
	return result
}
