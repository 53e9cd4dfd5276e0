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
	"strings"
)

// String returns a deterministic textual form of this expression.
// Concatenations are separated by ".", unions by "|" (in canonical order) and
// repetition is written "(e)*".  Nested unions and concatenations are
// parenthesised.  For example, "recall_load.(forget_σ4@0|forget_σ8@0)".
func (p *Exp) String() string {
	var builder strings.Builder
	//
	p.write(&builder, false)
	//
	return builder.String()
}

func (p *Exp) write(builder *strings.Builder, nested bool) {
	switch p.kind {
	case NULL:
		builder.WriteString("∅")
	case EMPTY:
		builder.WriteString("ε")
	case NODE:
		builder.WriteString(p.label.String())
	case STAR:
		builder.WriteString("(")
		p.args[0].write(builder, false)
		builder.WriteString(")*")
	case OR:
		p.writeArgs(builder, "|", nested)
	case AND:
		p.writeArgs(builder, ".", nested)
	default:
		panic(fmt.Sprintf("unknown expression kind (%d)", p.kind))
	}
}

func (p *Exp) writeArgs(builder *strings.Builder, sep string, nested bool) {
	if nested {
		builder.WriteString("(")
	}
	//
	for i, arg := range p.args {
		if i != 0 {
			builder.WriteString(sep)
		}
		//
		arg.write(builder, true)
	}
	//
	if nested {
		builder.WriteString(")")
	}
}
