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
package hash

import (
	"fmt"
	"strings"
)

// Set defines a generic hash set whose items implement Hasher, such as type
// variables or saturation facts.
type Set[T Hasher[T]] struct {
	items Map[T, struct{}]
}

// NewSet creates a new set with a given initial capacity.
func NewSet[T Hasher[T]](size uint) *Set[T] {
	return &Set[T]{*NewMap[T, struct{}](size)}
}

// Size returns the number of unique items stored in this set.
func (p *Set[T]) Size() uint {
	return p.items.Size()
}

// Insert a new item into this set, returning true if it was already contained
// and false otherwise.
func (p *Set[T]) Insert(item T) bool {
	return p.items.Insert(item, struct{}{})
}

// Contains checks whether the given item is contained within this set, or not.
func (p *Set[T]) Contains(item T) bool {
	return p.items.ContainsKey(item)
}

// Items returns the items stored in this set.  Observe that the order in which
// items are returned is unspecified.
func (p *Set[T]) Items() []T {
	return p.items.Keys()
}

func (p *Set[T]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, item := range p.Items() {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%v", any(item)))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
