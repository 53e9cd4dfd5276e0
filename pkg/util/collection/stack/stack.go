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
package stack

// Stack represents a LIFO stack of comparable items, such as the nodes visited
// during a depth-first traversal.
type Stack[T comparable] struct {
	items []T
}

// NewStack returns an empty stack
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// IsEmpty checks whether or not there are still items on the stack
func (p *Stack[T]) IsEmpty() bool {
	return len(p.items) == 0
}

// Len returns the number of items on the stack.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Top returns the item on top of the stack, without removing it.
func (p *Stack[T]) Top() T {
	if len(p.items) == 0 {
		panic("cannot peek empty stack")
	}
	//
	return p.items[len(p.items)-1]
}

// Push a new item onto the stack
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// Pop the last item off the stack
func (p *Stack[T]) Pop() T {
	item := p.Top()
	p.items = p.items[:len(p.items)-1]
	//
	return item
}

// PopUntil pops items off the stack up to, and including, the first occurrence
// of a given item.  Items are returned in the order they were popped.  This
// panics if the item is not on the stack.
func (p *Stack[T]) PopUntil(item T) []T {
	for i := len(p.items) - 1; i >= 0; i-- {
		if p.items[i] == item {
			popped := make([]T, 0, len(p.items)-i)
			//
			for j := len(p.items) - 1; j >= i; j-- {
				popped = append(popped, p.items[j])
			}
			//
			p.items = p.items[:i]
			//
			return popped
		}
	}
	//
	panic("item not on stack")
}
