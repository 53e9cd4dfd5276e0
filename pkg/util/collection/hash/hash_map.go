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

// Map defines a generic hash map whose keys implement Hasher.  Collisions are
// handled using buckets, rather than assuming distinct keys have distinct
// hashcodes.
type Map[K Hasher[K], V any] struct {
	buckets map[uint64][]entry[K, V]
	size    uint
}

type entry[K any, V any] struct {
	key   K
	value V
}

// NewMap creates a new map with a given initial capacity.
func NewMap[K Hasher[K], V any](size uint) *Map[K, V] {
	return &Map[K, V]{make(map[uint64][]entry[K, V], size), 0}
}

// Size returns the number of unique keys stored in this map.
func (p *Map[K, V]) Size() uint {
	return p.size
}

// Insert a key into this map with a given value, returning true if it was
// already contained (in which case its value is replaced) and false otherwise.
func (p *Map[K, V]) Insert(key K, value V) bool {
	var (
		hash   = key.Hash()
		bucket = p.buckets[hash]
	)
	//
	for i := range bucket {
		if key.Equals(bucket[i].key) {
			bucket[i].value = value
			return true
		}
	}
	//
	p.buckets[hash] = append(bucket, entry[K, V]{key, value})
	p.size++
	//
	return false
}

// ContainsKey checks whether the given key is contained within this map, or not.
func (p *Map[K, V]) ContainsKey(key K) bool {
	_, ok := p.Get(key)
	return ok
}

// Get the value associated with a given key, or return false if there is none.
func (p *Map[K, V]) Get(key K) (V, bool) {
	var empty V
	//
	for _, e := range p.buckets[key.Hash()] {
		if key.Equals(e.key) {
			return e.value, true
		}
	}
	//
	return empty, false
}

// Keys returns the keys of this map.  Observe that the order in which keys
// are returned is unspecified.
func (p *Map[K, V]) Keys() []K {
	keys := make([]K, 0, p.size)
	//
	for _, bucket := range p.buckets {
		for _, e := range bucket {
			keys = append(keys, e.key)
		}
	}
	//
	return keys
}

func (p *Map[K, V]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, k := range p.Keys() {
		v, _ := p.Get(k)
		//
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%v:=%v", any(k), any(v)))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
