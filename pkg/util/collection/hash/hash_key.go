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

// Hasher provides a generic definition of a hashing function suitable for use
// within a hash set or map.  Hashcodes are not assumed to uniquely identify
// items, hence equality is required as well.  This matters for structural
// types, such as path expressions, where collisions are entirely possible.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Combine a sequence of hashcodes into one, using the FNV1a scheme.
func Combine(hashes ...uint64) uint64 {
	hash := offset64
	//
	for _, c := range hashes {
		hash ^= c
		hash *= prime64
	}
	//
	return hash
}

// String computes the FNV1a hashcode of a given string.
func String(s string) uint64 {
	hash := offset64
	//
	for i := range len(s) {
		hash ^= uint64(s[i])
		hash *= prime64
	}
	//
	return hash
}
