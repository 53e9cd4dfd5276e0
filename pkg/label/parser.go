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
package label

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFieldLabel parses a field label from its string representation (i.e.
// the inverse of String).  Recognised forms are "in_NAME", "out_NAME", "load",
// "store" and "σSIZE@OFFSET" optionally followed by one of the bounds "[*]",
// "[nullterm]" or "[N]".
func ParseFieldLabel(s string) (FieldLabel, error) {
	switch {
	case s == "load":
		return LoadLabel(), nil
	case s == "store":
		return StoreLabel(), nil
	case strings.HasPrefix(s, "in_") && len(s) > 3:
		return InLabel(s[3:]), nil
	case strings.HasPrefix(s, "out_") && len(s) > 4:
		return OutLabel(s[4:]), nil
	case strings.HasPrefix(s, "σ"):
		return parseDeref(s, strings.TrimPrefix(s, "σ"))
	}
	//
	return nil, fmt.Errorf("unknown field label \"%s\"", s)
}

func parseDeref(original string, s string) (FieldLabel, error) {
	var (
		bound = NoBound()
		err   error
	)
	// Split off bound (if present)
	if i := strings.IndexByte(s, '['); i >= 0 {
		if bound, err = parseBound(s[i:]); err != nil {
			return nil, err
		}
		//
		s = s[:i]
	}
	// Split size from offset
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed dereference \"%s\"", original)
	}
	//
	size, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid dereference size \"%s\"", original)
	}
	//
	offset, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid dereference offset \"%s\"", original)
	}
	// Done
	return DerefLabel(uint(size), offset, bound), nil
}

func parseBound(s string) (Bound, error) {
	switch s {
	case "[*]":
		return Unbounded(), nil
	case "[nullterm]":
		return NullTerminated(), nil
	}
	//
	if strings.HasSuffix(s, "]") {
		if n, err := strconv.ParseUint(s[1:len(s)-1], 10, 64); err == nil {
			return FixedBound(n), nil
		}
	}
	//
	return NoBound(), fmt.Errorf("invalid bound \"%s\"", s)
}
