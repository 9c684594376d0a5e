/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package records

import (
	"fmt"
	"math"
	"time"

	"github.com/fvbommel/sortorder"
)

// Compare orders two field values.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
//
// Missing values sort first. Numbers compare by value across integer and
// float kinds, with NaN before every other number. Strings use natural
// order so "item2" sorts before "item10". Values of unrelated kinds
// compare by their formatted text.
func Compare(a, b any) int {
	if a == nil || b == nil {
		return compareNil(a == nil, b == nil)
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return compareStrings(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return compareTimes(x, y)
		}
	case time.Duration:
		if y, ok := b.(time.Duration); ok {
			return compareOrdered(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBools(x, y)
		}
	case []byte:
		if y, ok := b.([]byte); ok {
			return compareStrings(string(x), string(y))
		}
	}

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return compareFloat64s(x, y)
		}
	}

	return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
}

func compareNil(aNil, bNil bool) int {
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	}
	return 1
}

func compareStrings(a, b string) int {
	if a == b {
		return 0
	}
	if sortorder.NaturalLess(a, b) {
		return -1
	}
	if sortorder.NaturalLess(b, a) {
		return 1
	}
	// Naturally equal ("01" and "1"): fall back to byte order.
	if a < b {
		return -1
	}
	return 1
}

func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareFloat64s(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	if aNaN || bNaN {
		return compareNil(aNaN, bNaN)
	}
	return compareOrdered(a, b)
}

func compareOrdered[T int64 | float64 | time.Duration](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
