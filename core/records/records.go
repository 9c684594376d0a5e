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
	"context"
	"reflect"
	"strings"
)

// Record is one item of a record collection. Records are opaque to the
// table layer; cell templates and sources interpret them.
type Record = any

// Source is a record collection that can be counted, sliced, iterated and
// ordered. Implementations must honor ctx on every call that does I/O.
type Source interface {
	// Count returns the number of records in the source.
	Count(ctx context.Context) (int, error)

	// Slice returns up to limit records starting at offset.
	Slice(ctx context.Context, offset, limit int) ([]Record, error)

	// Each calls fn for every record in order and stops at the first error.
	Each(ctx context.Context, fn func(Record) error) error

	// OrderBy returns a source ordered by field. The receiver is unchanged.
	OrderBy(field string, desc bool) Source
}

// Locator is implemented by records that have a canonical location.
type Locator interface {
	CanonicalURL() string
}

// CanonicalLocation returns the canonical location of r, if it has one.
func CanonicalLocation(r Record) (string, bool) {
	l, ok := r.(Locator)
	if !ok {
		return "", false
	}
	u := l.CanonicalURL()
	return u, u != ""
}

// Fielder is implemented by records that expose fields by name.
type Fielder interface {
	Field(name string) (any, bool)
}

// FieldValue returns the value of the named field of r.
//
// Maps with string keys and Fielder records are looked up directly. Structs
// (or pointers to structs) match a `db` tag first, then the field name
// ignoring case and underscores, so "created_at" finds CreatedAt.
func FieldValue(r Record, name string) (any, bool) {
	switch v := r.(type) {
	case nil:
		return nil, false
	case Fielder:
		return v.Field(name)
	case map[string]any:
		val, ok := v[name]
		return val, ok
	case map[string]string:
		val, ok := v[name]
		return val, ok
	}

	rv := reflect.ValueOf(r)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	rt := rv.Type()
	folded := foldName(name)
	match := -1
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("db"), ","); tag == name {
			return rv.Field(i).Interface(), true
		}
		if match < 0 && foldName(f.Name) == folded {
			match = i
		}
	}
	if match < 0 {
		return nil, false
	}
	return rv.Field(match).Interface(), true
}

func foldName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}
