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

import "errors"

var (
	// ErrUnknownField is returned when a source is asked to order or
	// filter by a field it does not expose.
	ErrUnknownField = errors.New("unknown field")

	// ErrNoColumns is returned by an SQL source created without columns.
	ErrNoColumns = errors.New("no columns")
)
