// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ninja

import (
	"bytes"
	"strings"
)

// EscapeTarget escapes $, :, and space for use as a Ninja build-target
// name, by prefixing each with $. Bytes outside that set pass through
// unchanged.
func EscapeTarget(s string) string {
	if strings.IndexAny(s, "$: ") < 0 {
		return s
	}
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '$', ':', ' ':
			buf.WriteByte('$')
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// EscapeShell escapes s for embedding inside a double-quoted string
// passed to the target shell: backtick, double-quote, '!' and
// backslash are each backslash-escaped, and '$' is backslash-escaped
// except when it immediately follows another '$' that was itself
// escaped here — this preserves a "$$" produced by TranslateCommand
// (Ninja's own $ escape) as "\$$" rather than "\$\$".
func EscapeShell(s string) string {
	if strings.IndexAny(s, "$`!\\\"") < 0 {
		return s
	}
	var buf bytes.Buffer
	lastDollar := false
	for _, c := range s {
		switch c {
		case '$':
			if lastDollar {
				buf.WriteRune(c)
				lastDollar = false
				continue
			}
			buf.WriteString(`\$`)
			lastDollar = true
			continue
		case '`', '"', '!', '\\':
			buf.WriteByte('\\')
		}
		buf.WriteRune(c)
		lastDollar = false
	}
	return buf.String()
}
