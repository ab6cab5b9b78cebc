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

import "bytes"

func isShellSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// TranslateCommand rewrites a single Make recipe line into a
// Ninja-safe shell fragment and appends it to buf: '$' is doubled for
// Ninja, backslash-newline continuations are spliced away, a '#' that
// starts a shell comment (preceded by whitespace, outside quotes)
// truncates the line, and trailing whitespace/';' is trimmed from the
// result. It returns the appended slice as its own string.
//
// The source performs this as several passes (stripShellComment, a
// backslash-newline Replace, a TrimRight, then the Ninja '$' escape);
// here they are merged into the single left-to-right scan the spec
// describes, tracking quote state, the preceding character, and
// whether the preceding character was a backslash.
func TranslateCommand(buf *bytes.Buffer, cmd string) string {
	start := buf.Len()
	prevBackslash := false
	prevChar := byte(' ') // a leading '#' is a comment, so seed as whitespace.
	var quote byte

scan:
	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		switch c {
		case '#':
			if quote == 0 && isShellSpace(prevChar) {
				break scan
			}
			buf.WriteByte(c)
		case '\'', '"', '`':
			if quote == c {
				quote = 0
			} else if quote == 0 && !prevBackslash {
				quote = c
			}
			buf.WriteByte(c)
		case '$':
			buf.WriteString("$$")
		case '\n':
			if prevBackslash {
				b := buf.Bytes()
				buf.Truncate(len(b) - 1)
			} else {
				buf.WriteByte(' ')
			}
		case '\\':
			buf.WriteByte('\\')
		default:
			buf.WriteByte(c)
		}
		prevBackslash = c == '\\'
		prevChar = c
	}

	res := buf.Bytes()
	end := len(res)
	for end > start && isTrimByte(res[end-1]) {
		end--
	}
	buf.Truncate(end)
	return string(buf.Bytes()[start:end])
}

func isTrimByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == ';'
}
