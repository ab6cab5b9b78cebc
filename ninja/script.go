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

	"github.com/katigen/katigen/internal/graph"
)

const defaultDescription = "build $out"

// script is the result of composing a node's recipe Commands into a
// single shell line.
type script struct {
	cmd          string
	desc         string
	useLocalPool bool
}

// descriptionFromEcho extracts the body of a leading "echo ..." recipe
// as a human-readable rule description: it requires the translated
// command to start with "echo " and nothing outside quotes to be one
// of the shell metacharacters < > & | ;. Outer quotes are stripped;
// backslash escapes are preserved verbatim.
func descriptionFromEcho(cmd string) (string, bool) {
	const prefix = "echo "
	if len(cmd) < len(prefix) || cmd[:len(prefix)] != prefix {
		return "", false
	}
	arg := cmd[len(prefix):]

	var buf bytes.Buffer
	escape := false
	var quote rune
	for _, c := range arg {
		if escape {
			escape = false
			buf.WriteRune(c)
			continue
		}
		if c == '\\' {
			escape = true
			buf.WriteRune(c)
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
				continue
			}
			buf.WriteRune(c)
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '<', '>', '&', '|', ';':
			return "", false
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String(), true
}

// composeScript joins runners' translated recipes into a single shell
// line (§4.5, C5). cfg controls compiler-wrapper injection and echo
// description detection; the caller has already established that
// runners is non-empty (an empty list means the node's rule is the
// built-in "phony" and this component is skipped).
func composeScript(cfg *Config, runners []graph.Command) script {
	var useGomacc bool
	var buf bytes.Buffer
	var desc string

	for i, r := range runners {
		if i > 0 {
			if runners[i-1].IgnoreError {
				buf.WriteString(" ; ")
			} else {
				buf.WriteString(" && ")
			}
		}

		var line bytes.Buffer
		cmd := TranslateCommand(&line, trimLeftSpace(r.Cmd))
		if cmd == "" {
			cmd = "true"
		}

		if cfg.DetectAndroidEcho && !r.Echo && desc == "" {
			if d, ok := descriptionFromEcho(cmd); ok {
				desc = d
				cmd = "true"
			}
		}

		if cmd != "true" && cfg.GomaDir != "" {
			if offset, ok := gomaccOffset(cmd); ok {
				cmd = cmd[:offset] + cfg.GomaDir + "/gomacc " + cmd[offset:]
				useGomacc = true
			}
		}

		needsSubshell := len(runners) > 1 && (len(cmd) == 0 || cmd[0] != '(')
		if needsSubshell {
			buf.WriteByte('(')
		}
		buf.WriteString(cmd)
		if i == len(runners)-1 && r.IgnoreError {
			buf.WriteString(" ; true")
		}
		if needsSubshell {
			buf.WriteByte(')')
		}
	}

	if desc == "" {
		desc = defaultDescription
	}
	return script{
		cmd:          buf.String(),
		desc:         desc,
		useLocalPool: cfg.GomaDir != "" && !useGomacc,
	}
}
