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

import "strings"

// gomaccOffset reports whether cmdline is a recognized compiler
// invocation (optionally behind a ccache wrapper) that should be
// prefixed with a distributed-build wrapper token, and if so, the
// byte offset in cmdline at which the wrapper token belongs.
func gomaccOffset(cmdline string) (offset int, ok bool) {
	i := strings.IndexByte(cmdline, ' ')
	if i < 0 {
		return 0, false
	}
	driver := cmdline[:i]
	if strings.HasSuffix(driver, "ccache") {
		sub, ok := gomaccOffset(cmdline[i+1:])
		if !ok {
			return 0, false
		}
		return i + 1 + sub, true
	}
	if !strings.HasPrefix(driver, "prebuilts/") {
		return 0, false
	}
	rest := strings.TrimPrefix(driver, "prebuilts/")
	var compiler string
	switch {
	case strings.HasPrefix(rest, "gcc/"):
		compiler = strings.TrimPrefix(rest, "gcc/")
	case strings.HasPrefix(rest, "clang/"):
		compiler = strings.TrimPrefix(rest, "clang/")
	default:
		return 0, false
	}
	switch {
	case strings.HasSuffix(compiler, "g++"):
	case strings.HasSuffix(compiler, "gcc"):
	case strings.HasSuffix(compiler, "clang++"):
	case strings.HasSuffix(compiler, "clang"):
	default:
		return 0, false
	}
	if !strings.Contains(cmdline[i:], " -c ") {
		return 0, false
	}
	return 0, true
}
