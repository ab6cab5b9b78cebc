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
	"fmt"
	"path/filepath"
	"strings"
)

func stripExt(s string) string {
	ext := filepath.Ext(s)
	return strings.TrimSuffix(s, ext)
}

func trimLeftSpace(s string) string {
	return strings.TrimLeft(s, " \t\n")
}

// findLastFlagArg finds the last occurrence of needle (which must
// itself carry its surrounding delimiting spaces, e.g. " -MF ") in s
// and returns the whitespace-delimited token that follows it. The
// source's FindCommandLineFlagWithArg loops while the needle is found
// in the tail, which effectively returns the argument of the *last*
// occurrence; §9 of the spec leaves open whether that is intentional,
// and directs implementations to preserve last-wins. This does.
func findLastFlagArg(s, needle string) (string, bool) {
	searchFrom := 0
	lastIdx := -1
	for {
		i := strings.Index(s[searchFrom:], needle)
		if i < 0 {
			break
		}
		lastIdx = searchFrom + i
		searchFrom = lastIdx + len(needle)
	}
	if lastIdx < 0 {
		return "", false
	}
	arg := trimLeftSpace(s[lastIdx+len(needle):])
	if end := strings.IndexAny(arg, " \t\n"); end >= 0 {
		arg = arg[:end]
	}
	return arg, true
}

// inferDepfilePath parses a composed shell command for -MD/-MMD/-MF/-o/-c
// compiler flags and returns the depfile path the compiler will write,
// or an error if inference fails.
func inferDepfilePath(cmd string) (string, error) {
	padded := " " + cmd + " "
	hasMD := strings.Contains(padded, " -MD ") || strings.Contains(padded, " -MMD ")
	hasC := strings.Contains(padded, " -c ")
	if !hasMD || !hasC {
		return "", nil
	}

	if mf, ok := findLastFlagArg(padded, " -MF "); ok {
		return mf, nil
	}
	if out, ok := findLastFlagArg(padded, " -o "); ok {
		return stripExt(out) + ".d", nil
	}
	return "", fmt.Errorf("cannot infer depfile from command: %s", cmd)
}

// GetDepfileFromCommand parses cmd for the compiler flags that produce
// a dependency file, applies the platform quirks documented in spec.md
// §4.3, and returns the (possibly mutated) command line together with
// the depfile path Ninja should read. depfile == "" means no depfile
// line should be emitted; err is non-nil when the depfile cannot be
// inferred (missing -MF/-o argument), when an automake "(mv -f" rename
// has no closing parenthesis, or when a .P recipe lacks the expected
// "; rm -f <depfile>".
func GetDepfileFromCommand(cmd string) (newCmd string, depfile string, err error) {
	// A hack for Android: llvm-rs-cc does not emit a dep file even
	// though it accepts -MD.
	if strings.Contains(cmd, "bin/llvm-rs-cc ") {
		return cmd, "", nil
	}

	depfile, err = inferDepfilePath(cmd)
	if depfile == "" || err != nil {
		return cmd, depfile, err
	}

	// A hack for Makefiles generated by automake/libtool: the recipe
	// renames a .Tpo scratch file into the real .Plo/.Po dependency
	// file with "mv -f X.Tpo X.Po)". Ninja's depfile handling expects
	// the file to still exist after the command runs, so rewrite the
	// mv into a cp and report the pre-rename name.
	mvCmd := "(mv -f " + depfile + " "
	if i := strings.LastIndex(cmd, mvCmd); i >= 0 {
		rest := cmd[i+len(mvCmd):]
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return cmd, "", fmt.Errorf("unbalanced parenthesis in automake depfile rename: %s", cmd)
		}
		newCmd := cmd[:i] + "(cp -f " + depfile + " " + rest
		return newCmd, depfile, nil
	}

	// A hack for Android to get .P files instead of .d files: the
	// recipe removes the raw .d file after massaging it into a .P
	// file with sed. Delete the "; rm -f <depfile>" so the .d survives
	// long enough for Ninja to read it, and report the .P name.
	p := stripExt(depfile) + ".P"
	if strings.Contains(cmd, p) {
		rmCmd := "; rm -f " + depfile
		newCmd := strings.Replace(cmd, rmCmd, "", 1)
		if newCmd == cmd {
			return cmd, "", fmt.Errorf("cannot find removal of .d file: %s", cmd)
		}
		return newCmd, p, nil
	}

	// A hack for Android: for .s (assembler) sources GCC does not run
	// the C preprocessor, so it silently ignores -MF and never writes
	// a depfile.
	asSource := "/" + stripExt(filepath.Base(depfile)) + ".s"
	if strings.Contains(cmd, asSource) {
		return cmd, "", nil
	}

	// The common case: have the recipe leave a copy behind so Ninja
	// can read it even if a later step in the recipe deletes the
	// original (GNU Make-generated recipes sometimes do).
	newCmd = cmd + fmt.Sprintf(" && cp %s %s.tmp", depfile, depfile)
	depfile += ".tmp"
	return newCmd, depfile, nil
}
