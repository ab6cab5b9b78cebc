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
	"testing"

	"github.com/katigen/katigen/internal/graph"
	"github.com/katigen/katigen/internal/symbol"
)

func TestDepStringDeduplicatesAndEscapes(t *testing.T) {
	a := &graph.DepNode{Output: symbol.Intern("foo bar")}
	b := &graph.DepNode{Output: symbol.Intern("baz")}
	n := &graph.DepNode{
		Deps:       []*graph.DepNode{a, b, a},
		OrderOnlys: []*graph.DepNode{b},
	}
	deps, orderOnlys := depString(n)
	if deps != `foo$ bar baz` {
		t.Errorf("deps=%q", deps)
	}
	if orderOnlys != "" {
		t.Errorf("orderOnlys=%q, want empty (baz already counted as a normal dep)", orderOnlys)
	}
}

func TestSubstituteNinjaVarsFoldsPlainValues(t *testing.T) {
	got := substituteNinjaVars("gcc -c foo.c -o out/foo.o", "foo.c", "out/foo.o", nil)
	want := "gcc -c ${in} -o ${out}"
	if got != want {
		t.Errorf("got=%q, want=%q", got, want)
	}
}

func TestSubstituteNinjaVarsSkipsDotSegments(t *testing.T) {
	got := substituteNinjaVars("gcc -c out/./foo.c -o out/foo.o", "out/./foo.c", "out/foo.o", nil)
	want := "gcc -c out/./foo.c -o ${out}"
	if got != want {
		t.Errorf("got=%q, want=%q", got, want)
	}
}

func TestSubstituteNinjaVarsSkipsDollarValues(t *testing.T) {
	got := substituteNinjaVars("gcc -c $foo.c -o out.o", "$foo.c", "out.o", nil)
	if got != "gcc -c $foo.c -o ${out}" {
		t.Errorf("got=%q", got)
	}
}

func TestSubstituteNinjaVarsAppliesEscBeforeMatching(t *testing.T) {
	// The command branch shell-escapes cmdline before folding ${in}/${out}
	// back in, so the raw input/output values never literally appear in
	// s — only their EscapeShell'd form does. Without applying esc to the
	// values first, the substitution would silently become a no-op.
	escaped := EscapeShell(`say "hi"`)
	s := "echo " + escaped
	got := substituteNinjaVars(s, `say "hi"`, "", EscapeShell)
	if got != "echo ${in}" {
		t.Errorf("got=%q, want %q", got, "echo ${in}")
	}
	if got := substituteNinjaVars(s, `say "hi"`, "", nil); got != s {
		t.Errorf("got=%q, want unchanged %q (esc=nil must not match the escaped form)", got, s)
	}
}

func TestRecordShortNameFirstWriteWins(t *testing.T) {
	g := &Generator{shortNames: make(map[string]symbol.Symbol)}
	out := symbol.Intern("out/foo.o")
	g.recordShortName("foo.o", out)
	if g.shortNames["foo.o"] != out {
		t.Errorf("shortNames[foo.o]=%v, want %v", g.shortNames["foo.o"], out)
	}
}

func TestRecordShortNameCollisionResetsToEmpty(t *testing.T) {
	g := &Generator{shortNames: make(map[string]symbol.Symbol)}
	g.recordShortName("foo.o", symbol.Intern("out/a/foo.o"))
	g.recordShortName("foo.o", symbol.Intern("out/b/foo.o"))
	if g.shortNames["foo.o"] != symbol.Empty {
		t.Errorf("shortNames[foo.o]=%v, want symbol.Empty after collision", g.shortNames["foo.o"])
	}
}

func TestRecordShortNameRepeatedSameOutputNoCollision(t *testing.T) {
	g := &Generator{shortNames: make(map[string]symbol.Symbol)}
	out := symbol.Intern("out/foo.o")
	g.recordShortName("foo.o", out)
	g.recordShortName("foo.o", out)
	if g.shortNames["foo.o"] != out {
		t.Errorf("shortNames[foo.o]=%v, want %v (same output twice is not a collision)", g.shortNames["foo.o"], out)
	}
}
