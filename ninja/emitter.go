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
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/katigen/katigen/internal/graph"
	"github.com/katigen/katigen/internal/symbol"
)

// argLenLimit is the composed command-line length above which the
// emitter switches to a response file. "It seems Linux is OK with
// ~130kB" — kept from the teacher, conservative at 100kB.
const argLenLimit = 100 * 1000

func (g *Generator) genRuleName() string {
	name := fmt.Sprintf("rule%d", g.ruleID)
	g.ruleID++
	return name
}

// depString renders a node's Deps and OrderOnlys as space-separated,
// EscapeTarget-escaped, deduplicated lists for the build stanza.
func depString(node *graph.DepNode) (deps, orderOnlys string) {
	seen := make(map[string]bool)
	var d, o []string
	for _, dep := range node.Deps {
		t := EscapeTarget(dep.Output.String())
		if seen[t] {
			continue
		}
		seen[t] = true
		d = append(d, t)
	}
	for _, dep := range node.OrderOnlys {
		t := EscapeTarget(dep.Output.String())
		if seen[t] {
			continue
		}
		seen[t] = true
		o = append(o, t)
	}
	return strings.Join(d, " "), strings.Join(o, " ")
}

// substituteNinjaVars folds occurrences of inputs/output back into
// ${in}/${out} in s. esc, when non-nil, is applied to inputs/output
// before the substring search so they match the corresponding
// occurrences in an already-escaped s (mirrors the teacher's
// ninjaVars(s, nv, esc), which passes escapeShell here and nil for the
// unescaped rspfile_content form).
func substituteNinjaVars(s, inputs, output string, esc func(string) string) string {
	// $in/$out must not be substituted into values containing ninja
	// path-normalization sequences or an unescaped '$': ninja will
	// normalize those paths itself, or emit its own quoting.
	for _, kv := range [][2]string{{"${in}", inputs}, {"${out}", output}} {
		k, v := kv[0], kv[1]
		if v == "" {
			continue
		}
		if strings.Contains(v, "/./") || strings.Contains(v, "/../") || strings.Contains(v, "$") {
			continue
		}
		if esc != nil {
			v = esc(v)
		}
		s = strings.ReplaceAll(s, v, k)
	}
	return s
}

// emitBuild writes a single "build out: rule ins [|| orderOnlys]" line,
// without a trailing newline.
func emitBuild(w io.Writer, output, rule, inputs, orderOnlys string) {
	fmt.Fprintf(w, "build %s: %s", EscapeTarget(output), rule)
	if inputs != "" {
		fmt.Fprintf(w, " %s", inputs)
	}
	if orderOnlys != "" {
		fmt.Fprintf(w, " || %s", orderOnlys)
	}
}

// emitNode implements the Rule/Build Emitter (C6): depth-first
// traversal of node and its prerequisites, minting a synthetic rule
// for each node that has commands and writing the corresponding rule/build
// stanzas. Dependencies are recursed into only after node itself has
// been fully emitted, and only the first visit of a shared output does
// any work.
func (g *Generator) emitNode(w io.Writer, node *graph.DepNode) error {
	if g.done[node.Output] {
		return nil
	}
	g.done[node.Output] = true

	if node.HasNoRecipe() {
		return nil
	}

	output := node.Output.String()
	base := filepath.Base(output)
	if base != output {
		g.recordShortName(base, node.Output)
	}

	commands, err := g.eval.Evaluate(node)
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", output, err)
	}

	ruleName := "phony"
	inputs, orderOnlys := depString(node)
	useLocalPool := false

	if len(commands) > 0 {
		ruleName = g.genRuleName()
		fmt.Fprintf(w, "\n# rule for %q\n", output)
		fmt.Fprintf(w, "rule %s\n", ruleName)

		s := composeScript(g.cfg, commands)
		useLocalPool = s.useLocalPool
		fmt.Fprintf(w, " description = %s\n", s.desc)

		cmdline, depfile, err := GetDepfileFromCommand(s.cmd)
		if err != nil {
			glog.Warningf("depfile inference for %s: %v", output, err)
		}
		if depfile != "" {
			fmt.Fprintf(w, " depfile = %s\n", depfile)
			fmt.Fprintf(w, " deps = gcc\n")
		}

		shell := g.shell()
		if len(cmdline) > argLenLimit {
			fmt.Fprintf(w, " rspfile = $out.rsp\n")
			cmdline = substituteNinjaVars(cmdline, inputs, EscapeTarget(output), nil)
			fmt.Fprintf(w, " rspfile_content = %s\n", cmdline)
			fmt.Fprintf(w, " command = %s $out.rsp\n", shell)
		} else {
			cmdline = EscapeShell(cmdline)
			cmdline = substituteNinjaVars(cmdline, inputs, EscapeTarget(output), EscapeShell)
			fmt.Fprintf(w, " command = %s -c \"%s\"\n", shell, cmdline)
		}
	}

	emitBuild(w, output, ruleName, inputs, orderOnlys)
	if useLocalPool {
		fmt.Fprintf(w, " pool = local_pool\n")
	}
	fmt.Fprintf(w, "\n")
	g.emitted[node.Output] = true

	for _, d := range node.Deps {
		if err := g.emitNode(w, d); err != nil {
			return err
		}
	}
	for _, d := range node.OrderOnlys {
		if err := g.emitNode(w, d); err != nil {
			return err
		}
	}
	return nil
}

// recordShortName applies the collision rule from the data model's
// invariants: short_names[basename] == output iff exactly one distinct
// output has that basename, otherwise it is the empty symbol.
func (g *Generator) recordShortName(base string, output symbol.Symbol) {
	existing, ok := g.shortNames[base]
	if !ok {
		g.shortNames[base] = output
		return
	}
	if existing != output {
		g.shortNames[base] = symbol.Empty
	}
}
