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
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/golang/glog"
	"github.com/katigen/katigen/internal/graph"
	"github.com/katigen/katigen/internal/symbol"
)

// Generator is the Orchestrator (C8): it sequences env-snapshot,
// Ninja-file, and shell-wrapper generation and owns their output file
// handles for the duration of each file's emission. A Generator is
// built once per run via NewGenerator and is not safe for concurrent
// use — the core is single-threaded by design (spec.md §5).
type Generator struct {
	cfg     *Config
	eval    graph.Evaluator
	mkCache graph.MakefileCache

	done       map[symbol.Symbol]bool
	emitted    map[symbol.Symbol]bool
	shortNames map[string]symbol.Symbol
	ruleID     int
	usedEnvs   map[string]string

	shellCache string
}

// NewGenerator builds a Generator bound to the given configuration and
// external collaborators. cfg is not mutated after this call.
func NewGenerator(cfg *Config, eval graph.Evaluator, mkCache graph.MakefileCache) *Generator {
	return &Generator{
		cfg:        cfg,
		eval:       eval,
		mkCache:    mkCache,
		done:       make(map[symbol.Symbol]bool),
		emitted:    make(map[symbol.Symbol]bool),
		shortNames: make(map[string]symbol.Symbol),
	}
}

func (g *Generator) shell() string {
	if g.shellCache != "" {
		return g.shellCache
	}
	s, err := g.eval.EvalVar("SHELL")
	if err != nil || s == "" {
		s = g.cfg.shellDefault()
	}
	g.shellCache = s
	return s
}

func (g *Generator) ninjaName() string   { return "build" + g.cfg.NinjaSuffix + ".ninja" }
func (g *Generator) shName() string      { return "ninja" + g.cfg.NinjaSuffix + ".sh" }
func (g *Generator) envlistName() string { return ".kati_env" + g.cfg.NinjaSuffix }
func (g *Generator) lunchName() string   { return ".kati_lunch" + g.cfg.NinjaSuffix }

func (g *Generator) outPath(name string) string {
	return filepath.Join(g.cfg.ninjaDir(), name)
}

// loadUsedEnvs snapshots every environment variable the evaluator
// consumed, alongside its value, into a map. Every writer iterates it
// through sortedUsedEnvNames, so output order is sorted by key. The
// design notes call out the source's hash-map iteration order as a bug
// to fix, not a behavior to preserve.
func (g *Generator) loadUsedEnvs() error {
	if g.usedEnvs != nil {
		return nil
	}
	g.usedEnvs = make(map[string]string)
	for _, name := range g.eval.UsedEnvVars() {
		v, err := g.eval.EvalVar(name)
		if err != nil {
			return fmt.Errorf("evaluating used env var %s: %w", name, err)
		}
		g.usedEnvs[name] = v
	}
	return nil
}

func (g *Generator) sortedUsedEnvNames() []string {
	names := make([]string, 0, len(g.usedEnvs))
	for n := range g.usedEnvs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Save runs the full Orchestrator sequence (§4.8): environment
// snapshot, then the Ninja file, then the shell wrapper. nodes is the
// caller-supplied root sequence in the order default-target selection
// and emission should use. If buildAll is false and nodes is empty,
// this is a fatal precondition violation (spec.md §7): there would be
// no default target to emit.
func (g *Generator) Save(nodes []*graph.DepNode, buildAll bool) error {
	if !buildAll && len(nodes) == 0 {
		return fmt.Errorf("no targets given and build-all not requested: nothing to build")
	}

	g.eval.SetAvoidIO(true)
	defer g.eval.SetAvoidIO(false)

	if err := g.loadUsedEnvs(); err != nil {
		return err
	}

	if g.cfg.GenRegenRule && len(g.cfg.Args) > 0 && len(g.usedEnvs) > 0 {
		if err := g.generateEnvlist(); err != nil {
			return fmt.Errorf("writing env snapshot: %w", err)
		}
	}

	var defaultTarget string
	if !buildAll && len(nodes) > 0 {
		defaultTarget = nodes[0].Output.String()
	}
	if err := g.generateNinja(nodes, defaultTarget); err != nil {
		return fmt.Errorf("writing ninja file: %w", err)
	}

	if err := g.generateShell(); err != nil {
		return fmt.Errorf("writing shell wrapper: %w", err)
	}

	return nil
}

func (g *Generator) generateEnvlist() (err error) {
	path := g.outPath(g.envlistName())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	for _, name := range g.sortedUsedEnvNames() {
		fmt.Fprintf(f, "%s=%s\n", name, g.usedEnvs[name])
	}
	return nil
}

func (g *Generator) generateNinja(nodes []*graph.DepNode, defaultTarget string) (err error) {
	path := g.outPath(g.ninjaName())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	fmt.Fprintf(f, "# Generated by katigen\n\n")

	if len(g.usedEnvs) > 0 {
		fmt.Fprintln(f, "# Environment variables used:")
		for _, name := range g.sortedUsedEnvNames() {
			fmt.Fprintf(f, "# %q=%q\n", name, g.usedEnvs[name])
		}
		fmt.Fprintln(f)
	}

	if g.cfg.GomaDir != "" {
		fmt.Fprintf(f, "pool local_pool\n depth = %d\n\n", g.localPoolDepth())
	}

	if g.cfg.GenRegenRule {
		if err := g.emitRegenRules(f); err != nil {
			return err
		}
	}

	for _, n := range nodes {
		if err := g.emitNode(f, n); err != nil {
			return err
		}
	}

	g.emitShortcuts(f)

	if defaultTarget != "" && g.emitted[symbol.Intern(defaultTarget)] {
		fmt.Fprintf(f, "\ndefault %s\n", EscapeTarget(defaultTarget))
	}

	return nil
}

// localPoolDepth is the local_pool declaration's depth: cfg.NumJobs
// when set, since num_jobs is documented (spec.md §6) as the pool
// depth when GomaDir is set, falling back to NumCPU when NumJobs is
// unset or non-positive.
func (g *Generator) localPoolDepth() int {
	if g.cfg.NumJobs > 0 {
		return g.cfg.NumJobs
	}
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

func (g *Generator) generateShell() (err error) {
	path := g.outPath(g.shName())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	fmt.Fprintf(f, "#!%s\n\n", g.shell())
	fmt.Fprintln(f, `cd "$(dirname "$0")"`)

	if g.cfg.GenRegenRule && len(g.usedEnvs) > 0 {
		envlist := g.envlistName()
		fmt.Fprintf(f, "if [ -f %s ]; then\n  export $(cat %s)\nfi\n", envlist, envlist)
	}
	lunch := g.lunchName()
	fmt.Fprintf(f, "if [ -f %s ]; then\n  . ./%s\nfi\n", lunch, lunch)

	for _, exp := range g.eval.Exports() {
		if hasShellMeta(exp.Name) {
			glog.V(1).Infof("ignoring export with invalid shell identifier: %q", exp.Name)
			continue
		}
		if exp.Export {
			v, err := g.eval.EvalVar(exp.Name)
			if err != nil {
				return fmt.Errorf("evaluating exported var %s: %w", exp.Name, err)
			}
			fmt.Fprintf(f, "export %q=%q\n", exp.Name, v)
		} else {
			fmt.Fprintf(f, "unset %q\n", exp.Name)
		}
	}

	if g.cfg.NumJobs > 0 {
		fmt.Fprintf(f, `exec ninja -f %s -j%d "$@"`+"\n", g.ninjaName(), g.cfg.NumJobs)
	} else {
		fmt.Fprintf(f, `exec ninja -f %s "$@"`+"\n", g.ninjaName())
	}

	if err := f.Chmod(0755); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

func hasShellMeta(name string) bool {
	for _, c := range name {
		switch c {
		case ' ', '\t', '\n', '\r':
			return true
		}
	}
	return false
}
