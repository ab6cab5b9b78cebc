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

// Package graph defines the resolved dependency graph that the ninja
// generation core consumes, and the external collaborator interfaces
// (evaluator, makefile cache) it is built against. Makefile parsing,
// macro expansion, and rule-to-command evaluation live outside this
// package; graph only carries the already-resolved shape.
package graph

import "github.com/katigen/katigen/internal/symbol"

// Command is an already-evaluated recipe line.
type Command struct {
	// Cmd is the shell command, after macro expansion but before
	// Ninja-specific translation.
	Cmd string
	// Echo is true iff Make would echo this line (false when the
	// recipe line was prefixed by '@').
	Echo bool
	// IgnoreError is true iff the recipe line was prefixed by '-'.
	IgnoreError bool
}

// DepNode is one target in the resolved dependency graph.
type DepNode struct {
	// Output is the target name.
	Output symbol.Symbol
	// Deps are ordered normal prerequisites.
	Deps []*DepNode
	// OrderOnlys are ordered order-only prerequisites: they must exist
	// before Output is built but do not trigger a rebuild on change.
	OrderOnlys []*DepNode
	// Cmds are the unevaluated recipe lines; the evaluator turns these
	// into Commands on demand via Evaluator.Evaluate.
	Cmds []string
	// IsPhony is true iff the target was declared .PHONY.
	IsPhony bool
}

// HasNoRecipe reports whether this node carries no recipe lines, no
// prerequisites of either kind, and is not phony — the suppression
// predicate from the data model: such a node is never emitted.
func (n *DepNode) HasNoRecipe() bool {
	return len(n.Cmds) == 0 && len(n.Deps) == 0 && len(n.OrderOnlys) == 0 && !n.IsPhony
}

// ExportVar is one entry of the evaluator's exports mapping: whether
// variable Name should be exported (true) or explicitly unset (false)
// by the generated shell wrapper.
type ExportVar struct {
	Name   string
	Export bool
}

// Evaluator is the external collaborator that turns unevaluated recipe
// text into Commands and answers variable/environment queries. The
// ninja generation core never parses makefiles or expands macros
// itself; it only calls through this interface.
type Evaluator interface {
	// Evaluate returns the ordered Commands for node. Pure for the
	// duration of a single generation run.
	Evaluate(node *DepNode) ([]Command, error)
	// EvalVar returns the value of a variable, e.g. "SHELL" or a
	// consumed environment variable name.
	EvalVar(name string) (string, error)
	// Exports returns the ordered (variable name, include-in-export)
	// pairs that the shell wrapper must export or unset.
	Exports() []ExportVar
	// UsedEnvVars returns the set of environment variable names that
	// were consulted while evaluating the makefiles.
	UsedEnvVars() []string
	// SetAvoidIO toggles whether the evaluator may perform
	// side-effectful I/O (e.g. $(shell ...)) during calls made while
	// the generation core runs.
	SetAvoidIO(avoid bool)
}

// MakefileCache is the external collaborator that remembers which
// makefiles were read while building the graph, for the regeneration
// rule's dependency list.
type MakefileCache interface {
	// AllFilenames returns every makefile path consulted while
	// evaluating the graph, root makefile first.
	AllFilenames() []string
}
