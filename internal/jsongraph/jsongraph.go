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

// Package jsongraph loads a resolved dependency graph from the JSON
// format the kati sources call -save_json/-load_json, and implements
// graph.Evaluator/graph.MakefileCache over the loaded data. It exists
// to drive cmd/katigen end to end without a real makefile evaluator.
package jsongraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/katigen/katigen/internal/graph"
	"github.com/katigen/katigen/internal/symbol"
)

// Node is the on-disk representation of one target.
type Node struct {
	Output     string   `json:"output"`
	Deps       []string `json:"deps,omitempty"`
	OrderOnlys []string `json:"order_onlys,omitempty"`
	Cmds       []string `json:"cmds,omitempty"`
	IsPhony    bool     `json:"is_phony,omitempty"`
}

// Graph is the on-disk representation of a full resolved dependency
// graph, plus the ambient state a real makefile evaluator would
// otherwise supply: variable values, exports, the environment names it
// consulted, and the makefiles it read.
type Graph struct {
	Nodes     []Node            `json:"nodes"`
	Roots     []string          `json:"roots"`
	Vars      map[string]string `json:"vars,omitempty"`
	Exports   []graph.ExportVar `json:"exports,omitempty"`
	UsedEnvs  []string          `json:"used_envs,omitempty"`
	Makefiles []string          `json:"makefiles,omitempty"`
}

// Load parses r into a Graph.
func Load(r io.Reader) (*Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding dependency graph: %w", err)
	}
	return &g, nil
}

// LoadFile opens path and parses it as a Graph.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Evaluator adapts a Graph into graph.Evaluator and graph.MakefileCache,
// and resolves every Node's Deps/OrderOnlys string references into
// *graph.DepNode pointers.
type Evaluator struct {
	nodes    map[symbol.Symbol]*graph.DepNode
	cmds     map[symbol.Symbol][]graph.Command
	vars     map[string]string
	exports  []graph.ExportVar
	usedEnvs []string
	mkfiles  []string
	avoidIO  bool
}

// NewEvaluator builds an Evaluator from a parsed Graph and returns the
// root DepNodes in Roots order, ready to pass to ninja.Generator.Save.
func NewEvaluator(g *Graph) (*Evaluator, []*graph.DepNode, error) {
	e := &Evaluator{
		nodes:    make(map[symbol.Symbol]*graph.DepNode),
		cmds:     make(map[symbol.Symbol][]graph.Command),
		vars:     g.Vars,
		exports:  g.Exports,
		usedEnvs: g.UsedEnvs,
		mkfiles:  g.Makefiles,
	}
	if e.vars == nil {
		e.vars = map[string]string{}
	}

	for _, n := range g.Nodes {
		sym := symbol.Intern(n.Output)
		if _, dup := e.nodes[sym]; dup {
			return nil, nil, fmt.Errorf("duplicate output in dependency graph: %s", n.Output)
		}
		e.nodes[sym] = &graph.DepNode{
			Output:  sym,
			Cmds:    n.Cmds,
			IsPhony: n.IsPhony,
		}
		cmds := make([]graph.Command, len(n.Cmds))
		for i, c := range n.Cmds {
			cmds[i] = graph.Command{Cmd: c, Echo: true}
		}
		e.cmds[sym] = cmds
	}

	for _, n := range g.Nodes {
		node := e.nodes[symbol.Intern(n.Output)]
		for _, d := range n.Deps {
			dep, ok := e.nodes[symbol.Intern(d)]
			if !ok {
				return nil, nil, fmt.Errorf("node %s depends on undefined output %s", n.Output, d)
			}
			node.Deps = append(node.Deps, dep)
		}
		for _, d := range n.OrderOnlys {
			dep, ok := e.nodes[symbol.Intern(d)]
			if !ok {
				return nil, nil, fmt.Errorf("node %s order-only depends on undefined output %s", n.Output, d)
			}
			node.OrderOnlys = append(node.OrderOnlys, dep)
		}
	}

	roots := make([]*graph.DepNode, 0, len(g.Roots))
	for _, r := range g.Roots {
		node, ok := e.nodes[symbol.Intern(r)]
		if !ok {
			return nil, nil, fmt.Errorf("root %s is not a defined node", r)
		}
		roots = append(roots, node)
	}

	return e, roots, nil
}

func (e *Evaluator) Evaluate(node *graph.DepNode) ([]graph.Command, error) {
	return e.cmds[node.Output], nil
}

func (e *Evaluator) EvalVar(name string) (string, error) {
	return e.vars[name], nil
}

func (e *Evaluator) Exports() []graph.ExportVar { return e.exports }
func (e *Evaluator) UsedEnvVars() []string      { return e.usedEnvs }
func (e *Evaluator) SetAvoidIO(avoid bool)      { e.avoidIO = avoid }

// AllFilenames implements graph.MakefileCache.
func (e *Evaluator) AllFilenames() []string { return e.mkfiles }
