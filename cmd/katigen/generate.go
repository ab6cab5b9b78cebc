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

package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/katigen/katigen/internal/jsongraph"
	"github.com/katigen/katigen/ninja"
)

// generateCommand is a subcommands.Command implementation that reads a
// JSON dependency graph and writes the generated Ninja file, shell
// wrapper, and environment snapshot.
type generateCommand struct {
	graphPath         string
	ninjaDir          string
	ninjaSuffix       string
	gomaDir           string
	numJobs           int
	detectAndroidEcho bool
	genRegenRule      bool
	errorOnEnvChange  bool
	buildAll          bool
}

func (*generateCommand) Name() string     { return "generate" }
func (*generateCommand) Synopsis() string { return "generate a ninja build from a JSON dependency graph" }
func (*generateCommand) Usage() string {
	return "generate -graph <path> [flags]\n\tTranslate a JSON-encoded dependency graph into a Ninja build.\n"
}

func (c *generateCommand) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.graphPath, "graph", "", "path to the JSON-encoded dependency graph")
	f.StringVar(&c.ninjaDir, "ninja_dir", ".", "directory to write generated files to")
	f.StringVar(&c.ninjaSuffix, "ninja_suffix", "", "suffix appended to generated filenames")
	f.StringVar(&c.gomaDir, "goma_dir", "", "goma installation directory; enables gomacc wrapping")
	f.IntVar(&c.numJobs, "j", 0, "ninja job count passed to the generated shell wrapper")
	f.BoolVar(&c.detectAndroidEcho, "detect_android_echo", false, "extract rule descriptions from unechoed \"echo\" recipe lines")
	f.BoolVar(&c.genRegenRule, "gen_regen_rule", true, "emit the regeneration and environment-snapshot rules")
	f.BoolVar(&c.errorOnEnvChange, "error_on_env_change", false, "fail the build instead of silently refreshing the environment snapshot")
	f.BoolVar(&c.buildAll, "build_all", false, "build every root instead of only the first")
}

func (c *generateCommand) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.graphPath == "" {
		glog.Errorf("-graph is required")
		return subcommands.ExitUsageError
	}

	g, err := jsongraph.LoadFile(c.graphPath)
	if err != nil {
		glog.Errorf("loading dependency graph: %v", err)
		return subcommands.ExitFailure
	}

	eval, roots, err := jsongraph.NewEvaluator(g)
	if err != nil {
		glog.Errorf("building evaluator: %v", err)
		return subcommands.ExitFailure
	}

	cfg := &ninja.Config{
		Args:              os.Args,
		NinjaSuffix:       c.ninjaSuffix,
		NinjaDir:          c.ninjaDir,
		GomaDir:           c.gomaDir,
		NumJobs:           c.numJobs,
		DetectAndroidEcho: c.detectAndroidEcho,
		GenRegenRule:      c.genRegenRule,
		ErrorOnEnvChange:  c.errorOnEnvChange,
	}

	gen := ninja.NewGenerator(cfg, eval, eval)
	if err := gen.Save(roots, c.buildAll); err != nil {
		glog.Errorf("generating ninja build: %v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
