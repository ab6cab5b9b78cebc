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

// Package ninja implements the Ninja-file generation core: it turns an
// already-evaluated dependency graph (graph.DepNode) into a Ninja build
// file, a shell wrapper that invokes Ninja, and an environment-snapshot
// sidecar used to trigger regeneration.
package ninja

// Config holds the generation knobs. A single Config value is created
// once at process startup and threaded through the Generator; nothing
// mutates it afterwards.
type Config struct {
	// Args is the original command line used to invoke the translator,
	// used verbatim as the regen_ninja rule's command. A nil or empty
	// Args disables regeneration-rule generation regardless of
	// GenRegenRule.
	Args []string

	// NinjaSuffix is appended to every generated output filename.
	NinjaSuffix string
	// NinjaDir is the directory generated files are written to.
	// Defaults to "." when empty.
	NinjaDir string

	// GomaDir, when non-empty, enables compiler-wrapper injection and
	// the local_pool restriction on non-wrapped compile commands.
	GomaDir string
	// NumJobs is the ninja -j pool depth used by the shell wrapper and
	// the local_pool declaration when GomaDir is set.
	NumJobs int

	// DetectAndroidEcho enables extracting a rule description from a
	// leading unechoed "echo ..." recipe line.
	DetectAndroidEcho bool
	// GenRegenRule enables emission of the regeneration and
	// environment-snapshot rules.
	GenRegenRule bool
	// ErrorOnEnvChange selects strict (fail the build) vs forgiving
	// (silently refresh the snapshot) environment-change handling.
	ErrorOnEnvChange bool
}

func (c *Config) ninjaDir() string {
	if c.NinjaDir == "" {
		return "."
	}
	return c.NinjaDir
}

func (c *Config) shellDefault() string {
	return "/bin/sh"
}
