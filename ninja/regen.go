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
	"strings"
)

// emitRegenRules implements the Regeneration & Environment Emitter
// (C7): a meta-rule that re-invokes the translator whenever a source
// makefile or a consumed environment variable changes. A nil or empty
// Config.Args means there is no invocation to replay, so nothing is
// emitted.
func (g *Generator) emitRegenRules(w io.Writer) error {
	if len(g.cfg.Args) == 0 {
		return nil
	}

	mkfiles := strings.Join(g.mkCache.AllFilenames(), " ")

	fmt.Fprintf(w, `
rule regen_ninja
 description = Regenerate ninja files due to dependency
 generator = 1
 command = %s
`, strings.Join(g.cfg.Args, " "))
	fmt.Fprintf(w, "build %s: regen_ninja %s", g.ninjaName(), mkfiles)
	if len(g.usedEnvs) > 0 {
		fmt.Fprintf(w, " %s", g.envlistName())
	}
	fmt.Fprintf(w, "\n\n")

	if len(g.usedEnvs) == 0 {
		return nil
	}

	fmt.Fprint(w, `build .always_build: phony
rule regen_envlist
 description = Check $out
 generator = 1
 restat = 1
 command = rm -f $out.tmp`)
	for _, name := range g.sortedUsedEnvNames() {
		fmt.Fprintf(w, " && echo %s=$$%s >> $out.tmp", name, name)
	}
	if g.cfg.ErrorOnEnvChange {
		fmt.Fprintln(w, " && (cmp -s $out.tmp $out || (echo Environment variable changes are detected && diff -u $out $out.tmp && false))")
	} else {
		fmt.Fprintln(w, " && (cmp -s $out.tmp $out || mv $out.tmp $out)")
	}
	fmt.Fprintf(w, "build %s: regen_envlist .always_build\n\n", g.envlistName())
	return nil
}
