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
	"sort"

	"github.com/katigen/katigen/internal/symbol"
)

// emitShortcuts writes "build <basename>: phony <output>" for every
// basename that uniquely identifies one emitted output (§4.7). A
// basename that collided across distinct outputs was already reset to
// symbol.Empty by recordShortName and is skipped; a basename that is
// itself the full output name of a visited node (emitted or suppressed)
// is also skipped so the shortcut does not shadow it.
func (g *Generator) emitShortcuts(w io.Writer) {
	names := make([]string, 0, len(g.shortNames))
	for base := range g.shortNames {
		names = append(names, base)
	}
	sort.Strings(names)

	var wrote bool
	for _, base := range names {
		output := g.shortNames[base]
		if output == symbol.Empty {
			continue
		}
		if g.done[symbol.Intern(base)] {
			continue
		}
		if !wrote {
			fmt.Fprintf(w, "\n# shortcuts:\n")
			wrote = true
		}
		fmt.Fprintf(w, "build %s: phony %s\n", base, EscapeTarget(output.String()))
	}
}
