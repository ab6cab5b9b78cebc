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

import "testing"

func TestGetDepfileFromCommand(t *testing.T) {
	for _, tc := range []struct {
		name    string
		in      string
		cmd     string
		depfile string
		err     bool
	}{
		{
			name: "no -MD means no depfile",
			in:   `g++ -c fat.cc -o fat.o`,
		},
		{
			name: "missing -MF/-o argument is an error",
			in:   `g++ -c fat.cc -MD`,
			err:  true,
		},
		{
			name:    "MD with -o derives .d name",
			in:      `g++ -c fat.cc -MD -o fat.o`,
			cmd:     `g++ -c fat.cc -MD -o fat.o && cp fat.d fat.d.tmp`,
			depfile: `fat.d.tmp`,
		},
		{
			name:    "MF overrides the derived name",
			in:      `g++ -c fat.cc -MD -MF foo.d -o fat.o`,
			cmd:     `g++ -c fat.cc -MD -MF foo.d -o fat.o && cp foo.d foo.d.tmp`,
			depfile: `foo.d.tmp`,
		},
		{
			name:    "repeated -MF takes the last one (open question, last-wins)",
			in:      `g++ -c fat.cc -MD -MF first.d -MF foo.d -o fat.o`,
			cmd:     `g++ -c fat.cc -MD -MF first.d -MF foo.d -o fat.o && cp foo.d foo.d.tmp`,
			depfile: `foo.d.tmp`,
		},
		{
			name:    "llvm-rs-cc never gets a depfile",
			in:      `out/host/linux-x86/bin/llvm-rs-cc -o out -MD foo.rs`,
			depfile: ``,
		},
		{
			name:    "assembler .s source ignores -MF",
			in:      `gcc -MD -MF out/foo.d -c -o out/foo.o out/foo.s`,
			depfile: ``,
		},
		{
			name:    "Android .P hack strips the rm and renames to .P",
			in:      `gcc -MD -MF out/foo.d -c -o out/foo.o foo.c && sed -e 's/#.*//' < out/foo.d >> out/foo.P; rm -f out/foo.d`,
			cmd:     `gcc -MD -MF out/foo.d -c -o out/foo.o foo.c && sed -e 's/#.*//' < out/foo.d >> out/foo.P`,
			depfile: `out/foo.P`,
		},
		{
			name:    "automake mv hack rewrites to cp",
			in:      `g++ -MD -MF .deps/foo.Tpo -c -o foo.o foo.cc && (mv -f .deps/foo.Tpo .deps/foo.Plo)`,
			cmd:     `g++ -MD -MF .deps/foo.Tpo -c -o foo.o foo.cc && (cp -f .deps/foo.Tpo .deps/foo.Plo)`,
			depfile: `.deps/foo.Tpo`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cmd, depfile, err := GetDepfileFromCommand(tc.in)
			if tc.err {
				if err == nil {
					t.Fatalf("GetDepfileFromCommand(%q) unexpectedly has no error", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetDepfileFromCommand(%q) returned error: %v", tc.in, err)
			}
			wantCmd := tc.cmd
			if wantCmd == "" {
				wantCmd = tc.in
			}
			if cmd != wantCmd {
				t.Errorf("GetDepfileFromCommand(%q) cmd=%q, want %q", tc.in, cmd, wantCmd)
			}
			if depfile != tc.depfile {
				t.Errorf("GetDepfileFromCommand(%q) depfile=%q, want %q", tc.in, depfile, tc.depfile)
			}
		})
	}
}

func TestGetDepfileFromCommandIdempotentAfterMutation(t *testing.T) {
	// Property from spec.md §8: re-invoking on the mutated command
	// (modulo the already-applied .tmp suffix) still reports a depfile.
	in := `g++ -c fat.cc -MD -MF foo.d -o fat.o`
	cmd, depfile, err := GetDepfileFromCommand(in)
	if err != nil {
		t.Fatalf("GetDepfileFromCommand(%q) returned error: %v", in, err)
	}
	if depfile != "foo.d.tmp" {
		t.Fatalf("depfile=%q, want foo.d.tmp", depfile)
	}
	cmd2, depfile2, err := GetDepfileFromCommand(cmd)
	if err != nil {
		t.Fatalf("second GetDepfileFromCommand returned error: %v", err)
	}
	if depfile2 != depfile {
		t.Errorf("second depfile=%q, want unchanged %q", depfile2, depfile)
	}
	if cmd2 != cmd+" && cp foo.d foo.d.tmp" {
		t.Errorf("second cmd=%q", cmd2)
	}
}
