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

func TestGomaccOffset(t *testing.T) {
	for _, tc := range []struct {
		in     string
		offset int
		ok     bool
	}{
		{
			in: "prebuilts/clang/linux-x86/host/3.6/bin/clang++ -c foo.c ",
			ok: true,
		},
		{
			in:     "prebuilts/misc/linux-x86/ccache/ccache prebuilts/clang/linux-x86/host/3.6/bin/clang++ -c foo.c ",
			offset: len("prebuilts/misc/linux-x86/ccache/ccache "),
			ok:     true,
		},
		{
			in: "echo foo ",
			ok: false,
		},
		{
			in: "prebuilts/gcc/linux-x86/arm/bin/arm-linux-androideabi-gcc -c foo.c",
			ok: true,
		},
		{
			in: "prebuilts/clang/linux-x86/host/3.6/bin/clang++ foo.c",
			ok: false, // no -c
		},
		{
			in: "/usr/bin/gcc -c foo.c",
			ok: false, // not under prebuilts/
		},
	} {
		offset, ok := gomaccOffset(tc.in)
		if ok != tc.ok {
			t.Errorf("gomaccOffset(%q)=_, %v; want ok=%v", tc.in, ok, tc.ok)
			continue
		}
		if ok && offset != tc.offset {
			t.Errorf("gomaccOffset(%q)=%d, _; want %d", tc.in, offset, tc.offset)
		}
	}
}
