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

package symbol

import "testing"

func TestInternIdentity(t *testing.T) {
	a := Intern("foo.o")
	b := Intern("foo.o")
	if a != b {
		t.Errorf("Intern(%q) != Intern(%q): %v != %v", "foo.o", "foo.o", a, b)
	}
	c := Intern("bar.o")
	if a == c {
		t.Errorf("Intern(%q) == Intern(%q)", "foo.o", "bar.o")
	}
}

func TestInternEmpty(t *testing.T) {
	if got := Intern(""); got != Empty {
		t.Errorf("Intern(\"\")=%v, want Empty", got)
	}
	if !Empty.IsEmpty() {
		t.Errorf("Empty.IsEmpty()=false, want true")
	}
	if Intern("x").IsEmpty() {
		t.Errorf("Intern(\"x\").IsEmpty()=true, want false")
	}
}

func TestString(t *testing.T) {
	s := Intern("a/b/c.o")
	if got, want := s.String(), "a/b/c.o"; got != want {
		t.Errorf("String()=%q, want %q", got, want)
	}
}
