// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package synlog

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type fakeStringer string

func (s fakeStringer) String() string { return string(s) }

func TestNewDefaultsToInfo(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info level enabled by default")
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level disabled by default")
	}
}

func TestNewHonorsExplicitLevel(t *testing.T) {
	l, err := New("debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level enabled")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("not-a-level"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestFieldConstructorsNameTheirField(t *testing.T) {
	f := Fact(fakeStringer("parent abraham isaac"))
	if f.Key != "fact" || f.String != "parent abraham isaac" {
		t.Fatalf("Fact field = %+v", f)
	}
	r := Rule(fakeStringer("parent X1 X2 => ancestor X1 X2"))
	if r.Key != "rule" {
		t.Fatalf("Rule field key = %q, want %q", r.Key, "rule")
	}
	c := Counter(7)
	if c.Key != "seq" || c.Integer != 7 {
		t.Fatalf("Counter field = %+v", c)
	}
}
