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

package guard

import (
	"testing"

	"github.com/enriquepablo/syntreenet/pkg/matching"
	"github.com/enriquepablo/syntreenet/pkg/segment"
)

func TestExprGuardPasses(t *testing.T) {
	g, err := NewExprGuard(`age >= "18"`)
	if err != nil {
		t.Fatal(err)
	}
	m := matching.Empty.Set(
		segment.NewVar("var", "age", 0, 0),
		segment.NewLeaf("word", "21", 0, 2),
	)
	ok, err := g.Check(m)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected guard to pass")
	}
}

func TestExprGuardRejectsNonBool(t *testing.T) {
	g, err := NewExprGuard(`1 + 1`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Check(matching.Empty); err == nil {
		t.Fatal("expected an error for a non-bool result")
	}
}

func TestNewExprGuardRejectsMalformed(t *testing.T) {
	if _, err := NewExprGuard(`(( not valid`); err == nil {
		t.Fatal("expected a parse error")
	}
}
