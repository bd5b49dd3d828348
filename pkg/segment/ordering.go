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

package segment

// Ordering is the grammar capability spec.md §4.4 calls can_follow: an
// external-to-core hint that two paths cannot coexist, in the given order,
// in any valid fact of this grammar. CondSet treats it as a black box
// boolean used only to prune discrimination-tree branches; core semantics
// never depend on what it returns beyond true/false.
type Ordering interface {
	// CanFollow reports whether p may legally appear at a point in a fact
	// where at has already been traversed.
	CanFollow(p, at Path) bool
}

// AlwaysOrdering is the trivial Ordering that never prunes: every path may
// follow every other. It is a reasonable default for a grammar that has no
// ordering constraints to express.
type AlwaysOrdering struct{}

// CanFollow always reports true.
func (AlwaysOrdering) CanFollow(p, at Path) bool { return true }
