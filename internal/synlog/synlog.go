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

// Package synlog wraps go.uber.org/zap with the named fields this engine's
// call sites want: a fact's text, a rule's surface form, an activation
// counter. It holds no state of its own; New just builds a *zap.Logger at
// the requested level, and the rest of the package is a handful of
// zap.Field constructors so call sites read as
// logger.Debug("activation", synlog.Counter(n), synlog.Fact(f)) instead of
// building ad hoc fmt.Sprintf strings.
package synlog

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stringer is the minimal surface every loggable engine value exposes; it
// lets Fact/Rule accept pkg/fact.Fact, pkg/rule.Rule and their pointers
// without this package importing either.
type stringer interface {
	String() string
}

// New builds a *zap.Logger at the given level ("debug", "info", "warn",
// "error"; empty defaults to "info"). It uses production (JSON) encoding,
// matching how the retrieval pack's CLI examples configure their own
// output logger.
func New(level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("synlog: invalid level %q: %w", level, err)
	}
	return lvl, nil
}

// Fact names the "fact" field for anything with a String method that
// renders its surface text — pkg/fact.Fact and parsed facts alike.
func Fact(f stringer) zap.Field { return zap.String("fact", f.String()) }

// Rule names the "rule" field, analogous to Fact.
func Rule(r stringer) zap.Field { return zap.String("rule", r.String()) }

// Counter names the "seq" field the engine stamps, with its count of
// processed activations, on the log line of every fact it asserts, for
// correlating log lines with processing order.
func Counter(n int) zap.Field { return zap.Int("seq", n) }
