// Package builtins holds Sanetaka's native function registry: names the
// compiler tags as builtin calls and the evaluator dispatches to directly,
// bypassing environment lookup.
package builtins

import (
	"fmt"
	"sync"

	"github.com/siglang/sanetaka/internal/ir"
)

// Function is a native implementation. It receives already-evaluated
// argument values and returns a result value or an error describing why it
// could not be computed for those arguments.
type Function func(args []ir.LiteralValue) (ir.LiteralValue, error)

// Info pairs a builtin's native implementation with its metadata. The
// evaluator checks Arity before dispatch; Description is descriptive only
// and is not read by any code in this repository.
type Info struct {
	Name        string
	Arity       int // -1 means variadic
	Description string
	Fn          Function
}

// registry is append-only after init(): every entry is registered exactly
// once, from this package's own init, so lookups never race with writers.
var (
	mu       sync.RWMutex
	registry = map[string]Info{}
)

func register(info Info) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[info.Name]; exists {
		panic(fmt.Sprintf("builtins: %q registered twice", info.Name))
	}
	registry[info.Name] = info
}

// Get looks up a builtin by name. The compiler calls this to tag a call
// expression as a builtin call at lowering time; the evaluator calls it
// again at dispatch time rather than trusting the tag blindly, so a
// builtin added or removed between compiles can't desync the two.
func Get(name string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()
	info, ok := registry[name]
	return info, ok
}

// Names returns every registered builtin name, for `sanetaka repl`'s tab
// completion.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
