package filter

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Evaluator evaluates admin list filters written as CEL expressions.
// Expressions see the record under the `record` variable, e.g.
// `record.name.contains("ISO") && record.issuer != ""`.
type Evaluator struct {
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new filter evaluator with expression caching
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: make(map[string]cel.Program),
	}
}

// Matches reports whether the record satisfies the filter expression
func (e *Evaluator) Matches(expr string, record map[string]interface{}) (bool, error) {
	// Check cache first
	e.mu.RLock()
	prg, exists := e.cache[expr]
	e.mu.RUnlock()

	if !exists {
		var err error
		prg, err = e.compile(expr)
		if err != nil {
			return false, err
		}

		e.mu.Lock()
		e.cache[expr] = prg
		e.mu.Unlock()
	}

	out, _, err := prg.Eval(map[string]interface{}{
		"record": record,
	})

	if err != nil {
		return false, fmt.Errorf("filter evaluation error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean, got %T", out.Value())
	}

	return result, nil
}

// RecordContext converts a domain entity into the map form expressions
// evaluate against, using the entity's JSON representation so field names
// match what the admin UI displays.
func RecordContext(entity interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("marshal record for filter: %w", err)
	}

	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record for filter: %w", err)
	}

	return record, nil
}

// compile compiles a CEL expression
func (e *Evaluator) compile(expr string) (cel.Program, error) {
	env, err := cel.NewEnv(
		cel.Variable("record", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter compilation error: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return prg, nil
}

// ClearCache clears the compiled expression cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}

// CacheSize returns the number of cached expressions
func (e *Evaluator) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
