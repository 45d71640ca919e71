package telemetry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

// InvalidVarID is returned for variables that cannot be resolved
const InvalidVarID VarID = -1

var (
	// ErrUnknownVariable is returned when a variable is not registered in the table
	ErrUnknownVariable = errors.New("unknown log variable")

	// ErrInvalidName is returned for empty group or variable names, or names containing a dot
	ErrInvalidName = errors.New("invalid log variable name")
)

// VarID is a numeric handle of a log variable, valid for the lifetime of the Table
type VarID int

// Valid reports whether the handle can be used to read a value
func (id VarID) Valid() bool {
	return id >= 0
}

type variable struct {
	group string
	name  string
	bits  atomic.Uint32
}

// Table is a registry of named float log variables, grouped as "group.name".
//
// Registration is serialized, while reads and writes of values are lock-free,
// so sources may update variables from their own goroutines while a
// publisher polls them by handle.
type Table struct {
	mu   sync.Mutex // serializes registration
	ids  map[string]VarID
	vars atomic.Pointer[[]*variable]
}

// NewTable creates an empty Table
func NewTable() *Table {
	t := &Table{ids: make(map[string]VarID)}
	vars := make([]*variable, 0)
	t.vars.Store(&vars)
	return t
}

// Register adds a variable to the table and returns its handle.
// Registering the same variable twice returns the existing handle.
func (t *Table) Register(group, name string) (VarID, error) {
	if err := validateName(group, name); err != nil {
		return InvalidVarID, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := group + "." + name
	if id, ok := t.ids[key]; ok {
		return id, nil
	}

	current := *t.vars.Load()
	next := make([]*variable, len(current), len(current)+1)
	copy(next, current)
	next = append(next, &variable{group: group, name: name})

	id := VarID(len(next) - 1)
	t.ids[key] = id
	t.vars.Store(&next)

	return id, nil
}

// VarID resolves a variable name to its handle
func (t *Table) VarID(group, name string) (VarID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.ids[group+"."+name]
	if !ok {
		return InvalidVarID, fmt.Errorf("%w: %s.%s", ErrUnknownVariable, group, name)
	}
	return id, nil
}

// Float returns the current value of a variable. Invalid handles read as zero.
func (t *Table) Float(id VarID) float32 {
	v := t.lookup(id)
	if v == nil {
		return 0
	}
	return math.Float32frombits(v.bits.Load())
}

// SetFloat stores a new value for the variable. Invalid handles are ignored.
func (t *Table) SetFloat(id VarID, value float32) {
	if v := t.lookup(id); v != nil {
		v.bits.Store(math.Float32bits(value))
	}
}

// Len returns the number of registered variables
func (t *Table) Len() int {
	return len(*t.vars.Load())
}

// Snapshot returns a copy of all variable values keyed by "group.name"
func (t *Table) Snapshot() map[string]float32 {
	vars := *t.vars.Load()
	snapshot := make(map[string]float32, len(vars))
	for _, v := range vars {
		snapshot[v.group+"."+v.name] = math.Float32frombits(v.bits.Load())
	}
	return snapshot
}

func (t *Table) lookup(id VarID) *variable {
	vars := *t.vars.Load()
	if id < 0 || int(id) >= len(vars) {
		return nil
	}
	return vars[id]
}

func validateName(group, name string) error {
	if group == "" || name == "" || strings.Contains(group, ".") || strings.Contains(name, ".") {
		return fmt.Errorf("%w: '%s.%s'", ErrInvalidName, group, name)
	}
	return nil
}
