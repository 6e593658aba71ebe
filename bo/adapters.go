package bo

import "context"

// Store is the durable-storage adapter the service persists BO State and
// Config through. Implementations live in the store package. Get returning
// (nil, nil) means "no record yet" — callers must not treat it as an error.
type Store interface {
	GetState(ctx context.Context, key string) (*State, error)
	PutState(ctx context.Context, key string, state *State) error
	DeleteState(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	GetConfig(ctx context.Context) (*Config, error)
	PutConfig(ctx context.Context, cfg *Config) error
}

// MachineSchemaAdapter resolves a machine's parameter schema; the service
// only reads through it. A lookup failure while creating a state
// (InitializeOptimizer, UpdateWithRun's lazy init) is returned wrapped in
// ErrStorage; a failure during SuggestParameters' free-text passthrough is
// logged and the suggestion is returned without the free-text entries.
type MachineSchemaAdapter interface {
	GetMachineSchema(ctx context.Context, machineID string) (*MachineSchema, error)
}

// Run is one historical rated brew, as reported by the host application.
// Rating is on a 1-10 integer scale; ParameterValues must cover every
// optimizable parameter in the machine's schema for the run to be usable.
type Run struct {
	MachineID       string
	BeanID          string
	ParameterValues map[string]ParamValue
	Rating          int
}

// RunHistoryAdapter supplies prior runs for a (bean, machine) pair, used to
// rebuild a BO State after a schema change invalidates the cached one
// (spec.md §7 RebuildFromHistory).
type RunHistoryAdapter interface {
	GetRuns(ctx context.Context, beanID, machineID string) ([]Run, error)
}
