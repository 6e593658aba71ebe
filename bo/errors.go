// errors.go — sentinel errors for the bo package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Write-side operations (UpdateWithRun, SetConfig, InitializeOptimizer,
//     RebuildFromHistory) return these sentinels, wrapped with %w and extra
//     context where the underlying collaborator failed.
//   - Read-side operations (SuggestParameters, GetPredictionCurve) never
//     return an error: any internal failure is logged and the method
//     returns nil, per spec's read-side tolerance.
package bo

import "errors"

var (
	// ErrInvalidInput covers out-of-range ratings, empty bean/machine ids,
	// invalid machine schemas, and config patches that fail validation.
	ErrInvalidInput = errors.New("bo: invalid input")

	// ErrNotInitialized is returned by InitializeOptimizer when the target
	// machine has no optimizable parameters (every declared parameter is
	// free-text); no state is written. UpdateWithRun's internal lazy-init
	// path treats this outcome as a silent no-op rather than surfacing it.
	ErrNotInitialized = errors.New("bo: optimizer not initialized")

	// ErrMachineNotFound is returned when the machine-schema adapter has no
	// record for the requested machine id.
	ErrMachineNotFound = errors.New("bo: machine not found")

	// ErrMissingParameterValue is returned when a run is missing a value for
	// one of the machine's optimizable parameters. UpdateWithRun returns it
	// (wrapped, naming the missing parameter) and leaves the state
	// unchanged; RebuildFromHistory logs it and skips the run.
	ErrMissingParameterValue = errors.New("bo: run missing optimizable parameter value")

	// ErrStorage wraps any error returned by the injected Store.
	ErrStorage = errors.New("bo: storage operation failed")
)
