// Package bo provides the Bayesian Optimization core behind a brew
// parameter advisor: per-(bean, machine) optimizers that learn a brewing
// parameter set's effect on rating from past runs and suggest the next
// parameter set to try.
//
// # Features
//
// The package includes the following key features:
//
//   - Gaussian Process regression over a mix of bounded-continuous,
//     unbounded-continuous, and ordinal brew parameters; free-text
//     parameters stay outside the model and are carried through as text
//   - Upper Confidence Bound acquisition, with Probability of Improvement,
//     Expected Improvement, and Thompson Sampling carried as alternative
//     strategies in the acquisition package
//   - Per-(bean, machine) optimizer isolation: each pair's state, history,
//     and concurrency lock are independent
//   - Thread-safe: every Service method serializes access to a given
//     (bean, machine) key through an internal per-key mutex
//   - Pluggable persistence, machine-schema, and run-history adapters —
//     the Service owns no transport or storage itself
//
// # Configuration
//
// A Service starts from the Config its Store holds (DefaultConfig when the
// store holds none) and accepts incremental updates via SetConfig, which
// validates the patched result before persisting and applying it:
//
//	svc := bo.NewService(store, schemas, runs, rng, logger)
//	_, err := svc.SetConfig(ctx, bo.ConfigPatch{ExplorationFactor: ptr(3.0)})
//
// The kernel hyperparameters of a Config take effect only at future
// InitializeOptimizer calls, which capture them into the new state; the
// other fields are read by each call that uses them (UpdateWithRun,
// IsReady, SuggestParameters, GetPredictionCurve). Config changes never
// retroactively rewrite an existing state's GPHyperparameters.
//
// # Thread Safety
//
// All Service methods are safe for concurrent use across different (bean,
// machine) pairs. Calls against the same pair are serialized by an
// internal mutex keyed on "<bean>_<machine>"; callers do not need their
// own locking. The injected *rand.Rand is not itself safe for concurrent
// use outside the Service — construct one rng per Service instance.
package bo
