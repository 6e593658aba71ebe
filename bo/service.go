package bo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/Linskii/coffee-tracker/acquisition"
	"github.com/Linskii/coffee-tracker/gp"
	"github.com/Linskii/coffee-tracker/kernel"
)

// Service is the Bayesian Optimization core (C4). One Service manages every
// (bean, machine) optimizer the host application has created, each
// serialized independently by a per-key mutex (spec.md §5).
type Service struct {
	store   Store
	schemas MachineSchemaAdapter
	runs    RunHistoryAdapter
	rng     *rand.Rand
	logger  *zap.Logger

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
	config   Config
}

// NewService wires a Service from its external collaborators. rng seeds
// acquisition candidate sampling and must not be shared with concurrent
// callers outside this Service (math/rand.Rand is not goroutine-safe).
// The starting Config is the one store holds; if it holds none, or loading
// it fails (logged), the Service starts from DefaultConfig.
func NewService(store Store, schemas MachineSchemaAdapter, runs RunHistoryAdapter, rng *rand.Rand, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := DefaultConfig()
	if stored, err := store.GetConfig(context.Background()); err != nil {
		logger.Warn("loading stored config failed; using defaults", zap.Error(err))
	} else if stored != nil {
		cfg = *stored
	}
	return &Service{
		store:    store,
		schemas:  schemas,
		runs:     runs,
		rng:      rng,
		logger:   logger,
		keyLocks: make(map[string]*sync.Mutex),
		config:   cfg,
	}
}

func stateKey(beanID, machineID string) string {
	return beanID + "_" + machineID
}

func (s *Service) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.keyLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.keyLocks[key] = l
	}
	return l
}

// InitializeOptimizer creates a fresh, empty BO state for (beanID,
// machineID), capturing the service's current Config as the state's
// GPHyperparameters. It overwrites any existing state for the pair. If the
// machine's schema has no optimizable parameters (every parameter is
// free-text), it returns ErrNotInitialized and writes no state.
func (s *Service) InitializeOptimizer(ctx context.Context, beanID, machineID string) error {
	if beanID == "" || machineID == "" {
		return fmt.Errorf("%w: beanID and machineID must not be empty", ErrInvalidInput)
	}
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.initializeOptimizerLocked(ctx, beanID, machineID, key)
	return err
}

// initializeOptimizerLocked builds and persists a fresh State for key,
// assuming the caller already holds key's lock. It returns ErrNotInitialized
// without writing anything if the machine has no optimizable parameters;
// UpdateWithRun's lazy-init path relies on this to tell "nothing to
// optimize" apart from a genuine failure.
func (s *Service) initializeOptimizerLocked(ctx context.Context, beanID, machineID, key string) (*State, error) {
	schema, err := s.schemas.GetMachineSchema(ctx, machineID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading machine schema: %v", ErrStorage, err)
	}
	if schema == nil {
		return nil, ErrMachineNotFound
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	optimizable := schema.Optimizable()
	if len(optimizable) == 0 {
		return nil, ErrNotInitialized
	}

	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()

	state := &State{
		ParameterMetadata: optimizable,
		Observations:      nil,
		GPHyperparameters: GPHyperparameters{
			LengthScale: cfg.LengthScale,
			OutputScale: cfg.OutputScale,
			Noise:       cfg.Noise,
		},
		LastUpdated: time.Now().UTC(),
	}
	if err := s.store.PutState(ctx, key, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.logger.Info("optimizer initialized", zap.String("beanID", beanID), zap.String("machineID", machineID))
	return state, nil
}

// encodeObservation encodes a Run's parameter values into the GP input
// vector implied by meta's order, plus its normalized rating. It returns
// ErrMissingParameterValue if any optimizable parameter is absent from the
// run.
func encodeObservation(meta []ParameterSchema, observations []Observation, run Run, padding float64) (Observation, error) {
	vec := make([]float64, len(meta))
	for i, p := range meta {
		v, ok := run.ParameterValues[p.ID]
		if !ok {
			supplied := maps.Keys(run.ParameterValues)
			sort.Strings(supplied)
			return Observation{}, fmt.Errorf("%w: parameter %q (run supplied %v)", ErrMissingParameterValue, p.ID, supplied)
		}
		switch p.Kind {
		case KindBoundedContinuous:
			n, _ := v.Number()
			vec[i] = EncodeBounded(n, p.Bounded)
		case KindUnboundedContinuous:
			n, _ := v.Number()
			hist := collectHistory(observations, p.ID)
			vec[i] = EncodeUnbounded(n, hist, padding)
		case KindOrdinal:
			t, _ := v.Text()
			vec[i] = EncodeOrdinal(t, p.Ordinal.Options)
		default:
			return Observation{}, fmt.Errorf("%w: parameter %q has non-optimizable kind", ErrInvalidInput, p.ID)
		}
	}
	rating, err := validatedRating(run.Rating)
	if err != nil {
		return Observation{}, err
	}
	return Observation{
		Vector:    vec,
		RawValues: run.ParameterValues,
		Rating:    EncodeRating(rating),
	}, nil
}

func validatedRating(r int) (int, error) {
	if r < 1 || r > 10 {
		return 0, fmt.Errorf("%w: rating %d out of range [1,10]", ErrInvalidInput, r)
	}
	return r, nil
}

// isUnrated reports whether run carries no rating. The zero value (outside
// the valid [1,10] scale) is the sentinel: a caller that hasn't rated a run
// yet simply leaves Rating unset.
func isUnrated(run Run) bool {
	return run.Rating == 0
}

// UpdateWithRun appends run to the (beanID, machineID) optimizer's history.
// If the pair has no state yet, it is lazily initialized first; if that
// lazy init finds the machine has no optimizable parameters, the call is a
// silent no-op. An unrated run is also a silent no-op (spec.md §4.4.3).
func (s *Service) UpdateWithRun(ctx context.Context, beanID, machineID string, run Run) error {
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()
	return s.updateWithRunLocked(ctx, beanID, machineID, run)
}

// updateWithRunLocked performs the update assuming the caller already holds
// key's lock. Shared by UpdateWithRun and RebuildFromHistory.
func (s *Service) updateWithRunLocked(ctx context.Context, beanID, machineID string, run Run) error {
	if isUnrated(run) {
		return nil
	}

	key := stateKey(beanID, machineID)
	state, err := s.store.GetState(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if state == nil {
		initialized, err := s.initializeOptimizerLocked(ctx, beanID, machineID, key)
		if err != nil {
			if errors.Is(err, ErrNotInitialized) {
				return nil
			}
			return err
		}
		state = initialized
	}

	s.mu.Lock()
	padding := s.config.UnboundedPadding
	maxObservations := s.config.MaxObservations
	s.mu.Unlock()

	obs, err := encodeObservation(state.ParameterMetadata, state.Observations, run, padding)
	if err != nil {
		return err
	}
	state.Observations = append(state.Observations, obs)
	if maxObservations > 0 && len(state.Observations) > maxObservations {
		state.Observations = state.Observations[len(state.Observations)-maxObservations:]
	}
	state.LastUpdated = time.Now().UTC()
	if err := s.store.PutState(ctx, key, state); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// IsReady reports whether (beanID, machineID) has enough observations to
// produce a suggestion. Any internal failure is treated as not-ready
// (spec.md §7 read-side tolerance).
func (s *Service) IsReady(ctx context.Context, beanID, machineID string) bool {
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.GetState(ctx, key)
	if err != nil || state == nil {
		return false
	}
	s.mu.Lock()
	min := s.config.MinObservations
	s.mu.Unlock()
	return len(state.Observations) >= min
}

// GetObservationCount returns how many runs have been recorded for
// (beanID, machineID), or 0 if no state exists or a storage error occurs.
func (s *Service) GetObservationCount(ctx context.Context, beanID, machineID string) int {
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.GetState(ctx, key)
	if err != nil || state == nil {
		return 0
	}
	return len(state.Observations)
}

// ClearOptimizer deletes the BO state for a single (beanID, machineID) pair.
func (s *Service) ClearOptimizer(ctx context.Context, beanID, machineID string) error {
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.DeleteState(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// ClearOptimizersForMachine deletes every optimizer state keyed against
// machineID, across every bean. The store key format "<bean>_<machine>" is
// not unambiguously reversible when either id itself contains an
// underscore, so this matches by suffix "_<machineID>" — callers that rely
// on bean ids never colliding with a machine id's suffix get exact
// behavior, others get a best effort.
//
// Per-key delete failures are logged and do not stop the sweep (spec.md §7
// best-effort propagation for cascading-invalidation calls); only a failure
// to list keys at all is surfaced.
func (s *Service) ClearOptimizersForMachine(ctx context.Context, machineID string) error {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	suffix := "_" + machineID
	for _, key := range keys {
		if len(key) < len(suffix) || key[len(key)-len(suffix):] != suffix {
			continue
		}
		lock := s.lockFor(key)
		lock.Lock()
		err := s.store.DeleteState(ctx, key)
		lock.Unlock()
		if err != nil {
			s.logger.Warn("clearOptimizersForMachine: delete failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// GetConfig returns the service's current hyperparameter configuration.
func (s *Service) GetConfig() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig validates and applies patch on top of the current config,
// persists it, and returns the resulting Config. It does not retroactively
// touch any existing State's captured GPHyperparameters.
func (s *Service) SetConfig(ctx context.Context, patch ConfigPatch) (Config, error) {
	s.mu.Lock()
	next := patch.Merge(s.config)
	s.mu.Unlock()

	if err := next.Validate(); err != nil {
		return Config{}, err
	}
	if err := s.store.PutConfig(ctx, &next); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.mu.Lock()
	s.config = next
	s.mu.Unlock()
	return next, nil
}

// RebuildFromHistory discards the current state for (beanID, machineID) and
// replays every run the history adapter reports, re-encoding against the
// current machine schema. Used after a schema change invalidates the
// cached optimizer (spec.md §7).
func (s *Service) RebuildFromHistory(ctx context.Context, beanID, machineID string) error {
	if err := s.InitializeOptimizer(ctx, beanID, machineID); err != nil {
		return err
	}
	runs, err := s.runs.GetRuns(ctx, beanID, machineID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	for _, run := range runs {
		if err := s.updateWithRunLocked(ctx, beanID, machineID, run); err != nil {
			s.logger.Warn("skipping run during rebuild", zap.Error(err))
		}
	}
	return nil
}

// fitRegressor builds and fits a GP regressor from state's observations
// using its captured hyperparameters.
func fitRegressor(state *State) (*gp.Regressor, error) {
	k := kernel.RBF{OutputScale: state.GPHyperparameters.OutputScale, LengthScale: state.GPHyperparameters.LengthScale}
	r := gp.New(k, state.GPHyperparameters.Noise)
	X := make([][]float64, len(state.Observations))
	y := make([]float64, len(state.Observations))
	for i, o := range state.Observations {
		X[i] = o.Vector
		y[i] = o.Rating
	}
	if err := r.Fit(X, y); err != nil {
		return nil, err
	}
	return r, nil
}

// decodeCandidate turns a normalized candidate vector back into raw
// parameter values per meta's order, using observations as the unbounded-continuous
// rescaling history. Free-text parameters (absent from meta) are not
// produced here; callers fill them separately if needed.
func decodeCandidate(meta []ParameterSchema, observations []Observation, vec []float64, padding float64) map[string]ParamValue {
	values := make(map[string]ParamValue, len(meta))
	for i, p := range meta {
		u := vec[i]
		switch p.Kind {
		case KindBoundedContinuous:
			values[p.ID] = NewBoundedValue(DecodeBounded(u, p.Bounded))
		case KindUnboundedContinuous:
			hist := collectHistory(observations, p.ID)
			values[p.ID] = NewUnboundedValue(DecodeUnbounded(u, hist, padding, p.Unbound.Default))
		case KindOrdinal:
			values[p.ID] = NewOrdinalValue(DecodeOrdinal(u, p.Ordinal.Options))
		}
	}
	return values
}

// SuggestParameters recommends the next parameter set to try for (beanID,
// machineID). It returns nil if the pair is not initialized, has no
// observations, or any internal step fails (spec.md §7 read-side
// tolerance) — failures are logged, never propagated.
func (s *Service) SuggestParameters(ctx context.Context, beanID, machineID string) *Suggestion {
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	correlationID := uuid.NewString()
	logger := s.logger.With(zap.String("correlationId", correlationID), zap.String("key", key))

	state, err := s.store.GetState(ctx, key)
	if err != nil || state == nil || len(state.Observations) == 0 {
		if err != nil {
			logger.Warn("suggest: loading state failed", zap.Error(err))
		}
		return nil
	}

	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()

	regressor, err := fitRegressor(state)
	if err != nil {
		logger.Warn("suggest: fit failed", zap.Error(err))
		return nil
	}

	dims := len(state.ParameterMetadata)
	if dims == 0 {
		return nil
	}
	// s.rng is shared by every pair; s.mu serializes its use across keys.
	s.mu.Lock()
	candidates := acquisition.Candidates(dims, cfg.NumCandidates, s.rng)
	s.mu.Unlock()
	means, variances, err := regressor.Predict(candidates)
	if err != nil {
		logger.Warn("suggest: predict failed", zap.Error(err))
		return nil
	}
	idx, err := acquisition.UCB(means, variances, cfg.ExplorationFactor)
	if err != nil {
		logger.Warn("suggest: acquisition failed", zap.Error(err))
		return nil
	}

	values := decodeCandidate(state.ParameterMetadata, state.Observations, candidates[idx], cfg.UnboundedPadding)
	addFreeTextPassthrough(ctx, s.schemas, machineID, values, logger)

	return &Suggestion{
		BeanID:          beanID,
		MachineID:       machineID,
		ParameterValues: values,
		Rating:          "unrated",
		IsSuggestion:    true,
		ExpectedRating:  DecodeRating(means[idx]),
		ExpectedStdDev:  DecodeStdDev(math.Sqrt(math.Max(0, variances[idx]))),
	}
}

// addFreeTextPassthrough fills values with an empty-string entry for every
// free-text parameter in machineID's schema, per spec.md §4.4.5 ("carries
// free-text parameters through as empty strings"). decodeCandidate never
// produces these since they never enter the GP. A schema lookup failure is
// logged and leaves values as-is (read-side tolerance).
func addFreeTextPassthrough(ctx context.Context, schemas MachineSchemaAdapter, machineID string, values map[string]ParamValue, logger *zap.Logger) {
	schema, err := schemas.GetMachineSchema(ctx, machineID)
	if err != nil {
		logger.Warn("suggest: loading machine schema for free-text passthrough failed", zap.Error(err))
		return
	}
	if schema == nil {
		return
	}
	for _, p := range schema.Parameters {
		if p.Kind == KindFreeText {
			values[p.ID] = NewFreeTextValue("")
		}
	}
}
