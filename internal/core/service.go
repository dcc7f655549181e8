// Package core implements the workshop pipeline: intake, selection,
// prioritization, grouping, cross-reference reconciliation, threat and
// conflict matrices, evolution and actor attribution, and the questionnaire.
// Every stage reads fresh from the session store on entry and persists on
// explicit save; nothing trusts stale in-memory state.
package core

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"landscapecore/pkg/domain"
)

// Session store keys, one per record store.
const (
	keyContext           = "workshop_context"
	keyLivelihoodCatalog = "catalog_livelihoods"
	keyEcosystemCatalog  = "catalog_ecosystems"
	keyLivelihoodDetails = "livelihood_details"
	keyEcosystemDetails  = "ecosystem_details"
	keyPriorities        = "prioritized_livelihoods"
	keyGroups            = "productive_systems"
	keyEcoCharacts       = "ecosystem_characterizations"
	keyServiceCharacts   = "service_characterizations"
	keyClimaticThreats   = "threats_climatic"
	keyOtherThreats      = "threats_nonclimatic"
	keyLivelihoodConfl   = "conflicts_livelihood"
	keyServiceConfl      = "conflicts_service"
	keyEvolutions        = "conflict_evolutions"
	keyAttributions      = "conflict_attributions"
	keyActors            = "landscape_actors"
	keyDialogueSpaces    = "dialogue_spaces"
	keyConvenedActors    = "convened_actors"
	keyStrategy          = "participation_strategy"
	keyAgenda            = "workshop_agenda"
	keyQuestionnaire     = "adaptive_capacity"
)

// StoreKeys lists every store in export order.
func StoreKeys() []string {
	return []string{
		keyContext,
		keyLivelihoodCatalog,
		keyEcosystemCatalog,
		keyLivelihoodDetails,
		keyEcosystemDetails,
		keyPriorities,
		keyGroups,
		keyEcoCharacts,
		keyServiceCharacts,
		keyClimaticThreats,
		keyOtherThreats,
		keyLivelihoodConfl,
		keyServiceConfl,
		keyEvolutions,
		keyAttributions,
		keyActors,
		keyDialogueSpaces,
		keyConvenedActors,
		keyStrategy,
		keyAgenda,
		keyQuestionnaire,
	}
}

// Service exposes the pipeline operations over one session store.
type Service struct {
	store   domain.SessionStore
	engine  *domain.RulesEngine
	log     Logger
	metrics MetricsRecorder
	nowFn   func() time.Time
}

// Option customizes service construction.
type Option func(*Service)

// WithLogger installs a logger.
func WithLogger(log Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics installs a metrics recorder.
func WithMetrics(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// NewService constructs a service over the supplied store with the default
// rule set registered.
func NewService(store domain.SessionStore, opts ...Option) *Service {
	engine := domain.NewRulesEngine()
	engine.Register(groupDisjointnessRule{})
	engine.Register(tenurePercentageRule{})
	s := &Service{
		store:   store,
		engine:  engine,
		log:     noopLogger{},
		metrics: noopMetrics{},
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying session store.
func (s *Service) Store() domain.SessionStore { return s.store }

// RulesEngine returns the registered engine, so callers can add rules.
func (s *Service) RulesEngine() *domain.RulesEngine { return s.engine }

func (s *Service) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

func (s *Service) newBase() domain.Base {
	now := s.nowFn()
	return domain.Base{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
}

func (s *Service) observe(operation string, start time.Time, err error) {
	s.metrics.Observe(operation, err == nil, s.nowFn().Sub(start))
}

// loadList decodes a JSON array payload. A missing key or a structurally
// incompatible payload both yield an empty list; corruption is logged, never
// propagated.
func loadList[T any](s *Service, key string) []T {
	raw, ok := s.store.Get(key)
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("discarding corrupt payload", "key", key, "error", err)
		return nil
	}
	return out
}

// loadValue decodes a single JSON object payload, defensively like loadList.
func loadValue[T any](s *Service, key string) (T, bool) {
	var zero T
	raw, ok := s.store.Get(key)
	if !ok {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("discarding corrupt payload", "key", key, "error", err)
		return zero, false
	}
	return out, true
}

func (s *Service) save(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(key, payload)
}

// SetContext stores the landscape context stamped on every exported row.
func (s *Service) SetContext(ctx domain.WorkshopContext) error {
	return s.save(keyContext, ctx)
}

// Context returns the stored landscape context, if any.
func (s *Service) Context() (domain.WorkshopContext, bool) {
	return loadValue[domain.WorkshopContext](s, keyContext)
}

// Reset clears every store. Callers are expected to reinitialize all
// in-memory state afterwards, mirroring the full page reload the reset
// action forces in the facilitation UI.
func (s *Service) Reset() error {
	start := s.nowFn()
	err := s.store.Clear()
	s.observe("reset", start, err)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("session cleared")
	return nil
}

// StoreCounts reports how many records each populated store holds, for the
// status summary.
func (s *Service) StoreCounts() map[string]int {
	counts := make(map[string]int)
	for _, key := range s.store.Keys() {
		raw, ok := s.store.Get(key)
		if !ok {
			continue
		}
		var asList []json.RawMessage
		if err := json.Unmarshal(raw, &asList); err == nil {
			counts[key] = len(asList)
			continue
		}
		counts[key] = 1
	}
	return counts
}
