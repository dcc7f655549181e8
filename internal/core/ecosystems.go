package core

import (
	"sort"

	"landscapecore/pkg/domain"
)

// EnterEcosystemCharacterization is the stage entry point: it reconciles the
// persisted characterizations against the current ecosystem set and returns
// the surviving list. The prune is persisted immediately so stale entries
// from a replaced intake never reach later stages, even if this process exits
// before the next save.
func (s *Service) EnterEcosystemCharacterization() ([]domain.EcosystemCharacterization, error) {
	start := s.nowFn()
	list, err := s.reconcileEcosystemCharacterizations()
	s.observe("ecosystem_enter", start, err)
	return list, err
}

func (s *Service) reconcileEcosystemCharacterizations() ([]domain.EcosystemCharacterization, error) {
	details := s.EcosystemDetails()
	if len(details) == 0 {
		return nil, MissingUpstreamError{Stage: "ecosystem characterization", Requires: "ecosystem selection"}
	}
	valid := make(map[string]bool, len(details))
	for _, d := range details {
		valid[d.ID] = true
	}
	stored := loadList[domain.EcosystemCharacterization](s, keyEcoCharacts)
	kept := stored[:0:0]
	pruned := 0
	for _, c := range stored {
		if valid[c.EcosystemID] {
			kept = append(kept, c)
		} else {
			pruned++
		}
	}
	if pruned > 0 {
		s.log.Info("pruned orphaned ecosystem characterizations", "count", pruned)
	}
	if err := s.save(keyEcoCharacts, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// SaveEcosystemCharacterization upserts the characterization for one
// ecosystem. At most one entry exists per ecosystem id.
func (s *Service) SaveEcosystemCharacterization(c domain.EcosystemCharacterization) error {
	start := s.nowFn()
	err := s.saveEcosystemCharacterization(c)
	s.observe("ecosystem_save", start, err)
	return err
}

func (s *Service) saveEcosystemCharacterization(c domain.EcosystemCharacterization) error {
	if c.EcosystemID == "" {
		return ValidationError{Field: "ecosystem_id", Message: "required"}
	}
	found := false
	for _, d := range s.EcosystemDetails() {
		if d.ID == c.EcosystemID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound{Kind: "ecosystem", ID: c.EcosystemID}
	}
	for _, code := range c.RelatedServices {
		if _, ok := domain.FindService(code); !ok {
			return ValidationError{Field: "related_service_codes", Message: "unknown service code " + code}
		}
	}
	list := loadList[domain.EcosystemCharacterization](s, keyEcoCharacts)
	replaced := false
	for i := range list {
		if list[i].EcosystemID == c.EcosystemID {
			list[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, c)
	}
	return s.save(keyEcoCharacts, list)
}

// EcosystemCharacterizations returns the stored list without reconciling.
func (s *Service) EcosystemCharacterizations() []domain.EcosystemCharacterization {
	return loadList[domain.EcosystemCharacterization](s, keyEcoCharacts)
}

// TargetedServices derives the union of related-service codes across all
// ecosystem characterizations, sorted for stable presentation. Recomputed on
// every call, never stored.
func (s *Service) TargetedServices() []string {
	set := make(map[string]bool)
	for _, c := range s.EcosystemCharacterizations() {
		for _, code := range c.RelatedServices {
			set[code] = true
		}
	}
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
