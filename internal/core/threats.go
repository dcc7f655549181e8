package core

import (
	"sort"
	"strings"

	"landscapecore/pkg/domain"
)

func threatKey(climatic bool) string {
	if climatic {
		return keyClimaticThreats
	}
	return keyOtherThreats
}

// AddThreat appends a threat to its list. The name is required; the
// prioritization score is recomputed here and never taken from the input.
func (s *Service) AddThreat(t domain.ThreatRecord) (domain.ThreatRecord, error) {
	start := s.nowFn()
	added, err := s.addThreat(t)
	s.observe("threat_add", start, err)
	return added, err
}

func (s *Service) addThreat(t domain.ThreatRecord) (domain.ThreatRecord, error) {
	if strings.TrimSpace(t.Name) == "" {
		return domain.ThreatRecord{}, ValidationError{Field: "name", Message: "required"}
	}
	if t.Magnitude < 1 || t.Magnitude > 5 {
		return domain.ThreatRecord{}, ValidationError{Field: "magnitude", Message: "must be between 1 and 5"}
	}
	if t.Frequency < 1 || t.Frequency > 3 {
		return domain.ThreatRecord{}, ValidationError{Field: "frequency", Message: "must be between 1 and 3"}
	}
	if t.Trend < -2 || t.Trend > 3 {
		return domain.ThreatRecord{}, ValidationError{Field: "trend", Message: "must be between -2 and 3"}
	}
	t.Base = s.newBase()
	t.Score = domain.ThreatScore(t)
	key := threatKey(t.Climatic)
	list := append(loadList[domain.ThreatRecord](s, key), t)
	if err := s.save(key, list); err != nil {
		return domain.ThreatRecord{}, err
	}
	return t, nil
}

// Threats lists one threat family sorted descending by prioritization score.
// The sort is stable: ties keep insertion order.
func (s *Service) Threats(climatic bool) []domain.ThreatRecord {
	list := loadList[domain.ThreatRecord](s, threatKey(climatic))
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	return list
}

// AllThreats returns both families, climatic first, each in prioritized
// order. Conflict creation picks its threat from this pool.
func (s *Service) AllThreats() []domain.ThreatRecord {
	return append(s.Threats(true), s.Threats(false)...)
}

// DeleteThreat removes one threat from its list by id.
func (s *Service) DeleteThreat(climatic bool, id string) error {
	key := threatKey(climatic)
	list := loadList[domain.ThreatRecord](s, key)
	for i, t := range list {
		if t.ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.save(key, list)
		}
	}
	return ErrNotFound{Kind: "threat", ID: id}
}
