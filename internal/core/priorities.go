package core

import (
	"fmt"

	"landscapecore/pkg/domain"
)

// PriorityScore names one of the five prioritization dimensions.
type PriorityScore string

// Prioritization dimensions.
const (
	ScoreFoodSecurity     PriorityScore = "food_security"
	ScoreArea             PriorityScore = "area"
	ScoreLocalDevelopment PriorityScore = "local_development"
	ScoreEnvironment      PriorityScore = "environment"
	ScoreInclusion        PriorityScore = "inclusion"
)

// Priorities returns the prioritized livelihood list, seeding one zero-scored
// row per refined livelihood on first entry. Rows for livelihoods no longer
// in the refined list are pruned; new livelihoods gain a fresh row.
func (s *Service) Priorities() ([]domain.PrioritizedLivelihood, error) {
	details := s.LivelihoodDetails()
	if len(details) == 0 {
		return nil, MissingUpstreamError{Stage: "prioritization", Requires: "livelihood selection"}
	}
	stored := loadList[domain.PrioritizedLivelihood](s, keyPriorities)
	byID := make(map[string]domain.PrioritizedLivelihood, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}
	merged := make([]domain.PrioritizedLivelihood, 0, len(details))
	for _, d := range details {
		if p, ok := byID[d.ID]; ok {
			merged = append(merged, p)
			continue
		}
		merged = append(merged, domain.PrioritizedLivelihood{
			ID:   d.ID,
			Name: d.Name,
			Code: d.Code,
		})
	}
	if err := s.save(keyPriorities, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// PrioritizedList returns the stored rows without the seeding pass of
// Priorities. Report flattening reads through this to avoid side effects.
func (s *Service) PrioritizedList() []domain.PrioritizedLivelihood {
	return loadList[domain.PrioritizedLivelihood](s, keyPriorities)
}

// SetPriorityScore updates one dimension score of one prioritized livelihood.
// The total is recomputed from the five components on every write.
func (s *Service) SetPriorityScore(id string, dim PriorityScore, value int) error {
	start := s.nowFn()
	err := s.setPriorityScore(id, dim, value)
	s.observe("priority_score", start, err)
	return err
}

func (s *Service) setPriorityScore(id string, dim PriorityScore, value int) error {
	if value < 0 || value > 3 {
		return ValidationError{Field: string(dim), Message: "score must be between 0 and 3"}
	}
	list := loadList[domain.PrioritizedLivelihood](s, keyPriorities)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		switch dim {
		case ScoreFoodSecurity:
			list[i].FoodSecurity = value
		case ScoreArea:
			list[i].Area = value
		case ScoreLocalDevelopment:
			list[i].LocalDevelopment = value
		case ScoreEnvironment:
			list[i].Environment = value
		case ScoreInclusion:
			list[i].Inclusion = value
		default:
			return ValidationError{Field: "dimension", Message: fmt.Sprintf("unknown dimension %q", dim)}
		}
		list[i].Total = domain.PriorityTotal(list[i])
		return s.save(keyPriorities, list)
	}
	return ErrNotFound{Kind: "prioritized livelihood", ID: id}
}

// SetPriorityProducts updates the free-text main-products field.
func (s *Service) SetPriorityProducts(id, products string) error {
	list := loadList[domain.PrioritizedLivelihood](s, keyPriorities)
	for i := range list {
		if list[i].ID == id {
			list[i].MainProducts = products
			return s.save(keyPriorities, list)
		}
	}
	return ErrNotFound{Kind: "prioritized livelihood", ID: id}
}
