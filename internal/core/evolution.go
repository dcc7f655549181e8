package core

import (
	"landscapecore/pkg/domain"
)

// Evolution returns the event sequence for one conflict, which may belong to
// either variant list. A conflict with no recorded events yields an empty
// sequence.
func (s *Service) Evolution(conflictID string) (domain.ConflictEvolution, error) {
	if _, ok := s.FindConflict(conflictID); !ok {
		return domain.ConflictEvolution{}, ErrNotFound{Kind: "conflict", ID: conflictID}
	}
	for _, evo := range loadList[domain.ConflictEvolution](s, keyEvolutions) {
		if evo.ConflictID == conflictID {
			return evo, nil
		}
	}
	return domain.ConflictEvolution{ConflictID: conflictID}, nil
}

// AppendEvent adds one event to a conflict's evolution. The tension total is
// recomputed here from the two ratings.
func (s *Service) AppendEvent(conflictID string, event domain.ConflictEvent) error {
	start := s.nowFn()
	err := s.appendEvent(conflictID, event)
	s.observe("evolution_append", start, err)
	return err
}

func (s *Service) appendEvent(conflictID string, event domain.ConflictEvent) error {
	if event.Differences < -1 || event.Differences > 1 {
		return ValidationError{Field: "differences", Message: "rating must be -1, 0 or 1"}
	}
	if event.Cooperation < -1 || event.Cooperation > 1 {
		return ValidationError{Field: "cooperation", Message: "rating must be -1, 0 or 1"}
	}
	evo, err := s.Evolution(conflictID)
	if err != nil {
		return err
	}
	event.Tension = domain.EventTension(event)
	evo.Events = append(evo.Events, event)
	return s.saveEvolution(evo)
}

// DeleteEvent removes the event at the given index.
func (s *Service) DeleteEvent(conflictID string, index int) error {
	evo, err := s.Evolution(conflictID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(evo.Events) {
		return ValidationError{Field: "index", Message: "out of range"}
	}
	evo.Events = append(evo.Events[:index], evo.Events[index+1:]...)
	return s.saveEvolution(evo)
}

// SortEvolution orders a conflict's events ascending by year and persists the
// result. Events with unparseable years move to the end in their original
// relative order.
func (s *Service) SortEvolution(conflictID string) error {
	evo, err := s.Evolution(conflictID)
	if err != nil {
		return err
	}
	evo.Events = domain.SortEventsByYear(evo.Events)
	return s.saveEvolution(evo)
}

func (s *Service) saveEvolution(evo domain.ConflictEvolution) error {
	list := loadList[domain.ConflictEvolution](s, keyEvolutions)
	for i := range list {
		if list[i].ConflictID == evo.ConflictID {
			list[i] = evo
			return s.save(keyEvolutions, list)
		}
	}
	list = append(list, evo)
	return s.save(keyEvolutions, list)
}

// Evolutions returns every stored evolution record.
func (s *Service) Evolutions() []domain.ConflictEvolution {
	return loadList[domain.ConflictEvolution](s, keyEvolutions)
}

// OpenAttribution returns the actor attribution for one conflict. On first
// open it is seeded with one involvement row per currently-known landscape
// actor; a previously saved attribution is returned as stored, even when the
// roster changed since.
func (s *Service) OpenAttribution(conflictID string) (domain.ConflictActorAttribution, error) {
	rec, ok := s.FindConflict(conflictID)
	if !ok {
		return domain.ConflictActorAttribution{}, ErrNotFound{Kind: "conflict", ID: conflictID}
	}
	for _, att := range loadList[domain.ConflictActorAttribution](s, keyAttributions) {
		if att.ConflictID == conflictID {
			return att, nil
		}
	}
	att := domain.ConflictActorAttribution{
		ConflictID:   conflictID,
		ConflictCode: domain.ConflictDisplayCode(rec),
	}
	for _, actor := range s.Actors() {
		att.Actors = append(att.Actors, domain.ActorInvolvement{
			ActorID:   actor.ID,
			ActorName: actor.Name,
		})
	}
	return att, nil
}

// ToggleAttributionActor adds or removes one actor's involvement row on an
// in-progress attribution. Returns true when the actor is present after the
// toggle.
func (s *Service) ToggleAttributionActor(att *domain.ConflictActorAttribution, actorID string) (bool, error) {
	for i, inv := range att.Actors {
		if inv.ActorID == actorID {
			att.Actors = append(att.Actors[:i], att.Actors[i+1:]...)
			return false, nil
		}
	}
	for _, actor := range s.Actors() {
		if actor.ID == actorID {
			att.Actors = append(att.Actors, domain.ActorInvolvement{
				ActorID:   actorID,
				ActorName: actor.Name,
			})
			return true, nil
		}
	}
	return false, ErrNotFound{Kind: "landscape actor", ID: actorID}
}

// SaveAttribution persists exactly the current involvement list.
func (s *Service) SaveAttribution(att domain.ConflictActorAttribution) error {
	start := s.nowFn()
	err := s.saveAttribution(att)
	s.observe("attribution_save", start, err)
	return err
}

func (s *Service) saveAttribution(att domain.ConflictActorAttribution) error {
	if att.ConflictID == "" {
		return ValidationError{Field: "conflict_id", Message: "required"}
	}
	for _, inv := range att.Actors {
		if !validSign(inv.ImpactOnActorSign) || !validSign(inv.ImpactOnConflictSign) {
			return ValidationError{Field: "impact_sign", Message: "must be +, o or -"}
		}
	}
	list := loadList[domain.ConflictActorAttribution](s, keyAttributions)
	for i := range list {
		if list[i].ConflictID == att.ConflictID {
			list[i] = att
			return s.save(keyAttributions, list)
		}
	}
	list = append(list, att)
	return s.save(keyAttributions, list)
}

func validSign(sign domain.ImpactSign) bool {
	switch sign {
	case "", domain.SignPositive, domain.SignNeutral, domain.SignNegative:
		return true
	}
	return false
}

// Attributions returns every stored attribution record.
func (s *Service) Attributions() []domain.ConflictActorAttribution {
	return loadList[domain.ConflictActorAttribution](s, keyAttributions)
}
