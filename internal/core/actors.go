package core

import (
	"strings"

	"landscapecore/pkg/domain"
)

// Actors returns the landscape actor roster.
func (s *Service) Actors() []domain.LandscapeActor {
	return loadList[domain.LandscapeActor](s, keyActors)
}

// SaveActor inserts or updates one landscape actor by id. A zero id means
// insert. Power and interest are bounded to [0,10].
func (s *Service) SaveActor(actor domain.LandscapeActor) (domain.LandscapeActor, error) {
	start := s.nowFn()
	saved, err := s.saveActor(actor)
	s.observe("actor_save", start, err)
	return saved, err
}

func (s *Service) saveActor(actor domain.LandscapeActor) (domain.LandscapeActor, error) {
	if strings.TrimSpace(actor.Name) == "" {
		return domain.LandscapeActor{}, ValidationError{Field: "name", Message: "required"}
	}
	if actor.Power < 0 || actor.Power > 10 {
		return domain.LandscapeActor{}, ValidationError{Field: "power", Message: "must be between 0 and 10"}
	}
	if actor.Interest < 0 || actor.Interest > 10 {
		return domain.LandscapeActor{}, ValidationError{Field: "interest", Message: "must be between 0 and 10"}
	}
	list := s.Actors()
	if actor.ID == "" {
		actor.Base = s.newBase()
		list = append(list, actor)
	} else {
		found := false
		for i := range list {
			if list[i].ID == actor.ID {
				actor.CreatedAt = list[i].CreatedAt
				actor.UpdatedAt = s.nowFn()
				// The letter is stable once assigned; edits never reassign it.
				if actor.DiagramLetter == "" {
					actor.DiagramLetter = list[i].DiagramLetter
				}
				list[i] = actor
				found = true
				break
			}
		}
		if !found {
			return domain.LandscapeActor{}, ErrNotFound{Kind: "landscape actor", ID: actor.ID}
		}
	}
	if err := s.save(keyActors, list); err != nil {
		return domain.LandscapeActor{}, err
	}
	return actor, nil
}

// DeleteActor removes one actor from the roster. Saved attributions that
// mention the actor are left untouched until explicitly edited.
func (s *Service) DeleteActor(id string) error {
	list := s.Actors()
	for i, actor := range list {
		if actor.ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.save(keyActors, list)
		}
	}
	return ErrNotFound{Kind: "landscape actor", ID: id}
}

// AssignDiagramLetter gives an actor its power-interest diagram letter the
// first time it is placed on the diagram. The next unused letter A..Z is
// taken; an already-assigned letter is returned unchanged.
func (s *Service) AssignDiagramLetter(id string) (string, error) {
	list := s.Actors()
	used := make(map[string]bool)
	for _, actor := range list {
		if actor.DiagramLetter != "" {
			used[actor.DiagramLetter] = true
		}
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].DiagramLetter != "" {
			return list[i].DiagramLetter, nil
		}
		for c := 'A'; c <= 'Z'; c++ {
			letter := string(c)
			if used[letter] {
				continue
			}
			list[i].DiagramLetter = letter
			if err := s.save(keyActors, list); err != nil {
				return "", err
			}
			return letter, nil
		}
		return "", ValidationError{Field: "diagram_letter", Message: "no letters left"}
	}
	return "", ErrNotFound{Kind: "landscape actor", ID: id}
}

// SetActorRelationships replaces one actor's outgoing relationship edges.
// Edges are directional and stored from this actor's perspective only; no
// inverse edge is created on the other actor.
func (s *Service) SetActorRelationships(id string, rels []domain.ActorRelationship) error {
	list := s.Actors()
	byID := make(map[string]bool, len(list))
	for _, actor := range list {
		byID[actor.ID] = true
	}
	for _, rel := range rels {
		if !byID[rel.ActorID] {
			return ErrNotFound{Kind: "landscape actor", ID: rel.ActorID}
		}
		switch rel.Type {
		case domain.RelationConflict, domain.RelationCollaboration, domain.RelationNone, "":
		default:
			return ValidationError{Field: "relationship", Message: "unknown relationship type " + string(rel.Type)}
		}
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Relationships = rels
			list[i].UpdatedAt = s.nowFn()
			return s.save(keyActors, list)
		}
	}
	return ErrNotFound{Kind: "landscape actor", ID: id}
}

// DialogueSpaces returns the recorded multi-actor coordination spaces.
func (s *Service) DialogueSpaces() []domain.DialogueSpace {
	return loadList[domain.DialogueSpace](s, keyDialogueSpaces)
}

// SaveDialogueSpace inserts or updates one dialogue space by id.
func (s *Service) SaveDialogueSpace(space domain.DialogueSpace) (domain.DialogueSpace, error) {
	if strings.TrimSpace(space.Name) == "" {
		return domain.DialogueSpace{}, ValidationError{Field: "name", Message: "required"}
	}
	list := s.DialogueSpaces()
	if space.ID == "" {
		space.Base = s.newBase()
		list = append(list, space)
	} else {
		found := false
		for i := range list {
			if list[i].ID == space.ID {
				space.CreatedAt = list[i].CreatedAt
				space.UpdatedAt = s.nowFn()
				list[i] = space
				found = true
				break
			}
		}
		if !found {
			return domain.DialogueSpace{}, ErrNotFound{Kind: "dialogue space", ID: space.ID}
		}
	}
	if err := s.save(keyDialogueSpaces, list); err != nil {
		return domain.DialogueSpace{}, err
	}
	return space, nil
}

// DeleteDialogueSpace removes one dialogue space by id.
func (s *Service) DeleteDialogueSpace(id string) error {
	list := s.DialogueSpaces()
	for i, space := range list {
		if space.ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.save(keyDialogueSpaces, list)
		}
	}
	return ErrNotFound{Kind: "dialogue space", ID: id}
}

// ConvenedActors returns the workshop-preparation participant list.
func (s *Service) ConvenedActors() []domain.ConvenedActor {
	return loadList[domain.ConvenedActor](s, keyConvenedActors)
}

// SaveConvenedActor inserts or updates one convened actor by id.
func (s *Service) SaveConvenedActor(actor domain.ConvenedActor) (domain.ConvenedActor, error) {
	if strings.TrimSpace(actor.Name) == "" {
		return domain.ConvenedActor{}, ValidationError{Field: "name", Message: "required"}
	}
	if actor.Power < 0 || actor.Power > 10 {
		return domain.ConvenedActor{}, ValidationError{Field: "power", Message: "must be between 0 and 10"}
	}
	if actor.Interest < 0 || actor.Interest > 10 {
		return domain.ConvenedActor{}, ValidationError{Field: "interest", Message: "must be between 0 and 10"}
	}
	list := s.ConvenedActors()
	if actor.ID == "" {
		actor.Base = s.newBase()
		list = append(list, actor)
	} else {
		found := false
		for i := range list {
			if list[i].ID == actor.ID {
				actor.CreatedAt = list[i].CreatedAt
				actor.UpdatedAt = s.nowFn()
				list[i] = actor
				found = true
				break
			}
		}
		if !found {
			return domain.ConvenedActor{}, ErrNotFound{Kind: "convened actor", ID: actor.ID}
		}
	}
	if err := s.save(keyConvenedActors, list); err != nil {
		return domain.ConvenedActor{}, err
	}
	return actor, nil
}

// DeleteConvenedActor removes one convened actor by id.
func (s *Service) DeleteConvenedActor(id string) error {
	list := s.ConvenedActors()
	for i, actor := range list {
		if actor.ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.save(keyConvenedActors, list)
		}
	}
	return ErrNotFound{Kind: "convened actor", ID: id}
}

// ParticipationStrategy returns the stored participation strategy, if any.
func (s *Service) ParticipationStrategy() (domain.ParticipationStrategy, bool) {
	return loadValue[domain.ParticipationStrategy](s, keyStrategy)
}

// SaveParticipationStrategy stores the participation strategy wholesale.
func (s *Service) SaveParticipationStrategy(strategy domain.ParticipationStrategy) error {
	return s.save(keyStrategy, strategy)
}

// Agenda returns the workshop agenda in stored order.
func (s *Service) Agenda() []domain.AgendaItem {
	return loadList[domain.AgendaItem](s, keyAgenda)
}

// SaveAgenda replaces the workshop agenda wholesale.
func (s *Service) SaveAgenda(items []domain.AgendaItem) error {
	for _, item := range items {
		if strings.TrimSpace(item.Activity) == "" {
			return ValidationError{Field: "activity", Message: "required"}
		}
	}
	return s.save(keyAgenda, items)
}
