package core

import (
	"fmt"

	"landscapecore/pkg/domain"
)

// ConflictWizardState tracks the 3-step conflict creation flow.
type ConflictWizardState string

// Conflict wizard states.
const (
	ConflictPickThreat ConflictWizardState = "pick_threat"
	ConflictPickTarget ConflictWizardState = "pick_target"
	ConflictFillRecord ConflictWizardState = "fill_record"
)

// ConflictWizard builds one conflict record: pick a threat from either
// family, pick the affected livelihood or targeted service, then fill in the
// impact ratings and conflict fields.
type ConflictWizard struct {
	svc     *Service
	kind    domain.ConflictTargetKind
	state   ConflictWizardState
	pending domain.ConflictRecord
}

// StartConflictWizard opens the wizard for one target kind. At least one
// threat must exist, and the matching target pool must be non-empty.
func (s *Service) StartConflictWizard(kind domain.ConflictTargetKind) (*ConflictWizard, error) {
	if len(s.AllThreats()) == 0 {
		return nil, MissingUpstreamError{Stage: "conflict matrix", Requires: "threat lists"}
	}
	switch kind {
	case domain.TargetLivelihood:
		if len(s.LivelihoodDetails()) == 0 {
			return nil, MissingUpstreamError{Stage: "conflict matrix", Requires: "livelihood selection"}
		}
	case domain.TargetService:
		if len(s.TargetedServices()) == 0 {
			return nil, MissingUpstreamError{Stage: "conflict matrix", Requires: "targeted services"}
		}
	default:
		return nil, ValidationError{Field: "kind", Message: fmt.Sprintf("unknown target kind %q", kind)}
	}
	return &ConflictWizard{svc: s, kind: kind, state: ConflictPickThreat}, nil
}

// State returns the wizard's current state.
func (w *ConflictWizard) State() ConflictWizardState { return w.state }

// PickThreat fixes the threat, searched across both families by id.
func (w *ConflictWizard) PickThreat(threatID string) error {
	if w.state != ConflictPickThreat {
		return ValidationError{Field: "state", Message: "threat already picked"}
	}
	for _, t := range w.svc.AllThreats() {
		if t.ID == threatID {
			w.pending.ThreatName = t.Name
			w.state = ConflictPickTarget
			return nil
		}
	}
	return ErrNotFound{Kind: "threat", ID: threatID}
}

// PickTarget fixes the affected entity by code. Livelihood targets come from
// the refined livelihood list; service targets from the targeted-services
// union.
func (w *ConflictWizard) PickTarget(code string) error {
	if w.state != ConflictPickTarget {
		return ValidationError{Field: "state", Message: "not picking a target"}
	}
	switch w.kind {
	case domain.TargetLivelihood:
		for _, d := range w.svc.LivelihoodDetails() {
			if d.Code == code {
				w.pending.TargetCode = d.Code
				w.pending.TargetName = d.Name
				w.state = ConflictFillRecord
				return nil
			}
		}
		return ErrNotFound{Kind: "livelihood", ID: code}
	case domain.TargetService:
		for _, targeted := range w.svc.TargetedServices() {
			if targeted != code {
				continue
			}
			svc, ok := domain.FindService(code)
			if !ok {
				return ErrNotFound{Kind: "service", ID: code}
			}
			w.pending.TargetCode = svc.Code
			w.pending.TargetName = svc.Name
			w.state = ConflictFillRecord
			return nil
		}
		return ValidationError{Field: "target", Message: fmt.Sprintf("service %s is not in the targeted set", code)}
	}
	return ValidationError{Field: "kind", Message: "unknown target kind"}
}

// Save commits the conflict record. The kind tag, identity fields and
// level-dependent clearing are applied here; the caller supplies everything
// else on the record.
func (w *ConflictWizard) Save(fill domain.ConflictRecord) (domain.ConflictRecord, error) {
	start := w.svc.nowFn()
	rec, err := w.save(fill)
	w.svc.observe("conflict_save", start, err)
	return rec, err
}

func (w *ConflictWizard) save(fill domain.ConflictRecord) (domain.ConflictRecord, error) {
	if w.state != ConflictFillRecord {
		return domain.ConflictRecord{}, ValidationError{Field: "state", Message: "pick a threat and target first"}
	}
	if err := validateImpacts(fill.Impacts); err != nil {
		return domain.ConflictRecord{}, err
	}
	rec := fill
	rec.Base = w.svc.newBase()
	rec.Kind = w.kind
	rec.ThreatName = w.pending.ThreatName
	rec.TargetCode = w.pending.TargetCode
	rec.TargetName = w.pending.TargetName
	applyLevelClearing(&rec)
	key := conflictKey(w.kind)
	list := append(loadList[domain.ConflictRecord](w.svc, key), rec)
	if err := w.svc.save(key, list); err != nil {
		return domain.ConflictRecord{}, err
	}
	w.state = ConflictPickThreat
	w.pending = domain.ConflictRecord{}
	return rec, nil
}

func conflictKey(kind domain.ConflictTargetKind) string {
	if kind == domain.TargetService {
		return keyServiceConfl
	}
	return keyLivelihoodConfl
}

func validateImpacts(im domain.ImpactScores) error {
	for name, v := range map[string]int{
		"economic":      im.Economic,
		"food":          im.Food,
		"health":        im.Health,
		"environmental": im.Environmental,
		"personal":      im.Personal,
		"community":     im.Community,
		"political":     im.Political,
	} {
		if v < 0 || v > 3 {
			return ValidationError{Field: name, Message: "impact score must be between 0 and 3"}
		}
	}
	return nil
}

// applyLevelClearing enforces the level invariant: a conflict rated None
// carries no type codes and no description, whatever was entered before the
// level changed.
func applyLevelClearing(rec *domain.ConflictRecord) {
	if rec.Level == "" {
		rec.Level = domain.ConflictNone
	}
	if rec.Level == domain.ConflictNone {
		rec.TypeCodes = nil
		rec.Description = ""
	}
}

// Conflicts lists one variant's records.
func (s *Service) Conflicts(kind domain.ConflictTargetKind) []domain.ConflictRecord {
	return loadList[domain.ConflictRecord](s, conflictKey(kind))
}

// AllConflicts returns both variants, livelihood conflicts first.
func (s *Service) AllConflicts() []domain.ConflictRecord {
	return append(s.Conflicts(domain.TargetLivelihood), s.Conflicts(domain.TargetService)...)
}

// FindConflict looks a record up by id across both variant lists.
func (s *Service) FindConflict(id string) (domain.ConflictRecord, bool) {
	for _, rec := range s.AllConflicts() {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.ConflictRecord{}, false
}

// UpdateConflictLevel changes the level of a stored conflict, re-applying the
// clearing invariant.
func (s *Service) UpdateConflictLevel(id string, level domain.ConflictLevel, typeCodes []string, description string) error {
	switch level {
	case domain.ConflictNone, domain.ConflictLight, domain.ConflictModerate, domain.ConflictGrave:
	default:
		return ValidationError{Field: "level", Message: fmt.Sprintf("unknown level %q", level)}
	}
	for _, kind := range []domain.ConflictTargetKind{domain.TargetLivelihood, domain.TargetService} {
		key := conflictKey(kind)
		list := loadList[domain.ConflictRecord](s, key)
		for i := range list {
			if list[i].ID != id {
				continue
			}
			list[i].Level = level
			list[i].TypeCodes = typeCodes
			list[i].Description = description
			list[i].UpdatedAt = s.nowFn()
			applyLevelClearing(&list[i])
			return s.save(key, list)
		}
	}
	return ErrNotFound{Kind: "conflict", ID: id}
}
