package core

import (
	"fmt"

	"landscapecore/pkg/domain"
)

// ServiceSessionState tracks the per-ecosystem service characterization
// wizard.
type ServiceSessionState string

// Service characterization states.
const (
	ServiceSelectEcosystem ServiceSessionState = "select_ecosystem"
	ServiceSelectServices  ServiceSessionState = "select_services"
	ServiceIterate         ServiceSessionState = "iterate_services"
	ServiceComplete        ServiceSessionState = "complete"
)

// ServiceSession characterizes the services of one ecosystem: pick the
// ecosystem, select exactly the required number of its related services, then
// characterize each selected service in turn.
type ServiceSession struct {
	svc       *Service
	state     ServiceSessionState
	ecosystem domain.EcosystemDetail
	related   []string
	selected  []string
	cursor    int
}

// StartServiceCharacterization opens the wizard. Ecosystem characterizations
// must exist first; the reconciliation pass runs as part of entry.
func (s *Service) StartServiceCharacterization() (*ServiceSession, error) {
	characts, err := s.EnterEcosystemCharacterization()
	if err != nil {
		return nil, err
	}
	if len(characts) == 0 {
		return nil, MissingUpstreamError{Stage: "service characterization", Requires: "ecosystem characterization"}
	}
	return &ServiceSession{svc: s, state: ServiceSelectEcosystem}, nil
}

// State returns the wizard's current state.
func (w *ServiceSession) State() ServiceSessionState { return w.state }

// RequiredSelections returns how many services must be selected for the
// chosen ecosystem.
func (w *ServiceSession) RequiredSelections() int {
	n := len(w.related)
	if n > 3 {
		return 3
	}
	return n
}

// ChooseEcosystem fixes the ecosystem under characterization. An ecosystem
// with no related services is immediately complete with zero
// characterizations.
func (w *ServiceSession) ChooseEcosystem(ecosystemID string) error {
	if w.state != ServiceSelectEcosystem {
		return ValidationError{Field: "state", Message: "ecosystem already chosen"}
	}
	var detail domain.EcosystemDetail
	found := false
	for _, d := range w.svc.EcosystemDetails() {
		if d.ID == ecosystemID {
			detail = d
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound{Kind: "ecosystem", ID: ecosystemID}
	}
	var related []string
	for _, c := range w.svc.EcosystemCharacterizations() {
		if c.EcosystemID == ecosystemID {
			related = c.RelatedServices
			break
		}
	}
	w.ecosystem = detail
	w.related = related
	if len(related) == 0 {
		w.state = ServiceComplete
		return nil
	}
	w.state = ServiceSelectServices
	return nil
}

// SelectServices fixes which related services will be characterized. Exactly
// RequiredSelections codes are accepted, each drawn from the ecosystem's
// related set.
func (w *ServiceSession) SelectServices(codes []string) error {
	if w.state != ServiceSelectServices {
		return ValidationError{Field: "state", Message: "not selecting services"}
	}
	required := w.RequiredSelections()
	if len(codes) != required {
		return ValidationError{Field: "services", Message: fmt.Sprintf("select exactly %d services, got %d", required, len(codes))}
	}
	relatedSet := make(map[string]bool, len(w.related))
	for _, c := range w.related {
		relatedSet[c] = true
	}
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if !relatedSet[code] {
			return ValidationError{Field: "services", Message: fmt.Sprintf("service %s is not related to %s", code, w.ecosystem.Code)}
		}
		if seen[code] {
			return ValidationError{Field: "services", Message: "duplicate service " + code}
		}
		seen[code] = true
	}
	w.selected = append([]string(nil), codes...)
	w.cursor = 0
	w.state = ServiceIterate
	return nil
}

// Current returns the (ecosystem, service) pair under characterization and
// its composite code.
func (w *ServiceSession) Current() (ecosystemCode, serviceCode, compositeCode string, ok bool) {
	if w.state != ServiceIterate || w.cursor >= len(w.selected) {
		return "", "", "", false
	}
	serviceCode = w.selected[w.cursor]
	return w.ecosystem.Code, serviceCode,
		domain.CompositeCode([]string{w.ecosystem.Code, serviceCode}), true
}

// SaveCurrent persists the characterization of the pair under the cursor and
// advances. The composite key and identifying fields are stamped here; the
// caller fills everything else.
func (w *ServiceSession) SaveCurrent(c domain.ServiceCharacterization) error {
	start := w.svc.nowFn()
	err := w.saveCurrent(c)
	w.svc.observe("service_save", start, err)
	return err
}

func (w *ServiceSession) saveCurrent(c domain.ServiceCharacterization) error {
	_, serviceCode, composite, ok := w.Current()
	if !ok {
		return ValidationError{Field: "state", Message: "no service under characterization"}
	}
	c.CompositeCode = composite
	c.EcosystemID = w.ecosystem.ID
	c.ServiceCode = serviceCode
	list := loadList[domain.ServiceCharacterization](w.svc, keyServiceCharacts)
	replaced := false
	for i := range list {
		if list[i].CompositeCode == composite {
			list[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, c)
	}
	if err := w.svc.save(keyServiceCharacts, list); err != nil {
		return err
	}
	w.cursor++
	if w.cursor >= len(w.selected) {
		w.state = ServiceComplete
	}
	return nil
}

// ServiceCharacterizations returns the stored service characterizations.
func (s *Service) ServiceCharacterizations() []domain.ServiceCharacterization {
	return loadList[domain.ServiceCharacterization](s, keyServiceCharacts)
}
