package core

import (
	"fmt"

	"landscapecore/pkg/domain"
)

// Selection accumulates a toggled subset of one catalog before the user
// proceeds to detail refinement. Nothing persists until Confirm.
type Selection struct {
	kind     domain.ItemKind
	selected map[string]bool
	order    []string
}

// NewSelection starts an empty selection over one catalog kind.
func NewSelection(kind domain.ItemKind) *Selection {
	return &Selection{kind: kind, selected: make(map[string]bool)}
}

// Toggle flips the selection state of one catalog item id and reports the new
// state.
func (sel *Selection) Toggle(id string) bool {
	if sel.selected[id] {
		delete(sel.selected, id)
		for i, existing := range sel.order {
			if existing == id {
				sel.order = append(sel.order[:i], sel.order[i+1:]...)
				break
			}
		}
		return false
	}
	sel.selected[id] = true
	sel.order = append(sel.order, id)
	return true
}

// IDs returns the selected ids in toggle order.
func (sel *Selection) IDs() []string {
	out := make([]string, len(sel.order))
	copy(out, sel.order)
	return out
}

// ConfirmSelection seeds the detail list for the selection's kind from the
// current catalog and persists it as the new authoritative item set. The
// intake catalog itself is untouched; it stays available as the fallback
// source for later passes.
func (s *Service) ConfirmSelection(sel *Selection) error {
	start := s.nowFn()
	err := s.confirmSelection(sel)
	s.observe("selection_confirm", start, err)
	return err
}

func (s *Service) confirmSelection(sel *Selection) error {
	if len(sel.order) == 0 {
		return ValidationError{Field: "selection", Message: "nothing selected"}
	}
	catalog := s.Catalog(sel.kind)
	byID := make(map[string]domain.CatalogItem, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}
	switch sel.kind {
	case domain.KindLivelihood:
		var details []domain.LivelihoodDetail
		for _, id := range sel.order {
			item, ok := byID[id]
			if !ok {
				return ErrNotFound{Kind: "catalog item", ID: id}
			}
			details = append(details, domain.LivelihoodDetail{CatalogItem: item})
		}
		return s.save(keyLivelihoodDetails, details)
	case domain.KindEcosystem:
		var details []domain.EcosystemDetail
		for _, id := range sel.order {
			item, ok := byID[id]
			if !ok {
				return ErrNotFound{Kind: "catalog item", ID: id}
			}
			details = append(details, domain.EcosystemDetail{
				CatalogItem: item,
				Health:      domain.HealthRegular,
			})
		}
		return s.save(keyEcosystemDetails, details)
	default:
		return ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", sel.kind)}
	}
}

// LivelihoodDetails returns the refined livelihood list, falling back to a
// detail view of the full intake catalog when no selection was ever confirmed.
func (s *Service) LivelihoodDetails() []domain.LivelihoodDetail {
	if details := loadList[domain.LivelihoodDetail](s, keyLivelihoodDetails); len(details) > 0 {
		return details
	}
	var details []domain.LivelihoodDetail
	for _, item := range s.Catalog(domain.KindLivelihood) {
		details = append(details, domain.LivelihoodDetail{CatalogItem: item})
	}
	return details
}

// EcosystemDetails returns the refined ecosystem list with the same fallback
// as LivelihoodDetails.
func (s *Service) EcosystemDetails() []domain.EcosystemDetail {
	if details := loadList[domain.EcosystemDetail](s, keyEcosystemDetails); len(details) > 0 {
		return details
	}
	var details []domain.EcosystemDetail
	for _, item := range s.Catalog(domain.KindEcosystem) {
		details = append(details, domain.EcosystemDetail{
			CatalogItem: item,
			Health:      domain.HealthRegular,
		})
	}
	return details
}

// UpdateLivelihoodDetail mutates the end-use flags of one refined livelihood
// and persists the list immediately.
func (s *Service) UpdateLivelihoodDetail(id string, autoconsumo, comercial bool) error {
	details := loadList[domain.LivelihoodDetail](s, keyLivelihoodDetails)
	for i := range details {
		if details[i].ID == id {
			details[i].Autoconsumo = autoconsumo
			details[i].Comercial = comercial
			return s.save(keyLivelihoodDetails, details)
		}
	}
	return ErrNotFound{Kind: "livelihood detail", ID: id}
}

// UpdateEcosystemHealth mutates the health grade of one refined ecosystem and
// persists the list immediately.
func (s *Service) UpdateEcosystemHealth(id string, health domain.EcosystemHealth) error {
	if health < domain.HealthDegraded || health > domain.HealthGood {
		return ValidationError{Field: "health", Message: "must be 1, 2 or 3"}
	}
	details := loadList[domain.EcosystemDetail](s, keyEcosystemDetails)
	for i := range details {
		if details[i].ID == id {
			details[i].Health = health
			return s.save(keyEcosystemDetails, details)
		}
	}
	return ErrNotFound{Kind: "ecosystem detail", ID: id}
}
