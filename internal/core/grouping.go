package core

import (
	"context"
	"fmt"

	"landscapecore/pkg/domain"
)

// GroupingState tracks where a system-building session is.
type GroupingState string

// Grouping session states.
const (
	GroupingSelectingMembers GroupingState = "selecting_members"
	GroupingCharacterizing   GroupingState = "characterizing"
)

// GroupingSession drives the creation of one productive system: pick members
// from the available pool, then characterize the pending group. Nothing is
// persisted until SaveGroup.
type GroupingSession struct {
	svc     *Service
	state   GroupingState
	pending domain.ProductiveSystemGroup
}

// StartGrouping opens a system-building session. It fails when no prioritized
// livelihoods exist yet.
func (s *Service) StartGrouping() (*GroupingSession, error) {
	prioritized, err := s.Priorities()
	if err != nil {
		return nil, err
	}
	if len(prioritized) == 0 {
		return nil, MissingUpstreamError{Stage: "grouping", Requires: "prioritized livelihoods"}
	}
	return &GroupingSession{svc: s, state: GroupingSelectingMembers}, nil
}

// State returns the session's current state.
func (g *GroupingSession) State() GroupingState { return g.state }

// AvailableMembers returns the prioritized livelihoods not yet consumed by a
// live group, reading fresh from the store.
func (s *Service) AvailableMembers() []domain.PrioritizedLivelihood {
	prioritized := loadList[domain.PrioritizedLivelihood](s, keyPriorities)
	taken := make(map[string]bool)
	for _, g := range s.Groups() {
		for _, id := range g.MemberIDs {
			taken[id] = true
		}
	}
	var out []domain.PrioritizedLivelihood
	for _, p := range prioritized {
		if !taken[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Groups returns the live productive system groups.
func (s *Service) Groups() []domain.ProductiveSystemGroup {
	return loadList[domain.ProductiveSystemGroup](s, keyGroups)
}

// ConfirmMembers closes member selection with the given ids and moves the
// session to characterization. Every id must be currently available; the
// composite code and per-member importance rows are seeded here.
func (g *GroupingSession) ConfirmMembers(ids []string) error {
	if g.state != GroupingSelectingMembers {
		return ValidationError{Field: "state", Message: "members already confirmed"}
	}
	if len(ids) == 0 {
		return ValidationError{Field: "members", Message: "select at least one livelihood"}
	}
	available := make(map[string]domain.PrioritizedLivelihood)
	for _, p := range g.svc.AvailableMembers() {
		available[p.ID] = p
	}
	var codes []string
	var importance []domain.ImportanceEntry
	for _, id := range ids {
		p, ok := available[id]
		if !ok {
			return ValidationError{Field: "members", Message: fmt.Sprintf("livelihood %q is not available for grouping", id)}
		}
		codes = append(codes, p.Code)
		importance = append(importance, domain.ImportanceEntry{
			LivelihoodID: p.ID,
			Code:         p.Code,
			Name:         p.Name,
		})
	}
	g.pending = domain.ProductiveSystemGroup{
		Base:          g.svc.newBase(),
		CompositeCode: domain.CompositeCode(codes),
		MemberIDs:     append([]string(nil), ids...),
		Importance:    importance,
	}
	g.state = GroupingCharacterizing
	return nil
}

// Pending exposes the in-progress group for characterization edits.
func (g *GroupingSession) Pending() *domain.ProductiveSystemGroup {
	return &g.pending
}

// SetSizeRange records the size range and recomputes the tertile bands.
func (g *GroupingSession) SetSizeRange(min, max float64, unit string) error {
	if g.state != GroupingCharacterizing {
		return ValidationError{Field: "state", Message: "confirm members first"}
	}
	bands, err := domain.ComputeSizeBands(min, max)
	if err != nil {
		return ValidationError{Field: "size_range", Message: err.Error()}
	}
	g.pending.MinSize = &min
	g.pending.MaxSize = &max
	g.pending.SizeUnit = unit
	g.pending.Bands = bands
	return nil
}

// SetTenure records the named tenure-type columns and their per-band
// percentages. Up to three columns are accepted; percentage slices must align
// with the columns.
func (g *GroupingSession) SetTenure(types []string, tenure domain.TenurePercentages) error {
	if g.state != GroupingCharacterizing {
		return ValidationError{Field: "state", Message: "confirm members first"}
	}
	if len(types) > 3 {
		return ValidationError{Field: "tenure_types", Message: "at most 3 tenure types"}
	}
	for band, cells := range map[string][]*float64{
		"small":  tenure.Small,
		"medium": tenure.Medium,
		"large":  tenure.Large,
	} {
		if len(cells) > len(types) {
			return ValidationError{Field: "tenure", Message: fmt.Sprintf("%s band has more cells than tenure types", band)}
		}
	}
	g.pending.TenureTypes = append([]string(nil), types...)
	g.pending.Tenure = tenure
	return nil
}

// SetImportance records the rating and end product for one member of the
// pending group.
func (g *GroupingSession) SetImportance(livelihoodID string, rating int, endProduct string) error {
	if g.state != GroupingCharacterizing {
		return ValidationError{Field: "state", Message: "confirm members first"}
	}
	if rating < 0 || rating > 3 {
		return ValidationError{Field: "importance", Message: "rating must be between 0 and 3"}
	}
	for i := range g.pending.Importance {
		if g.pending.Importance[i].LivelihoodID == livelihoodID {
			g.pending.Importance[i].Importance = rating
			g.pending.Importance[i].EndProduct = endProduct
			return nil
		}
	}
	return ErrNotFound{Kind: "group member", ID: livelihoodID}
}

// SetMarkets records the destination-market flags.
func (g *GroupingSession) SetMarkets(markets domain.MarketFlags) {
	g.pending.Markets = markets
}

// SaveGroup commits the pending group. Blocking rule violations abort the
// save; warnings are logged and returned alongside a nil error.
func (g *GroupingSession) SaveGroup(ctx context.Context) ([]domain.Violation, error) {
	start := g.svc.nowFn()
	warnings, err := g.saveGroup(ctx)
	g.svc.observe("group_save", start, err)
	return warnings, err
}

func (g *GroupingSession) saveGroup(ctx context.Context) ([]domain.Violation, error) {
	if g.state != GroupingCharacterizing {
		return nil, ValidationError{Field: "state", Message: "confirm members first"}
	}
	groups := append(g.svc.Groups(), g.pending)
	view := ruleView{svc: g.svc, groups: groups}
	result, err := g.svc.engine.Evaluate(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("evaluate rules: %w", err)
	}
	if result.HasBlocking() {
		return nil, domain.RuleViolationError{Result: result}
	}
	for _, w := range result.Warnings() {
		g.svc.log.Warn("group saved with warning", "rule", w.Rule, "message", w.Message)
	}
	if err := g.svc.save(keyGroups, groups); err != nil {
		return nil, err
	}
	g.svc.log.Info("productive system saved",
		"code", g.pending.CompositeCode,
		"members", len(g.pending.MemberIDs))
	g.state = GroupingSelectingMembers
	g.pending = domain.ProductiveSystemGroup{}
	return result.Warnings(), nil
}

// DeleteGroup removes one group and returns its member ids to the available
// pool.
func (s *Service) DeleteGroup(id string) ([]string, error) {
	groups := s.Groups()
	for i, g := range groups {
		if g.ID != id {
			continue
		}
		released := g.MemberIDs
		groups = append(groups[:i], groups[i+1:]...)
		if err := s.save(keyGroups, groups); err != nil {
			return nil, err
		}
		return released, nil
	}
	return nil, ErrNotFound{Kind: "productive system", ID: id}
}

// ruleView adapts the service's stores, with an optional group override so
// rules can evaluate a not-yet-committed group set.
type ruleView struct {
	svc    *Service
	groups []domain.ProductiveSystemGroup
}

func (v ruleView) ListPrioritized() []domain.PrioritizedLivelihood {
	return loadList[domain.PrioritizedLivelihood](v.svc, keyPriorities)
}

func (v ruleView) ListGroups() []domain.ProductiveSystemGroup {
	if v.groups != nil {
		return v.groups
	}
	return v.svc.Groups()
}

func (v ruleView) ListCatalog(kind domain.ItemKind) []domain.CatalogItem {
	return v.svc.Catalog(kind)
}

// groupDisjointnessRule blocks any group set in which a livelihood id belongs
// to more than one group, or to no known prioritized livelihood.
type groupDisjointnessRule struct{}

func (groupDisjointnessRule) Name() string { return "group_member_disjointness" }

func (groupDisjointnessRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	known := make(map[string]bool)
	for _, p := range view.ListPrioritized() {
		known[p.ID] = true
	}
	seen := make(map[string]string)
	var result domain.Result
	for _, g := range view.ListGroups() {
		for _, id := range g.MemberIDs {
			if owner, dup := seen[id]; dup {
				result.Violations = append(result.Violations, domain.Violation{
					Rule:     "group_member_disjointness",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("livelihood %s already belongs to group %s", id, owner),
					EntityID: g.ID,
				})
				continue
			}
			seen[id] = g.CompositeCode
			if !known[id] {
				result.Violations = append(result.Violations, domain.Violation{
					Rule:     "group_member_disjointness",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("livelihood %s is not in the prioritized set", id),
					EntityID: g.ID,
				})
			}
		}
	}
	return result, nil
}

// tenurePercentageRule warns when a band with at least one entered non-zero
// percentage does not sum to exactly 100. Warnings never block the save.
type tenurePercentageRule struct{}

func (tenurePercentageRule) Name() string { return "tenure_percentages_sum" }

func (tenurePercentageRule) Evaluate(_ context.Context, view domain.RuleView) (domain.Result, error) {
	var result domain.Result
	for _, g := range view.ListGroups() {
		for band, cells := range map[string][]*float64{
			"small":  g.Tenure.Small,
			"medium": g.Tenure.Medium,
			"large":  g.Tenure.Large,
		} {
			sum := 0.0
			nonZero := false
			for _, cell := range cells {
				if cell == nil {
					continue
				}
				sum += *cell
				if *cell != 0 {
					nonZero = true
				}
			}
			if nonZero && sum != 100 {
				result.Violations = append(result.Violations, domain.Violation{
					Rule:     "tenure_percentages_sum",
					Severity: domain.SeverityWarn,
					Message:  fmt.Sprintf("tenure percentages for %s band of %s sum to %v, expected 100", band, g.CompositeCode, sum),
					EntityID: g.ID,
				})
			}
		}
	}
	return result, nil
}
