package core

import (
	"fmt"
	"strings"

	"landscapecore/pkg/domain"
)

// Column synonym lists matched case-insensitively against the header row.
var (
	livelihoodColumns = []string{"medios de vida", "medio de vida"}
	ecosystemColumns  = []string{"ecosistemas", "ecosistema"}
)

// IntakeTable is one tabular dataset handed to intake, either parsed from the
// first sheet of an uploaded workbook or assembled from manual entry.
type IntakeTable struct {
	Headers []string
	Rows    [][]string
}

// IntakeResult reports what an intake batch produced per kind.
type IntakeResult struct {
	Livelihoods []domain.CatalogItem
	Ecosystems  []domain.CatalogItem
}

func matchColumn(headers []string, synonyms []string) int {
	for i, h := range headers {
		cell := strings.ToLower(strings.TrimSpace(h))
		for _, syn := range synonyms {
			if cell == syn {
				return i
			}
		}
	}
	return -1
}

// ImportTable runs one intake batch over a tabular dataset. Each recognized
// column yields a fresh catalog of its kind, replacing any prior catalog and
// cascading the replacement into downstream stores. An empty dataset or a
// dataset with no recognized column changes nothing.
func (s *Service) ImportTable(table IntakeTable) (IntakeResult, error) {
	start := s.nowFn()
	res, err := s.importTable(table)
	s.observe("intake_import", start, err)
	return res, err
}

func (s *Service) importTable(table IntakeTable) (IntakeResult, error) {
	if len(table.Rows) == 0 {
		return IntakeResult{}, ValidationError{Field: "dataset", Message: "no data rows"}
	}
	livCol := matchColumn(table.Headers, livelihoodColumns)
	ecoCol := matchColumn(table.Headers, ecosystemColumns)
	if livCol < 0 && ecoCol < 0 {
		return IntakeResult{}, ValidationError{Field: "dataset", Message: "no recognized column for livelihoods or ecosystems"}
	}

	// Build and validate every recognized column before touching the store,
	// so a rejected batch leaves the prior catalogs intact.
	var res IntakeResult
	if livCol >= 0 {
		res.Livelihoods = BuildCatalog(s.newID()[:8], domain.KindLivelihood, columnValues(table.Rows, livCol))
		if len(res.Livelihoods) == 0 {
			return IntakeResult{}, ValidationError{Field: "names", Message: "no usable names in batch"}
		}
	}
	if ecoCol >= 0 {
		res.Ecosystems = BuildCatalog(s.newID()[:8], domain.KindEcosystem, columnValues(table.Rows, ecoCol))
		if len(res.Ecosystems) == 0 {
			return IntakeResult{}, ValidationError{Field: "names", Message: "no usable names in batch"}
		}
	}
	if res.Livelihoods != nil {
		if err := s.installCatalog(domain.KindLivelihood, res.Livelihoods); err != nil {
			return IntakeResult{}, err
		}
	}
	if res.Ecosystems != nil {
		if err := s.installCatalog(domain.KindEcosystem, res.Ecosystems); err != nil {
			return IntakeResult{}, err
		}
	}
	s.log.Info("intake batch applied",
		"livelihoods", len(res.Livelihoods),
		"ecosystems", len(res.Ecosystems))
	return res, nil
}

func columnValues(rows [][]string, col int) []string {
	var out []string
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		out = append(out, row[col])
	}
	return out
}

// BuildCatalog turns a list of raw names into catalog items: trims, drops
// empties and exact duplicates, and issues a unique short code per item within
// the batch. Ids are scoped to (batch, kind, row index) so records derived
// from a replaced batch never alias items of the new one.
func BuildCatalog(batch string, kind domain.ItemKind, names []string) []domain.CatalogItem {
	issued := make(map[string]bool)
	seen := make(map[string]bool)
	var items []domain.CatalogItem
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, domain.CatalogItem{
			ID:   fmt.Sprintf("%s-%s-%d", batch, kind, i),
			Name: name,
			Code: domain.UniqueCode(name, issued),
			Kind: kind,
		})
	}
	return items
}

// ReplaceCatalog installs a fresh catalog for one kind, replacing the prior
// set wholesale and clearing the downstream stores seeded from it. The
// cross-reference stores are left for their own reconciliation pass.
func (s *Service) ReplaceCatalog(kind domain.ItemKind, names []string) ([]domain.CatalogItem, error) {
	items := BuildCatalog(s.newID()[:8], kind, names)
	if len(items) == 0 {
		return nil, ValidationError{Field: "names", Message: "no usable names in batch"}
	}
	if err := s.installCatalog(kind, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) installCatalog(kind domain.ItemKind, items []domain.CatalogItem) error {
	key := keyLivelihoodCatalog
	if kind == domain.KindEcosystem {
		key = keyEcosystemCatalog
	}
	if err := s.save(key, items); err != nil {
		return err
	}
	return s.clearDownstream(kind)
}

func (s *Service) clearDownstream(kind domain.ItemKind) error {
	var stale []string
	switch kind {
	case domain.KindLivelihood:
		stale = []string{keyLivelihoodDetails, keyPriorities, keyGroups}
	case domain.KindEcosystem:
		stale = []string{keyEcosystemDetails}
	}
	for _, key := range stale {
		if err := s.store.Remove(key); err != nil {
			return fmt.Errorf("clear downstream %s: %w", key, err)
		}
	}
	return nil
}

// Catalog returns the stored catalog for one kind.
func (s *Service) Catalog(kind domain.ItemKind) []domain.CatalogItem {
	key := keyLivelihoodCatalog
	if kind == domain.KindEcosystem {
		key = keyEcosystemCatalog
	}
	return loadList[domain.CatalogItem](s, key)
}

// SeedDefaultCatalogs installs the built-in livelihood and ecosystem catalogs
// for workshops that start without an uploaded workbook. The built-in sets
// keep their curated codes rather than re-deriving them from the names;
// existing catalogs are replaced like any other intake batch.
func (s *Service) SeedDefaultCatalogs() error {
	if err := s.installCuratedCatalog(domain.KindLivelihood, domain.DefaultLivelihoods); err != nil {
		return err
	}
	return s.installCuratedCatalog(domain.KindEcosystem, domain.DefaultEcosystems)
}

func (s *Service) installCuratedCatalog(kind domain.ItemKind, entries []domain.DefaultCatalogEntry) error {
	batch := s.newID()[:8]
	items := make([]domain.CatalogItem, len(entries))
	for i, e := range entries {
		items[i] = domain.CatalogItem{
			ID:   fmt.Sprintf("%s-%s-%d", batch, kind, i),
			Name: e.Name,
			Code: e.Code,
			Kind: kind,
		}
	}
	return s.installCatalog(kind, items)
}
