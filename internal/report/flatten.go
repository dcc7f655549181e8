// Package report flattens every session store into tabular sheets and writes
// them as one multi-sheet workbook.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"landscapecore/internal/core"
	"landscapecore/pkg/domain"
)

// Sheet is one flattened store: a header row plus data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Absent marks a sub-record column on a parent row whose nested collection is
// empty.
const Absent = "-"

var contextHeader = []string{"Fecha", "País", "Grupo"}

// Build walks every store and produces one sheet per store, in pipeline
// order. Stores with no data yield a one-row placeholder sheet; nested
// collections expand to one row per leaf entry, and a parent with an empty
// collection still yields exactly one row.
func Build(svc *core.Service) []Sheet {
	ctx, _ := svc.Context()
	b := builder{ctx: ctx}
	return []Sheet{
		b.contextSheet(),
		b.catalogSheet("Catálogo Medios de Vida", svc.Catalog(domain.KindLivelihood)),
		b.catalogSheet("Catálogo Ecosistemas", svc.Catalog(domain.KindEcosystem)),
		b.livelihoodSheet(svc),
		b.ecosystemSheet(svc),
		b.prioritySheet(svc),
		b.groupSheet(svc),
		b.ecoCharactSheet(svc),
		b.serviceCharactSheet(svc),
		b.threatSheet("Amenazas Climáticas", svc.Threats(true)),
		b.threatSheet("Amenazas No Climáticas", svc.Threats(false)),
		b.conflictSheet("Conflictos Medios de Vida", svc.Conflicts(domain.TargetLivelihood)),
		b.conflictSheet("Conflictos Servicios", svc.Conflicts(domain.TargetService)),
		b.evolutionSheet(svc),
		b.attributionSheet(svc),
		b.actorSheet(svc),
		b.dialogueSheet(svc),
		b.convenedSheet(svc),
		b.strategySheet(svc),
		b.agendaSheet(svc),
		b.questionnaireSheet(svc),
	}
}

type builder struct {
	ctx domain.WorkshopContext
}

func (b builder) row(cells ...string) []string {
	out := make([]string, 0, len(contextHeader)+len(cells))
	out = append(out, b.ctx.Date, b.ctx.Country, b.ctx.GroupName)
	return append(out, cells...)
}

func header(cells ...string) []string {
	return append(append([]string{}, contextHeader...), cells...)
}

func (b builder) placeholder(name string, head []string) Sheet {
	return Sheet{
		Name:   name,
		Header: head,
		Rows:   [][]string{b.row("sin datos")},
	}
}

func yesNo(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}

func (b builder) contextSheet() Sheet {
	return Sheet{
		Name:   "Contexto",
		Header: contextHeader,
		Rows:   [][]string{{b.ctx.Date, b.ctx.Country, b.ctx.GroupName}},
	}
}

func (b builder) catalogSheet(name string, items []domain.CatalogItem) Sheet {
	head := header("Código", "Nombre")
	if len(items) == 0 {
		return b.placeholder(name, head)
	}
	sheet := Sheet{Name: name, Header: head}
	for _, item := range items {
		sheet.Rows = append(sheet.Rows, b.row(item.Code, item.Name))
	}
	return sheet
}

func (b builder) livelihoodSheet(svc *core.Service) Sheet {
	head := header("Código", "Nombre", "Autoconsumo", "Comercial")
	details := svc.LivelihoodDetails()
	if len(details) == 0 {
		return b.placeholder("Medios de Vida", head)
	}
	sheet := Sheet{Name: "Medios de Vida", Header: head}
	for _, d := range details {
		sheet.Rows = append(sheet.Rows, b.row(d.Code, d.Name, yesNo(d.Autoconsumo), yesNo(d.Comercial)))
	}
	return sheet
}

func (b builder) ecosystemSheet(svc *core.Service) Sheet {
	head := header("Código", "Nombre", "Salud")
	details := svc.EcosystemDetails()
	if len(details) == 0 {
		return b.placeholder("Ecosistemas", head)
	}
	sheet := Sheet{Name: "Ecosistemas", Header: head}
	for _, d := range details {
		sheet.Rows = append(sheet.Rows, b.row(d.Code, d.Name, strconv.Itoa(int(d.Health))))
	}
	return sheet
}

func (b builder) prioritySheet(svc *core.Service) Sheet {
	head := header("Código", "Nombre", "Productos", "Seguridad Alimentaria",
		"Área", "Desarrollo Local", "Ambiente", "Inclusión", "Total")
	list := svc.PrioritizedList()
	if len(list) == 0 {
		return b.placeholder("Priorización", head)
	}
	sheet := Sheet{Name: "Priorización", Header: head}
	for _, p := range list {
		sheet.Rows = append(sheet.Rows, b.row(p.Code, p.Name, p.MainProducts,
			strconv.Itoa(p.FoodSecurity), strconv.Itoa(p.Area),
			strconv.Itoa(p.LocalDevelopment), strconv.Itoa(p.Environment),
			strconv.Itoa(p.Inclusion), strconv.Itoa(p.Total)))
	}
	return sheet
}

func floatCell(v *float64) string {
	if v == nil {
		return Absent
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func tenureCells(cells []*float64, idx int) string {
	if idx >= len(cells) {
		return Absent
	}
	return floatCell(cells[idx])
}

// groupSheet expands each productive system to one row per importance entry.
func (b builder) groupSheet(svc *core.Service) Sheet {
	head := header("Código Sistema", "Unidad", "Mín", "Máx",
		"Pequeño", "Mediano", "Grande", "Tipos de Tenencia", "Mercados",
		"Medio de Vida", "Importancia", "Producto Final")
	groups := svc.Groups()
	if len(groups) == 0 {
		return b.placeholder("Sistemas Productivos", head)
	}
	sheet := Sheet{Name: "Sistemas Productivos", Header: head}
	for _, g := range groups {
		base := []string{
			g.CompositeCode, g.SizeUnit, floatCell(g.MinSize), floatCell(g.MaxSize),
			g.Bands.Small, g.Bands.Medium, g.Bands.Large,
			strings.Join(g.TenureTypes, ", "),
			domain.TrueMarketFlags(g.Markets),
		}
		if len(g.Importance) == 0 {
			sheet.Rows = append(sheet.Rows, b.row(append(base, Absent, Absent, Absent)...))
			continue
		}
		for _, imp := range g.Importance {
			cells := append(append([]string{}, base...),
				imp.Name, strconv.Itoa(imp.Importance), imp.EndProduct)
			sheet.Rows = append(sheet.Rows, b.row(cells...))
		}
	}
	return sheet
}

func (b builder) ecoCharactSheet(svc *core.Service) Sheet {
	head := header("Ecosistema", "Medios de Vida Relacionados",
		"Servicios Relacionados", "Causas de Degradación")
	list := svc.EcosystemCharacterizations()
	if len(list) == 0 {
		return b.placeholder("Caracterización Ecosistemas", head)
	}
	names := make(map[string]string)
	for _, d := range svc.EcosystemDetails() {
		names[d.ID] = d.Name
	}
	sheet := Sheet{Name: "Caracterización Ecosistemas", Header: head}
	for _, c := range list {
		name := names[c.EcosystemID]
		if name == "" {
			name = c.EcosystemID
		}
		sheet.Rows = append(sheet.Rows, b.row(name,
			strings.Join(c.RelatedLivelihood, ", "),
			strings.Join(c.RelatedServices, ", "),
			c.DegradationCauses))
	}
	return sheet
}

func (b builder) serviceCharactSheet(svc *core.Service) Sheet {
	head := header("Código", "Servicio", "Medios de Vida", "Provisión", "Flujo",
		"Demanda", "Acceso Provisión", "Acceso Flujo", "Acceso Demanda",
		"Usuarios", "Meses de Aporte", "Meses de Escasez", "Equidad", "Notas")
	list := svc.ServiceCharacterizations()
	if len(list) == 0 {
		return b.placeholder("Caracterización Servicios", head)
	}
	sheet := Sheet{Name: "Caracterización Servicios", Header: head}
	for _, c := range list {
		serviceName := c.ServiceCode
		if svcDef, ok := domain.FindService(c.ServiceCode); ok {
			serviceName = svcDef.Name
		}
		sheet.Rows = append(sheet.Rows, b.row(
			c.CompositeCode, serviceName,
			strings.Join(c.RelatedLivelihood, ", "),
			c.Provision, c.Flow, c.Demand,
			c.ProvisionAccess.Condition, c.FlowAccess.Condition, c.DemandAccess.Condition,
			c.UserCount,
			strings.Join(c.ContributingMonths, ", "),
			strings.Join(c.ScarceMonths, ", "),
			domain.TrueEquityFlags(c.Equity), c.EquityNotes))
	}
	return sheet
}

func (b builder) threatSheet(name string, threats []domain.ThreatRecord) Sheet {
	head := header("Amenaza", "Magnitud", "Frecuencia", "Tendencia",
		"Puntaje", "Sitios Afectados", "Código Mapa")
	if len(threats) == 0 {
		return b.placeholder(name, head)
	}
	sheet := Sheet{Name: name, Header: head}
	for _, t := range threats {
		sheet.Rows = append(sheet.Rows, b.row(t.Name,
			strconv.Itoa(t.Magnitude), strconv.Itoa(t.Frequency),
			strconv.Itoa(t.Trend), strconv.Itoa(t.Score),
			t.AffectedSites, t.MapCode))
	}
	return sheet
}

func (b builder) conflictSheet(name string, conflicts []domain.ConflictRecord) Sheet {
	head := header("Amenaza", "Afectado", "Código", "Económica", "Alimentaria",
		"Salud", "Ambiental", "Personal", "Comunitaria", "Política",
		"Familias", "Impacto Diferenciado", "Nivel", "Tipos", "Descripción", "Código Mapa")
	if len(conflicts) == 0 {
		return b.placeholder(name, head)
	}
	sheet := Sheet{Name: name, Header: head}
	for _, c := range conflicts {
		sheet.Rows = append(sheet.Rows, b.row(c.ThreatName, c.TargetName,
			domain.ConflictDisplayCode(c),
			strconv.Itoa(c.Impacts.Economic), strconv.Itoa(c.Impacts.Food),
			strconv.Itoa(c.Impacts.Health), strconv.Itoa(c.Impacts.Environmental),
			strconv.Itoa(c.Impacts.Personal), strconv.Itoa(c.Impacts.Community),
			strconv.Itoa(c.Impacts.Political),
			c.Families, c.DifferentiatedImpact, string(c.Level),
			strings.Join(c.TypeCodes, ", "), c.Description, c.MapCode))
	}
	return sheet
}

// evolutionSheet expands each evolution to one row per event.
func (b builder) evolutionSheet(svc *core.Service) Sheet {
	head := header("Conflicto", "Evento", "Año", "Diferencias",
		"Factor Diferencias", "Cooperación", "Factor Cooperación", "Tensión")
	list := svc.Evolutions()
	if len(list) == 0 {
		return b.placeholder("Evolución de Conflictos", head)
	}
	sheet := Sheet{Name: "Evolución de Conflictos", Header: head}
	for _, evo := range list {
		label := evo.ConflictID
		if rec, ok := svc.FindConflict(evo.ConflictID); ok {
			label = domain.ConflictDisplayCode(rec)
		}
		if len(evo.Events) == 0 {
			sheet.Rows = append(sheet.Rows, b.row(label, Absent, Absent, Absent, Absent, Absent, Absent, Absent))
			continue
		}
		for _, e := range evo.Events {
			sheet.Rows = append(sheet.Rows, b.row(label, e.Text, e.Year,
				strconv.Itoa(e.Differences), e.DifferencesFactor,
				strconv.Itoa(e.Cooperation), e.CooperationFactor,
				strconv.Itoa(e.Tension)))
		}
	}
	return sheet
}

// attributionSheet expands each attribution to one row per involved actor.
func (b builder) attributionSheet(svc *core.Service) Sheet {
	head := header("Conflicto", "Actor", "Impacto en Actor",
		"Factores (Actor)", "Impacto en Conflicto", "Factores (Conflicto)",
		"Estrategias de Incidencia")
	list := svc.Attributions()
	if len(list) == 0 {
		return b.placeholder("Actores por Conflicto", head)
	}
	sheet := Sheet{Name: "Actores por Conflicto", Header: head}
	for _, att := range list {
		if len(att.Actors) == 0 {
			sheet.Rows = append(sheet.Rows, b.row(att.ConflictCode, Absent, Absent, Absent, Absent, Absent, Absent))
			continue
		}
		for _, inv := range att.Actors {
			sheet.Rows = append(sheet.Rows, b.row(att.ConflictCode, inv.ActorName,
				string(inv.ImpactOnActorSign), inv.ImpactOnActorFactors,
				string(inv.ImpactOnConflictSign), inv.ImpactOnConflictFactors,
				inv.InfluenceStrategies))
		}
	}
	return sheet
}

// actorSheet expands each actor to one row per relationship edge.
func (b builder) actorSheet(svc *core.Service) Sheet {
	head := header("Actor", "Códigos Relacionados", "Tipo", "Alcance",
		"Poder", "Interés", "Letra", "Actor Relacionado", "Relación", "Tema")
	actors := svc.Actors()
	if len(actors) == 0 {
		return b.placeholder("Actores del Paisaje", head)
	}
	names := make(map[string]string, len(actors))
	for _, a := range actors {
		names[a.ID] = a.Name
	}
	sheet := Sheet{Name: "Actores del Paisaje", Header: head}
	for _, a := range actors {
		letter := a.DiagramLetter
		if letter == "" {
			letter = Absent
		}
		base := []string{a.Name, strings.Join(a.RelatedCodes, ", "), a.Type,
			string(a.Scope), strconv.Itoa(a.Power), strconv.Itoa(a.Interest), letter}
		if len(a.Relationships) == 0 {
			sheet.Rows = append(sheet.Rows, b.row(append(base, Absent, Absent, Absent)...))
			continue
		}
		for _, rel := range a.Relationships {
			related := names[rel.ActorID]
			if related == "" {
				related = rel.ActorID
			}
			cells := append(append([]string{}, base...), related, string(rel.Type), rel.Theme)
			sheet.Rows = append(sheet.Rows, b.row(cells...))
		}
	}
	return sheet
}

func (b builder) dialogueSheet(svc *core.Service) Sheet {
	head := header("Espacio", "Formalidad", "Alcance", "Actores",
		"Función Principal", "Incidencia", "Fortalezas", "Debilidades")
	list := svc.DialogueSpaces()
	if len(list) == 0 {
		return b.placeholder("Espacios de Diálogo", head)
	}
	sheet := Sheet{Name: "Espacios de Diálogo", Header: head}
	for _, d := range list {
		sheet.Rows = append(sheet.Rows, b.row(d.Name, d.Formality, d.Scope,
			d.InvolvedActors, d.MainFunction, d.Incidence, d.Strengths, d.Weaknesses))
	}
	return sheet
}

func (b builder) convenedSheet(svc *core.Service) Sheet {
	head := header("Actor", "Tipo", "Rol", "Conflicto Con",
		"Colaboración Con", "Poder", "Interés")
	list := svc.ConvenedActors()
	if len(list) == 0 {
		return b.placeholder("Actores Convocados", head)
	}
	sheet := Sheet{Name: "Actores Convocados", Header: head}
	for _, a := range list {
		sheet.Rows = append(sheet.Rows, b.row(a.Name, a.Type, a.Role,
			a.ConflictWith, a.CollaborationWith,
			strconv.Itoa(a.Power), strconv.Itoa(a.Interest)))
	}
	return sheet
}

func (b builder) strategySheet(svc *core.Service) Sheet {
	head := header("Conformación del Taller", "Medidas de Inclusión",
		"Manejo de Conflictos", "Otras Estrategias")
	strategy, ok := svc.ParticipationStrategy()
	if !ok {
		return b.placeholder("Estrategia de Participación", head)
	}
	return Sheet{
		Name:   "Estrategia de Participación",
		Header: head,
		Rows: [][]string{b.row(strategy.WorkshopMakeup, strategy.InclusionMeasures,
			strategy.ConflictGuidelines, strategy.OtherStrategies)},
	}
}

func (b builder) agendaSheet(svc *core.Service) Sheet {
	head := header("Hora", "Actividad")
	items := svc.Agenda()
	if len(items) == 0 {
		return b.placeholder("Agenda", head)
	}
	sheet := Sheet{Name: "Agenda", Header: head}
	for _, item := range items {
		sheet.Rows = append(sheet.Rows, b.row(item.Time, item.Activity))
	}
	return sheet
}

func (b builder) questionnaireSheet(svc *core.Service) Sheet {
	head := header("Pregunta", "Respuesta")
	responses := svc.QuestionnaireResponses()
	if len(responses) == 0 {
		return b.placeholder("Capacidad Adaptativa", head)
	}
	sheet := Sheet{Name: "Capacidad Adaptativa", Header: head}
	for _, q := range domain.AdaptiveCapacityQuestions {
		answer, ok := responses[q.ID]
		if !ok {
			continue
		}
		sheet.Rows = append(sheet.Rows, b.row(fmt.Sprintf("%d. %s", q.ID, q.Text), answer))
	}
	return sheet
}
