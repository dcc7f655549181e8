// Package domain defines the persistent entities, derived-value functions,
// and rule evaluation primitives used by landscapecore.
package domain

import "time"

// ItemKind distinguishes the two catalog families collected during intake.
type ItemKind string

// Catalog item kinds.
const (
	// KindLivelihood identifies a livelihood (medio de vida) item.
	KindLivelihood ItemKind = "livelihood"
	// KindEcosystem identifies an ecosystem item.
	KindEcosystem ItemKind = "ecosystem"
)

// Base contains common fields for all stored records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogItem is one named entry produced by an intake batch. Items are
// immutable once issued; a new intake replaces the whole per-kind set.
type CatalogItem struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Code string   `json:"code"`
	Kind ItemKind `json:"kind"`
}

// LivelihoodDetail refines a selected livelihood catalog item with its
// end-use flags.
type LivelihoodDetail struct {
	CatalogItem
	Autoconsumo bool `json:"autoconsumo"`
	Comercial   bool `json:"comercial"`
}

// EcosystemHealth grades perceived ecosystem condition from degraded (1) to
// healthy (3).
type EcosystemHealth int

// Ecosystem health levels.
const (
	HealthDegraded EcosystemHealth = 1
	HealthRegular  EcosystemHealth = 2
	HealthGood     EcosystemHealth = 3
)

// EcosystemDetail refines a selected ecosystem catalog item with its health
// grade.
type EcosystemDetail struct {
	CatalogItem
	Health EcosystemHealth `json:"health"`
}

// PrioritizedLivelihood scores one detailed livelihood across five dimensions.
// Total is derived; it is recomputed on every mutation and never set directly.
type PrioritizedLivelihood struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	MainProducts     string `json:"main_products"`
	FoodSecurity     int    `json:"food_security"`
	Area             int    `json:"area"`
	LocalDevelopment int    `json:"local_development"`
	Environment      int    `json:"environment"`
	Inclusion        int    `json:"inclusion"`
	Total            int    `json:"total"`
}

// SizeBand labels one of the three tertile bands of a productive system's
// size range.
type SizeBand string

// Size bands.
const (
	BandSmall  SizeBand = "small"
	BandMedium SizeBand = "medium"
	BandLarge  SizeBand = "large"
)

// BandNotApplicable marks a band that collapses away for degenerate ranges.
const BandNotApplicable = "N/A"

// SizeBands carries the computed label for each band.
type SizeBands struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// ImportanceEntry records the per-member importance rating collected while a
// productive system is characterized.
type ImportanceEntry struct {
	LivelihoodID string `json:"livelihood_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Importance   int    `json:"importance"` // 0-3
	EndProduct   string `json:"end_product"`
}

// MarketFlags captures where a productive system's output is sold.
type MarketFlags struct {
	Local         bool `json:"local"`
	Regional      bool `json:"regional"`
	National      bool `json:"national"`
	Export        bool `json:"export"`
	NotApplicable bool `json:"not_applicable"`
}

// TenurePercentages holds per-band percentages aligned index-for-index with
// the group's tenure type names. Nil means the cell was never entered.
type TenurePercentages struct {
	Small  []*float64 `json:"small"`
	Medium []*float64 `json:"medium"`
	Large  []*float64 `json:"large"`
}

// ProductiveSystemGroup is a user-defined grouping of prioritized livelihoods
// characterized together as one economic unit. Member ids are consumed on
// save: an id may belong to at most one live group.
type ProductiveSystemGroup struct {
	Base
	CompositeCode string            `json:"composite_code"`
	MemberIDs     []string          `json:"member_ids"`
	SizeUnit      string            `json:"size_unit"`
	MinSize       *float64          `json:"min_size"`
	MaxSize       *float64          `json:"max_size"`
	Bands         SizeBands         `json:"bands"`
	TenureTypes   []string          `json:"tenure_types"` // up to 3 named columns
	Tenure        TenurePercentages `json:"tenure"`
	Importance    []ImportanceEntry `json:"importance"`
	Markets       MarketFlags       `json:"markets"`
}

// EcosystemCharacterization relates one ecosystem to the livelihoods and
// ecosystem services it supports. At most one entry exists per ecosystem.
type EcosystemCharacterization struct {
	EcosystemID       string   `json:"ecosystem_id"`
	RelatedLivelihood []string `json:"related_livelihood_codes"`
	RelatedServices   []string `json:"related_service_codes"`
	DegradationCauses string   `json:"degradation_causes"`
}

// AccessCondition captures one access dimension of an ecosystem service.
type AccessCondition struct {
	Condition string `json:"condition"`
	Barriers  string `json:"barriers,omitempty"`
}

// EquityFlags marks population groups whose service access is impacted
// differently.
type EquityFlags struct {
	Men          bool `json:"men"`
	Women        bool `json:"women"`
	Youth        bool `json:"youth"`
	Marginalized bool `json:"marginalized"`
}

// ServiceCharacterization describes one (ecosystem, service) pair chosen from
// the ecosystem's related-service set. Keyed by the combined code.
type ServiceCharacterization struct {
	CompositeCode      string          `json:"composite_code"` // ecosystemCode_serviceCode
	EcosystemID        string          `json:"ecosystem_id"`
	ServiceCode        string          `json:"service_code"`
	RelatedLivelihood  []string        `json:"related_livelihood_codes"`
	Provision          string          `json:"provision"`
	Flow               string          `json:"flow"`
	Demand             string          `json:"demand"`
	ProvisionAccess    AccessCondition `json:"provision_access"`
	FlowAccess         AccessCondition `json:"flow_access"`
	DemandAccess       AccessCondition `json:"demand_access"`
	UserCount          string          `json:"user_count"`
	ContributingMonths []string        `json:"contributing_months"`
	ScarceMonths       []string        `json:"scarce_months"`
	Equity             EquityFlags     `json:"equity"`
	EquityNotes        string          `json:"equity_notes"`
}

// ThreatRecord is one prioritized threat. Climatic and non-climatic threats
// share the shape but live in independent lists.
type ThreatRecord struct {
	Base
	Name          string `json:"name"`
	Magnitude     int    `json:"magnitude"` // 1-5
	Frequency     int    `json:"frequency"` // 1-3
	Trend         int    `json:"trend"`     // -2..3
	Score         int    `json:"score"`     // derived: magnitude+frequency+trend
	AffectedSites string `json:"affected_sites"`
	MapCode       string `json:"map_code"`
	Climatic      bool   `json:"climatic"`
}

// ConflictTargetKind tags which downstream entity a conflict record links a
// threat against.
type ConflictTargetKind string

// Conflict target kinds.
const (
	TargetLivelihood ConflictTargetKind = "livelihood"
	TargetService    ConflictTargetKind = "service"
)

// ConflictLevel grades the severity of a generated conflict.
type ConflictLevel string

// Conflict levels.
const (
	ConflictNone     ConflictLevel = "none"
	ConflictLight    ConflictLevel = "light"
	ConflictModerate ConflictLevel = "moderate"
	ConflictGrave    ConflictLevel = "grave"
)

// ImpactScores holds the seven security-dimension ratings (0-3 each).
type ImpactScores struct {
	Economic      int `json:"economic"`
	Food          int `json:"food"`
	Health        int `json:"health"`
	Environmental int `json:"environmental"`
	Personal      int `json:"personal"`
	Community     int `json:"community"`
	Political     int `json:"political"`
}

// ConflictRecord links a threat to one affected livelihood or service and
// characterizes the resulting conflict. The Kind tag discriminates the two
// variants, which otherwise share every field.
type ConflictRecord struct {
	Base
	Kind                 ConflictTargetKind `json:"kind"`
	ThreatName           string             `json:"threat_name"`
	TargetCode           string             `json:"target_code"`
	TargetName           string             `json:"target_name"`
	Impacts              ImpactScores       `json:"impacts"`
	Families             string             `json:"families"` // count or range like "30-50"
	DifferentiatedImpact string             `json:"differentiated_impact"`
	ImpactNotes          string             `json:"impact_notes,omitempty"`
	Level                ConflictLevel      `json:"level"`
	TypeCodes            []string           `json:"type_codes"` // subset of C1..C7
	Description          string             `json:"description"`
	MapCode              string             `json:"map_code"`
}

// ConflictEvent is one time-ordered entry in a conflict's evolution.
// Tension is derived: differences + cooperation, recomputed at append.
type ConflictEvent struct {
	Text              string `json:"text"`
	Year              string `json:"year"`
	Differences       int    `json:"differences"` // -1,0,1
	DifferencesFactor string `json:"differences_factor"`
	Cooperation       int    `json:"cooperation"` // -1,0,1
	CooperationFactor string `json:"cooperation_factor"`
	Tension           int    `json:"tension"`
}

// ConflictEvolution attaches the event sequence to its originating conflict.
type ConflictEvolution struct {
	ConflictID string          `json:"conflict_id"`
	Events     []ConflictEvent `json:"events"`
}

// ImpactSign is the three-valued impact direction used in actor attribution.
type ImpactSign string

// Impact signs.
const (
	SignPositive ImpactSign = "+"
	SignNeutral  ImpactSign = "o"
	SignNegative ImpactSign = "-"
)

// ActorInvolvement details one actor's relation to a conflict.
type ActorInvolvement struct {
	ActorID                 string     `json:"actor_id"`
	ActorName               string     `json:"actor_name"`
	ImpactOnActorSign       ImpactSign `json:"impact_on_actor_sign"`
	ImpactOnActorFactors    string     `json:"impact_on_actor_factors"`
	ImpactOnConflictSign    ImpactSign `json:"impact_on_conflict_sign"`
	ImpactOnConflictFactors string     `json:"impact_on_conflict_factors"`
	InfluenceStrategies     string     `json:"influence_strategies"`
}

// ConflictActorAttribution records per-actor impact attributions for one
// conflict, keyed by the same id as the conflict record.
type ConflictActorAttribution struct {
	ConflictID   string             `json:"conflict_id"`
	ConflictCode string             `json:"conflict_code"`
	Actors       []ActorInvolvement `json:"actors"`
}

// ActorScope bounds the reach of a landscape actor.
type ActorScope string

// Actor scopes.
const (
	ScopeLocal     ActorScope = "local"
	ScopeLandscape ActorScope = "landscape"
	ScopeNational  ActorScope = "national"
)

// RelationType labels one directional relationship edge between actors.
type RelationType string

// Relationship types. Edges are stored from the editing actor's perspective
// only; no inverse edge is created.
const (
	RelationConflict      RelationType = "conflict"
	RelationCollaboration RelationType = "collaboration"
	RelationNone          RelationType = "n/a"
)

// ActorRelationship is one edge from a landscape actor to another.
type ActorRelationship struct {
	ActorID string       `json:"actor_id"`
	Type    RelationType `json:"type"`
	Theme   string       `json:"theme"`
}

// LandscapeActor is one actor mapped during governance characterization.
// DiagramLetter is assigned lazily and stable once assigned.
type LandscapeActor struct {
	Base
	Name          string              `json:"name"`
	RelatedCodes  []string            `json:"related_codes"` // livelihood or service codes
	Type          string              `json:"type"`
	Scope         ActorScope          `json:"scope"`
	Power         int                 `json:"power"`    // 0-10
	Interest      int                 `json:"interest"` // 0-10
	DiagramLetter string              `json:"diagram_letter,omitempty"`
	Relationships []ActorRelationship `json:"relationships,omitempty"`
}

// DialogueSpace is one multi-actor coordination space identified during
// governance characterization.
type DialogueSpace struct {
	Base
	Name           string `json:"name"`
	Formality      string `json:"formality"` // formal | informal
	Scope          string `json:"scope"`
	InvolvedActors string `json:"involved_actors"`
	MainFunction   string `json:"main_function"`
	Incidence      string `json:"incidence"` // low | medium | high
	Strengths      string `json:"strengths"`
	Weaknesses     string `json:"weaknesses"`
}

// ConvenedActor is one actor identified during workshop preparation as a
// participant to convene.
type ConvenedActor struct {
	Base
	Name              string `json:"name"`
	Type              string `json:"type"`
	Role              string `json:"role"`
	ConflictWith      string `json:"conflict_with"`
	CollaborationWith string `json:"collaboration_with"`
	Power             int    `json:"power"`    // 0-10
	Interest          int    `json:"interest"` // 0-10
}

// ParticipationStrategy is the facilitation team's free-text plan for how the
// workshop is convened and kept inclusive. All four fields are optional notes.
type ParticipationStrategy struct {
	WorkshopMakeup     string `json:"workshop_makeup"`
	InclusionMeasures  string `json:"inclusion_measures"`
	ConflictGuidelines string `json:"conflict_guidelines"`
	OtherStrategies    string `json:"other_strategies"`
}

// AgendaItem is one scheduled workshop activity.
type AgendaItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// ResponseType declares how a questionnaire question is answered.
type ResponseType string

// Questionnaire response types.
const (
	ResponsePercentage ResponseType = "percentage"
	ResponseText       ResponseType = "text"
)

// Question is one adaptive-capacity questionnaire entry.
type Question struct {
	ID       int          `json:"id"`
	Text     string       `json:"text"`
	Subtext  string       `json:"subtext,omitempty"`
	Response ResponseType `json:"response"`
}

// PercentageBuckets are the only valid answers to percentage questions.
var PercentageBuckets = []string{"0-20", "20-40", "40-60", "60-80", "80-100", "N/A (0)"}

// ValidPercentageBucket reports whether the answer is one of the fixed
// bucket tokens.
func ValidPercentageBucket(answer string) bool {
	for _, b := range PercentageBuckets {
		if answer == b {
			return true
		}
	}
	return false
}

// WorkshopContext carries the constant landscape fields stamped on every
// exported row.
type WorkshopContext struct {
	Date      string `json:"date" yaml:"date"`
	Country   string `json:"country" yaml:"country"`
	GroupName string `json:"group_name" yaml:"group_name"`
}
