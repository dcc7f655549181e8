package domain

// EcosystemService is one entry of the fixed ecosystem-service reference
// catalog. Services are not collected during intake; characterizations
// reference them by code.
type EcosystemService struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Ecosystem service categories.
const (
	CategoryProvisioning = "APROVISIONAMIENTO"
	CategoryRegulation   = "REGULACIÓN"
	CategorySupport      = "APOYO"
	CategoryCultural     = "CULTURAL"
)

// ServiceCatalog is the fixed reference list of ecosystem services.
var ServiceCatalog = []EcosystemService{
	{Code: "P1", Name: "ALIMENTOS", Category: CategoryProvisioning},
	{Code: "P2", Name: "MATERIAS PRIMAS", Category: CategoryProvisioning},
	{Code: "P3", Name: "AGUA DULCE", Category: CategoryProvisioning},
	{Code: "P4", Name: "RECURSOS MEDICINALES", Category: CategoryProvisioning},
	{Code: "R1", Name: "CALIDAD DEL AIRE Y CLIMA LOCALES", Category: CategoryRegulation},
	{Code: "R2", Name: "SECUESTRO Y ALMACENAMIENTO DE CO2", Category: CategoryRegulation},
	{Code: "R3", Name: "MODERACIÓN DESASTRES NATURALES", Category: CategoryRegulation},
	{Code: "R4", Name: "TRATAMIENTO AGUAS RESIDUALES", Category: CategoryRegulation},
	{Code: "R5", Name: "PREV. EROSIÓN Y CONS. SUELOS", Category: CategoryRegulation},
	{Code: "R6", Name: "POLINIZACIÓN", Category: CategoryRegulation},
	{Code: "R7", Name: "CONTROL BIOLÓGICO", Category: CategoryRegulation},
	{Code: "A1", Name: "HÁBITATS PARA ESPECIES", Category: CategorySupport},
	{Code: "A2", Name: "MANT. DIVERSIDAD GENÉTICA", Category: CategorySupport},
	{Code: "C1", Name: "RECREACIÓN, SALUD FÍSICA Y MENTAL", Category: CategoryCultural},
	{Code: "C2", Name: "TURISMO", Category: CategoryCultural},
	{Code: "C3", Name: "CULTURA, ARTE Y DISEÑO", Category: CategoryCultural},
	{Code: "C4", Name: "ESPIRITUALIDAD Y PERTENENCIA", Category: CategoryCultural},
}

// FindService resolves a service by code.
func FindService(code string) (EcosystemService, bool) {
	for _, s := range ServiceCatalog {
		if s.Code == code {
			return s, true
		}
	}
	return EcosystemService{}, false
}

// DefaultCatalogEntry pairs a built-in catalog name with its curated short
// code. Uploaded catalogs derive codes from their names; the built-in sets
// ship fixed codes instead.
type DefaultCatalogEntry struct {
	Name string
	Code string
}

// DefaultLivelihoods is the built-in livelihood catalog offered when no
// intake upload has happened. Ids are issued at seeding.
var DefaultLivelihoods = []DefaultCatalogEntry{
	{Name: "Agricultura", Code: "Ag"},
	{Name: "Ganadería", Code: "Gn"},
	{Name: "Pesca", Code: "Ps"},
	{Name: "Turismo", Code: "Tr"},
	{Name: "Forestería", Code: "Fr"},
	{Name: "Minería", Code: "Mn"},
	{Name: "Apicultura", Code: "Ap"},
	{Name: "Caza", Code: "Cz"},
	{Name: "Artesanía", Code: "Art"},
}

// DefaultEcosystems is the built-in ecosystem catalog.
var DefaultEcosystems = []DefaultCatalogEntry{
	{Name: "Bosque", Code: "Bq"},
	{Name: "Páramo", Code: "Pr"},
	{Name: "Río", Code: "Ri"},
	{Name: "Laguna", Code: "Lg"},
	{Name: "Manglar", Code: "Mg"},
	{Name: "Costa", Code: "Ct"},
	{Name: "Humedal", Code: "Hm"},
}

// AdaptiveCapacityQuestions is the fixed questionnaire for the final step.
var AdaptiveCapacityQuestions = []Question{
	{ID: 1, Text: "¿Qué porcentaje de las familias tiene acceso a más de un medio de vida?", Response: ResponsePercentage},
	{ID: 2, Text: "¿Qué porcentaje de las familias participa en organizaciones locales?", Response: ResponsePercentage},
	{ID: 3, Text: "¿Qué porcentaje de las familias ha recibido capacitación técnica en los últimos dos años?", Response: ResponsePercentage},
	{ID: 4, Text: "¿Qué porcentaje de las familias tiene acceso a crédito o ahorro?", Response: ResponsePercentage},
	{ID: 5, Text: "¿Qué porcentaje de las familias conserva prácticas o conocimientos tradicionales de manejo?", Response: ResponsePercentage},
	{ID: 6, Text: "¿Existen procesos de planificación territorial activos en el paisaje?", Subtext: "Especificar cuál proceso", Response: ResponseText},
	{ID: 7, Text: "¿Qué porcentaje de las familias accede a información climática para decidir sobre sus medios de vida?", Response: ResponsePercentage},
	{ID: 8, Text: "Observaciones generales del grupo facilitador", Response: ResponseText},
}

// FindQuestion resolves a questionnaire question by id.
func FindQuestion(id int) (Question, bool) {
	for _, q := range AdaptiveCapacityQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
