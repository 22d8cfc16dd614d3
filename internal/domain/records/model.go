// Package records modela los eventos de dominio que generan notificaciones:
// inicio y fin de paseo, y registros de cuidado.
package records

import "time"

// Event es la unión cerrada de eventos notificables.
type Event interface {
	isEvent()
}

// WalkStarted llega por invocación directa; no se persiste.
type WalkStarted struct {
	Walkers []string
}

type WalkCompleted struct {
	StartTime       time.Time
	Walkers         []string
	DurationMinutes float64
	DistanceMeters  float64

	Weather   *Weather
	Excretion *Excretion

	// EnergyLevel 0 = no informado.
	EnergyLevel int
	Memo        string
	Photos      []string
}

type Weather struct {
	IconCode string
	TempC    float64
	WindMps  float64
}

type Excretion struct {
	PooOccurred bool
	// PooFirmness 0 = no informado.
	PooFirmness int
	PeeOccurred bool
}

type CareKind string

const (
	CareKindExcretion CareKind = "excretion"
	CareKindFood      CareKind = "food"
	CareKindMedicine  CareKind = "medicine"
	CareKindBath      CareKind = "bath"
	CareKindBrushing  CareKind = "brushing"
	CareKindGrooming  CareKind = "grooming"
	CareKindHospital  CareKind = "hospital"
	CareKindOther     CareKind = "other"
)

// Grooming: dónde se hizo el corte.
const GroomedByShop = "shop"

type CareRecord struct {
	Kind   CareKind
	Walker string
	Date   time.Time

	// Notify nil equivale a true; solo false explícito suprime la notificación.
	Notify   *bool
	IsUpdate bool

	Memo   string
	Photos []string

	PooFirmness  int
	FoodAmount   int
	MedicineType string
	IsVaccine    bool
	GroomedBy    string
	ShopName     string
	HospitalName string
	Reason       string
}

// ShouldNotify es el gate explícito; se evalúa antes de renderizar.
func (c CareRecord) ShouldNotify() bool {
	return c.Notify == nil || *c.Notify
}

// CareChange es el par before/after que emite el event store en cada escritura.
// Before nil => creación; After nil => borrado.
type CareChange struct {
	Before *CareRecord
	After  *CareRecord
}

func (WalkStarted) isEvent()   {}
func (WalkCompleted) isEvent() {}
func (CareRecord) isEvent()    {}
