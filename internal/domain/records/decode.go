package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
)

// Timestamp acepta los formatos que manda el event store:
// RFC3339, segundos unix, o {"seconds","nanos"} / {"_seconds","_nanoseconds"}.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		t.Time = parsed
		return nil
	case '{':
		var obj struct {
			Seconds  *int64 `json:"seconds"`
			Nanos    int64  `json:"nanos"`
			USeconds *int64 `json:"_seconds"`
			UNanos   int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		switch {
		case obj.Seconds != nil:
			t.Time = time.Unix(*obj.Seconds, obj.Nanos).UTC()
		case obj.USeconds != nil:
			t.Time = time.Unix(*obj.USeconds, obj.UNanos).UTC()
		default:
			return errors.New("timestamp: missing seconds")
		}
		return nil
	default:
		var secs float64
		if err := json.Unmarshal(b, &secs); err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		whole, frac := math.Modf(secs)
		t.Time = time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return nil
	}
}

// Walkers acepta un string suelto o una lista.
type Walkers []string

func (w *Walkers) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*w = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*w = nil
			return nil
		}
		*w = Walkers{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("walkers: %w", err)
	}
	*w = list
	return nil
}

// WalkDocument es la forma del documento de paseo en el event store.
type WalkDocument struct {
	StartTime Timestamp `json:"startTime"`
	Walkers   Walkers   `json:"walkers"`
	Duration  float64   `json:"duration"`
	Distance  float64   `json:"distance"`
	Weather   *struct {
		Icon string  `json:"icon"`
		Temp float64 `json:"temp"`
		Wind float64 `json:"wind"`
	} `json:"weather"`
	Poo         bool     `json:"poo"`
	PooFirmness int      `json:"pooFirmness"`
	Pee         bool     `json:"pee"`
	Energy      int      `json:"energy"`
	Memo        string   `json:"memo"`
	Photos      []string `json:"photos"`
}

// CareDocument es la forma del documento de cuidado en el event store.
type CareDocument struct {
	Type         string    `json:"type"`
	Walker       string    `json:"walker"`
	Date         Timestamp `json:"date"`
	Notify       *bool     `json:"notify"`
	Memo         string    `json:"memo"`
	Photos       []string  `json:"photos"`
	PooFirmness  int       `json:"pooFirmness"`
	FoodAmount   int       `json:"foodAmount"`
	MedicineType string    `json:"medicineType"`
	IsVaccine    bool      `json:"isVaccine"`
	GroomedBy    string    `json:"groomedBy"`
	ShopName     string    `json:"shopName"`
	HospitalName string    `json:"hospitalName"`
	Reason       string    `json:"reason"`
}

// CareChangeDocument es el payload del trigger de escritura.
type CareChangeDocument struct {
	Before *CareDocument `json:"before"`
	After  *CareDocument `json:"after"`
}

func DecodeWalkCompleted(b []byte) (WalkCompleted, error) {
	var doc WalkDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return WalkCompleted{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return doc.ToEvent()
}

func (d WalkDocument) ToEvent() (WalkCompleted, error) {
	if d.StartTime.IsZero() {
		return WalkCompleted{}, fmt.Errorf("%w: startTime required", ErrInvalidPayload)
	}
	if d.Duration < 0 || d.Distance < 0 {
		return WalkCompleted{}, fmt.Errorf("%w: negative duration or distance", ErrInvalidPayload)
	}

	w := WalkCompleted{
		StartTime:       d.StartTime.Time,
		Walkers:         trimAll(d.Walkers),
		DurationMinutes: d.Duration,
		DistanceMeters:  d.Distance,
		EnergyLevel:     d.Energy,
		Memo:            strings.TrimSpace(d.Memo),
		Photos:          nonEmpty(d.Photos),
		Excretion: &Excretion{
			PooOccurred: d.Poo,
			PooFirmness: d.PooFirmness,
			PeeOccurred: d.Pee,
		},
	}
	if d.Weather != nil {
		w.Weather = &Weather{
			IconCode: strings.TrimSpace(d.Weather.Icon),
			TempC:    d.Weather.Temp,
			WindMps:  d.Weather.Wind,
		}
	}
	return w, nil
}

func DecodeCareChange(b []byte) (CareChange, error) {
	var doc CareChangeDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return CareChange{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var ch CareChange
	if doc.Before != nil {
		r := doc.Before.ToRecord()
		ch.Before = &r
	}
	if doc.After != nil {
		r := doc.After.ToRecord()
		r.IsUpdate = doc.Before != nil
		ch.After = &r
	}
	return ch, nil
}

func (d CareDocument) ToRecord() CareRecord {
	kind := CareKind(strings.ToLower(strings.TrimSpace(d.Type)))
	if kind == "" {
		kind = CareKindOther
	}
	return CareRecord{
		Kind:         kind,
		Walker:       strings.TrimSpace(d.Walker),
		Date:         d.Date.Time,
		Notify:       d.Notify,
		Memo:         strings.TrimSpace(d.Memo),
		Photos:       nonEmpty(d.Photos),
		PooFirmness:  d.PooFirmness,
		FoodAmount:   d.FoodAmount,
		MedicineType: strings.TrimSpace(d.MedicineType),
		IsVaccine:    d.IsVaccine,
		GroomedBy:    strings.TrimSpace(d.GroomedBy),
		ShopName:     strings.TrimSpace(d.ShopName),
		HospitalName: strings.TrimSpace(d.HospitalName),
		Reason:       strings.TrimSpace(d.Reason),
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonEmpty(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return trimAll(in)
}
