// Package render convierte eventos de dominio en mensajes listos para LINE.
// Es puro: sin I/O, y nunca falla.
package render

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/domain/records"
)

const (
	DefaultTimezone = "Asia/Tokyo"

	// YY/MM/DD HH:mm
	dateTimeLayout = "06/01/02 15:04"

	someone = "誰か"
)

type Formatter struct {
	loc *time.Location
	now func() time.Time
}

// New crea un Formatter para la zona indicada; nil => Asia/Tokyo.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = mustLoad(DefaultTimezone)
	}
	return &Formatter{loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	cp := *f
	cp.now = now
	return &cp
}

// Render devuelve el mensaje del evento. ok=false significa "no notificar".
func (f *Formatter) Render(ev records.Event) (messages.Message, bool) {
	switch e := ev.(type) {
	case records.WalkStarted:
		return f.WalkStarted(e), true
	case records.WalkCompleted:
		return f.WalkCompleted(e), true
	case records.CareRecord:
		return f.Care(e)
	default:
		return messages.Message{}, false
	}
}

// DateTime formatea un instante en la zona local; instante cero => "".
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(dateTimeLayout)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orSomeone(s string) string {
	if strings.TrimSpace(s) == "" {
		return someone
	}
	return s
}

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// JST no tiene horario de verano.
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}
