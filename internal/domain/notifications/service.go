package notifications

import (
	"context"

	"pet-care-notifier/internal/domain/broadcast"
	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/domain/records"
	"pet-care-notifier/internal/domain/render"
	"pet-care-notifier/internal/platform/logger"
)

type Broadcaster interface {
	Broadcast(ctx context.Context, msg messages.Message) broadcast.Result
}

// Service une Formatter y Dispatcher para cada punto de entrada.
// No guarda estado entre invocaciones.
type Service struct {
	formatter   *render.Formatter
	broadcaster Broadcaster
	log         logger.Logger
}

func NewService(formatter *render.Formatter, broadcaster Broadcaster, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		formatter:   formatter,
		broadcaster: broadcaster,
		log:         log.With(map[string]any{"component": "notifications"}),
	}
}

// NotifyWalkStart avisa el inicio de un paseo. Los fallos de entrega no se propagan.
func (s *Service) NotifyWalkStart(ctx context.Context, walkers []string) {
	msg, _ := s.formatter.Render(records.WalkStarted{Walkers: walkers})
	s.broadcaster.Broadcast(ctx, msg)
}

// OnWalkCreated se dispara una sola vez, al crearse el registro de paseo.
func (s *Service) OnWalkCreated(ctx context.Context, walk records.WalkCompleted) {
	msg, _ := s.formatter.Render(walk)
	s.broadcaster.Broadcast(ctx, msg)
}

// OnCareWritten se dispara en cada creación y modificación de un registro de cuidado.
// Devuelve false si no hubo nada que notificar (borrado o notify=false).
func (s *Service) OnCareWritten(ctx context.Context, ch records.CareChange) bool {
	if ch.After == nil {
		s.log.Debug("care record deleted; skipping", nil)
		return false
	}
	rec := *ch.After
	rec.IsUpdate = ch.Before != nil

	if !rec.ShouldNotify() {
		s.log.Debug("care record notify=false; skipping", map[string]any{"kind": string(rec.Kind)})
		return false
	}

	msg, ok := s.formatter.Render(rec)
	if !ok {
		return false
	}
	s.broadcaster.Broadcast(ctx, msg)
	return true
}

// IngestWalkCreated decodifica el snapshot crudo y notifica.
// Lo usan tanto el trigger HTTP como el listener de Postgres.
func (s *Service) IngestWalkCreated(ctx context.Context, payload []byte) error {
	walk, err := records.DecodeWalkCompleted(payload)
	if err != nil {
		s.log.Warn("walk payload rejected", map[string]any{"err": err})
		return err
	}
	s.OnWalkCreated(ctx, walk)
	return nil
}

// IngestCareWritten decodifica el par before/after crudo y notifica.
func (s *Service) IngestCareWritten(ctx context.Context, payload []byte) (bool, error) {
	ch, err := records.DecodeCareChange(payload)
	if err != nil {
		s.log.Warn("care payload rejected", map[string]any{"err": err})
		return false, err
	}
	return s.OnCareWritten(ctx, ch), nil
}
