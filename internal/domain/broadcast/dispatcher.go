// Package broadcast entrega un mensaje renderizado a todos los suscriptores.
//
// La entrega es best-effort y at-most-once: los destinatarios se parten en
// chunks del tamaño que acepta el transporte, cada chunk es una sola llamada,
// y un chunk que falla se loguea y no se reintenta. Broadcast nunca devuelve
// error a quien lo invoca.
package broadcast

import (
	"context"
	"time"

	"pet-care-notifier/internal/domain/messages"
	"pet-care-notifier/internal/platform/logger"
	"pet-care-notifier/internal/ports/delivery"
)

// Recipients es la vista del registro que necesita el dispatcher.
type Recipients interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type Dispatcher struct {
	recipients Recipients
	pusher     delivery.Pusher
	log        logger.Logger
	chunkSize  int
}

type Options struct {
	// ChunkSize <= 0 usa el tope del transporte.
	ChunkSize int
	Log       logger.Logger
}

func NewDispatcher(recipients Recipients, pusher delivery.Pusher, opts Options) *Dispatcher {
	size := pusher.MaxRecipients()
	if opts.ChunkSize > 0 && (size <= 0 || opts.ChunkSize < size) {
		size = opts.ChunkSize
	}
	if size <= 0 {
		size = 500
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		recipients: recipients,
		pusher:     pusher,
		log:        log.With(map[string]any{"component": "broadcast"}),
		chunkSize:  size,
	}
}

// Result resume un broadcast. Solo informativo.
type Result struct {
	Recipients   int
	Calls        int
	FailedChunks int
	Delivered    int
}

// Broadcast manda msg a todos los suscriptores actuales.
func (d *Dispatcher) Broadcast(ctx context.Context, msg messages.Message) Result {
	var res Result
	if msg.IsEmpty() {
		return res
	}

	ids, err := d.recipients.ListIDs(ctx)
	if err != nil {
		d.log.Error("list subscribers failed", map[string]any{"err": err})
		return res
	}
	res.Recipients = len(ids)
	if len(ids) == 0 {
		d.log.Info("no subscribers registered; nothing to send", nil)
		return res
	}

	start := time.Now()
	for i, chunk := range chunks(ids, d.chunkSize) {
		res.Calls++
		if err := d.pusher.Multicast(ctx, chunk, msg); err != nil {
			res.FailedChunks++
			d.log.Error("multicast failed", map[string]any{
				"err":        err,
				"chunk":      i,
				"recipients": len(chunk),
			})
			continue
		}
		res.Delivered += len(chunk)
	}

	d.log.Info("broadcast finished", map[string]any{
		"recipients":    res.Recipients,
		"delivered":     res.Delivered,
		"failed_chunks": res.FailedChunks,
		"parts":         len(msg.Parts),
		"took_ms":       time.Since(start).Milliseconds(),
	})
	return res
}

func chunks(ids []string, size int) [][]string {
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
