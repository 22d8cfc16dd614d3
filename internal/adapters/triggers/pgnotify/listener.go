// Package pgnotify alimenta los triggers desde LISTEN/NOTIFY de Postgres.
// El event store hace pg_notify(canal, snapshot_json) al crear/escribir registros.
package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pet-care-notifier/internal/platform/logger"
)

const (
	ChannelWalkCreated       = "walk_created"
	ChannelCareRecordWritten = "care_record_written"
)

// Sink recibe los payloads crudos. notifications.Service lo implementa.
type Sink interface {
	IngestWalkCreated(ctx context.Context, payload []byte) error
	IngestCareWritten(ctx context.Context, payload []byte) (bool, error)
}

type Options struct {
	DSN        string
	Log        logger.Logger
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

type Listener struct {
	dsn  string
	sink Sink
	log  logger.Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

func New(sink Sink, opts Options) *Listener {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff < opts.MinBackoff {
		opts.MaxBackoff = 30 * time.Second
	}
	return &Listener{
		dsn:        opts.DSN,
		sink:       sink,
		log:        opts.Log.With(map[string]any{"component": "pgnotify"}),
		minBackoff: opts.MinBackoff,
		maxBackoff: opts.MaxBackoff,
	}
}

// Run escucha hasta que ctx se cancele. Reconecta con backoff exponencial.
func (l *Listener) Run(ctx context.Context) error {
	backoff := l.minBackoff
	for {
		err := l.listenOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.log.Warn("listener disconnected", map[string]any{"err": err, "retry_in": backoff.String()})

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, l.maxBackoff)
	}
}

func (l *Listener) listenOnce(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.WithoutCancel(ctx))

	for _, ch := range []string{ChannelWalkCreated, ChannelCareRecordWritten} {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return fmt.Errorf("listen %s: %w", ch, err)
		}
	}
	l.log.Info("listening", map[string]any{"channels": []string{ChannelWalkCreated, ChannelCareRecordWritten}})

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.Dispatch(ctx, n)
	}
}

var ErrUnknownChannel = errors.New("unknown channel")

// Dispatch entrega una notificación al sink. Un payload inválido se loguea y se descarta.
func (l *Listener) Dispatch(ctx context.Context, n *pgconn.Notification) error {
	if n == nil {
		return nil
	}
	log := l.log.With(map[string]any{"channel": n.Channel, "pid": n.PID})
	payload := []byte(n.Payload)

	var err error
	switch n.Channel {
	case ChannelWalkCreated:
		err = l.sink.IngestWalkCreated(ctx, payload)
	case ChannelCareRecordWritten:
		_, err = l.sink.IngestCareWritten(ctx, payload)
	default:
		err = ErrUnknownChannel
	}
	if err != nil {
		log.Warn("notification dropped", map[string]any{"err": err})
	}
	return err
}
