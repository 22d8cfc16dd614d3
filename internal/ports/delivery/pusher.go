package delivery

import (
	"context"

	"pet-care-notifier/internal/domain/messages"
)

// Pusher entrega un mensaje a varios destinatarios en una sola llamada.
type Pusher interface {
	Multicast(ctx context.Context, to []string, msg messages.Message) error

	// MaxRecipients es el tope de destinatarios por llamada.
	MaxRecipients() int
}
