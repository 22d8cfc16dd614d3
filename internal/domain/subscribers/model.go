package subscribers

import "time"

// Subscriber es un destinatario registrado; ID es el userId que emite LINE.
type Subscriber struct {
	ID          string
	DisplayName string
	UpdatedAt   time.Time
}
