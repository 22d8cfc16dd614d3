package identity

import "context"

// Profile es lo que la plataforma expone de un usuario.
type Profile struct {
	UserID      string
	DisplayName string
}

// ProfileLookup resuelve el perfil de un usuario; puede fallar.
type ProfileLookup interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
}
