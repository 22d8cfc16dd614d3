package subscribers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"pet-care-notifier/internal/platform/logger"
	"pet-care-notifier/internal/ports/identity"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const (
	maxWebhookBody = 1 << 20

	signatureHeader = "X-Line-Signature"
)

// SignatureVerifier valida la firma del webhook. nil => modo dev (sin validar).
type SignatureVerifier interface {
	Verify(body []byte, signature string) error
}

type WebhookOptions struct {
	Profiles    identity.ProfileLookup
	Verifier    SignatureVerifier
	Log         logger.Logger
	Concurrency int
}

func RegisterRoutes(r chi.Router, svc *Service, opts WebhookOptions) {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}

	// HandleFunc (no Post): el 405 lo respondemos nosotros.
	r.HandleFunc("/webhook/line", webhookHandler(svc, opts))
	r.Get("/subscribers/count", countHandler(svc))
}

// webhookRequest es el sobre que manda LINE: {destination, events:[...]}.
type webhookRequest struct {
	Destination string         `json:"destination"`
	Events      []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type   string `json:"type"`
	Source struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	} `json:"source"`
}

func (e webhookEvent) registers() bool {
	return (e.Type == "follow" || e.Type == "message") && strings.TrimSpace(e.Source.UserID) != ""
}

// webhookHandler godoc
// @Summary Webhook de LINE
// @Description Registra (upsert) a cada usuario que sigue la cuenta o le escribe. Cada evento se procesa en paralelo y un fallo no corta a los demás. Si hay channel secret configurado, valida `X-Line-Signature`.
// @Tags webhook
// @Accept json
// @Produce plain
// @Param X-Line-Signature header string false "Firma HMAC-SHA256 (base64) del body"
// @Param payload body webhookRequest true "Eventos de LINE"
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "invalid signature"
// @Failure 405 {string} string "Method Not Allowed"
// @Failure 500 {string} string "Error"
// @Router /webhook/line [post]
func webhookHandler(svc *Service, opts WebhookOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			opts.Log.Error("webhook read failed", map[string]any{"err": err})
			http.Error(w, "Error", http.StatusInternalServerError)
			return
		}

		if opts.Verifier != nil {
			if err := opts.Verifier.Verify(body, r.Header.Get(signatureHeader)); err != nil {
				opts.Log.Warn("webhook signature rejected", map[string]any{"err": err})
				http.Error(w, "invalid signature", http.StatusBadRequest)
				return
			}
		}

		var req webhookRequest
		if err := json.Unmarshal(body, &req); err != nil {
			opts.Log.Error("webhook payload invalid", map[string]any{"err": err})
			http.Error(w, "Error", http.StatusInternalServerError)
			return
		}

		registerAll(r.Context(), svc, opts, req.Events)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// registerAll procesa los eventos en paralelo. Los errores se loguean por evento
// y nunca cancelan a los hermanos; se espera a todos antes de volver.
func registerAll(ctx context.Context, svc *Service, opts WebhookOptions, events []webhookEvent) {
	g := new(errgroup.Group)
	g.SetLimit(opts.Concurrency)

	for _, ev := range events {
		ev := ev
		if !ev.registers() {
			continue
		}
		userID := strings.TrimSpace(ev.Source.UserID)

		g.Go(func() error {
			log := opts.Log.With(map[string]any{"user_id": userID, "event_type": ev.Type})

			displayName := ""
			if opts.Profiles != nil {
				p, err := opts.Profiles.GetProfile(ctx, userID)
				if err != nil {
					// Igual se registra: el id viene del evento; el nombre es solo metadata.
					log.Error("profile lookup failed", map[string]any{"err": err})
				} else {
					displayName = p.DisplayName
				}
			}

			if _, err := svc.Register(ctx, userID, displayName); err != nil {
				log.Error("subscriber upsert failed", map[string]any{"err": err})
				return nil
			}
			log.Info("subscriber registered", map[string]any{"display_name": displayName})
			return nil
		})
	}

	_ = g.Wait()
}

type countResponse struct {
	Count int `json:"count"`
}

// countHandler godoc
// @Summary Cantidad de suscriptores
// @Description Devuelve cuántos suscriptores hay registrados (sin exponer ids).
// @Tags subscribers
// @Produce json
// @Success 200 {object} countResponse
// @Failure 500 {string} string "internal error"
// @Router /subscribers/count [get]
func countHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Count: n})
	}
}

// writeJSON está duplicado a propósito en cada módulo (ver notifications).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
