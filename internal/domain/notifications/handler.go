package notifications

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxTriggerBody = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/walks/start", walkStartHandler(svc))

	r.Route("/triggers", func(tr chi.Router) {
		tr.Post("/walks/created", walkCreatedHandler(svc))
		tr.Post("/care-records/written", careWrittenHandler(svc))
	})
}

// walkStartRequest es el cuerpo de la invocación directa de inicio de paseo.
type walkStartRequest struct {
	Walkers []string `json:"walkers"`
}

type walkStartResponse struct {
	Success bool `json:"success"`
}

type triggerResponse struct {
	Accepted bool `json:"accepted"`
	Notified bool `json:"notified"`
}

// walkStartHandler godoc
// @Summary Avisar inicio de paseo
// @Description Envía a toda la familia el aviso de que salió el paseo. Siempre responde success=true, aunque la entrega falle. Autenticación: `Authorization: Bearer <TRIGGER_TOKEN>` si está configurado.
// @Tags walks
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token de triggers"
// @Param payload body walkStartRequest true "Nombres de quienes salen"
// @Success 200 {object} walkStartResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Router /walks/start [post]
func walkStartHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req walkStartRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxTriggerBody)).Decode(&req); err != nil && err != io.EOF {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		svc.NotifyWalkStart(context.WithoutCancel(r.Context()), req.Walkers)

		writeJSON(w, http.StatusOK, walkStartResponse{Success: true})
	}
}

// walkCreatedHandler godoc
// @Summary Trigger: paseo creado
// @Description Lo invoca el event store una única vez al crear un registro de paseo. El body es el snapshot del documento (startTime, walkers, duration, distance, weather, poo, pooFirmness, pee, energy, memo, photos).
// @Tags triggers
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token de triggers"
// @Param payload body records.WalkDocument true "Snapshot del paseo"
// @Success 202 {object} triggerResponse
// @Failure 400 {string} string "invalid payload"
// @Failure 401 {string} string "unauthorized"
// @Router /triggers/walks/created [post]
func walkCreatedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxTriggerBody))
		if err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := svc.IngestWalkCreated(context.WithoutCancel(r.Context()), body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusAccepted, triggerResponse{Accepted: true, Notified: true})
	}
}

// careWrittenHandler godoc
// @Summary Trigger: registro de cuidado escrito
// @Description Lo invoca el event store en cada creación, modificación o borrado de un registro de cuidado, con los snapshots before/after. Borrado o notify=false no notifican.
// @Tags triggers
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token de triggers"
// @Param payload body records.CareChangeDocument true "Snapshots before/after"
// @Success 202 {object} triggerResponse
// @Failure 400 {string} string "invalid payload"
// @Failure 401 {string} string "unauthorized"
// @Router /triggers/care-records/written [post]
func careWrittenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxTriggerBody))
		if err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		notified, err := svc.IngestCareWritten(context.WithoutCancel(r.Context()), body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusAccepted, triggerResponse{Accepted: true, Notified: notified})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
