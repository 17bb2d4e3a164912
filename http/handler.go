package http

import (
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/posegraph/models"
	"github.com/segmentio/encoding/json"
)

func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func HandleReadyCheck(readinessCheck func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !readinessCheck() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(version))
	}
}

// HandleWithCORS allows the handler to be called from any origin.
func HandleWithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

type worldResponse struct {
	ID           uint32                  `json:"id"`
	UUID         string                  `json:"uuid"`
	RunState     string                  `json:"run_state"`
	LastEntityID uint32                  `json:"last_entity_id"`
	Entities     []models.EntitySnapshot `json:"entities"`
}

// HandleEntities writes a snapshot of the world entities as JSON.
func HandleEntities(world *models.World) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		WriteJSON(w, http.StatusOK, worldResponse{
			ID:           world.ID,
			UUID:         world.UUID,
			RunState:     world.RunState().String(),
			LastEntityID: world.LastEntityID(),
			Entities:     world.Snapshot(),
		})
	}
}

// WriteJSON writes v as the JSON body of a response.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logs.Error(errors.New("encoding response failed").Wrap(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(b)
}

type runStateRequest struct {
	RunState string `json:"run_state"`
}

// HandleRunState writes the world run state on GET and changes it on PUT.
func HandleRunState(world *models.World) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:

		case http.MethodPut:
			var req runStateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
				return
			}

			s, err := models.ParseRunState(req.RunState)
			if err != nil {
				WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			world.SetRunState(s)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		WriteJSON(w, http.StatusOK, runStateRequest{
			RunState: world.RunState().String(),
		})
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
