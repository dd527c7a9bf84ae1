package pedometer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/2beens/bodix/internal/telemetry/metrics"
	"github.com/2beens/bodix/internal/telemetry/tracing"
	"github.com/2beens/bodix/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=pedometer_test

const maxSamplesBodyBytes = 1 << 20

type samplesStore interface {
	AddBatch(ctx context.Context, samples []Sample) ([]Sample, error)
	List(ctx context.Context, from, to time.Time) ([]Sample, error)
}

type authorizationStore interface {
	Status(ctx context.Context) AuthorizationStatus
	SetStatus(ctx context.Context, status AuthorizationStatus) error
}

type cacheClearer interface {
	Clear()
}

type Handler struct {
	samples       samplesStore
	authorization authorizationStore
	cache         cacheClearer
	metrics       *metrics.Manager
}

// NewHandler creates the handler for device-facing pedometer routes.
// cache may be nil; when set it is cleared after every stored batch.
func NewHandler(
	samples samplesStore,
	authorization authorizationStore,
	cache cacheClearer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		samples:       samples,
		authorization: authorization,
		cache:         cache,
		metrics:       metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/pedometer/samples", h.HandleAddSamples).Methods("POST", "OPTIONS").Name("add-samples")
	r.HandleFunc("/pedometer/samples", h.HandleListSamples).Methods("GET", "OPTIONS").Name("list-samples")
	r.HandleFunc("/pedometer/authorization", h.HandleGetAuthorization).Methods("GET", "OPTIONS").Name("get-authorization")
	r.HandleFunc("/pedometer/authorization", h.HandleSetAuthorization).Methods("PUT", "OPTIONS").Name("set-authorization")
}

// HandleAddSamples accepts either a single sample object or an array of them.
func (h *Handler) HandleAddSamples(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pedometer.samples.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSamplesBodyBytes))
	if err != nil {
		log.Errorf("add samples, read body: %s", err)
		http.Error(w, "add samples failed", http.StatusBadRequest)
		return
	}

	samples, err := decodeSamples(body)
	if err != nil {
		log.Errorf("add samples, unmarshal json: %s", err)
		http.Error(w, "add samples failed", http.StatusBadRequest)
		return
	}

	added, err := h.samples.AddBatch(ctx, samples)
	if err != nil {
		if errors.Is(err, ErrInvalidSample) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add samples: %s", err)
		http.Error(w, "add samples failed", http.StatusInternalServerError)
		return
	}

	h.metrics.CounterSamplesIngested.Add(float64(len(added)))
	if h.cache != nil {
		h.cache.Clear()
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func decodeSamples(body []byte) ([]Sample, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	if trimmed[0] == '[' {
		var samples []Sample
		if err := json.Unmarshal(trimmed, &samples); err != nil {
			return nil, err
		}
		return samples, nil
	}

	var sample Sample
	if err := json.Unmarshal(trimmed, &sample); err != nil {
		return nil, err
	}
	return []Sample{sample}, nil
}

// HandleListSamples lists samples in [from, to); both RFC 3339, default is the last 24 hours.
func (h *Handler) HandleListSamples(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pedometer.samples.list")
	defer span.End()

	to := time.Now()
	from := to.Add(-24 * time.Hour)
	var err error
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		if from, err = time.Parse(time.RFC3339, fromParam); err != nil {
			http.Error(w, "invalid from param", http.StatusBadRequest)
			return
		}
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		if to, err = time.Parse(time.RFC3339, toParam); err != nil {
			http.Error(w, "invalid to param", http.StatusBadRequest)
			return
		}
	}
	if !to.After(from) {
		http.Error(w, "to must be after from", http.StatusBadRequest)
		return
	}

	samples, err := h.samples.List(ctx, from, to)
	if err != nil {
		log.Errorf("list samples: %s", err)
		http.Error(w, "list samples failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, samples, http.StatusOK)
}

type authorizationPayload struct {
	Status AuthorizationStatus `json:"status"`
}

func (h *Handler) HandleGetAuthorization(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pedometer.authorization.get")
	defer span.End()

	pkg.WriteJSON(w, authorizationPayload{Status: h.authorization.Status(ctx)}, http.StatusOK)
}

func (h *Handler) HandleSetAuthorization(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.pedometer.authorization.set")
	defer span.End()

	var payload authorizationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Errorf("set authorization, unmarshal json: %s", err)
		http.Error(w, "set authorization failed", http.StatusBadRequest)
		return
	}
	if !payload.Status.IsValid() {
		http.Error(w, "invalid authorization status", http.StatusBadRequest)
		return
	}

	if err := h.authorization.SetStatus(ctx, payload.Status); err != nil {
		log.Errorf("set authorization: %s", err)
		http.Error(w, "set authorization failed", http.StatusInternalServerError)
		return
	}
	if h.cache != nil {
		h.cache.Clear()
	}

	pkg.WriteJSON(w, payload, http.StatusOK)
}
