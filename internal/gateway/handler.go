package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fystack/kv-gateway/pkg/common/logger"
	"github.com/fystack/kv-gateway/pkg/events"
	"github.com/fystack/kv-gateway/pkg/kvstore"
	"github.com/go-playground/validator/v10"
)

// greetingHTML is the legacy landing fragment, served verbatim.
const greetingHTML = "<h1>مرحباً بك في مقرر مادة الحوسبة السحابية</h1>"

var validate = validator.New()

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ReadyResponse struct {
	Status string `json:"status"`
}

type KeysResponse struct {
	Keys []string `json:"keys"`
}

type SetKeyRequest struct {
	Key   string `json:"key"   validate:"required"`
	Value string `json:"value" validate:"required"`
}

type SetKeyResponse struct {
	Message string `json:"message"`
}

type GetKeyResponse struct {
	Key string `json:"key"`
	// Value is null when the key has never been written; absence is encoded
	// in the payload, not the status code.
	Value *string `json:"value"`
}

type APIErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type GatewayHTTPHandler struct {
	store          kvstore.Store
	emitter        events.Emitter
	serviceName    string
	requestTimeout time.Duration
}

func NewGatewayHTTPHandler(
	store kvstore.Store,
	emitter events.Emitter,
	serviceName string,
	requestTimeout time.Duration,
) *GatewayHTTPHandler {
	return &GatewayHTTPHandler{
		store:          store,
		emitter:        emitter,
		serviceName:    serviceName,
		requestTimeout: requestTimeout,
	}
}

func (h *GatewayHTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.HandleGreeting)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET /ready", h.HandleReady)
	mux.HandleFunc("GET /keys", h.HandleListKeys)
	mux.HandleFunc("POST /keys", h.HandleSetKey)
	mux.HandleFunc("GET /key/{key_name}", h.HandleGetKey)
}

// storeContext derives the bounded context every store call runs under.
func (h *GatewayHTTPHandler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

func (h *GatewayHTTPHandler) HandleGreeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, greetingHTML)
}

// HandleHealth is a pure liveness probe: it never consults the store, so a
// store outage does not get the process restarted. Use /ready for that.
func (h *GatewayHTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
	})
}

func (h *GatewayHTTPHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Error("Store ping failed", "store", h.store.GetName(), "err", err)
		writeErrorJSON(w, http.StatusServiceUnavailable, "key-value store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
}

func (h *GatewayHTTPHandler) HandleListKeys(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	keys, err := h.store.Keys(ctx, "*")
	if err != nil {
		logger.Error("List keys failed", "store", h.store.GetName(), "err", err)
		writeErrorJSON(w, http.StatusServiceUnavailable, "key-value store unavailable")
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, KeysResponse{Keys: keys})
}

func (h *GatewayHTTPHandler) HandleSetKey(w http.ResponseWriter, r *http.Request) {
	var req SetKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "key and value are required")
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.store.Set(ctx, req.Key, req.Value); err != nil {
		logger.Error("Set key failed", "store", h.store.GetName(), "key", req.Key, "err", err)
		writeErrorJSON(w, http.StatusServiceUnavailable, "key-value store unavailable")
		return
	}

	logger.Debug("Key set", "store", h.store.GetName(), "key", req.Key)

	if err := h.emitter.EmitKeySet(req.Key); err != nil {
		// event delivery is best-effort and never fails the write
		logger.Warn("Key event publish failed", "key", req.Key, "err", err)
	}

	writeJSON(w, http.StatusOK, SetKeyResponse{
		Message: fmt.Sprintf("Key %s set successfully", req.Key),
	})
}

func (h *GatewayHTTPHandler) HandleGetKey(w http.ResponseWriter, r *http.Request) {
	keyName := r.PathValue("key_name")

	ctx, cancel := h.storeContext(r)
	defer cancel()

	response := GetKeyResponse{Key: keyName}

	value, err := h.store.Get(ctx, keyName)
	switch {
	case err == nil:
		response.Value = &value
	case errors.Is(err, kvstore.ErrKeyNotFound):
		// missing key is a 200 with null value, by contract
	default:
		logger.Error("Get key failed", "store", h.store.GetName(), "key", keyName, "err", err)
		writeErrorJSON(w, http.StatusServiceUnavailable, "key-value store unavailable")
		return
	}

	logger.Debug("Key fetched", "store", h.store.GetName(), "key", keyName, "found", response.Value != nil)
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "status", statusCode, "err", err)
	}
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIErrorResponse{
		Status:    "error",
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
}
