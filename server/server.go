package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/storage"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server exposes recorded analysis runs over HTTP.
type Server struct {
	baseLogger *zap.SugaredLogger
	store      storage.Storage
}

// New creates a new run API server
func New(logger *zap.SugaredLogger, store storage.Storage) Server {
	return Server{
		baseLogger: logger,
		store:      store,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, msg string) error {
	return writeResponse(w, status, GenericResponse{
		Error: msg,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Router builds the http routes.
func (s Server) Router() *mux.Router {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/runs", s.ListRuns()).Methods(http.MethodGet)
	v1.HandleFunc("/runs/{id}", s.GetRun()).Methods(http.MethodGet)
	v1.HandleFunc("/summary", s.GetSummary()).Methods(http.MethodGet)

	return rtr
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(s.Router())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// ListRuns lists recorded analysis runs, most recent first
func (s Server) ListRuns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		runs, err := s.store.ListRuns(r.Context())
		if err != nil {
			log.Error("failed to list runs", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to list runs")
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{
			Response: runs,
		})
	}
}

// GetRun returns one run with its per-category breakdown
func (s Server) GetRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		id := mux.Vars(r)["id"]

		run, err := s.store.GetRun(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeErrorResponse(w, http.StatusNotFound, "run not found")
				return
			}
			log.Error("failed to get run", zap.String("id", id), zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to get run")
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{
			Response: run,
		})
	}
}

// GetSummary aggregates across all recorded runs
func (s Server) GetSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		summary, err := s.store.GetSummary(r.Context())
		if err != nil {
			log.Error("failed to get summary", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, "failed to get summary")
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{
			Response: summary,
		})
	}
}
