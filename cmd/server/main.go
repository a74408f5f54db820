package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/config"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/events/kafka"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/logger"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
	storememory "github.com/sheikh-saqib/statement-ledger-engine/internal/storage/memory"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/storage/postgres"
	usersmemory "github.com/sheikh-saqib/statement-ledger-engine/internal/users/memory"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	var store interfaces.StatementStore = storememory.NewMemoryStatementStore()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.WithError(err).Fatal("failed to reach database")
		}
		store = postgres.NewPostgresStatementStore(db)
		log.Info("using postgres statement store")
	} else {
		log.Info("using in-memory statement store")
	}

	var publisher interfaces.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.WithField("brokers", cfg.Kafka.Brokers).Info("publishing statement events to kafka")
	}

	// The users collaborator is external to the ledger; the demo binary
	// wires the in-memory one and exposes a seed endpoint.
	users := usersmemory.NewMemoryUsersService()

	ledgerService := ledger.NewLedger(store, users, publisher, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		user := users.Seed(req.Name, req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	})

	mux.HandleFunc("/statements", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			UserID      string          `json:"user_id"`
			Type        string          `json:"type"`
			Amount      decimal.Decimal `json:"amount"`
			Description string          `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		opType, err := models.ParseOperationType(req.Type)
		if err != nil {
			writeError(w, err)
			return
		}

		statement, err := ledgerService.CreateStatement(r.Context(), req.UserID, opType, req.Amount, req.Description)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(statement)
	})

	mux.HandleFunc("/balance", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "user_id is a mandatory field", http.StatusBadRequest)
			return
		}
		withHistory := r.URL.Query().Get("with_history") == "true"

		report, err := ledgerService.GetBalance(r.Context(), userID, withHistory)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})

	mux.HandleFunc("/statements/operation", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		userID := r.URL.Query().Get("user_id")
		statementID := r.URL.Query().Get("statement_id")
		if userID == "" || statementID == "" {
			http.Error(w, "user_id and statement_id are mandatory fields", http.StatusBadRequest)
			return
		}

		statement, err := ledgerService.GetStatementOperation(r.Context(), userID, statementID)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(statement)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
	log.Info("graceful shutdown complete")
}

// writeError maps the ledger's typed outcomes onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrStatementNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidOperationType),
		errors.Is(err, models.ErrInsufficientFunds):
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
