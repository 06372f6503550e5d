package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/JulesSitpach/tradenavigatorpro/internal/calc"
	"github.com/JulesSitpach/tradenavigatorpro/internal/history"
	"github.com/JulesSitpach/tradenavigatorpro/internal/landedcost"
	"github.com/JulesSitpach/tradenavigatorpro/internal/pricing"
	"github.com/JulesSitpach/tradenavigatorpro/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	auth     *authService
	history  *history.Store
	cache    store.ResultStore
	cacheTTL time.Duration
	log      zerolog.Logger
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCostCalculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	in, err := landedcost.ParseInput(body)
	if err != nil {
		var verr *calc.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	writeJSON(w, http.StatusOK, landedcost.Calculate(in, time.Now().UTC()))
}

func (s *server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("price optimization panicked")
			writeError(w, http.StatusInternalServerError, "An error occurred during price optimization")
		}
	}()

	var req pricing.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	ctx := r.Context()
	key := store.Key(req)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("result cache lookup failed")
	} else if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := pricing.Optimize(req)
	if err != nil {
		var verr *calc.ValidationError
		if errors.As(err, &verr) {
			s.log.Debug().Str("reason", verr.Message).Msg("rejected optimization request")
			writeError(w, http.StatusBadRequest, "Invalid request parameters")
			return
		}
		s.log.Error().Err(err).Msg("price optimization failed")
		writeError(w, http.StatusInternalServerError, "An error occurred during price optimization")
		return
	}

	// Cache and history are best-effort side channels: the computed result
	// is returned even when they fail.
	if err := s.cache.Put(ctx, key, result, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache optimization result")
	}
	if err := s.history.Record(ctx, userEmail(ctx), result); err != nil {
		s.log.Warn().Err(err).Msg("failed to record optimization run")
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleOptimizationsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	runs, err := s.history.List(r.Context(), query)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list optimization runs")
		writeError(w, http.StatusInternalServerError, "Failed to load optimization history")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	valid, err := s.auth.validateCredentials(creds.Email, creds.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("credential check failed")
		writeError(w, http.StatusInternalServerError, "Authentication error")
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, creds.Email)
	writeJSON(w, http.StatusOK, map[string]string{"email": creds.Email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
