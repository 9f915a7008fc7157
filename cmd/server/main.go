// Package main provides the HTTP server for the financial health engine.
// It exposes the identity and financial-data submission flow, the derived
// scorecards and radar data, and the bulk CSV onboarding endpoints.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"financial-health-engine/internal/config"
	"financial-health-engine/internal/models"
	"financial-health-engine/internal/services/database"
	"financial-health-engine/internal/services/ratio"
	"financial-health-engine/internal/services/reconciler"
	s3service "financial-health-engine/internal/services/s3"
	sesService "financial-health-engine/internal/services/ses"
	"financial-health-engine/internal/utils"
)

// Server holds all dependencies
type Server struct {
	db         *database.DB
	profiles   *database.ProfileRepository
	reconciler *reconciler.Reconciler
	s3         *s3service.Service
	ses        *sesService.Service
	config     *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// identityRequest is the first-visit submission: name, phone, email.
type identityRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// financialsRequest carries the six raw figures. Fields are untyped because
// the HTML form submits amounts as strings; toAmount coerces either shape
// with the documented unparseable-becomes-zero fallback.
type financialsRequest struct {
	NetMonthlyIncome   interface{} `json:"net_monthly_income"`
	NetMonthlyExpenses interface{} `json:"net_monthly_expenses"`
	NetMonthlyEMIs     interface{} `json:"net_monthly_emis"`
	TotalAssets        interface{} `json:"total_assets"`
	TotalLoans         interface{} `json:"total_loans"`
	TotalLiquidAssets  interface{} `json:"total_liquid_assets"`
}

// presignedURLRequest asks for an S3 upload slot for a bulk CSV.
type presignedURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()
	logger := utils.GetLogger()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	profiles := database.NewProfileRepository(db)

	server := &Server{
		db:         db,
		profiles:   profiles,
		reconciler: reconciler.New(profiles),
		config:     cfg,
	}

	// AWS-backed services are optional locally; endpoints that need them
	// answer 503 when they are absent.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if s3Svc, err := s3service.NewService(ctx); err != nil {
		logger.Warn("S3 service unavailable, bulk upload endpoints disabled", zap.Error(err))
	} else {
		server.s3 = s3Svc
	}
	if sesSvc, err := sesService.NewService(ctx); err != nil {
		logger.Warn("SES service unavailable, report endpoint disabled", zap.Error(err))
	} else {
		server.ses = sesSvc
	}
	cancel()

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", server.healthHandler)
	mux.HandleFunc("GET /api/health", server.healthHandler)

	// Profile lifecycle
	mux.HandleFunc("POST /api/profiles", server.createProfileHandler)
	mux.HandleFunc("GET /api/profiles", server.listProfilesHandler)
	mux.HandleFunc("GET /api/profiles/{id}", server.getProfileHandler)
	mux.HandleFunc("PUT /api/profiles/{id}/financials", server.updateFinancialsHandler)

	// Derived views
	mux.HandleFunc("GET /api/profiles/{id}/scorecards", server.scorecardsHandler)
	mux.HandleFunc("GET /api/profiles/{id}/radar", server.radarHandler)

	// Bulk onboarding and reports
	mux.HandleFunc("POST /api/presigned-url", server.presignedURLHandler)
	mux.HandleFunc("POST /api/profiles/{id}/report", server.reportHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Info("Starting financial health engine",
		zap.String("addr", addr),
		zap.String("stage", cfg.Stage),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if err := s.db.HealthCheck(r.Context()); err == nil {
		dbStatus = "connected"
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Financial Health Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	})
}

// createProfileHandler resolves the submitted identity to a profile id,
// creating a profile on first contact. Returning users get their existing
// profile back with identity fields untouched.
func (s *Server) createProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	identity := models.Identity{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := models.ValidateIdentity(&identity); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	id, err := s.reconciler.ResolveOrCreate(r.Context(), identity)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			// Lost a concurrent first-time signup; the winner's profile
			// exists now, so the client should simply resubmit.
			writeJSON(w, http.StatusConflict, Response{Success: false, Error: "Profile creation collided, please retry"})
			return
		}
		s.storeError(w, err, "Failed to resolve profile")
		return
	}

	profile, err := s.reconciler.Lookup(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

// updateFinancialsHandler replaces the profile's raw figures wholesale and
// recomputes the six ratios in the same write.
func (s *Server) updateFinancialsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req financialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	inputs := models.FinancialInputs{
		NetMonthlyIncome:   toAmount(req.NetMonthlyIncome),
		NetMonthlyExpenses: toAmount(req.NetMonthlyExpenses),
		NetMonthlyEMIs:     toAmount(req.NetMonthlyEMIs),
		TotalAssets:        toAmount(req.TotalAssets),
		TotalLoans:         toAmount(req.TotalLoans),
		TotalLiquidAssets:  toAmount(req.TotalLiquidAssets),
	}
	if err := models.ValidateInputs(&inputs); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	profile, err := s.reconciler.ApplyFinancialUpdate(r.Context(), id, inputs)
	if err != nil {
		s.storeError(w, err, "Failed to update financial data")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Financial data updated successfully",
		Data:    profile,
	})
}

func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	profile, err := s.reconciler.Lookup(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

func (s *Server) listProfilesHandler(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.ListRecent(r.Context(), 100)
	if err != nil {
		s.storeError(w, err, "Failed to list profiles")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: profiles})
}

// scorecardsHandler returns the six display cards with guidance text for a
// profile's current ratios.
func (s *Server) scorecardsHandler(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profileWithFinancials(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ratio.Scorecards(*profile.Ratios),
	})
}

// radarHandler returns the chart-normalized view of a profile's ratios.
func (s *Server) radarHandler(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profileWithFinancials(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ratio.RadarPoints(*profile.Ratios),
	})
}

func (s *Server) presignedURLHandler(w http.ResponseWriter, r *http.Request) {
	if s.s3 == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Bulk upload is not configured"})
		return
	}

	var req presignedURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Filename == "" {
		req.Filename = "profiles.csv"
	}
	if req.ContentType == "" {
		req.ContentType = "text/csv"
	}

	key := fmt.Sprintf("uploads/%d_%s", time.Now().Unix(), req.Filename)
	result, err := s.s3.GeneratePresignedUploadURL(r.Context(), key, req.ContentType, 60)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to generate upload URL"})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// reportHandler emails the profile its scorecard summary.
func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	if s.ses == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Email reports are not configured"})
		return
	}

	profile, ok := s.profileWithFinancials(w, r)
	if !ok {
		return
	}

	params := sesService.BuildReportParams(profile, s.config.DashboardURL)
	result, err := s.ses.SendScorecardReport(r.Context(), params)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to send report"})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Scorecard report sent",
		Data:    map[string]string{"message_id": result.MessageID},
	})
}

// pathID parses the {id} path segment, answering 400 on garbage.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid profile id"})
		return uuid.Nil, false
	}
	return id, true
}

// profileWithFinancials loads the addressed profile and requires that it has
// received at least one financial-data submission.
func (s *Server) profileWithFinancials(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	id, ok := s.pathID(w, r)
	if !ok {
		return nil, false
	}

	profile, err := s.reconciler.Lookup(r.Context(), id)
	if err != nil {
		s.storeError(w, err, "Failed to load profile")
		return nil, false
	}

	if !profile.HasFinancials() {
		writeJSON(w, http.StatusConflict, Response{Success: false, Error: "No financial data submitted yet"})
		return nil, false
	}

	return profile, true
}

// storeError maps reconciler errors to HTTP responses.
func (s *Server) storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, Response{Success: false, Error: "Profile not found"})
	case errors.Is(err, models.ErrLookup):
		utils.GetLogger().Error("Record store failure", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Error: fallback})
	default:
		utils.GetLogger().Error("Unexpected failure", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: fallback})
	}
}

// toAmount coerces a JSON value into a float64 amount. Strings go through
// ratio.ParseAmount; anything else unparseable becomes 0.
func toAmount(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return ratio.ParseAmount(t)
	case json.Number:
		return ratio.ParseAmount(t.String())
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
