package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// maxUploadBytes bounds return photos and bulk catalog files.
const maxUploadBytes = 16 << 20

type IntakeHandler struct {
	auth     service.AuthFlow
	returns  service.ReturnsFlow
	retailer service.RetailerFlow
}

func RegisterIntake(
	mux *http.ServeMux,
	auth service.AuthFlow,
	returns service.ReturnsFlow,
	retailer service.RetailerFlow,
) {
	h := IntakeHandler{auth, returns, retailer}
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/signup", h.PostSignup)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
	mux.HandleFunc("POST /v1/survey", h.PostSurvey)
	mux.HandleFunc("POST /v1/returns", h.PostReturn)
	mux.HandleFunc("GET /v1/returns", h.GetReturns)
	mux.HandleFunc("POST /v1/retailers/{retailerID}/bulk-upload", h.PostBulkUpload)
}

func (h IntakeHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PostLogin"
	log := slog.With("op", op)

	var body struct {
		UserID string `json:"user_id"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	state, err := h.auth.Login(r.Context(), body.UserID)
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("user logged in", "userID", state.UserID, "role", state.Role)
	writeJSON(w, log, http.StatusOK, toStateView(state))
}

func (h IntakeHandler) PostSignup(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PostSignup"
	log := slog.With("op", op)

	var body struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	state, err := h.auth.Signup(r.Context(), body.Name)
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, toStateView(state))
}

func (h IntakeHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PostLogout"
	log := slog.With("op", op)

	if err := h.auth.Logout(); err != nil {
		writeErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h IntakeHandler) PostSurvey(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PostSurvey"
	log := slog.With("op", op)

	var body struct {
		UserID string          `json:"user_id"`
		Prefs  map[string]bool `json:"prefs"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	if err := h.auth.SubmitSurvey(r.Context(), body.UserID, body.Prefs); err != nil {
		writeErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostReturn accepts the claim as a multipart form so the photo proof
// streams through without buffering the whole file in JSON.
func (h IntakeHandler) PostReturn(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PostReturn"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	req, err := h.returns.Submit(r.Context(), port.ReturnSubmission{
		UserID:    r.FormValue("user_id"),
		OrderID:   r.FormValue("order_id"),
		ProductID: r.FormValue("product_id"),
		Reason:    r.FormValue("reason"),
		Condition: r.FormValue("condition"),
		ImageName: header.Filename,
		Image:     file,
	})
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("return submitted", "requestID", req.RequestID)
	writeJSON(w, log, http.StatusCreated, toReturnViews([]domain.ReturnRequest{req})[0])
}

func (h IntakeHandler) GetReturns(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.GetReturns"
	log := slog.With("op", op)

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rs, err := h.returns.UserReturns(r.Context(), userID)
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toReturnViews(rs))
}

func (h IntakeHandler) PostBulkUpload(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PostBulkUpload"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "catalog file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := h.retailer.BulkUpload(
		r.Context(), r.PathValue("retailerID"), header.Filename, file,
	)
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("bulk upload forwarded",
		"retailerID", r.PathValue("retailerID"),
		"totalRows", report.TotalRows,
		"added", report.AddedCount,
		"errors", report.ErrorCount,
	)
	writeJSON(w, log, http.StatusOK, BulkUploadReport{
		TotalRows:  report.TotalRows,
		AddedCount: report.AddedCount,
		ErrorCount: report.ErrorCount,
		Errors:     report.Errors,
	})
}

func toStateView(s domain.SessionState) SessionState {
	return SessionState{UserID: s.UserID, RetailerID: s.RetailerID, Role: s.Role}
}
