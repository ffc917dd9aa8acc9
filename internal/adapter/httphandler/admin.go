package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

type AdminHandler struct {
	board port.StatsBoard
	admin port.AdminGateway
}

func RegisterAdmin(mux *http.ServeMux, board port.StatsBoard, admin port.AdminGateway) {
	h := AdminHandler{board, admin}
	mux.HandleFunc("GET /v1/admin/stats", h.GetStats)
	mux.HandleFunc("POST /v1/admin/stats/refresh", h.PostStatsRefresh)
	mux.HandleFunc("GET /v1/admin/returns/pending", h.GetPendingReturns)
	mux.HandleFunc("POST /v1/admin/returns/process", h.PostProcessReturn)
	mux.HandleFunc("GET /v1/admin/users", h.GetUsers)
	mux.HandleFunc("POST /v1/admin/users/{userID}/toggle", h.PostToggleUser)
	mux.HandleFunc("GET /v1/admin/tickets", h.GetTickets)
	mux.HandleFunc("POST /v1/admin/tickets/{ticketID}/resolve", h.PostResolveTicket)
	mux.HandleFunc("GET /v1/admin/logs", h.GetLogs)
	mux.HandleFunc("POST /v1/admin/retailers", h.PostRegisterRetailer)
	mux.HandleFunc("POST /v1/admin/retailers/{retailerID}/toggle", h.PostToggleRetailer)
}

// GetStats serves the poller's snapshot. 204 until the first successful
// poll.
func (h AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetStats"
	log := slog.With("op", op)

	stats, ok := h.board.Stats()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, log, http.StatusOK, toStatsView(stats))
}

func (h AdminHandler) PostStatsRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostStatsRefresh"
	log := slog.With("op", op)

	if err := h.board.Refresh(r.Context()); err != nil {
		writeErr(w, log, err)
		return
	}

	stats, _ := h.board.Stats()
	writeJSON(w, log, http.StatusOK, toStatsView(stats))
}

func (h AdminHandler) GetPendingReturns(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetPendingReturns"
	log := slog.With("op", op)

	rs, err := h.admin.PendingReturns(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toReturnViews(rs))
}

func (h AdminHandler) PostProcessReturn(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProcessReturn"
	log := slog.With("op", op)

	var body struct {
		RequestID string `json:"request_id"`
		Approve   bool   `json:"approve"`
		Notes     string `json:"notes"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.RequestID == "" {
		http.Error(w, "request_id is required", http.StatusBadRequest)
		return
	}

	err := h.admin.ProcessReturn(r.Context(), body.RequestID, body.Approve, body.Notes)
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("return processed", "requestID", body.RequestID, "approve", body.Approve)
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) PostToggleUser(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostToggleUser"
	log := slog.With("op", op)

	if err := h.admin.ToggleUser(r.Context(), r.PathValue("userID")); err != nil {
		writeErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetUsers"
	log := slog.With("op", op)

	users, err := h.admin.Users(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}

	views := make([]AccountRecord, len(users))
	for i, u := range users {
		views[i] = AccountRecord{ID: u.ID, Name: u.Name, Role: u.Role, Active: u.Active}
	}
	writeJSON(w, log, http.StatusOK, views)
}

func (h AdminHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetTickets"
	log := slog.With("op", op)

	ts, err := h.admin.SupportTickets(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}

	views := make([]SupportTicket, len(ts))
	for i, tk := range ts {
		views[i] = SupportTicket{
			TicketID: tk.TicketID,
			UserID:   tk.UserID,
			Subject:  tk.Subject,
			Message:  tk.Message,
			Resolved: tk.Resolved,
		}
	}
	writeJSON(w, log, http.StatusOK, views)
}

func (h AdminHandler) PostResolveTicket(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostResolveTicket"
	log := slog.With("op", op)

	ticketID := r.PathValue("ticketID")
	if err := h.admin.ResolveTicket(r.Context(), ticketID); err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("ticket resolved", "ticketID", ticketID)
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetLogs"
	log := slog.With("op", op)

	lines, err := h.admin.Logs(r.Context())
	if err != nil {
		writeErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, map[string][]string{"logs": lines})
}

func (h AdminHandler) PostRegisterRetailer(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostRegisterRetailer"
	log := slog.With("op", op)

	var body struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if !decodeBody(w, log, r, &body) {
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	store, err := h.admin.RegisterRetailer(r.Context(), body.Name, body.Location)
	if err != nil {
		writeErr(w, log, err)
		return
	}

	log.Info("retailer registered", "retailerID", store.RetailerID)
	writeJSON(w, log, http.StatusCreated, Store{
		RetailerID: store.RetailerID,
		Name:       store.Name,
		Location:   store.Location,
	})
}

func (h AdminHandler) PostToggleRetailer(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostToggleRetailer"
	log := slog.With("op", op)

	if err := h.admin.ToggleRetailer(r.Context(), r.PathValue("retailerID")); err != nil {
		writeErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toStatsView(s domain.AdminStats) AdminStats {
	return AdminStats{
		TotalUsers:     s.TotalUsers,
		TotalRetailers: s.TotalRetailers,
		TotalOrders:    s.TotalOrders,
		PendingReturns: s.PendingReturns,
		Revenue:        s.Revenue,
		FetchedAt:      s.FetchedAt,
	}
}
