package httptransport

import (
	"net/http"
	"time"

	"opsportal/internal/audit"
	pkgerrors "opsportal/pkg/errors"
)

type auditEntryResponse struct {
	ID        string    `json:"id"`
	UserType  string    `json:"user_type"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

type auditLogResponse struct {
	Empty       bool                 `json:"empty"`
	Placeholder string               `json:"placeholder,omitempty"`
	Entries     []auditEntryResponse `json:"entries"`
}

// handleAuditLog fetches a fresh snapshot from the log store and renders it
// through the viewer. The snapshot is queried per request; the service never
// assumes a local cache reflects the store's true state.
func (h *Handler) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	events, err := h.auditLog.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "audit log query failed", "error", err)
		writeError(w, pkgerrors.New(pkgerrors.CodeInternal, "failed to load audit trail"))
		return
	}

	presentation := audit.Present(events)

	resp := auditLogResponse{
		Empty:       presentation.Empty,
		Placeholder: presentation.Placeholder,
		Entries:     make([]auditEntryResponse, 0, len(presentation.Entries)),
	}
	for _, entry := range presentation.Entries {
		resp.Entries = append(resp.Entries, auditEntryResponse{
			ID:        entry.ID.String(),
			UserType:  string(entry.UserType),
			UserName:  entry.UserName,
			Action:    string(entry.Action),
			Category:  string(entry.Category),
			Timestamp: entry.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
