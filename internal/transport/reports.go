package transport

import (
	"fmt"
	"net/http"

	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/middleware"
	"amalkitchen-be/internal/report"
	"amalkitchen-be/internal/utils"

	"go.uber.org/zap"
)

// Dashboard serves the per-status counts and revenue buckets. Managers
// are scoped to their branch; a failed read degrades to an empty summary
// so the dashboard renders its empty state instead of an error page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	branch := r.URL.Query().Get("branch")
	if u, _ := middleware.CurrentUser(r.Context()); u != nil && u.Role == identity.RoleManager {
		branch = u.Branch
	}

	summary, err := h.reports.Dashboard(r.Context(), branch)
	if err != nil {
		logger.FromCtx(r.Context()).Error("dashboard read failed", zap.Error(err))
		utils.WriteJSON(w, report.Summary{Branch: branch}, http.StatusOK)
		return
	}
	utils.WriteJSON(w, summary, http.StatusOK)
}

// PrepSheet serves the kitchen planning aggregation. The format query
// selects JSON (default), an XLSX workbook, or a printable PDF.
func (h *Handler) PrepSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.reports.PrepSheet(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("prep sheet read failed", zap.Error(err))
		utils.WriteJSON(w, report.PrepSheet{}, http.StatusOK)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		utils.WriteJSON(w, sheet, http.StatusOK)
	case "xlsx":
		data, err := report.ExportXLSX(sheet)
		if err != nil {
			utils.WriteJSONError(w, "failed to build spreadsheet", http.StatusInternalServerError)
			return
		}
		serveAttachment(w, data,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"prep-sheet.xlsx")
	case "pdf":
		data, err := report.ExportPDF(sheet)
		if err != nil {
			utils.WriteJSONError(w, "failed to build document", http.StatusInternalServerError)
			return
		}
		serveAttachment(w, data, "application/pdf", "prep-sheet.pdf")
	default:
		utils.WriteJSONError(w, "unknown format", http.StatusBadRequest)
	}
}

func serveAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
