package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"inventory-admin/service"
)

// ReportController handles the purchases report
type ReportController struct {
	reports service.ReportServiceInterface
}

// NewReportController creates a new ReportController
func NewReportController(reports service.ReportServiceInterface) *ReportController {
	return &ReportController{reports: reports}
}

// PurchasesHTML handles GET /admin/purchases/report.html
func (c *ReportController) PurchasesHTML(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	html, err := c.reports.RenderPurchasesHTML(r.Context(), sess)
	if err != nil {
		writeError(w, "PurchasesReportHTML", err, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Error().Err(err).Msg("❌ PurchasesReportHTML: error writing response")
	}
}

// PurchasesPDF handles GET /admin/purchases/report
func (c *ReportController) PurchasesPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := mustSession(w, r)
	if !ok {
		return
	}
	log.Info().Msg("📄 PurchasesReportPDF: generating")
	pdf, err := c.reports.GeneratePurchasesPDF(r.Context(), sess)
	if err != nil {
		writeError(w, "PurchasesReportPDF", err, nil)
		return
	}

	filename := fmt.Sprintf("purchases_%s.pdf", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Msg("❌ PurchasesReportPDF: error writing response")
	}
}
