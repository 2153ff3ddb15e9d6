package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"inventory-admin/models"
	"inventory-admin/utils"
)

const purchasesReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Purchases</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #222; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  .generated { color: #777; font-size: 11px; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th, td { border-bottom: 1px solid #ddd; padding: 6px 8px; text-align: left; }
  th { background: #f4f4f4; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; border-top: 2px solid #444; }
</style>
</head>
<body>
<h1>Purchases</h1>
<div class="generated">Generated {{.GeneratedAt}}</div>
<table>
  <thead>
    <tr><th>Purchase</th><th>Supplier</th><th>Date</th><th class="num">Products</th><th class="num">Total</th></tr>
  </thead>
  <tbody>
  {{- range .Rows}}
    <tr><td>{{.ShortID}}</td><td>{{.Supplier}}</td><td>{{.Date}}</td><td class="num">{{.Lines}}</td><td class="num">{{.Total}}</td></tr>
  {{- else}}
    <tr><td colspan="5">No purchases yet</td></tr>
  {{- end}}
  </tbody>
  <tfoot>
    <tr><td colspan="4">Total</td><td class="num">{{.GrandTotal}}</td></tr>
  </tfoot>
</table>
</body>
</html>
`

var purchasesReport = template.Must(template.New("purchases").Parse(purchasesReportTemplate))

type reportRow struct {
	ShortID  string
	Supplier string
	Date     string
	Lines    int
	Total    string
}

type reportData struct {
	GeneratedAt string
	Rows        []reportRow
	GrandTotal  string
}

// PDFRenderer turns an HTML document into PDF bytes
type PDFRenderer func(ctx context.Context, html string) ([]byte, error)

// ReportService renders the purchases report
type ReportService struct {
	api      InventoryAPI
	renderer PDFRenderer
	timeout  time.Duration
	now      func() time.Time
}

// NewReportService creates a ReportService that prints PDFs with a headless
// Chrome found at chromePath or one of the usual install locations.
func NewReportService(api InventoryAPI, chromePath string, timeout time.Duration) *ReportService {
	return &ReportService{
		api:      api,
		renderer: ChromeRenderer(chromePath),
		timeout:  timeout,
		now:      time.Now,
	}
}

// WithRenderer replaces the PDF renderer
func (s *ReportService) WithRenderer(r PDFRenderer) *ReportService {
	s.renderer = r
	return s
}

// Ensure ReportService implements ReportServiceInterface
var _ ReportServiceInterface = (*ReportService)(nil)

// RenderPurchasesHTML renders every purchase, newest first
func (s *ReportService) RenderPurchasesHTML(ctx context.Context, sess models.Session) (string, error) {
	purchases, err := s.api.ListPurchases(ctx, sess.Token)
	if err != nil {
		return "", err
	}
	return renderPurchases(purchases, s.now())
}

func renderPurchases(purchases []models.Purchase, now time.Time) (string, error) {
	sorted := make([]models.Purchase, len(purchases))
	copy(sorted, purchases)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, _ := sorted[i].EffectiveDate()
		dj, _ := sorted[j].EffectiveDate()
		return di.After(dj)
	})

	data := reportData{GeneratedAt: now.Format("2006-01-02 15:04")}
	grand := decimal.Zero
	for _, p := range sorted {
		row := reportRow{
			ShortID:  p.ShortID(),
			Supplier: p.Supplier.Name,
			Date:     "-",
			Lines:    len(p.Products),
			Total:    utils.FormatMoney(p.TotalAmount),
		}
		if row.Supplier == "" {
			row.Supplier = p.Supplier.ID
		}
		if d, ok := p.EffectiveDate(); ok {
			row.Date = d.Format("2006-01-02")
		}
		data.Rows = append(data.Rows, row)
		grand = grand.Add(p.TotalAmount)
	}
	data.GrandTotal = utils.FormatMoney(grand)

	var buf bytes.Buffer
	if err := purchasesReport.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render purchases report: %w", err)
	}
	return buf.String(), nil
}

// GeneratePurchasesPDF renders the report and prints it to PDF
func (s *ReportService) GeneratePurchasesPDF(ctx context.Context, sess models.Session) ([]byte, error) {
	html, err := s.RenderPurchasesHTML(ctx, sess)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	pdf, err := s.renderer(ctx, html)
	if err != nil {
		log.Error().Err(err).Msg("❌ GeneratePurchasesPDF: render failed")
		return nil, err
	}
	log.Info().Int("bytes", len(pdf)).Dur("elapsed", time.Since(start)).Msg("✅ GeneratePurchasesPDF: report printed")
	return pdf, nil
}

// detectChromePath returns configured if it exists, otherwise the first
// Chrome/Chromium found in the common install paths. Empty means let
// chromedp search on its own.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Warn().Str("path", configured).Msg("⚠️  CHROME_PATH not found, probing default locations")
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ChromeRenderer prints HTML to an A4 PDF using headless Chrome
func ChromeRenderer(chromePath string) PDFRenderer {
	return func(ctx context.Context, html string) ([]byte, error) {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox, // containers
		)
		if path := detectChromePath(chromePath); path != "" {
			opts = append(opts, chromedp.ExecPath(path))
		}

		allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
		chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
		defer chromedpCancel()

		var pdfBuf []byte
		err := chromedp.Run(chromedpCtx,
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				tree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err
				}
				return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
			}),
			chromedp.WaitReady("body"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				var err error
				// A4 in inches
				pdfBuf, _, err = page.PrintToPDF().
					WithPrintBackground(true).
					WithPaperWidth(8.27).
					WithPaperHeight(11.69).
					WithMarginTop(0.4).
					WithMarginBottom(0.4).
					WithMarginLeft(0.4).
					WithMarginRight(0.4).
					Do(ctx)
				return err
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to generate PDF: %w", err)
		}
		return pdfBuf, nil
	}
}
