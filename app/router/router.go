package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"inventory-admin/app/controller"
)

type Controllers struct {
	Auth      *controller.AuthController
	Inventory *controller.InventoryController
	Draft     *controller.DraftController
	Report    *controller.ReportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs one line per request with the zerolog global logger
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("📥 Request")
	})
}

// New builds the HTTP handler. requestTimeout bounds every request.
func New(controllers *Controllers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", pingHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", controllers.Auth.Login)
		r.Post("/logout", controllers.Auth.Logout)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(controllers.Auth.RequireSession)

		r.Get("/products", controllers.Inventory.ListProducts)
		r.Post("/products", controllers.Inventory.CreateProduct)
		r.Get("/products/{id}/thumbnail", controllers.Inventory.ProductThumbnail)

		r.Get("/suppliers", controllers.Inventory.ListSuppliers)
		r.Post("/suppliers", controllers.Inventory.CreateSupplier)

		r.Get("/purchases", controllers.Inventory.ListPurchases)
		r.Get("/purchases/report", controllers.Report.PurchasesPDF)
		r.Get("/purchases/report.html", controllers.Report.PurchasesHTML)

		r.Route("/purchase-drafts", func(r chi.Router) {
			r.Post("/", controllers.Draft.Start)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.Draft.Get)
				r.Delete("/", controllers.Draft.Cancel)
				r.Post("/reload", controllers.Draft.Reload)
				r.Get("/suppliers", controllers.Draft.Suppliers)
				r.Put("/supplier", controllers.Draft.SelectSupplier)
				r.Get("/products", controllers.Draft.EligibleProducts)
				r.Post("/items/{productId}/toggle", controllers.Draft.Toggle)
				r.Put("/items/{productId}", controllers.Draft.SetQuantity)
				r.Post("/submit", controllers.Draft.Submit)
			})
		})
	})

	return r
}
