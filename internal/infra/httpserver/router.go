package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/glowmance/glowmance-backend/internal/application/analysis"
	appinci "github.com/glowmance/glowmance-backend/internal/application/inci"
	appproducts "github.com/glowmance/glowmance-backend/internal/application/products"
	domain "github.com/glowmance/glowmance-backend/internal/domain/analysis"
	"github.com/glowmance/glowmance-backend/internal/domain/faults"
	"github.com/glowmance/glowmance-backend/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	productsSvc *appproducts.Service
	inciSvc     *appinci.Service
	faultsRepo  faults.Repository
}

// Deps untuk router; checkers dipakai health endpoint.
type Deps struct {
	AnalysisSvc *appanalysis.Service
	ProductsSvc *appproducts.Service
	InciSvc     *appinci.Service
	FaultsRepo  faults.Repository
	JWTSecret   []byte
	Checkers    map[string]middleware.HealthChecker
}

func NewRouter(d Deps) http.Handler {
	r := &Router{
		analysisSvc: d.AnalysisSvc,
		productsSvc: d.ProductsSvc,
		inciSvc:     d.InciSvc,
		faultsRepo:  d.FaultsRepo,
	}

	mux := chi.NewRouter()

	// mobile client jalan dari WebView/emulator, origin bebas
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(60, 2))

	mux.Get("/health", middleware.HealthHandler(d.Checkers))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Use(middleware.JWTAuth(d.JWTSecret))

		rt.Post("/analysis", r.wrap(r.handleAnalyze))
		rt.Get("/analysis/history", r.wrap(r.handleHistory))
		rt.Get("/analysis/stats", r.wrap(r.handleStats))
		rt.Get("/analysis/{id}", r.wrap(r.handleGetAnalysis))
		rt.Delete("/analysis/{id}", r.wrap(r.handleDeleteAnalysis))

		rt.Get("/products", r.wrap(r.handleListProducts))
		rt.Get("/products/skin-type/{type}", r.wrap(r.handleProductsBySkinType))
		rt.Get("/products/condition/{condition}", r.wrap(r.handleProductsByCondition))
		rt.Post("/products/reload", r.wrap(r.handleReloadProducts))

		rt.Post("/inci/ingredients", r.wrap(r.handleInciLookup))

		rt.Get("/monitoring/faults", r.wrap(r.handleListFaults))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap translate error dari handler ke status code.
// Input error -> 4xx, not found -> 404, sisanya 500.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, appanalysis.ErrImageRequired),
				errors.Is(err, appinci.ErrProductRequired):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				writeError(w, http.StatusNotFound, "not found")
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// POST /v1/analysis
// Multipart field "image": satu foto wajah, max 5MB.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())

	if err := req.ParseMultipartForm(middleware.MaxImageSize + 1024); err != nil {
		return appanalysis.ErrImageRequired
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		return appanalysis.ErrImageRequired
	}
	defer file.Close()

	if err := middleware.ValidateImageUpload(header.Filename, header.Size); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	image, err := io.ReadAll(io.LimitReader(file, middleware.MaxImageSize))
	if err != nil {
		return err
	}

	result, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		UserID:   userID,
		Image:    image,
		Filename: header.Filename,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": result})
}

// GET /v1/analysis/history
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	history, err := r.analysisSvc.History(req.Context(), userID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, history)
}

// GET /v1/analysis/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	stats, err := r.analysisSvc.GetStats(req.Context(), userID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": stats})
}

// GET /v1/analysis/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	a, err := r.analysisSvc.Get(req.Context(), id, userID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": a})
}

// DELETE /v1/analysis/{id}
func (r *Router) handleDeleteAnalysis(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	if err := r.analysisSvc.Delete(req.Context(), id, userID); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Analysis deleted successfully",
	})
}

// GET /v1/products?limit=50
func (r *Router) handleListProducts(w http.ResponseWriter, req *http.Request) error {
	limit := queryLimit(req, 50, 100)
	list, err := r.productsSvc.ListAll(req.Context(), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

// GET /v1/products/skin-type/{type}?limit=3
func (r *Router) handleProductsBySkinType(w http.ResponseWriter, req *http.Request) error {
	limit := queryLimit(req, appproducts.DefaultLimit, 100)
	list, err := r.productsSvc.ListBySkinType(req.Context(), chi.URLParam(req, "type"), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

// GET /v1/products/condition/{condition}?limit=3
func (r *Router) handleProductsByCondition(w http.ResponseWriter, req *http.Request) error {
	limit := queryLimit(req, appproducts.DefaultLimit, 100)
	list, err := r.productsSvc.ListByCondition(req.Context(), chi.URLParam(req, "condition"), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

// POST /v1/products/reload
func (r *Router) handleReloadProducts(w http.ResponseWriter, req *http.Request) error {
	if err := r.productsSvc.ReloadCatalog(req.Context()); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "product catalog reloaded",
	})
}

// POST /v1/inci/ingredients
// Body: {"product": "CeraVe Moisturizing Cream"}
func (r *Router) handleInciLookup(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Product string `json:"product"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return appinci.ErrProductRequired
	}

	info, err := r.inciSvc.Lookup(req.Context(), body.Product)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": info})
}

// GET /v1/monitoring/faults?limit=20
func (r *Router) handleListFaults(w http.ResponseWriter, req *http.Request) error {
	limit := queryLimit(req, 20, 100)
	list, err := r.faultsRepo.ListRecent(req.Context(), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

func queryLimit(req *http.Request, def, max int) int {
	n, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	return middleware.ValidateLimit(n, def, max)
}
