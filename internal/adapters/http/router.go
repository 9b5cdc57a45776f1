package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/product-advisor/internal/core/domain"
	"github.com/kirillkom/product-advisor/internal/core/ports"
	"github.com/kirillkom/product-advisor/internal/observability/metrics"
)

// catalogStatter is implemented by catalog sources that can summarize
// themselves. The products endpoint includes the summary when available.
type catalogStatter interface {
	Stats() domain.CatalogStats
}

type Router struct {
	processor ports.QueryProcessor
	analyzer  ports.ReviewAnalyzer
	answerer  ports.AnswerSynthesizer
	catalog   ports.CatalogSource
	metrics   *metrics.PipelineMetrics
	service   string
}

func NewRouter(
	processor ports.QueryProcessor,
	analyzer ports.ReviewAnalyzer,
	answerer ports.AnswerSynthesizer,
	catalog ports.CatalogSource,
	m *metrics.PipelineMetrics,
	service string,
) *Router {
	return &Router{
		processor: processor,
		analyzer:  analyzer,
		answerer:  answerer,
		catalog:   catalog,
		metrics:   m,
		service:   service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/query", rt.processQuery)
	mux.HandleFunc("/v1/compare", rt.compareProducts)
	mux.HandleFunc("/v1/products", rt.listProducts)
	mux.HandleFunc("/v1/products/", rt.productSubresource)
	mux.HandleFunc("/v1/cache", rt.digestCache)

	var handler http.Handler = requestIDMiddleware(accessLogMiddleware(mux))
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) processQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	result, err := rt.processor.Process(r.Context(), req.Query)
	rt.metrics.RecordQuery(rt.service, time.Since(start), err)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) compareProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		ProductA string `json:"product_a"`
		ProductB string `json:"product_b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductA == "" || req.ProductB == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_a and product_b are required"})
		return
	}

	a, err := rt.catalog.GetProduct(r.Context(), req.ProductA)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	b, err := rt.catalog.GetProduct(r.Context(), req.ProductB)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	digestA, err := rt.analyzer.Digest(r.Context(), a.ID)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	digestB, err := rt.analyzer.Digest(r.Context(), b.ID)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	comparison := rt.answerer.Compare(r.Context(), *a, digestA, *b, digestB)
	writeJSON(w, http.StatusOK, map[string]any{
		"product_a":  a,
		"product_b":  b,
		"comparison": comparison,
	})
}

func (rt *Router) listProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	products, err := rt.catalog.ListProducts(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	payload := map[string]any{"products": products}
	if statter, ok := rt.catalog.(catalogStatter); ok {
		payload["stats"] = statter.Stats()
	}
	writeJSON(w, http.StatusOK, payload)
}

func (rt *Router) productSubresource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/products/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(segments) == 1 && segments[0] != "":
		rt.getProduct(w, r, segments[0])
	case len(segments) == 2 && segments[1] == "digest":
		rt.getDigest(w, r, segments[0])
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	product, err := rt.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (rt *Router) getDigest(w http.ResponseWriter, r *http.Request, id string) {
	product, err := rt.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	digest, err := rt.analyzer.Digest(r.Context(), product.ID)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": product.ID,
		"digest":     digest,
	})
}

func (rt *Router) digestCache(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cached := rt.analyzer.CachedProducts()
		writeJSON(w, http.StatusOK, map[string]any{
			"cached_products": cached,
			"count":           len(cached),
		})
	case http.MethodDelete:
		rt.analyzer.ResetCache()
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
