package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supplens/backend/internal/domain"
	"github.com/supplens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog     *usecase.CatalogService
	safety      *usecase.SafetyService
	prices      *usecase.PriceService
	priceSource domain.PriceSource
	cache       domain.CacheRepository
	cacheTTL    time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	safety *usecase.SafetyService,
	prices *usecase.PriceService,
	priceSource domain.PriceSource,
	cache domain.CacheRepository,
	cacheTTL time.Duration,
) *Handler {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Handler{
		catalog:     catalog,
		safety:      safety,
		prices:      prices,
		priceSource: priceSource,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "supplens-backend",
		"version": "1.0.0",
	})
}

// ScoreCatalogRequest carries the resolved catalog the content-query layer
// supplies: products with ingredient lines, the ingredient table, and
// (optionally) raw price records for the relative axes.
type ScoreCatalogRequest struct {
	Products     []domain.Product     `json:"products" binding:"required"`
	Ingredients  []domain.Ingredient  `json:"ingredients" binding:"required"`
	PriceRecords []domain.PriceRecord `json:"priceRecords"`
}

// ScoreCatalog runs the two-phase scoring batch over the supplied catalog.
func (h *Handler) ScoreCatalog(c *gin.Context) {
	var req ScoreCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	results := h.catalog.ScoreCatalog(req.Products, req.Ingredients, req.PriceRecords)
	c.JSON(http.StatusOK, gin.H{
		"products": results,
		"count":    len(results),
	})
}

// SafetyCheckRequest carries a health profile as comma-separated tag strings
// plus the ingredient table to evaluate against.
type SafetyCheckRequest struct {
	Conditions    string              `json:"conditions"`
	Medications   string              `json:"medications"`
	Allergies     string              `json:"allergies"`
	Ingredients   []domain.Ingredient `json:"ingredients" binding:"required"`
	IngredientIDs []string            `json:"ingredientIds"`
}

// CheckSafety evaluates a health profile against ingredient
// contraindications, optionally restricted to a subset of ingredient IDs.
func (h *Handler) CheckSafety(c *gin.Context) {
	var req SafetyCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	profile := domain.HealthProfile{
		Conditions:  splitTags(req.Conditions),
		Medications: splitTags(req.Medications),
		Allergies:   splitTags(req.Allergies),
	}

	report := h.safety.CheckSubset(profile, req.Ingredients, req.IngredientIDs)
	c.JSON(http.StatusOK, report)
}

// ComparePricesRequest carries raw price records for deduplication.
type ComparePricesRequest struct {
	Records []domain.PriceRecord `json:"records" binding:"required"`
}

// ComparePrices deduplicates the supplied price records into canonical
// comparison groups.
func (h *Handler) ComparePrices(c *gin.Context) {
	var req ComparePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": h.prices.Compare(req.Records)})
}

// GetPrices fetches price records for a canonical code from the external
// feed (cache first), deduplicates them and returns the comparison.
func (h *Handler) GetPrices(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "canonical code is required"})
		return
	}

	cacheKey := "prices:" + code
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil && cached != nil {
		c.JSON(http.StatusOK, gin.H{"comparisons": cached, "source": "cache"})
		return
	}

	records, err := h.priceSource.FetchPrices(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPriceRecords):
			c.JSON(http.StatusNotFound, gin.H{"error": "no price records for code " + code})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "price feed unavailable"})
		}
		return
	}

	comparisons := h.prices.Compare(records)
	if err := h.cache.Set(c.Request.Context(), cacheKey, comparisons, h.cacheTTL); err != nil {
		// Serving the result matters more than memoizing it.
		log.Printf("[PRICES] cache write failed for %s: %v", code, err)
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons, "source": "feed"})
}

// splitTags splits a comma-separated tag string, dropping empty entries.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
