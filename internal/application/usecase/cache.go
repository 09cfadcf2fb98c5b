package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/po-classifier/internal/application/dto"
)

// ResultCache memoiza resultados por la tupla completa
// (descripción, proveedor, modelo, temperatura). Sin expiración ni límite:
// vive lo mismo que el proceso. Seguro para handlers concurrentes.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewResultCache crea un cache vacío.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string]string)}
}

// Get devuelve el resultado guardado para key.
func (c *ResultCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set guarda el resultado para key.
func (c *ResultCache) Set(key, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
}

// Len número de entradas.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CachedClassifier envuelve ClassificationUseCase con un ResultCache propiedad del llamador.
type CachedClassifier struct {
	uc    *ClassificationUseCase
	cache *ResultCache
}

// NewCachedClassifier construye el clasificador con memoización.
func NewCachedClassifier(uc *ClassificationUseCase, cache *ResultCache) *CachedClassifier {
	return &CachedClassifier{uc: uc, cache: cache}
}

// Outcome resultado de CachedClassifier.Classify.
type Outcome struct {
	Result      string
	Key         string // clave de la tupla resuelta
	Cached      bool
	Model       string
	Temperature float64
}

// Classify devuelve el resultado memoizado si la tupla ya se clasificó;
// si no, hace una llamada y guarda el resultado. Los errores no se guardan.
func (c *CachedClassifier) Classify(ctx context.Context, in dto.ClassifyRequest) (Outcome, error) {
	req := c.uc.Resolve(in)
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Key: req.Key(), Model: req.Model, Temperature: req.Temperature}
	if v, ok := c.cache.Get(out.Key); ok {
		out.Result = v
		out.Cached = true
		return out, nil
	}

	result, err := c.uc.ClassifyRequest(ctx, req)
	if err != nil {
		return Outcome{}, err
	}
	c.cache.Set(out.Key, result)
	out.Result = result
	return out, nil
}
