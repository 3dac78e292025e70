package sorting

import (
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"go.uber.org/zap"
)

// Request is a sort order as supplied by a caller, before name resolution.
type Request struct {
	Algorithm string `json:"algorithm"`
	Key       string `json:"key"`
	Reverse   bool   `json:"reverse"`
}

// Sorter resolves user supplied names and reports fallbacks to the log.
type Sorter struct {
	logger *zap.Logger
}

func NewSorter(logger *zap.Logger) *Sorter {
	return &Sorter{logger: logger}
}

// Resolve maps req onto known algorithm and key values. Empty names select
// the defaults silently; unknown names select them with a warning.
func (s *Sorter) Resolve(req Request) (Algorithm, Key) {
	algorithm := DefaultAlgorithm
	if req.Algorithm != "" {
		var ok bool
		if algorithm, ok = ParseAlgorithm(req.Algorithm); !ok {
			s.logger.Warn("unsupported sort algorithm, using default",
				zap.String("algorithm", req.Algorithm), zap.String("default", string(DefaultAlgorithm)))
		}
	}

	key := DefaultKey
	if req.Key != "" {
		var ok bool
		if key, ok = ParseKey(req.Key); !ok {
			s.logger.Warn("unsupported sort key, using default",
				zap.String("key", req.Key), zap.String("default", string(DefaultKey)))
		}
	}

	return algorithm, key
}

// Sort resolves req and sorts items, returning the algorithm and key that
// were actually used.
func (s *Sorter) Sort(items []cart.LineItem, req Request) ([]cart.LineItem, Algorithm, Key) {
	algorithm, key := s.Resolve(req)
	s.logger.Debug("sorting cart",
		zap.String("algorithm", string(algorithm)), zap.String("key", string(key)),
		zap.Bool("reverse", req.Reverse), zap.Int("items", len(items)))
	return Sort(items, algorithm, key, req.Reverse), algorithm, key
}
