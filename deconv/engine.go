package deconv

import (
	"gonum.org/v1/gonum/mat"
)

// Engine caches the most recent PSF estimate. Deconvolve estimates on a
// cache miss and reuses the cached PSF otherwise; the cache lives until
// Reset or the next EstimatePSF.
//
// An Engine is not safe for concurrent use. Use one engine per goroutine.
type Engine struct {
	cfg    Config
	cached *Estimate
}

// NewEngine returns an engine with an empty cache.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// EstimatePSF estimates the PSF of img and replaces the cached estimate.
// The cache is left untouched on error. The returned estimate does not
// share memory with the cache.
func (e *Engine) EstimatePSF(img mat.Matrix) (Estimate, error) {
	est, err := EstimatePSF(img, e.cfg)
	if err != nil {
		return Estimate{}, err
	}
	cached := est.clone()
	e.cached = &cached
	return est, nil
}

// Deconvolve restores img with the cached PSF, estimating it first if the
// cache is empty.
func (e *Engine) Deconvolve(img mat.Matrix) (Result, error) {
	if e.cached == nil {
		if _, err := e.EstimatePSF(img); err != nil {
			return Result{}, err
		}
	}
	return Deconvolve(img, e.cached.PSF, e.cfg)
}

// Cached returns a copy of the cached estimate and whether one is present.
func (e *Engine) Cached() (Estimate, bool) {
	if e.cached == nil {
		return Estimate{}, false
	}
	return e.cached.clone(), true
}

// Reset clears the cached estimate.
func (e *Engine) Reset() {
	e.cached = nil
}
