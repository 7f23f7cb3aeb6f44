// Package raster converts between Go images and the gonum matrices the
// deconvolution packages operate on, and provides the small set of sample
// transforms callers need around them.
package raster
