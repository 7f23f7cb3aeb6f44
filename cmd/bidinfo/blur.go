package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-bid/conv"
)

// parseBlur decodes a blur description of the form box:N or gauss:N:SIGMA.
func parseBlur(desc string) ([]float64, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(desc)), ":")

	switch parts[0] {
	case "box":
		if len(parts) != 2 {
			return nil, fmt.Errorf("blur %q: want box:N", desc)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("blur %q: %w", desc, err)
		}
		return conv.BoxKernel(n)

	case "gauss":
		if len(parts) != 3 {
			return nil, fmt.Errorf("blur %q: want gauss:N:SIGMA", desc)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("blur %q: %w", desc, err)
		}
		sigma, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("blur %q: %w", desc, err)
		}
		return conv.GaussianKernel(n, sigma)

	default:
		return nil, fmt.Errorf("blur %q: unknown kind %q (use box or gauss)", desc, parts[0])
	}
}
