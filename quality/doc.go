// Package quality provides full-reference image quality metrics: mean
// squared error, peak signal-to-noise ratio and the structural similarity
// index.
//
// Images are gonum matrices with samples nominally in [0, 1]. PSNR uses a
// peak of 1. SSIM keeps the stabilizing constants of the 8-bit formulation,
// C1 = (0.01·255)² and C2 = (0.03·255)², so that scores stay comparable with
// tools that report SSIM on normalized input with those defaults.
package quality
