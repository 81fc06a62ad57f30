// Package resample resizes packed 24-bit RGB images with a selectable
// reconstruction kernel.
//
// Resizing is separable: a weight table is built per axis, a horizontal pass
// writes a float32 intermediate and a vertical pass produces the 8-bit result,
// rounded and clamped to [0, 255]. Kernel support is widened by the reduction
// factor when downsampling so that the result is pre-filtered. Taps outside the
// image are clamped onto the edge samples.
//
// Calls keep no state between them; each pass fans rows out to goroutines.
package resample
