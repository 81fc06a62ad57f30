package resample

import "math"

// Filter is a reconstruction kernel evaluated at a signed offset measured in
// source samples.
type Filter interface {
	// Support is the radius beyond which At is zero.
	Support() float64
	// At returns the weight at offset x.
	At(x float64) float64
}

// pointSampler is implemented by filters that must not be widened when
// downsampling.
type pointSampler interface {
	pointSample() bool
}

type boxFilter struct {
	point bool
}

// NewBoxFilter returns a box filter of radius 0.5. It picks the nearest
// sample when upsampling and averages all covered samples when downsampling.
func NewBoxFilter() Filter {
	return boxFilter{}
}

func newPointFilter() Filter {
	return boxFilter{point: true}
}

func (boxFilter) Support() float64 { return 0.5 }

// At is half-open so that a tap falling exactly between two samples is
// counted once.
func (boxFilter) At(x float64) float64 {
	if x >= -0.5 && x < 0.5 {
		return 1
	}
	return 0
}

func (f boxFilter) pointSample() bool { return f.point }

type triangleFilter struct{}

// NewTriangleFilter returns the bilinear (tent) filter.
func NewTriangleFilter() Filter {
	return triangleFilter{}
}

func (triangleFilter) Support() float64 { return 1 }

func (triangleFilter) At(x float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return 1 - x
	}
	return 0
}

// cubicFilter is the Mitchell-Netravali cubic convolution family with
// coefficients precomputed from (B, C).
type cubicFilter struct {
	p0, p2, p3     float64
	q0, q1, q2, q3 float64
}

// NewCubicFilter returns a piecewise cubic filter shaped by B and C as defined
// by Mitchell and Netravali. Common choices are (1/3, 1/3) for Mitchell,
// (0, 0.5) for Catmull-Rom and (1, 0) for the cubic B-spline.
func NewCubicFilter(b, c float64) Filter {
	return cubicFilter{
		p0: (6 - 2*b) / 6,
		p2: (-18 + 12*b + 6*c) / 6,
		p3: (12 - 9*b - 6*c) / 6,
		q0: (8*b + 24*c) / 6,
		q1: (-12*b - 48*c) / 6,
		q2: (6*b + 30*c) / 6,
		q3: (-b - 6*c) / 6,
	}
}

func (cubicFilter) Support() float64 { return 2 }

func (f cubicFilter) At(x float64) float64 {
	x = math.Abs(x)
	if x < 1 {
		return f.p0 + x*x*(f.p2+x*f.p3)
	}
	if x < 2 {
		return f.q0 + x*(f.q1+x*(f.q2+x*f.q3))
	}
	return 0
}

type lanczosFilter struct {
	a float64
}

// NewLanczosFilter returns a windowed sinc filter with the given number of
// lobes. Lobe counts below 1 are treated as 1.
func NewLanczosFilter(lobes int) Filter {
	if lobes < 1 {
		lobes = 1
	}
	return lanczosFilter{a: float64(lobes)}
}

func (f lanczosFilter) Support() float64 { return f.a }

func (f lanczosFilter) At(x float64) float64 {
	if x > -f.a && x < f.a {
		return sinc(x) * sinc(x/f.a)
	}
	return 0
}

type gaussianFilter struct {
	k float64
}

// DefaultGaussianSigma keeps the tail at the truncation radius below 4e-4.
const DefaultGaussianSigma = 0.5

// NewGaussianFilter returns a gaussian truncated at radius 2. A non-positive
// sigma selects DefaultGaussianSigma.
func NewGaussianFilter(sigma float64) Filter {
	if sigma <= 0 {
		sigma = DefaultGaussianSigma
	}
	return gaussianFilter{k: 1 / (2 * sigma * sigma)}
}

func (gaussianFilter) Support() float64 { return 2 }

func (f gaussianFilter) At(x float64) float64 {
	if x > -2 && x < 2 {
		return math.Exp(-x * x * f.k)
	}
	return 0
}

func sinc(x float64) float64 {
	x = math.Abs(x) * math.Pi
	if x >= 1.220703e-4 {
		return math.Sin(x) / x
	}
	return 1
}
