package resample

import (
	"errors"
	"math"
	"testing"
)

func TestBuildWeightsNormalized(t *testing.T) {
	lengths := []int{1, 2, 3, 5, 7, 8, 13, 16, 31, 64}
	for _, k := range Kernels() {
		f := k.Filter()
		for _, src := range lengths {
			for _, dst := range lengths {
				wt, err := BuildWeights(src, dst, f)
				if err != nil {
					t.Fatalf("%s %d->%d: %v", k, src, dst, err)
				}
				if len(wt.Contributors) != dst {
					t.Fatalf("%s %d->%d: got %d lists", k, src, dst, len(wt.Contributors))
				}
				for d, list := range wt.Contributors {
					if len(list) == 0 {
						t.Fatalf("%s %d->%d: empty list at %d", k, src, dst, d)
					}
					var sum float64
					prev := -1
					for _, c := range list {
						if c.Index <= prev || c.Index < 0 || c.Index >= src {
							t.Fatalf("%s %d->%d: bad index %d after %d at %d", k, src, dst, c.Index, prev, d)
						}
						if c.Weight == 0 {
							t.Fatalf("%s %d->%d: zero weight kept at %d", k, src, dst, d)
						}
						prev = c.Index
						sum += c.Weight
					}
					if math.Abs(sum-1) > 1e-9 {
						t.Fatalf("%s %d->%d: weights at %d sum to %v", k, src, dst, d, sum)
					}
				}
			}
		}
	}
}

func TestBuildWeightsIdentity(t *testing.T) {
	for _, k := range Kernels() {
		wt, err := BuildWeights(9, 9, k.Filter())
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		for d, list := range wt.Contributors {
			if len(list) != 1 || list[0].Index != d || list[0].Weight != 1 {
				t.Fatalf("%s: non-identity list at %d: %+v", k, d, list)
			}
		}
		if wt.MaxTaps() != 1 {
			t.Fatalf("%s: max taps %d", k, wt.MaxTaps())
		}
	}
}

func TestBuildWeightsSingleDestination(t *testing.T) {
	for _, k := range []Kernel{Average, Bilinear, Bicubic, Lanczos3, Gaussian} {
		wt, err := BuildWeights(7, 1, k.Filter())
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		list := wt.Contributors[0]
		if list[0].Index != 0 || list[len(list)-1].Index != 6 {
			t.Fatalf("%s: list does not cover the source: %+v", k, list)
		}
	}
}

func TestBuildWeightsNearestUpsample(t *testing.T) {
	wt, err := BuildWeights(2, 4, Nearest.Filter())
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 0, 1, 1}
	for d, list := range wt.Contributors {
		if len(list) != 1 || list[0].Index != want[d] || list[0].Weight != 1 {
			t.Fatalf("nearest at %d: %+v, want index %d", d, list, want[d])
		}
	}
}

func TestBuildWeightsNearestDownsampleIsPointSampling(t *testing.T) {
	wt, err := BuildWeights(8, 2, Nearest.Filter())
	if err != nil {
		t.Fatal(err)
	}
	for d, list := range wt.Contributors {
		if len(list) != 1 {
			t.Fatalf("nearest downsample at %d: expected one tap, got %+v", d, list)
		}
	}

	wt, err = BuildWeights(8, 2, Average.Filter())
	if err != nil {
		t.Fatal(err)
	}
	for d, list := range wt.Contributors {
		if len(list) != 4 {
			t.Fatalf("average downsample at %d: expected four taps, got %+v", d, list)
		}
		for _, c := range list {
			if math.Abs(c.Weight-0.25) > 1e-12 {
				t.Fatalf("average downsample at %d: uneven weights %+v", d, list)
			}
		}
	}
}

func TestBuildWeightsClampMergesOntoEdge(t *testing.T) {
	wt, err := BuildWeights(2, 4, Bilinear.Filter())
	if err != nil {
		t.Fatal(err)
	}
	first := wt.Contributors[0]
	if len(first) != 1 || first[0].Index != 0 || math.Abs(first[0].Weight-1) > 1e-12 {
		t.Fatalf("left edge: %+v", first)
	}
	last := wt.Contributors[3]
	if len(last) != 1 || last[0].Index != 1 || math.Abs(last[0].Weight-1) > 1e-12 {
		t.Fatalf("right edge: %+v", last)
	}
	mid := wt.Contributors[1]
	if len(mid) != 2 || math.Abs(mid[0].Weight-0.75) > 1e-12 || math.Abs(mid[1].Weight-0.25) > 1e-12 {
		t.Fatalf("interior: %+v", mid)
	}
}

func TestBuildWeightsWidensOnDownsample(t *testing.T) {
	up, err := BuildWeights(10, 20, Lanczos3.Filter())
	if err != nil {
		t.Fatal(err)
	}
	down, err := BuildWeights(40, 10, Lanczos3.Filter())
	if err != nil {
		t.Fatal(err)
	}
	if up.MaxTaps() > 7 {
		t.Fatalf("upsample taps: %d", up.MaxTaps())
	}
	if down.MaxTaps() < 20 {
		t.Fatalf("downsample taps not widened: %d", down.MaxTaps())
	}
}

func TestBuildWeightsErrors(t *testing.T) {
	for _, c := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := BuildWeights(c[0], c[1], Bilinear.Filter()); !errors.Is(err, ErrDegenerateGeometry) {
			t.Fatalf("%v: expected ErrDegenerateGeometry, got %v", c, err)
		}
	}
	if _, err := BuildWeights(4, 4, nil); !errors.Is(err, ErrUnknownKernel) {
		t.Fatalf("expected ErrUnknownKernel, got %v", err)
	}
}

type zeroFilter struct{}

func (zeroFilter) Support() float64     { return 1 }
func (zeroFilter) At(x float64) float64 { return 0 }

func TestBuildWeightsZeroFilterFallsBack(t *testing.T) {
	wt, err := BuildWeights(3, 6, zeroFilter{})
	if err != nil {
		t.Fatal(err)
	}
	for d, list := range wt.Contributors {
		if len(list) != 1 || list[0].Weight != 1 {
			t.Fatalf("fallback at %d: %+v", d, list)
		}
	}
	if wt.Contributors[0][0].Index != 0 || wt.Contributors[5][0].Index != 2 {
		t.Fatalf("fallback indices: %+v", wt.Contributors)
	}
}

func TestBuildWeightsTrimsCapacity(t *testing.T) {
	wt, err := BuildWeights(1000, 3, Lanczos5.Filter())
	if err != nil {
		t.Fatal(err)
	}
	for d, list := range wt.Contributors {
		if cap(list) > 2*len(list) {
			t.Fatalf("list %d holds %d entries with capacity %d", d, len(list), cap(list))
		}
	}
}
