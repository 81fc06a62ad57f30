package resample

import (
	"fmt"
	"math"
)

// Contributor is one source sample taking part in a destination sample.
type Contributor struct {
	Index  int
	Weight float64
}

// WeightTable holds, for every destination index along one axis, the source
// samples contributing to it. Indices within a list are strictly increasing
// and clamped to [0, SrcLen-1], weights are non-zero and sum to 1.
type WeightTable struct {
	SrcLen       int
	DstLen       int
	Contributors [][]Contributor
}

// MaxTaps returns the length of the longest contributor list.
func (t *WeightTable) MaxTaps() int {
	n := 0
	for _, c := range t.Contributors {
		if len(c) > n {
			n = len(c)
		}
	}
	return n
}

// BuildWeights computes the weight table mapping srcLen samples to dstLen
// samples with filter f. The filter support is widened by the scale factor
// when downsampling, unless f is a point sampler. Taps beyond the edges are
// clamped onto the edge samples.
func BuildWeights(srcLen, dstLen int, f Filter) (*WeightTable, error) {
	if srcLen <= 0 || dstLen <= 0 {
		return nil, fmt.Errorf("%w: %d samples to %d", ErrDegenerateGeometry, srcLen, dstLen)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: nil filter", ErrUnknownKernel)
	}

	t := &WeightTable{
		SrcLen:       srcLen,
		DstLen:       dstLen,
		Contributors: make([][]Contributor, dstLen),
	}

	// Same length means every destination sample sits on a source sample.
	if srcLen == dstLen {
		backing := make([]Contributor, dstLen)
		for d := range backing {
			backing[d] = Contributor{Index: d, Weight: 1}
			t.Contributors[d] = backing[d : d+1 : d+1]
		}
		return t, nil
	}

	scale := float64(srcLen) / float64(dstLen)
	factor := math.Max(1, scale)
	if ps, ok := f.(pointSampler); ok && ps.pointSample() {
		factor = 1
	}
	radius := f.Support() * factor

	for d := 0; d < dstLen; d++ {
		center := (float64(d)+0.5)*scale - 0.5
		first := int(math.Floor(center - radius))
		last := int(math.Ceil(center + radius))

		list := make([]Contributor, 0, last-first+1)
		for i := first; i <= last; i++ {
			w := f.At((float64(i) - center) / factor)
			if w == 0 {
				continue
			}
			idx := clampIndex(i, srcLen)
			if n := len(list); n > 0 && list[n-1].Index == idx {
				list[n-1].Weight += w
				continue
			}
			list = append(list, Contributor{Index: idx, Weight: w})
		}

		t.Contributors[d] = normalize(list, clampIndex(int(math.Floor(center+0.5)), srcLen))
	}

	return t, nil
}

// normalize drops entries that cancelled out while merging and scales the rest
// to a unit sum. An empty or zero-sum list collapses onto the fallback index.
func normalize(list []Contributor, fallback int) []Contributor {
	kept := list[:0]
	var sum float64
	for _, c := range list {
		if c.Weight == 0 {
			continue
		}
		kept = append(kept, c)
		sum += c.Weight
	}
	if len(kept) == 0 || sum == 0 {
		return []Contributor{{Index: fallback, Weight: 1}}
	}
	if cap(kept) > 2*len(kept) {
		kept = append([]Contributor(nil), kept...)
	}
	inv := 1 / sum
	for i := range kept {
		kept[i].Weight *= inv
	}
	return kept
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
