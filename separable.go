package resample

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// packedWeights is a WeightTable flattened for the inner loops: the taps of
// destination d are index[offsets[d]:offsets[d+1]] with matching coeffs.
type packedWeights struct {
	offsets []int
	index   []int
	coeffs  []float32
}

func packWeights(t *WeightTable) packedWeights {
	total := 0
	for _, c := range t.Contributors {
		total += len(c)
	}
	p := packedWeights{
		offsets: make([]int, 0, len(t.Contributors)+1),
		index:   make([]int, 0, total),
		coeffs:  make([]float32, 0, total),
	}
	p.offsets = append(p.offsets, 0)
	for _, list := range t.Contributors {
		for _, c := range list {
			p.index = append(p.index, c.Index)
			p.coeffs = append(p.coeffs, float32(c.Weight))
		}
		p.offsets = append(p.offsets, len(p.index))
	}
	return p
}

// resampleRGB24 runs the horizontal pass over every source row into a float32
// intermediate of dstW x srcH pixels, then the vertical pass over it into dst.
// Buffers are packed RGB without row padding.
func resampleRGB24(dst, src []byte, srcW, srcH, dstW, dstH int, wx, wy *WeightTable, workers int) error {
	px := packWeights(wx)
	py := packWeights(wy)

	srcStride := srcW * 3
	dstStride := dstW * 3
	temp := make([]float32, dstStride*srcH)

	err := parallelFor(srcH, workers, func(start, end int) {
		for y := start; y < end; y++ {
			row := src[y*srcStride : (y+1)*srcStride]
			out := temp[y*dstStride : (y+1)*dstStride]
			for x := 0; x < dstW; x++ {
				var r, g, b float32
				for k := px.offsets[x]; k < px.offsets[x+1]; k++ {
					off := px.index[k] * 3
					w := px.coeffs[k]
					r += float32(row[off+0]) * w
					g += float32(row[off+1]) * w
					b += float32(row[off+2]) * w
				}
				o := x * 3
				out[o+0] = r
				out[o+1] = g
				out[o+2] = b
			}
		}
	})
	if err != nil {
		return err
	}

	return parallelFor(dstH, workers, func(start, end int) {
		acc := make([]float32, dstStride)
		for y := start; y < end; y++ {
			for i := range acc {
				acc[i] = 0
			}
			for k := py.offsets[y]; k < py.offsets[y+1]; k++ {
				w := py.coeffs[k]
				row := temp[py.index[k]*dstStride : (py.index[k]+1)*dstStride]
				for i, v := range row {
					acc[i] += v * w
				}
			}
			out := dst[y*dstStride : (y+1)*dstStride]
			for i, v := range acc {
				out[i] = clampToByte(v)
			}
		}
	})
}

// parallelFor splits [0, total) into contiguous ranges and runs fn on them
// with at most workers goroutines. A non-positive workers value uses
// GOMAXPROCS.
func parallelFor(total, workers int, fn func(start, end int)) error {
	if total <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return nil
	}

	chunks := workers * 4
	if chunks > total {
		chunks = total
	}
	step := (total + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < total; start += step {
		end := start + step
		if end > total {
			end = total
		}
		start, end := start, end
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	return g.Wait()
}

func clampToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
