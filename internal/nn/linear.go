package nn

// Fully connected layer kernels over row-major float32 buffers.
//
// Shapes:
//   - x: [batch, in]
//   - w: [out, in]
//   - b: [out]
//   - y, dy: [batch, out]
//
// The layer computes y = x @ W.T + b.

// linearForward writes y = x @ W.T + b.
func linearForward(x, w, b, y []float32, batch, in, out int) {
	for n := 0; n < batch; n++ {
		xr := x[n*in : (n+1)*in]
		for o := 0; o < out; o++ {
			wr := w[o*in : (o+1)*in]
			sum := b[o]
			for k, xv := range xr {
				sum += xv * wr[k]
			}
			y[n*out+o] = sum
		}
	}
}

// linearBackward writes dW = dy.T @ x and db = sum over the batch of dy.
// Both gradients are overwritten, not accumulated.
func linearBackward(x, dy, dw, db []float32, batch, in, out int) {
	for i := range dw {
		dw[i] = 0
	}
	for i := range db {
		db[i] = 0
	}
	for n := 0; n < batch; n++ {
		xr := x[n*in : (n+1)*in]
		for o := 0; o < out; o++ {
			g := dy[n*out+o]
			if g == 0 {
				continue
			}
			db[o] += g
			dwr := dw[o*in : (o+1)*in]
			for k, xv := range xr {
				dwr[k] += g * xv
			}
		}
	}
}
