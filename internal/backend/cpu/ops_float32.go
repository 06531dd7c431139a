package cpu

import "math"

func setFloat32(alpha float32, y []float32) {
	for i := range y {
		y[i] = alpha
	}
}

func scaleFloat32(alpha float32, y []float32) {
	for i := range y {
		y[i] *= alpha
	}
}

func axpyFloat32(alpha float32, x, y []float32) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

func axpbyFloat32(alpha float32, x []float32, beta float32, y []float32) {
	for i := range y {
		y[i] = alpha*x[i] + beta*y[i]
	}
}

func addFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func mulFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func powxFloat32(dst, a []float32, p float32) {
	switch p {
	case 2:
		for i := range dst {
			dst[i] = a[i] * a[i]
		}
	case 0.5:
		for i := range dst {
			dst[i] = float32(math.Sqrt(float64(a[i])))
		}
	default:
		pp := float64(p)
		for i := range dst {
			dst[i] = float32(math.Pow(float64(a[i]), pp))
		}
	}
}

func signFloat32(dst, x []float32) {
	for i, v := range x {
		switch {
		case v > 0:
			dst[i] = 1
		case v < 0:
			dst[i] = -1
		default:
			dst[i] = 0
		}
	}
}

func addScalarFloat32(alpha float32, y []float32) {
	for i := range y {
		y[i] += alpha
	}
}

func asumFloat32(x []float32) float64 {
	var s float64
	for _, v := range x {
		s += math.Abs(float64(v))
	}
	return s
}

func dotFloat32(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
