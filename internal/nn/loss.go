package nn

import "math"

// euclideanLoss computes the Euclidean loss of a batch:
//
//	loss = sum((pred - target)²) / (2 * batch)
//
// diff receives pred - target, which the backward pass reuses.
// mae is the mean absolute error over every element.
func euclideanLoss(pred, target, diff []float32, batch int) (loss, mae float32) {
	var sq, abs float64
	for i := range pred {
		d := pred[i] - target[i]
		diff[i] = d
		sq += float64(d) * float64(d)
		abs += math.Abs(float64(d))
	}
	loss = float32(sq / float64(2*batch))
	if len(pred) > 0 {
		mae = float32(abs / float64(len(pred)))
	}
	return loss, mae
}

// euclideanLossBackward writes the gradient of weight * loss with respect to pred.
func euclideanLossBackward(diff, dpred []float32, weight float32, batch int) {
	scale := weight / float32(batch)
	for i, d := range diff {
		dpred[i] = scale * d
	}
}
