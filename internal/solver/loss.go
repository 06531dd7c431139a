package solver

// lossWindow smooths the displayed training loss over the last k steps.
//
// While the window fills, the average is an online mean; once full, the
// oldest value is replaced in ring order.
type lossWindow struct {
	capacity int
	losses   []float32
	next     int
	smoothed float32
}

func newLossWindow(capacity int) *lossWindow {
	return &lossWindow{capacity: capacity, losses: make([]float32, 0, capacity)}
}

// add records loss and returns the smoothed value.
func (w *lossWindow) add(loss float32) float32 {
	if len(w.losses) < w.capacity {
		w.losses = append(w.losses, loss)
		n := float32(len(w.losses))
		w.smoothed = (w.smoothed*(n-1) + loss) / n
		return w.smoothed
	}
	w.smoothed += (loss - w.losses[w.next]) / float32(w.capacity)
	w.losses[w.next] = loss
	w.next = (w.next + 1) % w.capacity
	return w.smoothed
}

func (w *lossWindow) value() float32 {
	return w.smoothed
}

func (w *lossWindow) reset() {
	w.losses = w.losses[:0]
	w.next = 0
	w.smoothed = 0
}
