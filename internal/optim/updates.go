package optim

import "github.com/born-ml/solver/internal/tensor"

// buffers are the tensors one parameter's transform reads and writes.
type buffers struct {
	data     *tensor.RawTensor
	grad     *tensor.RawTensor
	history  *tensor.RawTensor
	history2 *tensor.RawTensor // AdaDelta squared-update average
	update   *tensor.RawTensor
	temp     *tensor.RawTensor
}

// sgdUpdate: history = rate*grad + momentum*history; grad = history.
func sgdUpdate(be tensor.Backend, rate float32, h Hyper, b buffers) {
	be.Axpby(rate, b.grad, h.Momentum, b.history)
	be.Copy(b.history, b.grad)
}

// nesterovUpdate applies the look-ahead correction
// grad = (1+momentum)*history - momentum*previous history.
func nesterovUpdate(be tensor.Backend, rate float32, h Hyper, b buffers) {
	be.Copy(b.history, b.update)
	be.Axpby(rate, b.grad, h.Momentum, b.history)
	be.Axpby(1+h.Momentum, b.history, -h.Momentum, b.update)
	be.Copy(b.update, b.grad)
}

// adaGradUpdate: history += grad^2; grad = rate * grad / (sqrt(history) + delta).
func adaGradUpdate(be tensor.Backend, rate float32, h Hyper, b buffers) {
	be.Powx(b.grad, 2, b.update)
	be.Add(b.update, b.history, b.history)
	be.Powx(b.history, 0.5, b.update)
	be.AddScalar(h.Delta, b.update)
	be.Div(b.grad, b.update, b.update)
	be.Axpby(rate, b.update, 0, b.grad)
}

// rmsPropUpdate: history = (1-rms_decay)*grad^2 + rms_decay*history;
// grad = rate * grad / (sqrt(history) + delta).
func rmsPropUpdate(be tensor.Backend, rate float32, h Hyper, b buffers) {
	be.Powx(b.grad, 2, b.update)
	be.Axpby(1-h.RMSDecay, b.update, h.RMSDecay, b.history)
	be.Powx(b.history, 0.5, b.update)
	be.AddScalar(h.Delta, b.update)
	be.Div(b.grad, b.update, b.update)
	be.Axpby(rate, b.update, 0, b.grad)
}

// adaDeltaUpdate scales the gradient by sqrt((E[dx^2]+delta)/(E[g^2]+delta))
// and then by the learning rate. Momentum is the decay of both averages.
func adaDeltaUpdate(be tensor.Backend, rate float32, h Hyper, b buffers) {
	m := h.Momentum

	// E[g^2]
	be.Powx(b.grad, 2, b.update)
	be.Axpby(1-m, b.update, m, b.history)

	be.Set(h.Delta, b.temp)
	be.Add(b.temp, b.history2, b.update)
	be.Add(b.temp, b.history, b.temp)
	be.Div(b.update, b.temp, b.update)
	be.Powx(b.update, 0.5, b.update)
	be.Mul(b.grad, b.update, b.grad)

	// E[dx^2], from the unscaled step.
	be.Powx(b.grad, 2, b.update)
	be.Axpby(1-m, b.update, m, b.history2)

	// The rate multiply stays outside the history chain: it goes through
	// temp and is copied back.
	be.Copy(b.grad, b.temp)
	be.Scale(rate, b.temp)
	be.Copy(b.temp, b.grad)
}
