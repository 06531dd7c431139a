package nn

import (
	"fmt"

	"github.com/born-ml/solver/internal/tensor"
)

// Parameter represents a trainable parameter owned by a network.
//
// The data and grad tensors always share a shape. The accumulation buffer is
// allocated on first use and only touched when gradients span several
// forward/backward passes.
//
// Example:
//
//	w := nn.NewParameter("fc.weight", weights)
//	w.LRMult, w.DecayMult = 1, 1
type Parameter struct {
	name  string
	data  *tensor.RawTensor
	grad  *tensor.RawTensor
	accum *tensor.RawTensor

	// LRMult scales the global learning rate for this parameter.
	LRMult float32
	// DecayMult scales the global weight decay for this parameter.
	DecayMult float32
}

// NewParameter creates a parameter with a zeroed gradient and unit multipliers.
func NewParameter(name string, data *tensor.RawTensor) *Parameter {
	grad, err := tensor.NewRaw(data.Shape(), data.DType(), data.Device())
	if err != nil {
		panic(fmt.Sprintf("parameter %s: %v", name, err))
	}
	return &Parameter{
		name:      name,
		data:      data,
		grad:      grad,
		LRMult:    1,
		DecayMult: 1,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Data returns the parameter values.
func (p *Parameter) Data() *tensor.RawTensor {
	return p.data
}

// Grad returns the gradient buffer.
func (p *Parameter) Grad() *tensor.RawTensor {
	return p.grad
}

// Shape returns the parameter shape.
func (p *Parameter) Shape() tensor.Shape {
	return p.data.Shape()
}

// ZeroGrad clears the gradient buffer.
func (p *Parameter) ZeroGrad(be tensor.Backend) {
	be.Set(0, p.grad)
}

// Accumulate adds the current gradient into the accumulation buffer.
func (p *Parameter) Accumulate(be tensor.Backend) {
	if p.accum == nil {
		p.accum = tensor.MustZeros(p.grad.Shape(), p.grad.Device())
	}
	be.Axpy(1, p.grad, p.accum)
}

// FinalizeAccumulation folds the accumulated gradients into grad and resets the buffer.
func (p *Parameter) FinalizeAccumulation(be tensor.Backend) {
	if p.accum == nil {
		return
	}
	be.Axpy(1, p.accum, p.grad)
	be.Set(0, p.accum)
}

// Update subtracts the gradient buffer from the data: data -= grad.
func (p *Parameter) Update(be tensor.Backend) {
	be.Axpy(-1, p.grad, p.data)
}
