// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/tensor"
)

// Parameter represents a learnable tensor of a network.
//
// A parameter owns its data, its gradient and an accumulation buffer used
// for micro-batching. LRMult and DecayMult scale the global learning rate
// and weight decay for this parameter.
//
// Example:
//
//	data, _ := tensor.Full(tensor.Shape{4, 2}, 0, tensor.CPU)
//	weight := nn.NewParameter("fc.weight", data)
//	weight.LRMult = 1
//	weight.DecayMult = 1
//
// Methods:
//
//	Name() string
//	    Returns the parameter name (e.g. "fc.weight").
//
//	Data() *tensor.RawTensor
//	    Returns the parameter values.
//
//	Grad() *tensor.RawTensor
//	    Returns the gradient, or the step after an update rule ran.
//
//	Update(be tensor.Backend)
//	    Applies data -= grad.
type Parameter = nn.Parameter

// NewParameter creates a parameter with a zeroed gradient of data's shape.
func NewParameter(name string, data *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, data)
}
