// Package nntest provides a scripted network for testing code that drives nn.Net.
package nntest

import (
	"fmt"
	"sync"

	"github.com/born-ml/solver/internal/nn"
	"github.com/born-ml/solver/internal/tensor"
)

// Call names recorded by Net.
const (
	CallForwardBackward = "forward_backward"
	CallForward         = "forward"
	CallAccumulate      = "accumulate"
	CallFinalize        = "finalize"
	CallUpdate          = "update"
	CallCopy            = "copy"
)

// Net is an nn.Net whose losses and gradients are scripted.
//
// Every parameter gets the same gradient value on each backward pass. Loss
// values are taken from Losses in order, repeating the last one; when Losses
// is empty the loss is 1. Calls are recorded in order.
type Net struct {
	NetName string
	Losses  []float32
	Grad    float32
	// LossWeight is reported for the "loss" output.
	LossWeight float32

	mu     sync.Mutex
	params []*nn.Parameter
	accum  [][]float32
	calls  []string
	phases []nn.Phase
	passes int
	last   []nn.Output
}

// New creates a fake net with parameters of the given sizes, filled with 1.
func New(name string, sizes ...int) *Net {
	n := &Net{NetName: name, Grad: 1, LossWeight: 1}
	for i, size := range sizes {
		data, err := tensor.Full(tensor.Shape{size}, 1, tensor.CPU)
		if err != nil {
			panic(err)
		}
		n.params = append(n.params, nn.NewParameter(fmt.Sprintf("%s.p%d", name, i), data))
		n.accum = append(n.accum, make([]float32, size))
	}
	return n
}

func (n *Net) record(call string, rc nn.RunContext) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
	n.phases = append(n.phases, rc.Phase)
}

func (n *Net) nextLoss() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	loss := float32(1)
	if len(n.Losses) > 0 {
		i := n.passes
		if i >= len(n.Losses) {
			i = len(n.Losses) - 1
		}
		loss = n.Losses[i]
	}
	n.passes++
	return loss
}

// Name implements nn.Net.
func (n *Net) Name() string { return n.NetName }

// Params implements nn.Net.
func (n *Net) Params() []*nn.Parameter { return n.params }

// ForwardBackward implements nn.Net.
func (n *Net) ForwardBackward(rc nn.RunContext) float32 {
	n.record(CallForwardBackward, rc)
	for _, p := range n.params {
		g := p.Grad().AsFloat32()
		for i := range g {
			g[i] = n.Grad
		}
	}
	loss := n.nextLoss()
	n.setOutputs(loss)
	return loss
}

// Forward implements nn.Net.
func (n *Net) Forward(rc nn.RunContext) (float32, []nn.Output) {
	n.record(CallForward, rc)
	loss := n.nextLoss()
	n.setOutputs(loss)
	return loss, n.Outputs()
}

// setOutputs records the outputs of a pass: the loss, then a "score" of 2x and 3x the loss.
func (n *Net) setOutputs(loss float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = []nn.Output{
		{Name: "loss", LossWeight: n.LossWeight, Values: []float32{loss}},
		{Name: "score", Values: []float32{2 * loss, 3 * loss}},
	}
}

// Outputs implements nn.Net. It is nil before the first pass.
func (n *Net) Outputs() []nn.Output {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]nn.Output, len(n.last))
	for i, o := range n.last {
		out[i] = nn.Output{Name: o.Name, LossWeight: o.LossWeight, Values: append([]float32(nil), o.Values...)}
	}
	return out
}

// AccumulateGradients implements nn.Net.
func (n *Net) AccumulateGradients() {
	n.record(CallAccumulate, nn.RunContext{})
	for i, p := range n.params {
		for j, g := range p.Grad().AsFloat32() {
			n.accum[i][j] += g
		}
	}
}

// FinalizeAccumulatedGradients implements nn.Net.
func (n *Net) FinalizeAccumulatedGradients() {
	n.record(CallFinalize, nn.RunContext{})
	for i, p := range n.params {
		g := p.Grad().AsFloat32()
		for j := range g {
			g[j] += n.accum[i][j]
			n.accum[i][j] = 0
		}
	}
}

// Update implements nn.Net.
func (n *Net) Update() {
	n.record(CallUpdate, nn.RunContext{})
	for _, p := range n.params {
		d, g := p.Data().AsFloat32(), p.Grad().AsFloat32()
		for i := range d {
			d[i] -= g[i]
		}
	}
}

// CopyTrainedFrom implements nn.Net.
func (n *Net) CopyTrainedFrom(src nn.Net) error {
	n.record(CallCopy, nn.RunContext{})
	return nn.CopyParams(n.params, src.Params())
}

// Calls returns the recorded calls.
func (n *Net) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

// Count returns how many times call was made.
func (n *Net) Count(call string) int {
	c := 0
	for _, got := range n.Calls() {
		if got == call {
			c++
		}
	}
	return c
}

// Phases returns the phase of each recorded call.
func (n *Net) Phases() []nn.Phase {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]nn.Phase(nil), n.phases...)
}

// Reset clears the recorded calls.
func (n *Net) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls, n.phases = nil, nil
}
