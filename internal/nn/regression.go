package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/solver/internal/log"
	"github.com/born-ml/solver/internal/tensor"
)

// Output names of the regression network.
const (
	OutputLoss = "loss"
	OutputMAE  = "mae"
)

// RegressionConfig configures a Regression network.
type RegressionConfig struct {
	Name       string
	BatchSize  int
	LossWeight float32

	WeightFiller    FillerConfig
	BiasFiller      FillerConfig
	WeightLRMult    float32
	WeightDecayMult float32
	BiasLRMult      float32
	BiasDecayMult   float32
}

// Regression is a fully connected layer trained with a Euclidean loss.
//
// Each pass reads the next batch from its data source, wrapping around at
// the end. It has two outputs: "loss" (weighted by LossWeight) and "mae",
// the mean absolute error, which never contributes to the objective.
//
// Example:
//
//	src, _ := nn.NewSyntheticSource(nn.SyntheticConfig{InputDim: 4, OutputDim: 1, Samples: 256})
//	net, _ := nn.NewRegression(nn.RegressionConfig{Name: "fit", BatchSize: 16, LossWeight: 1}, src, cpu.New(), rng)
//	loss := net.ForwardBackward(nn.RunContext{Phase: nn.Train})
type Regression struct {
	name       string
	backend    tensor.Backend
	weight     *Parameter // [out, in]
	bias       *Parameter // [out]
	in, out    int
	batch      int
	lossWeight float32

	source DataSource
	cursor int

	x, y, pred, diff, dpred []float32
	outputs                 []Output
}

// NewRegression creates a regression network over source.
// Parameters are initialized with the configured fillers drawing from rng.
func NewRegression(cfg RegressionConfig, source DataSource, backend tensor.Backend, rng *rand.Rand) (*Regression, error) {
	if source == nil || source.Len() == 0 {
		return nil, fmt.Errorf("regression %s: empty data source", cfg.Name)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("regression %s: batch size must be positive, got %d", cfg.Name, cfg.BatchSize)
	}
	in, out := source.InputDim(), source.OutputDim()
	device := backend.Device()

	w, err := tensor.Zeros(tensor.Shape{out, in}, device)
	if err != nil {
		return nil, fmt.Errorf("regression %s: %w", cfg.Name, err)
	}
	wf := cfg.WeightFiller
	if wf.Type == "" {
		wf.Type = FillerXavier
	}
	if err := wf.Fill(w, in, out, rng); err != nil {
		return nil, fmt.Errorf("regression %s: weight: %w", cfg.Name, err)
	}

	b, err := tensor.Zeros(tensor.Shape{out}, device)
	if err != nil {
		return nil, fmt.Errorf("regression %s: %w", cfg.Name, err)
	}
	if err := cfg.BiasFiller.Fill(b, in, out, rng); err != nil {
		return nil, fmt.Errorf("regression %s: bias: %w", cfg.Name, err)
	}

	weight := NewParameter(cfg.Name+".weight", w)
	weight.LRMult, weight.DecayMult = cfg.WeightLRMult, cfg.WeightDecayMult
	bias := NewParameter(cfg.Name+".bias", b)
	bias.LRMult, bias.DecayMult = cfg.BiasLRMult, cfg.BiasDecayMult

	batch := cfg.BatchSize
	return &Regression{
		name:       cfg.Name,
		backend:    backend,
		weight:     weight,
		bias:       bias,
		in:         in,
		out:        out,
		batch:      batch,
		lossWeight: cfg.LossWeight,
		source:     source,
		x:          make([]float32, batch*in),
		y:          make([]float32, batch*out),
		pred:       make([]float32, batch*out),
		diff:       make([]float32, batch*out),
		dpred:      make([]float32, batch*out),
	}, nil
}

// Name implements Net.
func (r *Regression) Name() string {
	return r.name
}

// Params implements Net. The order is weight, bias.
func (r *Regression) Params() []*Parameter {
	return []*Parameter{r.weight, r.bias}
}

// BatchSize returns the number of samples per pass.
func (r *Regression) BatchSize() int {
	return r.batch
}

// LossWeight returns the weight of the "loss" output.
func (r *Regression) LossWeight() float32 {
	return r.lossWeight
}

// nextBatch loads the next batch into x and y.
func (r *Regression) nextBatch() {
	for n := 0; n < r.batch; n++ {
		r.source.Sample(r.cursor, r.x[n*r.in:(n+1)*r.in], r.y[n*r.out:(n+1)*r.out])
		r.cursor = (r.cursor + 1) % r.source.Len()
	}
}

func (r *Regression) forward() float32 {
	r.nextBatch()
	linearForward(r.x, r.weight.Data().AsFloat32(), r.bias.Data().AsFloat32(), r.pred, r.batch, r.in, r.out)
	loss, mae := euclideanLoss(r.pred, r.y, r.diff, r.batch)
	r.outputs = []Output{
		{Name: OutputLoss, LossWeight: r.lossWeight, Values: []float32{loss}},
		{Name: OutputMAE, Values: []float32{mae}},
	}
	return r.lossWeight * loss
}

// ForwardBackward implements Net. Gradients are overwritten.
func (r *Regression) ForwardBackward(rc RunContext) float32 {
	loss := r.forward()
	euclideanLossBackward(r.diff, r.dpred, r.lossWeight, r.batch)
	linearBackward(r.x, r.dpred, r.weight.Grad().AsFloat32(), r.bias.Grad().AsFloat32(), r.batch, r.in, r.out)
	if rc.DebugInfo {
		r.logDebugInfo()
	}
	return loss
}

// Forward implements Net.
func (r *Regression) Forward(rc RunContext) (float32, []Output) {
	loss := r.forward()
	if rc.DebugInfo {
		log.Debugf("    [Forward] %s loss %g", r.name, loss)
	}
	return loss, r.Outputs()
}

// Outputs implements Net.
func (r *Regression) Outputs() []Output {
	out := make([]Output, len(r.outputs))
	for i, o := range r.outputs {
		out[i] = Output{Name: o.Name, LossWeight: o.LossWeight, Values: append([]float32(nil), o.Values...)}
	}
	return out
}

// AccumulateGradients implements Net.
func (r *Regression) AccumulateGradients() {
	for _, p := range r.Params() {
		p.Accumulate(r.backend)
	}
}

// FinalizeAccumulatedGradients implements Net.
func (r *Regression) FinalizeAccumulatedGradients() {
	for _, p := range r.Params() {
		p.FinalizeAccumulation(r.backend)
	}
}

// Update implements Net.
func (r *Regression) Update() {
	for _, p := range r.Params() {
		p.Update(r.backend)
	}
}

// CopyTrainedFrom implements Net.
func (r *Regression) CopyTrainedFrom(src Net) error {
	return CopyParams(r.Params(), src.Params())
}

func (r *Regression) logDebugInfo() {
	for _, p := range r.Params() {
		n := float32(p.Data().NumElements())
		log.Debugf("    [Backward] param %s data: %g; diff: %g",
			p.Name(), r.backend.Asum(p.Data())/n, r.backend.Asum(p.Grad())/n)
	}
}
