package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/born-ml/solver/internal/tensor"
)

// Filler names.
const (
	FillerConstant = "constant"
	FillerGaussian = "gaussian"
	FillerUniform  = "uniform"
	FillerXavier   = "xavier"
)

// FillerConfig describes how a parameter is initialized.
type FillerConfig struct {
	Type  string  `mapstructure:"type" validate:"isdefault|oneof=constant gaussian uniform xavier"`
	Value float32 `mapstructure:"value"`
	Mean  float32 `mapstructure:"mean"`
	Std   float32 `mapstructure:"std" validate:"gte=0"`
	Min   float32 `mapstructure:"min"`
	Max   float32 `mapstructure:"max"`
}

// Fill initializes t in place.
//
// Xavier (Glorot) draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps activation variance roughly constant across layers.
// An empty Type fills with Value.
//
// Parameters:
//   - t: float32 tensor to fill
//   - fanIn, fanOut: layer fan-in and fan-out, used by xavier
//   - rng: random source; a fixed seed gives reproducible weights
func (c FillerConfig) Fill(t *tensor.RawTensor, fanIn, fanOut int, rng *rand.Rand) error {
	data := t.AsFloat32()
	switch c.Type {
	case "", FillerConstant:
		for i := range data {
			data[i] = c.Value
		}
	case FillerGaussian:
		for i := range data {
			data[i] = c.Mean + c.Std*float32(rng.NormFloat64())
		}
	case FillerUniform:
		if c.Max < c.Min {
			return fmt.Errorf("uniform filler: max %g < min %g", c.Max, c.Min)
		}
		span := float64(c.Max - c.Min)
		for i := range data {
			data[i] = c.Min + float32(rng.Float64()*span)
		}
	case FillerXavier:
		if fanIn+fanOut <= 0 {
			return fmt.Errorf("xavier filler: fan_in + fan_out must be positive")
		}
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
		for i := range data {
			data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
		}
	default:
		return fmt.Errorf("unknown filler type %q", c.Type)
	}
	return nil
}
