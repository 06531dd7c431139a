// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"path/filepath"
	"testing"

	"github.com/born-ml/solver/backend/cpu"
	"github.com/born-ml/solver/nn"
)

func newNet(t *testing.T, seed int64) *nn.Regression {
	t.Helper()
	p := &nn.NetParameter{
		Name:      "fit",
		InputDim:  3,
		OutputDim: 2,
		Data:      []nn.DataConfig{{Source: nn.SourceSynthetic, Samples: 16, BatchSize: 4, Seed: 1}},
	}
	net, err := nn.Build(p, nn.NetState{Phase: nn.Train}, cpu.New(), seed)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return net
}

// TestRegressionImplementsNet checks the reference network through the public API.
func TestRegressionImplementsNet(t *testing.T) {
	var net nn.Net = newNet(t, 1)

	if got := net.Name(); got != "fit" {
		t.Errorf("Name() = %q, want fit", got)
	}
	if got := len(net.Params()); got != 2 {
		t.Fatalf("len(Params()) = %d, want 2", got)
	}

	loss := net.ForwardBackward(nn.RunContext{Phase: nn.Train})
	if loss <= 0 {
		t.Errorf("loss = %v, want > 0", loss)
	}
	outputs := net.Outputs()
	if len(outputs) != 2 || outputs[0].Name != nn.OutputLoss || outputs[1].Name != nn.OutputMAE {
		t.Errorf("Outputs() = %+v, want loss and mae", outputs)
	}
}

func TestSaveLoadParameters(t *testing.T) {
	src := newNet(t, 1)
	dst := newNet(t, 2)
	path := filepath.Join(t.TempDir(), "fit.born")

	if err := nn.SaveParameters(path, src, false, &nn.TrainingMeta{Iter: 7}); err != nil {
		t.Fatalf("SaveParameters failed: %v", err)
	}
	header, err := nn.LoadParameters(path, dst)
	if err != nil {
		t.Fatalf("LoadParameters failed: %v", err)
	}
	if header.Training == nil || header.Training.Iter != 7 {
		t.Errorf("Training = %+v, want Iter 7", header.Training)
	}

	for i, p := range dst.Params() {
		want := src.Params()[i].Data().AsFloat32()
		for j, v := range p.Data().AsFloat32() {
			if v != want[j] {
				t.Fatalf("%s[%d] = %v, want %v", p.Name(), j, v, want[j])
			}
		}
	}
}

func TestParsePhase(t *testing.T) {
	if p, err := nn.ParsePhase("test"); err != nil || p != nn.Test {
		t.Errorf("ParsePhase(test) = %v, %v; want TEST", p, err)
	}
	if _, err := nn.ParsePhase("validate"); err == nil {
		t.Error("ParsePhase(validate): expected error")
	}
}
