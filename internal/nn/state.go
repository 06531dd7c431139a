package nn

import "fmt"

// NetState selects which parts of a network definition are active.
type NetState struct {
	Phase Phase
	Level int
	Stage []string
}

// StateOverride is a partially specified NetState, as read from configuration.
// Unset fields leave the state they are merged into unchanged; stages append.
type StateOverride struct {
	Phase string   `mapstructure:"phase" validate:"isdefault|oneof=TRAIN TEST train test"`
	Level *int     `mapstructure:"level"`
	Stage []string `mapstructure:"stage"`
}

// IsZero reports whether the override sets nothing.
func (o StateOverride) IsZero() bool {
	return o.Phase == "" && o.Level == nil && len(o.Stage) == 0
}

// Merge applies overrides in order, lowest precedence first.
func (s NetState) Merge(overrides ...StateOverride) (NetState, error) {
	out := NetState{Phase: s.Phase, Level: s.Level, Stage: append([]string(nil), s.Stage...)}
	for _, o := range overrides {
		if o.Phase != "" {
			phase, err := ParsePhase(o.Phase)
			if err != nil {
				return NetState{}, err
			}
			out.Phase = phase
		}
		if o.Level != nil {
			out.Level = *o.Level
		}
		out.Stage = append(out.Stage, o.Stage...)
	}
	return out, nil
}

// HasStage reports whether stage is active.
func (s NetState) HasStage(stage string) bool {
	for _, st := range s.Stage {
		if st == stage {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s NetState) String() string {
	return fmt.Sprintf("phase: %s level: %d stage: %v", s.Phase, s.Level, s.Stage)
}
