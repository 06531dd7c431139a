package optim

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Kind identifies an update rule.
type Kind int

// Update rule kinds.
const (
	SGD Kind = iota
	Nesterov
	AdaGrad
	RMSProp
	AdaDelta
)

// Kinds lists every update rule kind.
var Kinds = []Kind{SGD, Nesterov, AdaGrad, RMSProp, AdaDelta}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case SGD:
		return "SGD"
	case Nesterov:
		return "Nesterov"
	case AdaGrad:
		return "AdaGrad"
	case RMSProp:
		return "RMSProp"
	case AdaDelta:
		return "AdaDelta"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HistoryBuffers returns how many history tensors the kind keeps per parameter.
// AdaDelta tracks squared gradients and squared updates separately.
func (k Kind) HistoryBuffers() int {
	if k == AdaDelta {
		return 2
	}
	return 1
}

// ParseKind resolves a solver type name.
// Spelling variants such as "AdaGrad", "ada_grad" and "ADAGRAD" are accepted.
func ParseKind(s string) (Kind, error) {
	key := strings.ReplaceAll(strcase.ToSnake(strings.TrimSpace(s)), "_", "")
	for _, k := range Kinds {
		if key == strings.ToLower(k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
