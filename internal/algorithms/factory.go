package algorithms

import (
	"fmt"
	"strings"
)

// PartitionType defines the budget partitioning algorithm to use.
type PartitionType int

const (
	// PartitionDirichlet draws shares from a symmetric Dirichlet distribution (default).
	PartitionDirichlet PartitionType = iota
	// PartitionUUniFast uses the UUniFast utilisation split.
	PartitionUUniFast
	// PartitionEqual splits the budget evenly.
	PartitionEqual
)

// DefaultDirichletAlpha is the concentration used when none is configured.
// With alpha = 1 every split of the simplex is equally likely.
const DefaultDirichletAlpha = 1.0

func (p PartitionType) String() string {
	switch p {
	case PartitionDirichlet:
		return "dirichlet"
	case PartitionUUniFast:
		return "uunifast"
	case PartitionEqual:
		return "equal"
	default:
		return fmt.Sprintf("PartitionType(%d)", int(p))
	}
}

// ParsePartitionType maps a name as printed by String back to its PartitionType.
func ParsePartitionType(s string) (PartitionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dirichlet":
		return PartitionDirichlet, nil
	case "uunifast":
		return PartitionUUniFast, nil
	case "equal":
		return PartitionEqual, nil
	default:
		return 0, fmt.Errorf("unknown partition type %q", s)
	}
}

// NewPartitioner creates a partitioner based on the configuration.
// alpha is only used by the Dirichlet partitioner; values <= 0 fall back to
// DefaultDirichletAlpha.
func NewPartitioner(partitionType PartitionType, alpha float64) Partitioner {
	switch partitionType {
	case PartitionUUniFast:
		return uunifastPartitioner{}

	case PartitionEqual:
		return equalPartitioner{}

	default:
		if alpha <= 0 {
			alpha = DefaultDirichletAlpha
		}
		return dirichletPartitioner{alpha: alpha}
	}
}
