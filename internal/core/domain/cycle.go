package domain

import "strings"

const cycleWarning = "  Warning: this breaks the layer hierarchy and creates circular coupling."

// CircularDependency is a closed import path. The first node is repeated at the end.
type CircularDependency struct {
	Cycle       []string `json:"cycle"`
	Description string   `json:"description"`
}

// NewCircularDependency builds a CircularDependency with a readable description.
func NewCircularDependency(cycle []string) CircularDependency {
	return CircularDependency{
		Cycle:       cycle,
		Description: DescribeCycle(cycle),
	}
}

// DescribeCycle narrates every edge of cycle with a directional arrow.
func DescribeCycle(cycle []string) string {
	if len(cycle) == 0 {
		return "Empty cycle"
	}

	var sb strings.Builder
	sb.WriteString("Circular dependency detected:\n")
	for i := 0; i < len(cycle)-1; i++ {
		sb.WriteString("  ")
		sb.WriteString(cycle[i])
		sb.WriteString(" → ")
		sb.WriteString(cycle[i+1])
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(cycleWarning)
	return sb.String()
}

// Contains reports whether node takes part in the cycle.
func (c CircularDependency) Contains(node string) bool {
	for _, n := range c.Cycle {
		if n == node {
			return true
		}
	}
	return false
}

// Key returns a rotation-independent identity for the cycle, used to compare
// cycle sets produced from different DFS start points.
func (c CircularDependency) Key() string {
	if len(c.Cycle) < 2 {
		return strings.Join(c.Cycle, "|")
	}
	ring := c.Cycle[:len(c.Cycle)-1]

	minIdx := 0
	for i, n := range ring {
		if n < ring[minIdx] {
			minIdx = i
		}
	}

	rotated := make([]string, 0, len(ring))
	rotated = append(rotated, ring[minIdx:]...)
	rotated = append(rotated, ring[:minIdx]...)
	return strings.Join(rotated, "|")
}
