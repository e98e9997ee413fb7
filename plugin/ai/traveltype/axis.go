// Package traveltype holds the 16-type travel personality registry and the
// quiz scoring engines that reduce answer sequences into a type code.
package traveltype

// Axis identifies one of the four independent personality dimensions.
type Axis string

const (
	AxisPeople   Axis = "people"
	AxisWorld    Axis = "world"
	AxisDecision Axis = "decision"
	AxisTime     Axis = "time"
)

// axisOrder is the fixed concatenation order for code composition.
var axisOrder = [4]Axis{AxisPeople, AxisWorld, AxisDecision, AxisTime}

// letterPair holds the two opposing poles of an axis.
// The first letter is the positive pole for scale-mode aggregation.
type letterPair struct {
	first  byte
	second byte
}

var axisLetters = map[Axis]letterPair{
	AxisPeople:   {'G', 'S'}, // group vs solo
	AxisWorld:    {'R', 'D'}, // rooted vs discovery
	AxisDecision: {'L', 'H'}, // logic vs heart
	AxisTime:     {'P', 'F'}, // planned vs free-flow
}

// Letters returns the two legal pole letters for an axis, first pole first.
func (a Axis) Letters() (string, string) {
	p := axisLetters[a]
	return string(p.first), string(p.second)
}

// axisResolver resolves one axis to its winning pole letter.
type axisResolver func(axis Axis, pair letterPair) byte
