package hsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/umlstate/hsm"
)

// An orthogonal state (two or more regions) has no single default region,
// so attaching a vertex directly to the state rather than to one of its
// named regions is a programming error caught immediately, not deferred to
// Validate.
func TestPanicOrthogonalDefaultRegion(t *testing.T) {
	sm := hsm.NewStateMachine("panics", hsm.WithLogger(hsm.NewNopLogger()))
	s := hsm.NewState("s", sm)
	hsm.NewRegion("r1", s)
	hsm.NewRegion("r2", s)

	assert.PanicsWithValue(t,
		"state s is orthogonal (2 regions); specify an explicit Region",
		func() { hsm.NewState("child", s) },
	)
}
