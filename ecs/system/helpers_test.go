package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := true
	for i := range want {
		ok = assert.InDelta(t, float64(want[i]), float64(got[i]), delta, msgAndArgs...) && ok
	}
	return ok
}

// assertQuatInDelta treats q and -q as the same rotation.
func assertQuatInDelta(t *testing.T, want, got mgl32.Quat, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if want.Dot(got) < 0 {
		got = got.Scale(-1)
	}
	ok := assert.InDelta(t, float64(want.W), float64(got.W), delta, msgAndArgs...)
	return assertVecInDelta(t, want.V, got.V, delta, msgAndArgs...) && ok
}
