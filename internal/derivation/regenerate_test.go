package derivation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotation_CounterZeroIsIdentity(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, Rotation{}.Order(4, 0))
}

func TestRotation_RotatesLeftByCounter(t *testing.T) {
	skills := []string{"Python", "React", "SQL", "AWS"}
	got := reorder(skills, Rotation{}.Order(len(skills), 1))
	assert.Equal(t, []string{"React", "SQL", "AWS", "Python"}, got)
}

func TestRotation_WrapsAtListLength(t *testing.T) {
	skills := []string{"Python", "React", "SQL", "AWS"}
	got := reorder(skills, Rotation{}.Order(len(skills), 4))
	assert.Equal(t, skills, got)

	got = reorder(skills, Rotation{}.Order(len(skills), 5))
	assert.Equal(t, []string{"React", "SQL", "AWS", "Python"}, got)
}

func TestRotation_HandlesNegativeCounter(t *testing.T) {
	assert.Equal(t, []int{2, 0, 1}, Rotation{}.Order(3, -1))
}

func TestRotation_EmptyList(t *testing.T) {
	assert.Empty(t, Rotation{}.Order(0, 3))
}

func TestRotation_IsDeterministic(t *testing.T) {
	first := Rotation{}.Order(6, 2)
	second := Rotation{}.Order(6, 2)
	assert.Equal(t, first, second)
}
