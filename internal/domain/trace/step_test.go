package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenLeavesAndGroups(t *testing.T) {
	tr := Tree{
		Text("parsed input"),
		Group("pass 1",
			Text("combined like terms"),
			Group("factor",
				Text("extracted common factor 3"),
			),
		),
	}

	flat := tr.Flatten()
	assert.Equal(t, "parsed input", flat[0])

	group, ok := flat[1].([]interface{})
	assert.True(t, ok)
	assert.Equal(t, "pass 1", group[0])
	assert.Equal(t, "combined like terms", group[1])

	nestedGroup, ok := group[2].([]interface{})
	assert.True(t, ok)
	assert.Equal(t, "factor", nestedGroup[0])
	assert.Equal(t, "extracted common factor 3", nestedGroup[1])
}

func TestAppendDoesNotMutateOriginal(t *testing.T) {
	base := Tree{Text("a")}
	extended := base.Append(Text("b"))

	assert.Len(t, base, 1)
	assert.Len(t, extended, 2)
}
