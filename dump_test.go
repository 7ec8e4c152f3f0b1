package recipebook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFdump(t *testing.T) {
	q := 2.0
	var buf bytes.Buffer
	Fdump(&buf, Recipe{ID: "abc", Ingredients: []Ingredient{{Quantity: &q, Description: "flour"}}})

	out := buf.String()
	assert.Contains(t, out, "dump_test.go:")
	assert.Contains(t, out, `ID: (string) (len=3) "abc"`)
	assert.Contains(t, out, `Description: (string) (len=5) "flour"`)
	assert.NotContains(t, out, "0xc")
}
