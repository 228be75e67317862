package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	tbl := NewTable("ID", "NAME", "FILTER").
		Row("aB3dE5gH7jK", "Cases - AFP", `A{jLvbkuvPdZ6}=="AFP"`).
		Row("bC4eF6hI8kL", "Cases - Cholera", `A{jLvbkuvPdZ6}=="CHOLERA"`)

	out := tbl.String()
	assert.Equal(t, 2, tbl.Len())
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Cases - AFP")
	assert.Contains(t, out, `A{jLvbkuvPdZ6}=="CHOLERA"`)
}
