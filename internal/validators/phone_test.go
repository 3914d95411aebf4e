package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+905550001122", NormalizePhone("+90 555 000 11 22"))
	assert.Equal(t, "+905550001122", NormalizePhone("+90 (555) 000-11-22"))
	assert.Equal(t, "05550001122", NormalizePhone("0555 000 11 22"))

	assert.Equal(t, "", NormalizePhone("not a phone"))
	assert.Equal(t, "", NormalizePhone("12345"))
	assert.Equal(t, "", NormalizePhone("+90555000112233445"))
	assert.Equal(t, "", NormalizePhone("555+0001122"))
}
