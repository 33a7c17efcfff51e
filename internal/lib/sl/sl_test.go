package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	a := Err(errors.New("boom"))
	assert.Equal(t, "error", a.Key)
	assert.Equal(t, "boom", a.Value.String())
}

func TestSecretNeverLogsValue(t *testing.T) {
	a := Secret("aadhaar_otp", "123456")
	assert.Equal(t, "aadhaar_otp", a.Key)
	assert.Equal(t, "<set>", a.Value.String())

	a = Secret("aadhaar_otp", "")
	assert.Equal(t, "<empty>", a.Value.String())
}
