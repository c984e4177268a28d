package req

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Kind string `json:"kind" validate:"required,oneof=number color parity"`
	Pick string `json:"pick" validate:"required,max=8"`
}

func TestDecode(t *testing.T) {
	p, err := Decode[payload](strings.NewReader(`{"kind":"color","pick":"red"}`))
	require.NoError(t, err)
	assert.Equal(t, "color", p.Kind)

	_, err = Decode[payload](strings.NewReader(``))
	assert.EqualError(t, err, "empty request body")

	_, err = Decode[payload](strings.NewReader(`{"kind":"color","extra":1}`))
	assert.Error(t, err)
}

func TestDecodeValid(t *testing.T) {
	_, err := DecodeValid[payload](strings.NewReader(`{"kind":"color","pick":"red"}`))
	assert.NoError(t, err)

	_, err = DecodeValid[payload](strings.NewReader(`{"kind":"split","pick":"red"}`))
	assert.ErrorContains(t, err, "validation failed")

	_, err = DecodeValid[payload](strings.NewReader(`{"kind":"number"}`))
	assert.ErrorContains(t, err, "Pick")
}
