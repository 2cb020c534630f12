package domain

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/mealguard/internal/errors"
)

func validEnvelope() *Envelope {
	return &Envelope{
		KeyVersion: 2,
		IV:         bytes.Repeat([]byte{0x01}, IVSize),
		AuthTag:    bytes.Repeat([]byte{0x02}, TagSize),
		Ciphertext: []byte("opaque-bytes"),
	}
}

func TestEnvelope_MarshalAndParse(t *testing.T) {
	envelope := validEnvelope()

	stored, err := envelope.Marshal()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(stored), &raw))
	assert.Len(t, raw, 4)
	assert.EqualValues(t, 2, raw["keyVersion"])
	assert.Equal(t, "AQEBAQEBAQEBAQEBAQEBAQ==", raw["iv"])

	parsed, err := ParseEnvelope(stored)
	require.NoError(t, err)
	assert.Equal(t, envelope, parsed)
}

func TestEnvelope_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *Envelope)
	}{
		{name: "zero key version", mutate: func(e *Envelope) { e.KeyVersion = 0 }},
		{name: "negative key version", mutate: func(e *Envelope) { e.KeyVersion = -1 }},
		{name: "missing iv", mutate: func(e *Envelope) { e.IV = nil }},
		{name: "short iv", mutate: func(e *Envelope) { e.IV = e.IV[:12] }},
		{name: "missing tag", mutate: func(e *Envelope) { e.AuthTag = nil }},
		{name: "missing ciphertext", mutate: func(e *Envelope) { e.Ciphertext = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := validEnvelope()
			tt.mutate(envelope)

			err := envelope.Validate()
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}

	var nilEnvelope *Envelope
	assert.ErrorIs(t, nilEnvelope.Validate(), ErrInvalidEnvelope)
}

func TestParseEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{name: "plaintext", stored: "555-0100"},
		{name: "empty string", stored: ""},
		{name: "json null", stored: "null"},
		{name: "json number", stored: "42"},
		{name: "missing authTag", stored: `{"keyVersion":1,"iv":"AQEBAQEBAQEBAQEBAQEBAQ==","ciphertext":"YQ=="}`},
		{name: "missing keyVersion", stored: `{"iv":"AQEBAQEBAQEBAQEBAQEBAQ==","authTag":"AgICAgICAgICAgICAgICAg==","ciphertext":"YQ=="}`},
		{name: "string keyVersion", stored: `{"keyVersion":"1","iv":"AQEBAQEBAQEBAQEBAQEBAQ==","authTag":"AgICAgICAgICAgICAgICAg==","ciphertext":"YQ=="}`},
		{name: "bad base64 iv", stored: `{"keyVersion":1,"iv":"%%%","authTag":"AgICAgICAgICAgICAgICAg==","ciphertext":"YQ=="}`},
		{name: "short tag", stored: `{"keyVersion":1,"iv":"AQEBAQEBAQEBAQEBAQEBAQ==","authTag":"AgIC","ciphertext":"YQ=="}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := ParseEnvelope(tt.stored)
			assert.Nil(t, envelope)
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}

func TestIsEncrypted(t *testing.T) {
	stored, err := validEnvelope().Marshal()
	require.NoError(t, err)

	assert.True(t, IsEncrypted(stored))
	assert.False(t, IsEncrypted("jane.doe@example.com"))
	assert.False(t, IsEncrypted(`{"keyVersion":1,"iv":"AQEBAQEBAQEBAQEBAQEBAQ==","ciphertext":"YQ=="}`))
	assert.False(t, IsEncrypted(`["keyVersion","iv","authTag","ciphertext"]`))
}
