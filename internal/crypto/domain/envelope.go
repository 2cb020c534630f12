package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const (
	// IVSize is the length in bytes of the random initialization vector.
	IVSize = 16

	// TagSize is the length in bytes of the GCM authentication tag.
	TagSize = 16
)

// Envelope is the self-describing unit in which an encrypted field is stored.
//
// Internally the byte fields are raw; only Marshal and ParseEnvelope deal with
// the base64 JSON wire form:
//
//	{"keyVersion":1,"iv":"<b64>","authTag":"<b64>","ciphertext":"<b64>"}
type Envelope struct {
	KeyVersion int
	IV         []byte
	AuthTag    []byte
	Ciphertext []byte
}

// wireEnvelope is the persisted JSON shape. Pointers distinguish absent fields
// from zero values.
type wireEnvelope struct {
	KeyVersion *int    `json:"keyVersion"`
	IV         *string `json:"iv"`
	AuthTag    *string `json:"authTag"`
	Ciphertext *string `json:"ciphertext"`
}

// Validate checks that every field is present and has the expected size.
func (e *Envelope) Validate() error {
	switch {
	case e == nil:
		return ErrInvalidEnvelope
	case e.KeyVersion <= 0:
		return fmt.Errorf("%w: keyVersion must be a positive integer", ErrInvalidEnvelope)
	case len(e.IV) != IVSize:
		return fmt.Errorf("%w: iv must be %d bytes", ErrInvalidEnvelope, IVSize)
	case len(e.AuthTag) != TagSize:
		return fmt.Errorf("%w: authTag must be %d bytes", ErrInvalidEnvelope, TagSize)
	case len(e.Ciphertext) == 0:
		return fmt.Errorf("%w: ciphertext is missing", ErrInvalidEnvelope)
	}
	return nil
}

// Marshal serializes the envelope to its storage-ready JSON string.
func (e *Envelope) Marshal() (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	version := e.KeyVersion
	iv := base64.StdEncoding.EncodeToString(e.IV)
	tag := base64.StdEncoding.EncodeToString(e.AuthTag)
	ciphertext := base64.StdEncoding.EncodeToString(e.Ciphertext)

	data, err := json.Marshal(wireEnvelope{
		KeyVersion: &version,
		IV:         &iv,
		AuthTag:    &tag,
		Ciphertext: &ciphertext,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return string(data), nil
}

// ParseEnvelope decodes a stored JSON string into an Envelope.
// Any shape mismatch is reported as ErrInvalidEnvelope.
func ParseEnvelope(stored string) (*Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal([]byte(stored), &w); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidEnvelope)
	}
	if w.KeyVersion == nil || w.IV == nil || w.AuthTag == nil || w.Ciphertext == nil {
		return nil, fmt.Errorf(
			"%w: keyVersion, iv, authTag and ciphertext are required",
			ErrInvalidEnvelope,
		)
	}

	iv, err := base64.StdEncoding.DecodeString(*w.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: iv is not valid base64", ErrInvalidEnvelope)
	}
	tag, err := base64.StdEncoding.DecodeString(*w.AuthTag)
	if err != nil {
		return nil, fmt.Errorf("%w: authTag is not valid base64", ErrInvalidEnvelope)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(*w.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not valid base64", ErrInvalidEnvelope)
	}

	envelope := &Envelope{
		KeyVersion: *w.KeyVersion,
		IV:         iv,
		AuthTag:    tag,
		Ciphertext: ciphertext,
	}
	if err := envelope.Validate(); err != nil {
		return nil, err
	}
	return envelope, nil
}

// IsEncrypted reports whether value has the persisted envelope shape.
// It never fails: anything that does not parse is treated as legacy plaintext.
func IsEncrypted(value string) bool {
	_, err := ParseEnvelope(value)
	return err == nil
}
