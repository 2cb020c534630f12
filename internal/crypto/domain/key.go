// Package domain defines the key, envelope and error types of the field
// encryption layer.
package domain

import "time"

// KeySize is the required length in bytes of every field encryption key (AES-256).
const KeySize = 32

// Key is a versioned symmetric secret used to encrypt PII fields.
//
// Keys are immutable once loaded. Version numbers are positive, assigned by the
// operator and never reused. Material must not be mutated by callers.
type Key struct {
	Version     int
	Material    []byte
	ActivatedAt time.Time
	// Deprecated is true once a higher version is current. Deprecated keys are
	// still valid for decryption.
	Deprecated bool
}

// KeyInfo describes a loaded key without exposing its material.
type KeyInfo struct {
	Version     int       `json:"version"`
	ActivatedAt time.Time `json:"activated_at"`
	Deprecated  bool      `json:"deprecated"`
	Current     bool      `json:"current"`
}

// Info returns the non-secret description of the key.
func (k *Key) Info(currentVersion int) KeyInfo {
	return KeyInfo{
		Version:     k.Version,
		ActivatedAt: k.ActivatedAt,
		Deprecated:  k.Deprecated,
		Current:     k.Version == currentVersion,
	}
}

// Zero overwrites key material in place. Callers zero buffers they own once
// the key is no longer reachable; a published Key is never zeroed.
func Zero(material []byte) {
	clear(material)
}
