// ABOUTME: Package documentation for sample
// ABOUTME: Describes the canonical sample type and PCM format conversion

// Package sample defines the engine's canonical PCM sample type and the
// conversions into it from common upload formats.
//
// The canonical type is selected at build time: normalized float32 by
// default, signed 16-bit integer when building with the "aural16" tag.
// Saturation arithmetic and bit-format reporting follow the selection.
package sample
