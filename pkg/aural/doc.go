// ABOUTME: Package documentation for aural
// ABOUTME: Describes the real-time mixing engine and its positional audio layer

// Package aural is an embeddable real-time audio engine. It mixes any
// number of in-memory PCM buffers into a single output stream on a
// dedicated mix thread, with per-source transport, gain, pitch, panning,
// and an optional 3D layer adding distance attenuation, Doppler shift,
// per-channel panning and source directivity.
//
// Buffers and sources are addressed by opaque integer handles. All public
// methods are safe for concurrent use; the engine serializes state behind a
// single mutex shared with the mix loop.
//
// The canonical sample format is float32 by default; building with the
// "aural16" tag switches the engine to int16 samples throughout.
package aural
