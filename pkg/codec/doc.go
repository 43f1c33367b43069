// ABOUTME: Package documentation for codec
// ABOUTME: Describes the decoders that feed PCM into engine buffers

// Package codec decodes common audio containers into interleaved float32
// PCM ready for upload into an aural engine buffer. The engine itself never
// touches files or containers; these loaders are the decoding collaborators
// in front of SetBufferDataFloat32.
//
// WAV, MP3, FLAC and Ogg Vorbis are supported, plus a bridge from any
// beep.Streamer.
package codec
