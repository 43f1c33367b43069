// ABOUTME: Tests for canonical sample conversion
// ABOUTME: Round-trip and saturation checks for the default float32 build

//go:build !aural16

package sample

import (
	"math"
	"testing"
)

func TestInt16RoundTrip(t *testing.T) {
	// 16-bit PCM through the canonical format and back stays within +-1 LSB.
	values := []int16{-32768, -32767, -12345, -1, 0, 1, 256, 12345, 32766, 32767}
	for _, x := range values {
		got := ToInt16(FromInt16(x))
		diff := int(got) - int(x)
		if diff < -1 || diff > 1 {
			t.Errorf("round trip %d -> %d, diff %d", x, got, diff)
		}
	}
}

func TestUint8Conversion(t *testing.T) {
	tests := []struct {
		in   uint8
		want float32
	}{
		{128, 0},
		{0, -1},
		{255, 127.0 / 128.0},
		{192, 0.5},
	}
	for _, tt := range tests {
		if got := FromUint8(tt.in); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("FromUint8(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInt8Conversion(t *testing.T) {
	if got := FromInt8(-128); got != -1 {
		t.Errorf("FromInt8(-128) = %v, want -1", got)
	}
	if got := FromInt8(64); got != 0.5 {
		t.Errorf("FromInt8(64) = %v, want 0.5", got)
	}
}

func TestFloat32Saturates(t *testing.T) {
	if got := FromFloat32(3.5); got != 1 {
		t.Errorf("FromFloat32(3.5) = %v, want 1", got)
	}
	if got := FromFloat32(-2); got != -1 {
		t.Errorf("FromFloat32(-2) = %v, want -1", got)
	}
	if got := FromFloat32(0.25); got != 0.25 {
		t.Errorf("FromFloat32(0.25) = %v, want 0.25", got)
	}
}

func TestSaturate(t *testing.T) {
	if got := Saturate(1.7); got != 1 {
		t.Errorf("Saturate(1.7) = %v", got)
	}
	if got := Saturate(-1.7); got != -1 {
		t.Errorf("Saturate(-1.7) = %v", got)
	}
}

func TestConvertPreservesInterleaving(t *testing.T) {
	in := []int16{100, -100, 200, -200}
	out := ConvertInt16(in)
	if len(out) != len(in) {
		t.Fatalf("length %d, want %d", len(out), len(in))
	}
	for i, x := range in {
		if ToInt16(out[i]) != x {
			t.Errorf("index %d: got %v, want %v", i, ToInt16(out[i]), x)
		}
	}
}
