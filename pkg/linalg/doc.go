// ABOUTME: Package documentation for linalg
// ABOUTME: Describes the small linear-algebra toolkit used by the 3D audio layer

// Package linalg provides float32 3-vectors, 3x3 rotation matrices and 4x4
// affine transforms for positioning audio sources and listeners in space.
//
// Matrices are stored row-major. Column accessors return the basis vectors
// of a rotation, which is how the spatial layer derives right/up/forward
// directions from an object's pose.
package linalg
