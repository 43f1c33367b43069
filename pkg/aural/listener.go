// ABOUTME: The singleton listener record
// ABOUTME: Per-output-channel ear emitters and rear attenuation

package aural

// listener is the receiving end of the 3D scene. Its channel emitters are
// the output ears; the solver sizes every source's parameter table against
// them.
type listener struct {
	obj             object3D
	rearAttenuation float32
}

func newListener() listener {
	return listener{
		obj:             newObject3D(),
		rearAttenuation: 0.8,
	}
}
