// ABOUTME: Single-producer single-consumer interleaved sample ring
// ABOUTME: Overwrites oldest samples on overrun, pads silence on underrun

package ring

import (
	"sync"

	"github.com/Resonate-Protocol/aural-go/pkg/sample"
)

// Ring is a fixed-capacity queue of interleaved canonical samples between
// the engine mix thread and a backend's render path. The producer never
// blocks: when the queue is full the oldest pending samples are discarded.
// The consumer never starves: Drain always fills its destination, padding
// with silence.
type Ring struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf   []sample.Type
	read  int // next read index
	count int // valid samples
	done  bool
}

// New creates a ring holding capacity samples.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	r := &Ring{buf: make([]sample.Type, capacity)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Capacity returns the total sample capacity.
func (r *Ring) Capacity() int {
	return len(r.buf)
}

// Len returns the number of pending samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Write enqueues interleaved samples. If data exceeds the free space the
// oldest pending samples are dropped to make room; if data exceeds the
// whole capacity only its tail is kept. Write never blocks.
func (r *Ring) Write(data []sample.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.buf)
	if len(data) > capacity {
		data = data[len(data)-capacity:]
	}

	// Drop oldest to make room.
	overflow := r.count + len(data) - capacity
	if overflow > 0 {
		r.read = (r.read + overflow) % capacity
		r.count -= overflow
	}

	write := (r.read + r.count) % capacity
	n := copy(r.buf[write:], data)
	copy(r.buf, data[n:])
	r.count += len(data)

	r.cond.Signal()
	return true
}

// Drain copies exactly len(out) samples into out, padding with silence when
// fewer are pending.
func (r *Ring) Drain(out []sample.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(out)
	if n > r.count {
		n = r.count
	}

	capacity := len(r.buf)
	m := copy(out[:n], r.buf[r.read:min(r.read+n, capacity)])
	copy(out[m:n], r.buf[:n-m])
	r.read = (r.read + n) % capacity
	r.count -= n

	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// WaitPending blocks until at least one sample is pending or Close is
// called, and reports whether the ring is still open. Backends with their
// own render thread use it to avoid spinning on an empty ring.
func (r *Ring) WaitPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.count == 0 && !r.closed() {
		r.cond.Wait()
	}
	return !r.closed()
}

// Close wakes any waiting consumer. Subsequent Drain calls produce silence
// once pending samples run out.
func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = true
	r.cond.Broadcast()
}

func (r *Ring) closed() bool {
	return r.done
}
