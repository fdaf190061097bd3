package usecase

// Gate is a single-operation admission gate. Long-lived callers hold one and
// refuse to start an operation while another is in flight; the compiler
// itself stays stateless and reentrant.
type Gate struct {
	ch chan struct{}
}

func NewGate() *Gate {
	g := &Gate{ch: make(chan struct{}, 1)}
	g.ch <- struct{}{}
	return g
}

// TryAcquire claims the gate without blocking.
func (g *Gate) TryAcquire() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Release returns the gate. Must follow a successful TryAcquire.
func (g *Gate) Release() {
	select {
	case g.ch <- struct{}{}:
	default:
	}
}
