package input

// Binding owns one tap for one mount cycle along with the reusable buffer
// snapshots are written to.
type Binding struct {
	tap      Tap
	buf      Snapshot
	released bool
}

// Bind acquires a tap from src. It reports false, without error, when src is
// nil or exposes no tap.
func Bind(src Source) (*Binding, bool) {
	if src == nil {
		return nil, false
	}

	tap, ok := src.Analyser()
	if !ok || tap == nil {
		return nil, false
	}

	return &Binding{
		tap: tap,
		buf: make(Snapshot, tap.Len()),
	}, true
}

// Len returns the snapshot length.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.buf)
}

// Snapshot fills the reusable buffer with the latest samples and returns it.
// The returned slice is overwritten by the next call.
func (b *Binding) Snapshot() Snapshot {
	if b == nil || b.released {
		return nil
	}

	b.tap.Fill(b.buf)
	return b.buf
}

// Release disconnects the tap. Calling it again, or on a nil Binding, does
// nothing.
func (b *Binding) Release() {
	if b == nil || b.released {
		return
	}

	b.released = true
	b.tap.Disconnect()
}
