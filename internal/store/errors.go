package store

// errRingCap bounds how many recent failure messages a store keeps. Older
// entries are evicted first, so a long unattended session cannot grow the
// list without bound.
const errRingCap = 32

type errRing struct {
	entries []string
}

func (r *errRing) push(msg string) {
	r.entries = append(r.entries, msg)
	if len(r.entries) > errRingCap {
		r.entries = r.entries[len(r.entries)-errRingCap:]
	}
}

func (r *errRing) snapshot() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}
