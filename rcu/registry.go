package rcu

import "sync"

// registry is the intrusive doubly-linked list of readers registered with
// one domain. Using reader-owned links rather than a generic container
// keeps every node's identity and position stable across the sporadic
// lock releases the grace-period scan performs mid-pass.
type registry struct {
	mu   sync.Mutex
	head *ReaderTLS
}

func (r *registry) insert(tls *ReaderTLS) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tls.next = r.head
	tls.prev = nil
	if r.head != nil {
		r.head.prev = tls
	}
	r.head = tls
	tls.registered = true
}

func (r *registry) remove(tls *ReaderTLS) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !tls.registered {
		return
	}
	if tls.prev != nil {
		tls.prev.next = tls.next
	} else {
		r.head = tls.next
	}
	if tls.next != nil {
		tls.next.prev = tls.prev
	}
	tls.next, tls.prev = nil, nil
	tls.registered = false
}
