package cache

// node is an entry in the recency list.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// list is a circular doubly linked list with a sentinel root.
// Front is most recently used.
type list[K comparable, V any] struct {
	root node[K, V]
}

func (l *list[K, V]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
}

func (l *list[K, V]) pushFront(key K, value V) *node[K, V] {
	n := &node[K, V]{key: key, value: value}
	l.insertAfter(n, &l.root)
	return n
}

func (l *list[K, V]) insertAfter(n, at *node[K, V]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *list[K, V]) remove(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

func (l *list[K, V]) moveToFront(n *node[K, V]) {
	if l.root.next == n {
		return
	}
	l.remove(n)
	l.insertAfter(n, &l.root)
}

// back returns the least recently used node, or nil when empty.
func (l *list[K, V]) back() *node[K, V] {
	if l.root.prev == &l.root {
		return nil
	}
	return l.root.prev
}
