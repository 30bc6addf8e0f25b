package playlist

import "math/rand/v2"

// node owns a track and links into the chain.
type node struct {
	track Track
	prev  *node
	next  *node
}

// Cursor holds an ordered chain of tracks with one current position.
//
// The chain is doubly linked with hard boundaries: Next at the tail and
// Previous at the head are no-ops, never wraparounds. Cursor is not safe
// for concurrent use; the orchestrator owning it is its only mutator.
type Cursor struct {
	head    *node
	tail    *node
	current *node
	size    int
}

// NewCursor creates a new empty cursor.
func NewCursor() *Cursor {
	return &Cursor{}
}

// FromTracks builds a cursor from an ordered track list.
// Current starts at the first track.
func FromTracks(tracks []Track) *Cursor {
	c := NewCursor()
	for _, t := range tracks {
		c.Append(t)
	}
	return c
}

// Append adds a track at the tail. Appending to an empty cursor makes the
// track head, tail and current at once.
func (c *Cursor) Append(t Track) {
	n := &node{track: t}
	if c.head == nil {
		c.head = n
		c.tail = n
		c.current = n
	} else {
		n.prev = c.tail
		c.tail.next = n
		c.tail = n
	}
	c.size++
}

// Next moves current one step toward the tail.
// No-op when already at the tail or the cursor is empty.
func (c *Cursor) Next() {
	if c.current != nil && c.current.next != nil {
		c.current = c.current.next
	}
}

// Previous moves current one step toward the head.
// No-op when already at the head or the cursor is empty.
func (c *Cursor) Previous() {
	if c.current != nil && c.current.prev != nil {
		c.current = c.current.prev
	}
}

// Shuffle repositions current on a uniformly random node of the chain.
// No-op on an empty cursor.
func (c *Cursor) Shuffle() {
	if c.size == 0 {
		return
	}
	n := c.head
	for i := rand.IntN(c.size); i > 0; i-- {
		n = n.next
	}
	c.current = n
}

// Reset moves current back to the head.
func (c *Cursor) Reset() {
	c.current = c.head
}

// RemoveCurrent unlinks the current node from the chain.
// Current moves to the next track, or to the previous one when the tail
// was removed. Returns false if the cursor is empty.
func (c *Cursor) RemoveCurrent() bool {
	if c.current == nil {
		return false
	}

	n := c.current
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}

	if n.next != nil {
		c.current = n.next
	} else {
		c.current = n.prev
	}
	c.size--
	return true
}

// Current returns the track at the current position, or nil if empty.
func (c *Cursor) Current() *Track {
	if c.current == nil {
		return nil
	}
	return &c.current.track
}

// IsEmpty returns true if the cursor holds no tracks.
func (c *Cursor) IsEmpty() bool {
	return c.head == nil
}

// Len returns the number of tracks in the chain.
func (c *Cursor) Len() int {
	return c.size
}

// Tracks returns a copy of all tracks in chain order.
func (c *Cursor) Tracks() []Track {
	result := make([]Track, 0, c.size)
	for n := c.head; n != nil; n = n.next {
		result = append(result, n.track)
	}
	return result
}

// Contains reports whether a track with the same song identity as t
// exists in the chain.
func (c *Cursor) Contains(t Track) bool {
	for n := c.head; n != nil; n = n.next {
		if n.track.SameSong(t) {
			return true
		}
	}
	return false
}
