// Package actor holds the identity interactions are recorded under.
package actor

import (
	"strings"
	"sync/atomic"
)

// Guest is the actor used when nobody is signed in.
const Guest = "guest"

// Provider supplies the current actor id.
type Provider interface {
	ActorID() string
}

// Current is a single active actor. Set replaces it atomically; nothing is
// merged or migrated because events are tagged with the actor, not
// partitioned by it.
type Current struct {
	id atomic.Pointer[string]
}

// NewCurrent returns a Current holding id (Guest when blank).
func NewCurrent(id string) *Current {
	c := &Current{}
	c.Set(id)
	return c
}

// ActorID implements Provider.
func (c *Current) ActorID() string {
	if p := c.id.Load(); p != nil {
		return *p
	}
	return Guest
}

// Set switches the active actor, returning the previous one.
func (c *Current) Set(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		id = Guest
	}
	prev := c.id.Swap(&id)
	if prev == nil {
		return Guest
	}
	return *prev
}

// Static is a fixed Provider.
type Static string

// ActorID implements Provider.
func (s Static) ActorID() string { return string(s) }
