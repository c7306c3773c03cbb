// Package overlay holds the fullscreen overlay state: a single slot that is
// either idle or showing one visualization.
package overlay

import "sync"

// Request asks the overlay to show a visualization.
type Request struct {
	TypeKey     string `json:"type_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// State is a snapshot of the overlay. Request is zero when Showing is false.
type State struct {
	Showing bool    `json:"showing"`
	Request Request `json:"request"`
}

// Controller is the single-slot state machine. A new Expand replaces
// whatever is showing; Dismiss always returns to idle.
type Controller struct {
	mu     sync.Mutex
	state  State
	subs   map[int]chan State
	nextID int
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{subs: make(map[int]chan State)}
}

// Expand shows req, replacing any visualization already showing.
func (c *Controller) Expand(req Request) State {
	return c.set(State{Showing: true, Request: req})
}

// Dismiss returns the overlay to idle.
func (c *Controller) Dismiss() State {
	return c.set(State{})
}

// Current returns the present state.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel receiving the current state followed by every
// later transition. Requests that leave the state unchanged are not sent.
// Slow readers only see the latest state. The returned func unsubscribes and
// closes the channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan State, 1)
	ch <- c.state
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

func (c *Controller) set(s State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	// A repeated expand or a dismiss while idle is not a transition.
	if s == c.state {
		return s
	}
	c.state = s
	for _, ch := range c.subs {
		// Drop the unread state, if any, so the latest one always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
	return s
}
