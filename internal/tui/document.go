package tui

import (
	"github.com/evanschultz/plank/internal/board"
)

// element is one mounted template instance inside a host.
type element struct {
	template string
	id       string
	text     map[string]string
	marked   bool
}

// ID returns the element id.
func (e *element) ID() string {
	return e.id
}

// SetID replaces the element id.
func (e *element) SetID(id string) {
	e.id = id
}

// SetText stores the text of one slot.
func (e *element) SetText(slot, text string) {
	e.text[slot] = text
}

// SetMarked toggles the highlight flag.
func (e *element) SetMarked(marked bool) {
	e.marked = marked
}

// slot returns the text of one slot, empty when unset.
func (e *element) slot(name string) string {
	return e.text[name]
}

// document is the in-memory render tree the board views mount into.
type document struct {
	hosts map[string][]*element
}

// newDocument constructs an empty document.
func newDocument() *document {
	return &document{hosts: map[string][]*element{}}
}

// Render instantiates template inside host at pos and returns its handle.
func (d *document) Render(template, host string, pos board.Position) board.Handle {
	el := &element{template: template, text: map[string]string{}}
	if pos == board.InsertAtStart {
		d.hosts[host] = append([]*element{el}, d.hosts[host]...)
	} else {
		d.hosts[host] = append(d.hosts[host], el)
	}
	return el
}

// Clear removes every element mounted in host.
func (d *document) Clear(host string) {
	delete(d.hosts, host)
}

// children returns the elements of host in display order.
func (d *document) children(host string) []*element {
	return d.hosts[host]
}

// byTemplate returns the elements of host instantiated from template.
func (d *document) byTemplate(host, template string) []*element {
	out := make([]*element, 0, len(d.hosts[host]))
	for _, el := range d.hosts[host] {
		if el.template == template {
			out = append(out, el)
		}
	}
	return out
}

// find returns the first element of host with id.
func (d *document) find(host, id string) (*element, bool) {
	for _, el := range d.hosts[host] {
		if el.id == id {
			return el, true
		}
	}
	return nil, false
}

// alertState records the last alert raised by a board view until the user dismisses it.
type alertState struct {
	message string
	pending bool
}

// Alert implements board.Alerter.
func (a *alertState) Alert(message string) {
	a.message = message
	a.pending = true
}

// dismiss clears the pending alert.
func (a *alertState) dismiss() {
	a.pending = false
	a.message = ""
}
