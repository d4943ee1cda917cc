// Package board holds the project form, the status lists and their cards.
// Views never draw anything themselves: they mount templates on a Surface
// and write text into the returned handles.
package board

// Position selects where a mounted element is inserted in its host.
type Position int

// InsertAtEnd and InsertAtStart are the supported insert positions.
const (
	InsertAtEnd Position = iota
	InsertAtStart
)

// Template names understood by a Surface.
const (
	TemplateForm = "project-form"
	TemplateList = "project-list"
	TemplateCard = "project-card"
)

// HostApp is the root host every top-level view mounts into.
const HostApp = "app"

// Slot names written through Handle.SetText.
const (
	SlotTitle       = "title"
	SlotPeople      = "people"
	SlotDescription = "description"
	SlotList        = "list"
)

// Surface is the rendering collaborator views mount into.
type Surface interface {
	// Render instantiates template and inserts it into host at pos.
	Render(template, host string, pos Position) Handle
	// Clear removes every element from host.
	Clear(host string)
}

// Handle is one mounted element.
type Handle interface {
	ID() string
	SetID(id string)
	SetText(slot, text string)
	SetMarked(marked bool)
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(message string)

// Alert calls f(message).
func (f AlertFunc) Alert(message string) {
	f(message)
}

// mount is the shared template-instantiation capability views delegate to.
type mount struct {
	handle Handle
}

// newMount renders template into host and assigns id when one is given.
func newMount(surface Surface, template, host string, pos Position, id string) mount {
	handle := surface.Render(template, host, pos)
	if id != "" {
		handle.SetID(id)
	}
	return mount{handle: handle}
}
