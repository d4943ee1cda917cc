package board

import (
	"context"
	"fmt"

	"github.com/evanschultz/plank/internal/domain"
)

// ListView shows the projects of one status and accepts dropped cards.
type ListView struct {
	mount     mount
	surface   Surface
	store     ProjectStore
	status    domain.Status
	cardHost  string
	cards     []*CardView
	droppable bool
}

// NewListView mounts a list for status at the end of the app host and subscribes it to store.
func NewListView(surface Surface, store ProjectStore, status domain.Status) *ListView {
	l := &ListView{
		mount:    newMount(surface, TemplateList, HostApp, InsertAtEnd, string(status)+"-projects"),
		surface:  surface,
		store:    store,
		status:   status,
		cardHost: CardHost(status),
	}
	l.mount.handle.SetText(SlotList, l.cardHost)
	l.mount.handle.SetText(SlotTitle, status.Heading())
	store.Subscribe(l.render)
	return l
}

// CardHost returns the host id cards of status are mounted into.
func CardHost(status domain.Status) string {
	return string(status) + "-projects-list"
}

// Status returns the status this list shows.
func (l *ListView) Status() domain.Status {
	return l.status
}

// Cards returns the currently rendered cards in snapshot order.
func (l *ListView) Cards() []*CardView {
	return append([]*CardView(nil), l.cards...)
}

// Droppable reports whether the drop zone is marked.
func (l *ListView) Droppable() bool {
	return l.droppable
}

// render rebuilds the card set from a full store snapshot.
func (l *ListView) render(projects []domain.Project) {
	l.surface.Clear(l.cardHost)
	l.cards = l.cards[:0]
	for _, project := range projects {
		if project.Status != l.status {
			continue
		}
		l.cards = append(l.cards, NewCardView(l.surface, l.cardHost, project))
	}
}

// DragOver marks the zone when the payload is plain text and reports
// whether the drop is allowed.
func (l *ListView) DragOver(dt *DataTransfer) bool {
	types := dt.Types()
	if len(types) == 0 || types[0] != MIMEPlainText {
		return false
	}
	l.setDroppable(true)
	return true
}

// DragLeave unmarks the zone.
func (l *ListView) DragLeave() {
	l.setDroppable(false)
}

// Drop moves the dragged project into this list. Ids the store does not know are ignored.
func (l *ListView) Drop(ctx context.Context, dt *DataTransfer) error {
	l.setDroppable(false)
	id := dt.GetData(MIMEPlainText)
	if id == "" {
		return nil
	}
	known, err := l.store.Has(ctx, id)
	if err != nil {
		return fmt.Errorf("drop project %q: %w", id, err)
	}
	if !known {
		return nil
	}
	if err := l.store.Move(ctx, id, l.status); err != nil {
		return fmt.Errorf("drop project %q: %w", id, err)
	}
	return nil
}

// setDroppable updates the mark on the zone.
func (l *ListView) setDroppable(marked bool) {
	l.droppable = marked
	l.mount.handle.SetMarked(marked)
}
