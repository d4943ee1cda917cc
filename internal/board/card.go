package board

import "github.com/evanschultz/plank/internal/domain"

// CardView renders one project and originates drags carrying its id.
type CardView struct {
	mount   mount
	project domain.Project
}

// NewCardView mounts a card for project at the end of host.
func NewCardView(surface Surface, host string, project domain.Project) *CardView {
	c := &CardView{
		mount:   newMount(surface, TemplateCard, host, InsertAtEnd, project.ID),
		project: project,
	}
	c.mount.handle.SetText(SlotTitle, project.Title)
	c.mount.handle.SetText(SlotPeople, project.PeopleLabel()+" assigned")
	c.mount.handle.SetText(SlotDescription, project.Description)
	return c
}

// Project returns the snapshot this card was rendered from.
func (c *CardView) Project() domain.Project {
	return c.project
}

// DragStart attaches the project id as a plain-text payload.
func (c *CardView) DragStart(dt *DataTransfer) {
	dt.SetData(MIMEPlainText, c.project.ID)
	dt.EffectAllowed = EffectMove
}

// DragEnd is observational; the list that received the drop already updated the store.
func (c *CardView) DragEnd(*DataTransfer) {}
