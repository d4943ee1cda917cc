package tui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/evanschultz/plank/internal/board"
	"github.com/evanschultz/plank/internal/domain"
)

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddProject
	modeAlert
	modeProjectInfo
)

// Column geometry. lipgloss v2 counts border and padding inside Style.Width,
// so a column occupies columnWidth()+colMargin cells and its text gets
// columnWidth()-colFrame of them.
const (
	colFrame  = 4
	colMargin = 1
)

// Model is the bubbletea program state: a document the board views mount
// into plus the selection, drag and modal state painted on top of it.
type Model struct {
	ctx context.Context

	ready  bool
	width  int
	height int

	status string

	help help.Model
	keys keyMap

	formConfig       board.FormConfig
	showDescriptions bool

	doc   *document
	alert *alertState
	form  *board.InputForm
	lists []*board.ListView

	mode         inputMode
	formFields   []board.Field
	formInputs   []textinput.Model
	formFocus    int
	selectedList int
	selectedCard int
	drag         *dragState
	infoProject  domain.Project

	markdown        *markdownRenderer
	copyToClipboard func(string) error
}

// dragState tracks one drag gesture from grab to drop.
type dragState struct {
	transfer *board.DataTransfer
	card     *board.CardView
	source   int
	over     int
	mouse    bool
	moved    bool
}

// NewModel mounts the form and one list per status on a fresh document bound to store.
func NewModel(store board.ProjectStore, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		ctx:              context.Background(),
		status:           "ready",
		help:             h,
		keys:             newKeyMap(),
		formConfig:       board.DefaultFormConfig(),
		showDescriptions: true,
		markdown:         &markdownRenderer{},
		copyToClipboard:  clipboard.WriteAll,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.doc = newDocument()
	m.alert = &alertState{}
	m.form = board.NewInputForm(m.doc, store, m.alert, m.formConfig)
	for _, status := range domain.Statuses() {
		m.lists = append(m.lists, board.NewListView(m.doc, store, status))
	}
	m.formFields = m.form.Fields()
	m.formInputs = newFormInputs(m.formFields)
	return m
}

// newFormInputs builds one text input per form field.
func newFormInputs(fields []board.Field) []textinput.Model {
	inputs := make([]textinput.Model, 0, len(fields))
	for _, field := range fields {
		placeholder, limit := "", 120
		switch field.Name {
		case board.FieldTitle:
			placeholder = "project title"
		case board.FieldDescription:
			placeholder = "what the project is about"
			limit = 500
		case board.FieldPeople:
			placeholder = "team size"
			limit = 4
		}
		inputs = append(inputs, newModalInput("", placeholder, "", limit))
	}
	return inputs
}

// newModalInput constructs modal input.
func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	default:
		if m.mode == modeAddProject && len(m.formInputs) > 0 {
			var cmd tea.Cmd
			m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// handleNormalModeKey handles board navigation and drag keys.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.drag != nil {
		return m.handleDragKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case m.help.ShowAll && msg.String() == "esc":
		m.help.ShowAll = false
		return m, nil
	case key.Matches(msg, m.keys.newProject):
		cmd := m.startProjectForm()
		return m, cmd
	case key.Matches(msg, m.keys.moveLeft):
		m.selectList(m.selectedList - 1)
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		m.selectList(m.selectedList + 1)
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		m.selectedCard--
		m.clampSelections()
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.selectedCard++
		m.clampSelections()
		return m, nil
	case key.Matches(msg, m.keys.grab):
		m.startDrag(false)
		return m, nil
	case key.Matches(msg, m.keys.cardInfo):
		card, ok := m.selectedCardView()
		if !ok {
			m.status = "no project selected"
			return m, nil
		}
		m.infoProject = card.Project()
		m.mode = modeProjectInfo
		return m, nil
	case key.Matches(msg, m.keys.copyID):
		m.copySelectedID()
		return m, nil
	case key.Matches(msg, m.keys.moveLeftTo):
		m.moveSelectedCard(-1)
		return m, nil
	case key.Matches(msg, m.keys.moveRightTo):
		m.moveSelectedCard(1)
		return m, nil
	default:
		return m, nil
	}
}

// handleDragKey handles keys while a card is held.
func (m Model) handleDragKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.cancelDrag("")
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.cancelDrag("drag cancelled")
		return m, nil
	case key.Matches(msg, m.keys.moveLeft):
		m.dragOver(clamp(m.drag.over-1, 0, len(m.lists)-1))
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		m.dragOver(clamp(m.drag.over+1, 0, len(m.lists)-1))
		return m, nil
	case key.Matches(msg, m.keys.drop):
		m.dropDrag()
		return m, nil
	default:
		return m, nil
	}
}

// handleInputModeKey handles keys for the modal overlays.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAlert:
		switch msg.String() {
		case "enter", "esc", "space", " ":
			m.alert.dismiss()
			m.mode = modeAddProject
			cmd := m.focusFormField(m.formFocus)
			return m, cmd
		}
		return m, nil

	case modeProjectInfo:
		switch {
		case msg.String() == "esc" || msg.String() == "enter" || key.Matches(msg, m.keys.cardInfo) || key.Matches(msg, m.keys.quit):
			m.mode = modeNone
		case key.Matches(msg, m.keys.copyID):
			m.copyProjectID(m.infoProject.ID)
		}
		return m, nil

	case modeAddProject:
		switch {
		case msg.Code == tea.KeyEscape || msg.String() == "esc":
			m.closeProjectForm()
			m.status = "form closed"
			return m, nil
		case msg.String() == "shift+tab" || msg.String() == "backtab" || msg.String() == "up":
			cmd := m.focusFormField(wrapIndex(m.formFocus, -1, len(m.formInputs)))
			return m, cmd
		case msg.String() == "tab" || msg.String() == "down":
			cmd := m.focusFormField(wrapIndex(m.formFocus, 1, len(m.formInputs)))
			return m, cmd
		case msg.Code == tea.KeyEnter || msg.String() == "enter":
			return m.submitProjectForm()
		default:
			var cmd tea.Cmd
			m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
			m.syncFormValue(m.formFocus)
			return m, cmd
		}
	}
	return m, nil
}

// startProjectForm opens the project form with whatever values it already holds.
func (m *Model) startProjectForm() tea.Cmd {
	m.mode = modeAddProject
	m.help.ShowAll = false
	m.status = "new project"
	for i, field := range m.formFields {
		m.formInputs[i].SetValue(m.form.Value(field.Name))
	}
	return m.focusFormField(m.formFocus)
}

// closeProjectForm hides the form. Entered values stay on the form.
func (m *Model) closeProjectForm() {
	m.mode = modeNone
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
}

// focusFormField focuses one form input.
func (m *Model) focusFormField(idx int) tea.Cmd {
	if len(m.formInputs) == 0 {
		return nil
	}
	idx = clamp(idx, 0, len(m.formInputs)-1)
	m.formFocus = idx
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	return m.formInputs[idx].Focus()
}

// syncFormValue copies one input value into the form.
func (m *Model) syncFormValue(idx int) {
	if idx < 0 || idx >= len(m.formFields) {
		return
	}
	m.form.SetValue(m.formFields[idx].Name, m.formInputs[idx].Value())
}

// submitProjectForm submits the form and reacts to the outcome.
func (m Model) submitProjectForm() (tea.Model, tea.Cmd) {
	for i := range m.formInputs {
		m.syncFormValue(i)
	}
	err := m.form.Submit(m.ctx)
	var verr *board.ValidationError
	switch {
	case errors.As(err, &verr):
		if m.alert.pending {
			m.mode = modeAlert
			for i := range m.formInputs {
				m.formInputs[i].Blur()
			}
		}
		m.status = verr.Error()
		return m, nil
	case err != nil:
		m.status = "add project failed: " + err.Error()
		return m, nil
	}
	for i := range m.formInputs {
		m.formInputs[i].SetValue("")
	}
	m.formFocus = 0
	m.closeProjectForm()
	if idx, ok := m.listIndex(domain.StatusActive); ok {
		m.selectedList = idx
		m.selectedCard = len(m.lists[idx].Cards()) - 1
	}
	m.clampSelections()
	m.status = "project added"
	return m, nil
}

// selectList moves the list selection and resets the card cursor when it changes.
func (m *Model) selectList(idx int) {
	idx = clamp(idx, 0, len(m.lists)-1)
	if idx != m.selectedList {
		m.selectedList = idx
		m.selectedCard = 0
	}
	m.clampSelections()
}

// clampSelections clamps selections.
func (m *Model) clampSelections() {
	if len(m.lists) == 0 {
		m.selectedList = 0
		m.selectedCard = 0
		return
	}
	m.selectedList = clamp(m.selectedList, 0, len(m.lists)-1)
	m.selectedCard = clamp(m.selectedCard, 0, len(m.lists[m.selectedList].Cards())-1)
}

// listIndex returns the index of the list showing status.
func (m Model) listIndex(status domain.Status) (int, bool) {
	for idx, list := range m.lists {
		if list.Status() == status {
			return idx, true
		}
	}
	return 0, false
}

// selectedCardView returns the card under the cursor.
func (m Model) selectedCardView() (*board.CardView, bool) {
	if len(m.lists) == 0 {
		return nil, false
	}
	cards := m.lists[clamp(m.selectedList, 0, len(m.lists)-1)].Cards()
	if len(cards) == 0 {
		return nil, false
	}
	return cards[clamp(m.selectedCard, 0, len(cards)-1)], true
}

// focusProject points the card cursor of the selected list at id.
func (m *Model) focusProject(id string) {
	for idx, card := range m.lists[m.selectedList].Cards() {
		if card.Project().ID == id {
			m.selectedCard = idx
			return
		}
	}
	m.clampSelections()
}

// startDrag picks up the selected card.
func (m *Model) startDrag(mouse bool) bool {
	card, ok := m.selectedCardView()
	if !ok {
		m.status = "no project selected"
		return false
	}
	dt := board.NewDataTransfer()
	card.DragStart(dt)
	m.drag = &dragState{
		transfer: dt,
		card:     card,
		source:   m.selectedList,
		over:     -1,
		mouse:    mouse,
	}
	m.dragOver(m.selectedList)
	m.status = "dragging " + card.Project().Title
	return true
}

// dragOver moves the hovered drop zone to idx; -1 leaves every zone.
func (m *Model) dragOver(idx int) {
	if m.drag == nil || idx == m.drag.over {
		return
	}
	if m.drag.over >= 0 {
		m.lists[m.drag.over].DragLeave()
		m.drag.moved = true
	}
	m.drag.over = -1
	if idx < 0 || idx >= len(m.lists) {
		return
	}
	if m.lists[idx].DragOver(m.drag.transfer) {
		m.drag.over = idx
	}
}

// dropDrag drops the held card on the hovered list.
func (m *Model) dropDrag() {
	d := m.drag
	if d == nil {
		return
	}
	m.drag = nil
	defer d.card.DragEnd(d.transfer)
	if d.over < 0 {
		m.status = "drop cancelled"
		return
	}
	target := m.lists[d.over]
	project := d.card.Project()
	if err := target.Drop(m.ctx, d.transfer); err != nil {
		m.status = "move failed: " + err.Error()
		return
	}
	m.selectedList = d.over
	m.focusProject(project.ID)
	m.status = fmt.Sprintf("moved %q to %s", project.Title, strings.ToLower(target.Status().Heading()))
}

// cancelDrag abandons the held card without touching the store.
func (m *Model) cancelDrag(status string) {
	d := m.drag
	if d == nil {
		return
	}
	m.drag = nil
	if d.over >= 0 {
		m.lists[d.over].DragLeave()
	}
	d.card.DragEnd(d.transfer)
	if status != "" {
		m.status = status
	}
}

// moveSelectedCard runs a whole drag gesture onto the list delta steps away.
func (m *Model) moveSelectedCard(delta int) {
	target := m.selectedList + delta
	if target < 0 || target >= len(m.lists) {
		m.status = "no list in that direction"
		return
	}
	if !m.startDrag(false) {
		return
	}
	m.dragOver(target)
	m.dropDrag()
}

// copySelectedID copies the id of the selected card.
func (m *Model) copySelectedID() {
	card, ok := m.selectedCardView()
	if !ok {
		m.status = "no project selected"
		return
	}
	m.copyProjectID(card.Project().ID)
}

// copyProjectID writes id to the clipboard.
func (m *Model) copyProjectID(id string) {
	if err := m.copyToClipboard(id); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied id " + id
}

// handleMouseClick selects the list under the pointer and picks up the card under it.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll || m.mode != modeNone || msg.Button != tea.MouseLeft {
		return m, nil
	}
	listIdx, ok := m.listIndexAt(msg.X)
	if !ok {
		return m, nil
	}
	m.cancelDrag("")
	m.selectList(listIdx)
	cardIdx, ok := m.cardIndexAt(listIdx, msg.Y)
	if !ok {
		return m, nil
	}
	m.selectedCard = cardIdx
	m.startDrag(true)
	return m, nil
}

// handleMouseMotion moves a mouse drag over the list under the pointer.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if m.drag == nil || !m.drag.mouse {
		return m, nil
	}
	idx, ok := m.listIndexAt(msg.X)
	if !ok {
		idx = -1
	}
	m.dragOver(idx)
	return m, nil
}

// handleMouseRelease drops a mouse drag on the list under the pointer.
// A release that never left the source list is a plain click.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if m.drag == nil || !m.drag.mouse {
		return m, nil
	}
	idx, ok := m.listIndexAt(msg.X)
	if !ok {
		idx = -1
	}
	m.dragOver(idx)
	if !m.drag.moved {
		title := m.drag.card.Project().Title
		m.cancelDrag("")
		m.status = "selected " + title
		return m, nil
	}
	m.dropDrag()
	return m, nil
}

// handleMouseWheel moves the card cursor.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll || m.mode != modeNone || m.drag != nil {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.selectedCard--
	case tea.MouseWheelDown:
		m.selectedCard++
	}
	m.clampSelections()
	return m, nil
}

// listIndexAt maps a column to the list rendered there.
func (m Model) listIndexAt(x int) (int, bool) {
	if x < 0 || len(m.lists) == 0 {
		return 0, false
	}
	idx := x / (m.columnWidth() + colMargin)
	if idx >= len(m.lists) {
		return 0, false
	}
	return idx, true
}

// cardIndexAt maps a row inside list listIdx to the card rendered there.
func (m Model) cardIndexAt(listIdx, y int) (int, bool) {
	row := y - m.cardsTop()
	if row < 0 {
		return 0, false
	}
	idx := row/m.cardHeight() + m.scrollTop(listIdx)
	if idx >= len(m.lists[listIdx].Cards()) {
		return 0, false
	}
	return idx, true
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// render paints the document, the status line and any overlay.
func (m Model) render() string {
	if !m.ready {
		return "loading..."
	}
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("plank") + statusStyle.Render("  ["+m.modeLabel()+"]")
	if m.drag != nil {
		header += statusStyle.Render("  holding: " + truncate(m.drag.card.Project().Title, 32))
	}

	listEls := m.doc.byTemplate(board.HostApp, board.TemplateList)
	columnViews := make([]string, 0, len(listEls))
	for idx, el := range listEls {
		columnViews = append(columnViews, m.renderColumn(idx, el, accent, muted, dim))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)

	sections := []string{header, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	fullContent := content + "\n" + helpLine

	overlay := m.renderModeOverlay(accent, muted, m.width-8)
	if m.help.ShowAll {
		overlay = m.renderHelpOverlay(accent, muted, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}
	return fullContent
}

// renderColumn paints one mounted list and the cards mounted in its host.
func (m Model) renderColumn(idx int, el *element, accent, muted, dim color.Color) string {
	drop := lipgloss.Color("212")
	colWidth := m.columnWidth()
	textWidth := max(1, colWidth-colFrame-2)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1).
		MarginRight(colMargin).
		Width(colWidth)
	switch {
	case el.marked:
		style = style.BorderForeground(drop).BorderStyle(lipgloss.DoubleBorder())
	case idx == m.selectedList:
		style = style.BorderForeground(accent)
	}
	colTitle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	heldStyle := lipgloss.NewStyle().Foreground(muted).Italic(true)
	subStyle := lipgloss.NewStyle().Foreground(muted)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	cards := m.doc.children(el.slot(board.SlotList))
	lines := []string{colTitle.Render(fmt.Sprintf("%s (%d)", el.slot(board.SlotTitle), len(cards))), ""}
	innerHeight := m.columnInnerHeight()
	if len(cards) == 0 {
		lines = append(lines, emptyStyle.Render("(no projects)"))
	}
	top := m.scrollTop(idx)
	visible := m.visibleCards()
	for cardIdx := top; cardIdx < len(cards) && cardIdx < top+visible; cardIdx++ {
		card := cards[cardIdx]
		selected := idx == m.selectedList && cardIdx == m.selectedCard
		held := m.drag != nil && m.drag.card.Project().ID == card.ID()
		prefix := "  "
		switch {
		case held:
			prefix = "⇢ "
		case selected:
			prefix = "│ "
		}
		title := prefix + truncate(card.slot(board.SlotTitle), textWidth)
		switch {
		case held:
			title = heldStyle.Render(title)
		case selected:
			title = selectedStyle.Render(title)
		}
		lines = append(lines, title, prefix+subStyle.Render(card.slot(board.SlotPeople)))
		if m.showDescriptions {
			lines = append(lines, prefix+emptyStyle.Render(truncate(card.slot(board.SlotDescription), textWidth)))
		}
		lines = append(lines, "")
	}
	return style.Render(fitLines(strings.Join(lines, "\n"), innerHeight))
}

// renderModeOverlay renders the modal for the active input mode.
func (m Model) renderModeOverlay(accent, muted color.Color, maxWidth int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)

	switch m.mode {
	case modeAddProject:
		if maxWidth > 0 {
			boxStyle = boxStyle.Width(clamp(maxWidth, 24, 72))
		}
		lines := []string{titleStyle.Render("New Project")}
		formEl, _ := m.doc.find(board.HostApp, board.FormID)
		fieldWidth := max(18, clamp(maxWidth, 24, 72)-18)
		for i, in := range m.formInputs {
			label := m.formFields[i].Label
			if formEl != nil && formEl.slot(m.formFields[i].Name) != "" {
				label = formEl.slot(m.formFields[i].Name)
			}
			labelStyle := lipgloss.NewStyle().Foreground(muted)
			if i == m.formFocus {
				labelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
			}
			in.SetWidth(fieldWidth)
			lines = append(lines, labelStyle.Render(fmt.Sprintf("%-13s", label+":"))+" "+in.View())
		}
		lines = append(lines, hintStyle.Render("enter save • esc close • tab next field"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeAlert:
		alertColor := lipgloss.Color("203")
		if maxWidth > 0 {
			boxStyle = boxStyle.Width(clamp(maxWidth, 24, 56))
		}
		boxStyle = boxStyle.BorderForeground(alertColor)
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(alertColor).Render("Alert"),
			m.alert.message,
			hintStyle.Render("enter dismiss"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeProjectInfo:
		width := clamp(maxWidth, 24, 76)
		if maxWidth > 0 {
			boxStyle = boxStyle.Width(width)
		}
		lines := []string{
			titleStyle.Render("Project Info"),
			hintStyle.Render("id: " + m.infoProject.ID),
			m.markdown.render(projectMarkdown(m.infoProject), width-4),
			hintStyle.Render("esc close • y copy id"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))
	}
	return ""
}

// renderHelpOverlay renders the full key help.
func (m Model) renderHelpOverlay(accent, muted color.Color, maxWidth int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(clamp(maxWidth, 24, 96))
	}
	helpBubble := m.help
	helpBubble.ShowAll = true
	helpBubble.SetWidth(max(0, maxWidth-4))
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Help"),
		helpBubble.View(m.keys),
		lipgloss.NewStyle().Foreground(muted).Render("? or esc close"),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// modeLabel returns the header label of the current mode.
func (m Model) modeLabel() string {
	switch {
	case m.mode == modeAddProject:
		return "new-project"
	case m.mode == modeAlert:
		return "alert"
	case m.mode == modeProjectInfo:
		return "info"
	case m.drag != nil:
		return "drag"
	default:
		return "normal"
	}
}

// columnWidth returns the rendered width of one column, border and padding included.
func (m Model) columnWidth() int {
	w := 28
	if m.width > 0 && len(m.lists) > 0 {
		usable := m.width - len(m.lists)*colMargin
		if candidate := usable / len(m.lists); candidate > 0 {
			w = candidate
		}
	}
	return clamp(w, 20, 60)
}

// columnInnerHeight returns the number of content rows inside a column border.
func (m Model) columnInnerHeight() int {
	// header, spacer, status line, help border and help line, column borders
	return max(6, m.height-7)
}

// cardHeight returns the rows one card occupies including its separator.
func (m Model) cardHeight() int {
	if m.showDescriptions {
		return 4
	}
	return 3
}

// visibleCards returns how many cards fit in a column.
func (m Model) visibleCards() int {
	return max(1, (m.columnInnerHeight()-2)/m.cardHeight())
}

// scrollTop returns the first visible card of list idx.
func (m Model) scrollTop(idx int) int {
	if idx != m.selectedList {
		return 0
	}
	visible := m.visibleCards()
	if m.selectedCard >= visible {
		return m.selectedCard - visible + 1
	}
	return 0
}

// boardTop returns the row of the column top borders.
func (m Model) boardTop() int {
	// header + spacer
	return 2
}

// cardsTop returns the row of the first card line: border, list title and spacer.
func (m Model) cardsTop() int {
	return m.boardTop() + 3
}

// wrapIndex moves current by delta inside [0,total).
func wrapIndex(current, delta, total int) int {
	if total <= 0 {
		return 0
	}
	return ((current+delta)%total + total) % total
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
