package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/evanschultz/plank/internal/adapters/storage/memory"
	"github.com/evanschultz/plank/internal/app"
	"github.com/evanschultz/plank/internal/board"
	"github.com/evanschultz/plank/internal/domain"
)

func newTestStore() *app.Store {
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	return app.NewStore(memory.New(), ids, func() time.Time { return now })
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// applyMsg runs one Update. Returned commands are dropped: they only drive cursor blinking here.
func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = applyMsg(t, m, keyRune(r))
	}
	return m
}

func addProject(t *testing.T, store *app.Store, title string) domain.Project {
	t.Helper()
	p, err := store.Add(context.Background(), app.AddProjectInput{Title: title, Description: "a longer description", People: 3})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	return p
}

// columnStarts returns the screen column of every list's top-left border corner in the rendered frame.
func columnStarts(t *testing.T, m Model) []int {
	t.Helper()
	lines := strings.Split(ansi.Strip(m.render()), "\n")
	if len(lines) <= m.boardTop() {
		t.Fatalf("expected board rows in frame, got %d lines", len(lines))
	}
	row := lines[m.boardTop()]
	var starts []int
	for i, r := range row {
		if r == '╭' || r == '╔' {
			starts = append(starts, ansi.StringWidth(row[:i]))
		}
	}
	if len(starts) != len(m.lists) {
		t.Fatalf("expected %d column borders in %q, got %v", len(m.lists), row, starts)
	}
	return starts
}

func storeProjects(t *testing.T, store *app.Store) []domain.Project {
	t.Helper()
	projects, err := store.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects() error = %v", err)
	}
	return projects
}

func TestModelAddProjectThroughForm(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))

	m = applyMsg(t, m, keyRune('n'))
	if m.mode != modeAddProject {
		t.Fatalf("expected add-project mode, got %v", m.mode)
	}
	m = typeText(t, m, "Build shed")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "Construct garden shed")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "3")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeNone {
		t.Fatalf("expected form to close after save, got mode %v", m.mode)
	}
	projects := storeProjects(t, store)
	if len(projects) != 1 {
		t.Fatalf("expected one stored project, got %d", len(projects))
	}
	got := projects[0]
	if got.Title != "Build shed" || got.Description != "Construct garden shed" || got.People != 3 || got.Status != domain.StatusActive {
		t.Fatalf("unexpected stored project %#v", got)
	}
	if len(m.lists[0].Cards()) != 1 || len(m.lists[1].Cards()) != 0 {
		t.Fatalf("expected one active card and no finished card, got %d/%d", len(m.lists[0].Cards()), len(m.lists[1].Cards()))
	}
	out := m.render()
	for _, want := range []string{"Build shed", "3 people assigned", "ACTIVE PROJECTS (1)", "FINISHED PROJECTS (0)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected board to contain %q", want)
		}
	}
	for i, in := range m.formInputs {
		if in.Value() != "" {
			t.Fatalf("expected input %d to be cleared, got %q", i, in.Value())
		}
	}
}

func TestModelRejectedSubmissionShowsAlert(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))

	m = applyMsg(t, m, keyRune('n'))
	m = typeText(t, m, "Build shed")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "short")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "3")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeAlert {
		t.Fatalf("expected alert mode, got %v", m.mode)
	}
	if m.alert.message != board.InvalidInputMessage {
		t.Fatalf("unexpected alert message %q", m.alert.message)
	}
	if got := len(storeProjects(t, store)); got != 0 {
		t.Fatalf("expected store unchanged, got %d projects", got)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeAddProject || m.alert.pending {
		t.Fatalf("expected dismissed alert to return to the form, mode=%v pending=%v", m.mode, m.alert.pending)
	}
	if m.formInputs[0].Value() != "Build shed" || m.formInputs[1].Value() != "short" || m.formInputs[2].Value() != "3" {
		t.Fatalf("expected entered values to survive the alert")
	}
	if m.form.Value(board.FieldDescription) != "short" {
		t.Fatalf("expected form to keep description, got %q", m.form.Value(board.FieldDescription))
	}
}

func TestModelFormEscapeKeepsValues(t *testing.T) {
	m := loadReadyModel(t, NewModel(newTestStore()))
	m = applyMsg(t, m, keyRune('n'))
	m = typeText(t, m, "Half")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected esc to close the form, got %v", m.mode)
	}
	m = applyMsg(t, m, keyRune('n'))
	if m.formInputs[0].Value() != "Half" {
		t.Fatalf("expected reopened form to keep title, got %q", m.formInputs[0].Value())
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.formFocus != len(m.formInputs)-1 {
		t.Fatalf("expected shift+tab to wrap to the last field, got %d", m.formFocus)
	}
}

func TestModelFormConfigOption(t *testing.T) {
	store := newTestStore()
	cfg := board.DefaultFormConfig()
	cfg.Policy = board.RejectAll
	m := loadReadyModel(t, NewModel(store, WithFormConfig(cfg)))

	m = applyMsg(t, m, keyRune('n'))
	m = typeText(t, m, "Legacy")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "tiny")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = typeText(t, m, "2")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeNone {
		t.Fatalf("expected reject-all policy to accept a partly valid form, got mode %v", m.mode)
	}
	if got := len(storeProjects(t, store)); got != 1 {
		t.Fatalf("expected one stored project, got %d", got)
	}
}

func TestModelKeyboardDragMovesCard(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))
	addProject(t, store, "Ship")

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if m.drag == nil {
		t.Fatal("expected space to grab the selected card")
	}
	if !m.lists[0].Droppable() {
		t.Fatal("expected source list to be marked while hovered")
	}
	m = applyMsg(t, m, keyRune('l'))
	if m.lists[0].Droppable() || !m.lists[1].Droppable() {
		t.Fatalf("expected drag to move over finished list, got %v/%v", m.lists[0].Droppable(), m.lists[1].Droppable())
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if m.drag != nil {
		t.Fatal("expected drop to end the drag")
	}
	if m.lists[1].Droppable() {
		t.Fatal("expected drop to clear the mark")
	}
	projects := storeProjects(t, store)
	if projects[0].Status != domain.StatusFinished {
		t.Fatalf("expected project finished, got %q", projects[0].Status)
	}
	if m.selectedList != 1 || len(m.lists[1].Cards()) != 1 || len(m.lists[0].Cards()) != 0 {
		t.Fatalf("expected selection to follow the card into the finished list")
	}
}

func TestModelDragCancelLeavesStore(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))
	addProject(t, store, "Ship")

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.drag != nil || m.lists[0].Droppable() || m.lists[1].Droppable() {
		t.Fatal("expected cancel to clear drag state and marks")
	}
	if got := storeProjects(t, store)[0].Status; got != domain.StatusActive {
		t.Fatalf("expected project to stay active, got %q", got)
	}
}

func TestModelMoveShortcuts(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))
	addProject(t, store, "One")
	addProject(t, store, "Two")

	m = applyMsg(t, m, keyRune('j'))
	m = applyMsg(t, m, keyRune(']'))
	projects := storeProjects(t, store)
	if projects[0].Status != domain.StatusActive || projects[1].Status != domain.StatusFinished {
		t.Fatalf("expected only the second project to move, got %q/%q", projects[0].Status, projects[1].Status)
	}
	m = applyMsg(t, m, keyRune(']'))
	if !strings.Contains(m.status, "no list") {
		t.Fatalf("expected edge status, got %q", m.status)
	}
	m = applyMsg(t, m, keyRune('['))
	projects = storeProjects(t, store)
	if projects[1].Status != domain.StatusActive {
		t.Fatalf("expected second project back in active, got %q", projects[1].Status)
	}
	if got := len(m.lists[0].Cards()); got != 2 {
		t.Fatalf("expected two active cards, got %d", got)
	}
}

func TestModelMouseDragMovesCard(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))
	addProject(t, store, "Ship")

	m = applyMsg(t, m, tea.MouseClickMsg{X: 2, Y: m.cardsTop(), Button: tea.MouseLeft})
	if m.drag == nil || !m.drag.mouse {
		t.Fatal("expected press on a card to start a mouse drag")
	}
	finishedX := columnStarts(t, m)[1] + 1
	m = applyMsg(t, m, tea.MouseMotionMsg{X: finishedX, Y: m.cardsTop(), Button: tea.MouseLeft})
	if !m.lists[1].Droppable() || m.lists[0].Droppable() {
		t.Fatal("expected motion to hover the finished list")
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: finishedX, Y: m.cardsTop(), Button: tea.MouseLeft})
	if m.drag != nil {
		t.Fatal("expected release to end the drag")
	}
	if got := storeProjects(t, store)[0].Status; got != domain.StatusFinished {
		t.Fatalf("expected mouse drop to finish the project, got %q", got)
	}
}

func TestModelListIndexAtMatchesRenderedColumns(t *testing.T) {
	store := newTestStore()
	for _, width := range []int{60, 120, 200} {
		m := applyMsg(t, NewModel(store), tea.WindowSizeMsg{Width: width, Height: 40})
		starts := columnStarts(t, m)
		for idx, start := range starts {
			for _, x := range []int{start, start + 1, start + m.columnWidth() - 1} {
				got, ok := m.listIndexAt(x)
				if !ok || got != idx {
					t.Fatalf("width %d: listIndexAt(%d) = %d,%t, want %d", width, x, got, ok, idx)
				}
			}
		}
		if starts[1] != m.columnWidth()+colMargin {
			t.Fatalf("width %d: finished column at %d, want %d", width, starts[1], m.columnWidth()+colMargin)
		}
	}
}

func TestModelMouseDropAtFinishedLeftEdge(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))
	addProject(t, store, "Ship")

	edge := columnStarts(t, m)[1]
	m = applyMsg(t, m, tea.MouseClickMsg{X: 4, Y: m.cardsTop(), Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseMotionMsg{X: edge + 1, Y: m.cardsTop(), Button: tea.MouseLeft})
	if !m.lists[1].Droppable() {
		t.Fatal("expected the finished column edge to be a drop zone")
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: edge + 1, Y: m.cardsTop(), Button: tea.MouseLeft})
	if got := storeProjects(t, store)[0].Status; got != domain.StatusFinished {
		t.Fatalf("expected drop at the column edge to finish the project, got %q", got)
	}
}

func TestModelMouseClickWithoutMotionSelects(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store))
	addProject(t, store, "One")
	addProject(t, store, "Two")

	y := m.cardsTop() + m.cardHeight()
	m = applyMsg(t, m, tea.MouseClickMsg{X: 2, Y: y, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: 2, Y: y, Button: tea.MouseLeft})
	if m.drag != nil {
		t.Fatal("expected release to end the gesture")
	}
	if m.selectedCard != 1 {
		t.Fatalf("expected click to select the second card, got %d", m.selectedCard)
	}
	for _, p := range storeProjects(t, store) {
		if p.Status != domain.StatusActive {
			t.Fatalf("expected click not to move %q", p.ID)
		}
	}

	m = applyMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if m.selectedCard != 0 {
		t.Fatalf("expected wheel up to select the first card, got %d", m.selectedCard)
	}
}

func TestModelProjectInfoAndCopy(t *testing.T) {
	store := newTestStore()
	var copied []string
	m := loadReadyModel(t, NewModel(store, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	})))
	addProject(t, store, "Ship")

	m = applyMsg(t, m, keyRune('y'))
	m = applyMsg(t, m, keyRune('i'))
	if m.mode != modeProjectInfo || m.infoProject.ID != "p1" {
		t.Fatalf("expected info overlay for p1, got mode=%v id=%q", m.mode, m.infoProject.ID)
	}
	if !strings.Contains(m.render(), "Project Info") {
		t.Fatal("expected info overlay to render")
	}
	m = applyMsg(t, m, keyRune('y'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected esc to close info, got %v", m.mode)
	}
	if len(copied) != 2 || copied[0] != "p1" || copied[1] != "p1" {
		t.Fatalf("unexpected clipboard writes %#v", copied)
	}
}

func TestModelCopyFailureReported(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store, WithClipboard(func(string) error {
		return errors.New("no clipboard")
	})))
	m = applyMsg(t, m, keyRune('y'))
	if m.status != "no project selected" {
		t.Fatalf("expected empty board status, got %q", m.status)
	}
	addProject(t, store, "Ship")
	m = applyMsg(t, m, keyRune('y'))
	if !strings.Contains(m.status, "no clipboard") {
		t.Fatalf("expected copy failure status, got %q", m.status)
	}
}

func TestModelShowDescriptionsOption(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store, WithShowDescriptions(false)))
	addProject(t, store, "Ship")
	if m.cardHeight() != 3 {
		t.Fatalf("expected compact cards, got height %d", m.cardHeight())
	}
	if strings.Contains(m.render(), "a longer description") {
		t.Fatal("expected descriptions to be hidden")
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := loadReadyModel(t, NewModel(newTestStore()))
	m = applyMsg(t, m, keyRune('?'))
	if !m.help.ShowAll {
		t.Fatal("expected help to open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.help.ShowAll {
		t.Fatal("expected esc to close help")
	}

	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit message")
	}
}

func TestModelViewStates(t *testing.T) {
	m := NewModel(newTestStore())
	if got := m.render(); got != "loading..." {
		t.Fatalf("expected loading view, got %q", got)
	}
	v := m.View()
	if v.MouseMode != tea.MouseModeCellMotion || !v.AltScreen {
		t.Fatal("expected alt screen view with mouse enabled")
	}
	m = loadReadyModel(t, m)
	if !strings.Contains(m.render(), "(no projects)") {
		t.Fatal("expected empty list placeholder")
	}
	if m.modeLabel() != "normal" {
		t.Fatalf("unexpected mode label %q", m.modeLabel())
	}
}

func TestModelKeyConfigOption(t *testing.T) {
	m := loadReadyModel(t, NewModel(newTestStore(), WithKeyConfig(KeyConfig{NewProject: "a"})))
	m = applyMsg(t, m, keyRune('n'))
	if m.mode != modeNone {
		t.Fatal("expected default key to be replaced")
	}
	m = applyMsg(t, m, keyRune('a'))
	if m.mode != modeAddProject {
		t.Fatalf("expected configured key to open the form, got %v", m.mode)
	}
}

func TestModelConfiguredGrabKeyAlsoDrops(t *testing.T) {
	store := newTestStore()
	m := loadReadyModel(t, NewModel(store, WithKeyConfig(KeyConfig{Grab: "g"})))
	addProject(t, store, "Ship")

	m = applyMsg(t, m, keyRune('g'))
	if m.drag == nil {
		t.Fatal("expected configured grab key to pick up the card")
	}
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('g'))
	if m.drag != nil {
		t.Fatal("expected configured grab key to drop the card")
	}
	if got := storeProjects(t, store)[0].Status; got != domain.StatusFinished {
		t.Fatalf("expected project finished, got %q", got)
	}
}

func TestWrapIndex(t *testing.T) {
	if got := wrapIndex(0, -1, 3); got != 2 {
		t.Fatalf("expected wrap to 2, got %d", got)
	}
	if got := wrapIndex(2, 1, 3); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := wrapIndex(1, 1, 0); got != 0 {
		t.Fatalf("expected 0 for empty range, got %d", got)
	}
}
