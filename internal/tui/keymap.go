package tui

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit        key.Binding
	toggleHelp  key.Binding
	moveLeft    key.Binding
	moveRight   key.Binding
	moveUp      key.Binding
	moveDown    key.Binding
	newProject  key.Binding
	cardInfo    key.Binding
	grab        key.Binding
	drop        key.Binding
	cancel      key.Binding
	moveLeftTo  key.Binding
	moveRightTo key.Binding
	copyID      key.Binding
}

// KeyConfig holds user overrides for the rebindable actions. Blank values keep the defaults.
type KeyConfig struct {
	NewProject string
	CardInfo   string
	Grab       string
	CopyID     string
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	k := keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "list left")),
		moveRight:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "list right")),
		moveUp:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "card up")),
		moveDown:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "card down")),
		newProject:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		cardInfo:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "project info")),
		grab:        key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "grab card")),
		cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		moveLeftTo:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move card left")),
		moveRightTo: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move card right")),
		copyID:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
	}
	k.drop = dropBinding(k.grab)
	return k
}

// applyConfig rebinds the configurable actions.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.newProject, cfg.NewProject, "n", "new project")
	configureBinding(&k.cardInfo, cfg.CardInfo, "i", "project info")
	configureBinding(&k.grab, cfg.Grab, "space", "grab card")
	configureBinding(&k.copyID, cfg.CopyID, "y", "copy id")
	k.drop = dropBinding(k.grab)
}

// dropBinding lets the grab key drop the held card too, with enter as a fixed alternative.
func dropBinding(grab key.Binding) key.Binding {
	keys := grab.Keys()
	if !slices.Contains(keys, "enter") {
		keys = append(slices.Clone(keys), "enter")
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(grab.Help().Key+"/enter", "drop card"))
}

// configureBinding replaces the keys and help of b from raw, falling back when raw is blank.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a configured key into matcher keys and a help label.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if strings.EqualFold(raw, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + strings.ToLower(raw)}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.newProject, k.grab, k.cardInfo, k.copyID, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.newProject, k.cardInfo, k.copyID, k.toggleHelp, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.grab, k.drop, k.cancel, k.moveLeftTo, k.moveRightTo},
	}
}
