package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBindingsConfig holds modifier customization and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"`
}

type ModifierConfig struct {
	Primary   string `toml:"primary"`   // "alt", "ctrl", "meta", "super"
	Secondary string `toml:"secondary"` // "alt+shift", "ctrl+shift"
}

type modifierKind int

const (
	modNone modifierKind = iota
	modPrimary
	modSecondary
)

type actionDef struct {
	mod modifierKind
	key string
}

// actionRegistry maps action names to their default keybindings.
// Enter (submit) and the newline key are fixed and not listed here.
var actionRegistry = map[string]actionDef{
	"help":             {modPrimary, "h"},
	"quit":             {modPrimary, "q"},
	"search_messages":  {modPrimary, "f"},
	"yank_last_answer": {modPrimary, "y"},
	"yank_transcript":  {modPrimary, "c"},
	"clear_input":      {modPrimary, "u"},

	"scroll_down":       {modPrimary, "j"},
	"scroll_up":         {modPrimary, "k"},
	"scroll_down_arrow": {modPrimary, "down"},
	"scroll_up_arrow":   {modPrimary, "up"},
	"half_page_down":    {modSecondary, "j"},
	"half_page_up":      {modSecondary, "k"},
	"page_down":         {modNone, "pgdown"},
	"page_up":           {modNone, "pgup"},
	"scroll_to_top":     {modPrimary, "g"},
	"scroll_to_bottom":  {modSecondary, "g"},

	"search_down": {modNone, "down"},
	"search_up":   {modNone, "up"},
}

// DefaultKeybindings returns default configuration
func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary:   "alt",
			Secondary: "alt+shift",
		},
	}
}

// LoadKeybindings loads keybindings.toml from the data directory, creating it on first run
func LoadKeybindings(dataDir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	keybindingsPath := filepath.Join(dataDir, "keybindings.toml")

	if !FileExists(keybindingsPath) {
		if err := CreateDefaultKeybindings(dataDir); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(keybindingsPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	if ok, warning := cfg.Validate(); !ok {
		return nil, fmt.Errorf("invalid keybindings: %s", warning)
	}

	return cfg, nil
}

// CreateDefaultKeybindings creates default keybindings.toml
func CreateDefaultKeybindings(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	keybindingsPath := filepath.Join(dataDir, "keybindings.toml")
	if FileExists(keybindingsPath) {
		return nil
	}

	if err := os.WriteFile(keybindingsPath, []byte(GenerateKeybindingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}

	return nil
}

// GenerateKeybindingsTemplate returns the default TOML template
func GenerateKeybindingsTemplate() string {
	return `# lawchat Keybindings Configuration
# Location: <data_directory>/keybindings.toml
#
# Enter sends the question. Alt+Enter inserts a newline.

[modifiers]
primary = "alt"          # alt, ctrl, meta, super
secondary = "alt+shift"

[actions]
# Per-action overrides, for example:
#   quit = "ctrl+q"
#   search_messages = "ctrl+f"
#   yank_last_answer = "ctrl+y"
`
}

// Primary returns the primary modifier
func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

// Secondary returns the secondary modifier
func (kb *KeyBindingsConfig) Secondary() string {
	if kb.Modifiers.Secondary == "" {
		return "alt+shift"
	}
	return kb.Modifiers.Secondary
}

// PrimaryKey builds "alt+s" style strings from the primary modifier
func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// SecondaryKey builds a keybinding with the secondary modifier.
// Terminals report shift+letter as an uppercase letter, so "alt+shift" + "g"
// becomes "alt+G".
func (kb *KeyBindingsConfig) SecondaryKey(key string) string {
	secondary := kb.Secondary()

	isLetter := len(key) == 1 && key[0] >= 'a' && key[0] <= 'z'
	if !isLetter || !strings.Contains(strings.ToLower(secondary), "shift") {
		return secondary + "+" + key
	}

	var mods []string
	for _, part := range strings.Split(secondary, "+") {
		if strings.ToLower(part) != "shift" {
			mods = append(mods, part)
		}
	}
	mods = append(mods, strings.ToUpper(key))
	return strings.Join(mods, "+")
}

// GetActionKey returns the keybinding for an action: user override first, then the registry default
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override, ok := kb.Actions[action]; ok && override != "" {
		return override
	}

	def, ok := actionRegistry[action]
	if !ok {
		return ""
	}
	switch def.mod {
	case modPrimary:
		return kb.PrimaryKey(def.key)
	case modSecondary:
		return kb.SecondaryKey(def.key)
	default:
		return def.key
	}
}

// Matches reports whether a pressed key string triggers the action
func (kb *KeyBindingsConfig) Matches(action, pressed string) bool {
	k := kb.GetActionKey(action)
	return k != "" && k == pressed
}

// DisplayActionKey returns a display-friendly version of an action's keybinding
// ("alt+G" -> "Alt+Shift+G").
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}
	return capitalizeKeybinding(key)
}

func capitalizeKeybinding(key string) string {
	parts := strings.Split(key, "+")
	hasShift := false
	for _, p := range parts {
		if strings.EqualFold(p, "shift") {
			hasShift = true
		}
	}

	var result []string
	for i, part := range parts {
		if part == "" {
			continue
		}
		if len(part) == 1 && part[0] >= 'A' && part[0] <= 'Z' {
			if !hasShift && i > 0 {
				result = append(result, "Shift")
			}
			result = append(result, part)
			continue
		}
		result = append(result, strings.ToUpper(part[:1])+part[1:])
	}

	return strings.Join(result, "+")
}

// Validate returns (isValid, warningMessage)
func (kb *KeyBindingsConfig) Validate() (bool, string) {
	primary := kb.Primary()
	secondary := kb.Secondary()

	if primary == "shift" || secondary == "shift" {
		return false, "Shift alone conflicts with typing"
	}

	if strings.Contains(primary, "ctrl") || strings.Contains(secondary, "ctrl") {
		return true, "Warning: Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)"
	}

	return true, ""
}
