package editor

// KeyAction represents the action to perform when a key is pressed
type KeyAction int

// Key action constants define the editing commands a key can be bound to
const (
	ActionNone KeyAction = iota
	ActionSubmit
	ActionInterrupt
	ActionEOFOrDelete
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionMoveWordLeft
	ActionMoveWordRight
	ActionBackspace
	ActionDeleteChar
	ActionKillToEnd
	ActionKillToStart
	ActionKillWordBack
	ActionKillWordForward
	ActionYank
	ActionYankPop
	ActionTranspose
	ActionClearScreen
	ActionHistoryPrev
	ActionHistoryNext
)

// isKill reports whether the action stores text in the kill ring.
func (a KeyAction) isKill() bool {
	switch a {
	case ActionKillToEnd, ActionKillToStart, ActionKillWordBack, ActionKillWordForward:
		return true
	}
	return false
}

// KeyMap holds the key binding configuration
type KeyMap struct {
	bindings  map[rune]KeyAction
	sequences map[string]KeyAction
}

// NewDefaultKeyMap creates the emacs-style key bindings used by default.
//
// Default key bindings:
//   - Enter: Submit the line
//   - Ctrl+C: Interrupt (ErrInterrupted)
//   - Ctrl+D: EOF on an empty line, otherwise delete the character under the cursor
//   - Ctrl+A / Home, Ctrl+E / End: Move to beginning / end of line
//   - Ctrl+B / Left, Ctrl+F / Right: Move by character
//   - Alt+B / Ctrl+Left, Alt+F / Ctrl+Right: Move by word
//   - Ctrl+K: Kill to end of line
//   - Ctrl+U: Kill to beginning of line
//   - Ctrl+W: Kill word backwards
//   - Alt+D: Kill word forwards
//   - Ctrl+Y: Yank the most recent kill
//   - Alt+Y: Replace the yanked text with the previous kill
//   - Ctrl+T: Transpose characters
//   - Ctrl+L: Clear screen
//   - Up / Ctrl+P, Down / Ctrl+N: Walk the session history
//   - Backspace, Delete
//
// Example:
//
//	keyMap := editor.NewDefaultKeyMap()
//	// Make Ctrl+G interrupt as well
//	keyMap.Bind('\x07', editor.ActionInterrupt)
//
//	e, err := editor.New(editor.WithKeyMap(keyMap))
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}

	km.bindings['\r'] = ActionSubmit
	km.bindings['\n'] = ActionSubmit
	km.bindings['\x03'] = ActionInterrupt   // Ctrl+C
	km.bindings['\x04'] = ActionEOFOrDelete // Ctrl+D
	km.bindings['\x01'] = ActionMoveHome    // Ctrl+A
	km.bindings['\x05'] = ActionMoveEnd     // Ctrl+E
	km.bindings['\x02'] = ActionMoveLeft    // Ctrl+B
	km.bindings['\x06'] = ActionMoveRight   // Ctrl+F
	km.bindings['\x0B'] = ActionKillToEnd   // Ctrl+K
	km.bindings['\x15'] = ActionKillToStart // Ctrl+U
	km.bindings['\x17'] = ActionKillWordBack
	km.bindings['\x19'] = ActionYank        // Ctrl+Y
	km.bindings['\x14'] = ActionTranspose   // Ctrl+T
	km.bindings['\x0C'] = ActionClearScreen // Ctrl+L
	km.bindings['\x10'] = ActionHistoryPrev // Ctrl+P
	km.bindings['\x0E'] = ActionHistoryNext // Ctrl+N
	km.bindings['\x7f'] = ActionBackspace
	km.bindings['\b'] = ActionBackspace

	// Escape sequences, without the leading ESC
	km.sequences["[A"] = ActionHistoryPrev
	km.sequences["[B"] = ActionHistoryNext
	km.sequences["[C"] = ActionMoveRight
	km.sequences["[D"] = ActionMoveLeft
	km.sequences["[H"] = ActionMoveHome
	km.sequences["[F"] = ActionMoveEnd
	km.sequences["OH"] = ActionMoveHome
	km.sequences["OF"] = ActionMoveEnd
	km.sequences["[1~"] = ActionMoveHome
	km.sequences["[4~"] = ActionMoveEnd
	km.sequences["[3~"] = ActionDeleteChar
	km.sequences["[1;5C"] = ActionMoveWordRight // Ctrl+Right
	km.sequences["[1;5D"] = ActionMoveWordLeft  // Ctrl+Left
	km.sequences["b"] = ActionMoveWordLeft      // Alt+B
	km.sequences["f"] = ActionMoveWordRight     // Alt+F
	km.sequences["d"] = ActionKillWordForward   // Alt+D
	km.sequences["y"] = ActionYankPop           // Alt+Y
	km.sequences["\x7f"] = ActionKillWordBack   // Alt+Backspace

	return km
}

// Bind adds or updates a key binding for a single character.
func (km *KeyMap) Bind(key rune, action KeyAction) {
	km.bindings[key] = action
}

// BindSequence adds or updates an escape sequence binding.
//
// The sequence should not include the initial ESC character. Alt+<key>
// arrives as ESC followed by the key, so BindSequence("x", ...) binds Alt+X.
func (km *KeyMap) BindSequence(seq string, action KeyAction) {
	km.sequences[seq] = action
}

// GetAction returns the action for a key, or ActionNone if not bound
func (km *KeyMap) GetAction(key rune) KeyAction {
	if km == nil || km.bindings == nil {
		return ActionNone
	}
	return km.bindings[key]
}

// GetSequenceAction returns the action for an escape sequence, or ActionNone if not bound
func (km *KeyMap) GetSequenceAction(seq string) KeyAction {
	if km == nil || km.sequences == nil {
		return ActionNone
	}
	return km.sequences[seq]
}
