package editor

// defaultKillRingSize is used when Config.KillRingSize is not positive.
const defaultKillRingSize = 16

// killRing stores killed text for later yanking, newest entry last.
type killRing struct {
	entries []string
	max     int
	// pos indexes the entry handed out by the last yank or rotate.
	pos int
}

func newKillRing(max int) *killRing {
	if max <= 0 {
		max = defaultKillRingSize
	}
	return &killRing{max: max}
}

// kill records text. When merge is set the text is joined onto the newest
// entry instead of starting a new one; prepend puts it in front, which is
// what backward kills need so that repeated Ctrl+W keeps reading order.
func (k *killRing) kill(text string, merge, prepend bool) {
	if text == "" {
		return
	}
	if merge && len(k.entries) > 0 {
		last := len(k.entries) - 1
		if prepend {
			k.entries[last] = text + k.entries[last]
		} else {
			k.entries[last] += text
		}
		k.pos = last
		return
	}
	k.entries = append(k.entries, text)
	if len(k.entries) > k.max {
		k.entries = k.entries[len(k.entries)-k.max:]
	}
	k.pos = len(k.entries) - 1
}

// yank returns the newest entry.
func (k *killRing) yank() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.pos = len(k.entries) - 1
	return k.entries[k.pos], true
}

// rotate steps to the next older entry, wrapping around.
func (k *killRing) rotate() (string, bool) {
	if len(k.entries) == 0 {
		return "", false
	}
	k.pos--
	if k.pos < 0 {
		k.pos = len(k.entries) - 1
	}
	return k.entries[k.pos], true
}

func (k *killRing) len() int {
	return len(k.entries)
}
