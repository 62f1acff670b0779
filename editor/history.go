package editor

// defaultMaxHistory is used when Config.MaxHistory is not positive.
const defaultMaxHistory = 1000

// history is the in-memory list of lines submitted through one Editor.
// It is never persisted.
type history struct {
	entries []string
	max     int
}

func newHistory(max int) *history {
	if max <= 0 {
		max = defaultMaxHistory
	}
	return &history{
		entries: make([]string, 0),
		max:     max,
	}
}

// add appends an entry, skipping empty lines and consecutive duplicates.
func (h *history) add(entry string) {
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

func (h *history) len() int {
	return len(h.entries)
}

func (h *history) at(i int) string {
	return h.entries[i]
}

// snapshot returns a copy of the entries.
func (h *history) snapshot() []string {
	return append([]string{}, h.entries...)
}

// historyCursor walks the history during one read. index == len(entries)
// is the line being edited; draft keeps it while older entries are shown.
type historyCursor struct {
	h     *history
	index int
	draft string
}

func newHistoryCursor(h *history) *historyCursor {
	return &historyCursor{h: h, index: h.len()}
}

// prev moves to the older entry. current is the buffer being left behind.
func (c *historyCursor) prev(current string) (string, bool) {
	if c.index == 0 {
		return "", false
	}
	if c.index == c.h.len() {
		c.draft = current
	}
	c.index--
	return c.h.at(c.index), true
}

// next moves to the newer entry, ending at the saved draft.
func (c *historyCursor) next() (string, bool) {
	if c.index >= c.h.len() {
		return "", false
	}
	c.index++
	if c.index == c.h.len() {
		return c.draft, true
	}
	return c.h.at(c.index), true
}

// reset is called when the user edits the line.
func (c *historyCursor) reset() {
	c.index = c.h.len()
}
