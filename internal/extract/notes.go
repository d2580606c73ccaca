package extract

import "fmt"

// Note is a non-fatal observation made while parsing a document: a rule
// fallback, a corrected name, a table that was not a tally
type Note struct {
	Section Section
	Message string
}

func (n Note) String() string {
	return fmt.Sprintf("%s: %s", n.Section, n.Message)
}

// notebook collects notes for one parse
type notebook struct {
	notes []Note
}

func (b *notebook) add(s Section, format string, args ...any) {
	b.notes = append(b.notes, Note{Section: s, Message: fmt.Sprintf(format, args...)})
}
