package codec

// Hunk is a decoded name/payload pair.
type Hunk struct {
	Name    string
	Payload []byte
	Index   int32 // NoIndex unless the hunk is an array element
}

// IsIndexed reports whether the hunk is an array element.
func (h Hunk) IsIndexed() bool {
	return h.Index != NoIndex
}

// Collector is a Handler that keeps a copy of every hunk it sees.
type Collector struct {
	Hunks []Hunk
}

var _ Handler = (*Collector)(nil)

// HandleHunk records the hunk. The payload is copied.
func (c *Collector) HandleHunk(name string, payload []byte, index int32) bool {
	c.Hunks = append(c.Hunks, Hunk{
		Name:    name,
		Payload: append([]byte{}, payload...),
		Index:   index,
	})

	return true
}

// Named returns the collected hunks with the given name, in buffer order.
func (c *Collector) Named(name string) []Hunk {
	var out []Hunk
	for _, h := range c.Hunks {
		if h.Name == name {
			out = append(out, h)
		}
	}

	return out
}

// Reset drops the collected hunks.
func (c *Collector) Reset() {
	c.Hunks = c.Hunks[:0]
}
