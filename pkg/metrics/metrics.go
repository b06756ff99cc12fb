package metrics

import (
	"strconv"
	"strings"
)

// Label is one key/value pair of an exposition line.
type Label struct {
	Key   string
	Value string
}

// LabelSet is an ordered set of labels shared by every line emitted for one
// account. Order is insertion order; it affects only the textual rendering.
// Values are quote-escaped when added, so a LabelSet always renders to a
// well-formed label block.
type LabelSet struct {
	labels []Label
}

// Add appends a label, escaping any double quotes in the value. A repeated
// key overwrites the earlier value in place.
func (ls *LabelSet) Add(key, value string) {
	escaped := strings.ReplaceAll(value, `"`, `\"`)
	for i := range ls.labels {
		if ls.labels[i].Key == key {
			ls.labels[i].Value = escaped
			return
		}
	}
	ls.labels = append(ls.labels, Label{Key: key, Value: escaped})
}

// Get returns the escaped value for a key.
func (ls *LabelSet) Get(key string) (string, bool) {
	for _, l := range ls.labels {
		if l.Key == key {
			return l.Value, true
		}
	}
	return "", false
}

func (ls *LabelSet) Len() int {
	return len(ls.labels)
}

// WithLeading returns a copy of the set with a structural label (a metric's
// own dimension, e.g. the database name) rendered in front of the account
// labels. The receiver is not modified.
func (ls *LabelSet) WithLeading(key, value string) *LabelSet {
	merged := &LabelSet{labels: make([]Label, 0, len(ls.labels)+1)}
	merged.Add(key, value)
	merged.labels = append(merged.labels, ls.labels...)
	return merged
}

func (ls *LabelSet) String() string {
	var b strings.Builder
	for i, l := range ls.labels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Key)
		b.WriteString(`="`)
		b.WriteString(l.Value)
		b.WriteByte('"')
	}
	return b.String()
}

// Line is a single exposition observation.
type Line struct {
	Name   string
	Labels *LabelSet
	Value  float64
}

// String renders `name{labels} value`. Values print as plain decimals:
// integral floats without a fraction, fractional ones without padding, so
// identical upstream data renders byte-identically.
func (l Line) String() string {
	var b strings.Builder
	b.WriteString(l.Name)
	b.WriteByte('{')
	b.WriteString(l.Labels.String())
	b.WriteString("} ")
	b.WriteString(strconv.FormatFloat(l.Value, 'f', -1, 64))
	return b.String()
}
