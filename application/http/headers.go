package http

import "strings"

// Headers maps field names to values.
//
// Names are compared as is, without case folding.
// Setting an existing name overwrites its value and keeps its position,
// so iteration follows the order names were first set.
// The zero value is an empty Headers ready to use.
type Headers struct {
	names  []string
	values map[string]string
}

// NewHeaders creates Headers from [name, value] pairs, in order.
func NewHeaders(fields ...[2]string) Headers {
	h := Headers{}
	for _, f := range fields {
		h.Set(f[0], f[1])
	}
	return h
}

func (h *Headers) Set(name, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

func (h *Headers) Get(name string) (value string, ok bool) {
	value, ok = h.values[name]
	return
}

func (h *Headers) Has(name string) bool {
	_, ok := h.values[name]
	return ok
}

// Lookup is [Headers.Get] ignoring case of the name.
// If several names match, the one set most recently for the first time wins.
func (h *Headers) Lookup(name string) (value string, ok bool) {
	for idx := len(h.names) - 1; idx >= 0; idx-- {
		if strings.EqualFold(h.names[idx], name) {
			return h.values[h.names[idx]], true
		}
	}
	return "", false
}

func (h *Headers) Len() int { return len(h.names) }

// Fields returns [name, value] pairs in insertion order.
func (h *Headers) Fields() [][2]string {
	fields := make([][2]string, 0, len(h.names))
	for _, name := range h.names {
		fields = append(fields, [2]string{name, h.values[name]})
	}
	return fields
}

func (h *Headers) Clone() Headers {
	return NewHeaders(h.Fields()...)
}
