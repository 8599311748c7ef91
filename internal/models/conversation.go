package models

import "sort"

// Conversation represents the state of an in-progress workflow for one chat
type Conversation struct {
	Workflow    string
	StepIndex   int
	Fields      *FieldMap
	Selection   map[string]bool
	Attachments []string
	// Options holds per-conversation option sets for steps whose catalog
	// is resolved at runtime (assignees from the database, parent issues)
	Options map[string][]string
}

// NewConversation creates an empty conversation for a workflow
func NewConversation(workflow string) *Conversation {
	return &Conversation{
		Workflow:  workflow,
		Fields:    NewFieldMap(),
		Selection: make(map[string]bool),
		Options:   make(map[string][]string),
	}
}

// ToggleSelection flips membership of an item in the pending selection
// and returns the new selection as a slice in toggle order
func (c *Conversation) ToggleSelection(item string) []string {
	if c.Selection[item] {
		delete(c.Selection, item)
	} else {
		c.Selection[item] = true
	}
	return c.SelectedItems()
}

// SelectedItems returns the pending selection, sorted for determinism
func (c *Conversation) SelectedItems() []string {
	items := make([]string, 0, len(c.Selection))
	for item := range c.Selection {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// FieldMap is a mapping from field name to value that preserves
// insertion order, matching how steps collect values one by one
type FieldMap struct {
	order  []string
	values map[string]interface{}
}

// NewFieldMap creates an empty field map
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]interface{})}
}

// Set stores a value under a field name, keeping first-set order
func (m *FieldMap) Set(name string, value interface{}) {
	if _, ok := m.values[name]; !ok {
		m.order = append(m.order, name)
	}
	m.values[name] = value
}

// Get returns the value stored under a field name
func (m *FieldMap) Get(name string) (interface{}, bool) {
	v, ok := m.values[name]
	return v, ok
}

// GetString returns the string value stored under a field name
func (m *FieldMap) GetString(name string) string {
	if v, ok := m.values[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetStrings returns the string-slice value stored under a field name
func (m *FieldMap) GetStrings(name string) []string {
	if v, ok := m.values[name]; ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

// Has reports whether a field has been collected
func (m *FieldMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Names returns the field names in insertion order
func (m *FieldMap) Names() []string {
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Append concatenates text onto a string field, creating it if absent
func (m *FieldMap) Append(name, text string) {
	current := m.GetString(name)
	m.Set(name, current+text)
}
