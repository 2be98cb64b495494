package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stack is one inventory entry.
type Stack struct {
	Name  string
	Count int
}

// Inventory is an insertion-ordered item → count collection.
// The zero value is an empty inventory ready to use.
type Inventory struct {
	stacks []Stack
}

// NewInventory builds an inventory from stacks, in order.
func NewInventory(stacks ...Stack) Inventory {
	var inv Inventory
	for _, s := range stacks {
		inv.Add(s.Name, s.Count)
	}
	return inv
}

func (inv *Inventory) index(name string) int {
	key := Key(name)
	for i, s := range inv.stacks {
		if Key(s.Name) == key {
			return i
		}
	}
	return -1
}

// Add increases the count of name by n. Non-positive n is ignored.
func (inv *Inventory) Add(name string, n int) {
	if n <= 0 || strings.TrimSpace(name) == "" {
		return
	}
	if i := inv.index(name); i >= 0 {
		inv.stacks[i].Count += n
		return
	}
	inv.stacks = append(inv.stacks, Stack{Name: name, Count: n})
}

// Remove decreases the count of name by up to n and returns how many were
// removed. Entries that reach zero are dropped.
func (inv *Inventory) Remove(name string, n int) int {
	i := inv.index(name)
	if i < 0 || n <= 0 {
		return 0
	}
	removed := min(n, inv.stacks[i].Count)
	inv.stacks[i].Count -= removed
	if inv.stacks[i].Count == 0 {
		inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
	}
	return removed
}

// Count returns how many of name are held.
func (inv Inventory) Count(name string) int {
	if i := inv.index(name); i >= 0 {
		return inv.stacks[i].Count
	}
	return 0
}

func (inv Inventory) Len() int {
	return len(inv.stacks)
}

// Stacks returns a copy of the entries in insertion order.
func (inv Inventory) Stacks() []Stack {
	out := make([]Stack, len(inv.stacks))
	copy(out, inv.stacks)
	return out
}

// String renders "name (count)" for counts above one, comma-joined.
func (inv Inventory) String() string {
	parts := make([]string, 0, len(inv.stacks))
	for _, s := range inv.stacks {
		if s.Count > 1 {
			parts = append(parts, fmt.Sprintf("%s (%d)", s.Name, s.Count))
		} else {
			parts = append(parts, s.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON writes the inventory as an object whose key order matches
// insertion order.
func (inv Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range inv.stacks {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", s.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of counts, keeping document order.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	inv.stacks = nil
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("inventory must be a JSON object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read inventory key: %w", err)
		}
		name, _ := tok.(string)

		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("invalid count for %q: %w", name, err)
		}
		if count < 0 {
			return fmt.Errorf("negative count for %q", name)
		}
		inv.Add(name, count)
	}

	_, err = dec.Token()
	return err
}

// UnmarshalYAML reads an inventory from a YAML mapping, keeping document order.
func (inv *Inventory) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: inventory must be a mapping", value.Line)
	}
	inv.stacks = nil
	for i := 0; i+1 < len(value.Content); i += 2 {
		var count int
		if err := value.Content[i+1].Decode(&count); err != nil {
			return fmt.Errorf("line %d: invalid count: %w", value.Content[i+1].Line, err)
		}
		if count < 0 {
			return fmt.Errorf("line %d: negative count for %q", value.Content[i].Line, value.Content[i].Value)
		}
		inv.Add(value.Content[i].Value, count)
	}
	return nil
}
