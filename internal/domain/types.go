// Package domain defines the normalized domain types of the task-management service.
// These types represent the core concepts independent of the REST API payloads.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Project represents a top-level project.
type Project struct {
	ID        string            // Service node ID
	Title     string            // Project title
	Timestamp int64             // Creation time in milliseconds since epoch
	Users     map[string]string // Member user ID -> role, passed through untouched
}

// Board represents a board inside a project.
type Board struct {
	ID        string // Service node ID
	Title     string // Board title
	ProjectID string // Owning project ID
}

// Column represents a Kanban column on a board.
type Column struct {
	ID      string // Service node ID
	Title   string // Column title
	Color   int    // Color index, 1-16 (0 when unset)
	BoardID string // Owning board ID
}

// ColumnWithTasks pairs a column with its tasks in display order.
type ColumnWithTasks struct {
	Column Column
	Tasks  []Task
}

// Task represents a single card on the board.
type Task struct {
	ID          string                  // Service node ID
	Title       string                  // Task title
	ColumnID    string                  // Column the task currently sits in
	Description string                  // Free-form description (may contain markup)
	Completed   bool                    // Task is marked done
	Archived    bool                    // Task is archived
	Assigned    []string                // Assignee user IDs
	Color       string                  // Optional color tag (e.g. "task-red")
	Stickers    map[string]StickerValue // Sticker ID -> value
	CreatedBy   string                  // Author user ID
	Timestamp   int64                   // Creation time in milliseconds since epoch
}

// User is a member of the company account.
type User struct {
	ID    string
	Name  string // Display name (real name, or email when unset)
	Email string
}

// Sticker is a typed attribute definition that tasks may carry.
type Sticker struct {
	ID     string
	Title  string
	States []StickerState // Ordered states for state-based stickers
}

// StickerState is one selectable state of a state-based sticker.
type StickerState struct {
	ID    string
	Label string
}

// StickerValueKind identifies the type held by a StickerValue.
type StickerValueKind int

const (
	StickerText StickerValueKind = iota
	StickerNumber
	StickerBool
	StickerStateRef
)

// StickerValue is the value of a sticker attached to a task.
// String values stay StickerText until they are resolved against a sticker
// definition; a string that names one of the sticker's states is a state reference.
type StickerValue struct {
	Kind   StickerValueKind
	Text   string
	Number float64
	Bool   bool
}

// TextValue returns a text sticker value.
func TextValue(s string) StickerValue { return StickerValue{Kind: StickerText, Text: s} }

// NumberValue returns a numeric sticker value.
func NumberValue(n float64) StickerValue { return StickerValue{Kind: StickerNumber, Number: n} }

// BoolValue returns a boolean sticker value.
func BoolValue(b bool) StickerValue { return StickerValue{Kind: StickerBool, Bool: b} }

// StateValue returns a state reference sticker value.
func StateValue(stateID string) StickerValue { return StickerValue{Kind: StickerStateRef, Text: stateID} }

// String renders the raw value without resolving state references.
func (v StickerValue) String() string {
	switch v.Kind {
	case StickerNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case StickerBool:
		if v.Bool {
			return "yes"
		}
		return "no"
	default:
		return v.Text
	}
}

// UnmarshalJSON decodes a JSON string, number or boolean.
func (v *StickerValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = TextValue(x)
	case float64:
		*v = NumberValue(x)
	case bool:
		*v = BoolValue(x)
	case nil:
		*v = TextValue("")
	default:
		return fmt.Errorf("unsupported sticker value %s", string(data))
	}
	return nil
}
