// Package wire defines the line-oriented protocol spoken between the
// adapter and the design automation host: one JSON record per line on
// each stream, replies correlated to commands by request id.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CommandKind identifies the operation a command asks the host to perform.
type CommandKind string

const (
	KindCreateWireframe CommandKind = "create_wireframe"
	KindAddElement      CommandKind = "add_element"
	KindStyleElement    CommandKind = "style_element"
	KindModifyElement   CommandKind = "modify_element"
	KindArrangeLayout   CommandKind = "arrange_layout"
	KindExportDesign    CommandKind = "export_design"
	KindGetSelection    CommandKind = "get_selection"
	KindGetCurrentPage  CommandKind = "get_current_page"
)

// Kinds lists every command kind the host understands.
func Kinds() []CommandKind {
	return []CommandKind{
		KindCreateWireframe,
		KindAddElement,
		KindStyleElement,
		KindModifyElement,
		KindArrangeLayout,
		KindExportDesign,
		KindGetSelection,
		KindGetCurrentPage,
	}
}

// Valid reports whether k is a known command kind.
func (k CommandKind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// Command is one outbound unit. Params is opaque to the channel layer:
// it is serialized as-is and interpreted only by the host.
type Command struct {
	ID     string      `json:"id"`
	Kind   CommandKind `json:"command"`
	Params any         `json:"params,omitempty"`
}

// Reply is one inbound unit. An empty ID marks an unsolicited record
// that correlates to no pending command.
type Reply struct {
	ID      string          `json:"id,omitempty"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Encode serializes a command to exactly one newline-terminated record.
// It fails if the command cannot be represented on the wire; it never
// truncates.
func Encode(cmd Command) ([]byte, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encoding %s command: %w", cmd.Kind, err)
	}
	if bytes.IndexByte(data, '\n') >= 0 {
		return nil, fmt.Errorf("encoding %s command: payload contains record separator", cmd.Kind)
	}
	return append(data, '\n'), nil
}

// WireframeParams creates a new wireframe frame, optionally from a
// catalog template.
type WireframeParams struct {
	Title    string `json:"title,omitempty"`
	Template string `json:"template,omitempty"`
	Device   string `json:"device,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ElementParams places a new element on an existing node.
type ElementParams struct {
	Parent string  `json:"parent,omitempty"`
	Type   string  `json:"type"`
	Name   string  `json:"name,omitempty"`
	Text   string  `json:"text,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// StyleParams applies visual styling to an element. Token, when set,
// names a design token whose value the host applies.
type StyleParams struct {
	Node         string  `json:"node"`
	Fill         string  `json:"fill,omitempty"`
	Stroke       string  `json:"stroke,omitempty"`
	StrokeWeight float64 `json:"strokeWeight,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	Opacity      float64 `json:"opacity,omitempty"`
	Token        string  `json:"token,omitempty"`
}

// ModifyParams edits properties of an existing element. Pointer fields
// distinguish "leave unchanged" from explicit zero values.
type ModifyParams struct {
	Node    string   `json:"node"`
	Name    string   `json:"name,omitempty"`
	Text    string   `json:"text,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
}

// LayoutParams arranges the children of a node.
type LayoutParams struct {
	Node    string  `json:"node"`
	Mode    string  `json:"mode"`
	Spacing float64 `json:"spacing,omitempty"`
	Padding float64 `json:"padding,omitempty"`
	Align   string  `json:"align,omitempty"`
}

// ExportParams renders a node to an image format.
type ExportParams struct {
	Node   string  `json:"node,omitempty"`
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}
