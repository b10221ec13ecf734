// Package devhost is a built-in stand-in for the design automation
// host. It speaks the wire protocol over stdin/stdout against a small
// in-memory document, so the adapter works end to end before a real
// host is configured and so tests have a live process to drive.
package devhost

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

type command struct {
	ID     string           `json:"id"`
	Kind   wire.CommandKind `json:"command"`
	Params json.RawMessage  `json:"params"`
}

type node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Name     string   `json:"name,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
}

type host struct {
	nodes     map[string]*node
	order     []string
	selection []string
	nextID    int
}

// Run serves the wire protocol until r reaches end of stream.
func Run(r io.Reader, w io.Writer) error {
	h := &host{nodes: make(map[string]*node)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var cmd command
		if err := json.Unmarshal(line, &cmd); err != nil {
			// No id to correlate; skip the malformed record.
			continue
		}
		if err := writeReply(w, h.handle(cmd)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (h *host) handle(cmd command) wire.Reply {
	result, err := h.dispatch(cmd)
	if err != nil {
		return wire.Reply{ID: cmd.ID, Success: false, Error: err.Error()}
	}

	data, merr := json.Marshal(result)
	if merr != nil {
		return wire.Reply{ID: cmd.ID, Success: false, Error: merr.Error()}
	}
	return wire.Reply{ID: cmd.ID, Success: true, Result: data}
}

func (h *host) dispatch(cmd command) (any, error) {
	switch cmd.Kind {
	case wire.KindCreateWireframe:
		return h.createWireframe(cmd.Params)
	case wire.KindAddElement:
		return h.addElement(cmd.Params)
	case wire.KindStyleElement:
		return h.touchNode(cmd.Params, "styled")
	case wire.KindModifyElement:
		return h.touchNode(cmd.Params, "modified")
	case wire.KindArrangeLayout:
		return h.touchNode(cmd.Params, "arranged")
	case wire.KindExportDesign:
		return h.exportDesign(cmd.Params)
	case wire.KindGetSelection:
		return map[string]any{"selection": append([]string{}, h.selection...)}, nil
	case wire.KindGetCurrentPage:
		return h.currentPage(), nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.Kind)
	}
}

func (h *host) createWireframe(params json.RawMessage) (any, error) {
	var p wire.WireframeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
	}

	name := p.Title
	if name == "" {
		name = "Wireframe"
	}
	n := h.newNode("frame", name, "")
	h.selection = []string{n.ID}
	return map[string]any{"node": n.ID, "name": n.Name}, nil
}

func (h *host) addElement(params json.RawMessage) (any, error) {
	var p wire.ElementParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.Type == "" {
		return nil, fmt.Errorf("element type is required")
	}
	if p.Parent != "" {
		if _, ok := h.nodes[p.Parent]; !ok {
			return nil, fmt.Errorf("node not found: %s", p.Parent)
		}
	}

	n := h.newNode(p.Type, p.Name, p.Parent)
	h.selection = []string{n.ID}
	return map[string]any{"node": n.ID, "type": n.Type}, nil
}

// touchNode covers the style/modify/arrange commands: look the node
// up, acknowledge the action.
func (h *host) touchNode(params json.RawMessage, action string) (any, error) {
	var p struct {
		Node string `json:"node"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if _, ok := h.nodes[p.Node]; !ok {
		return nil, fmt.Errorf("node not found: %s", p.Node)
	}
	return map[string]any{"node": p.Node, "action": action}, nil
}

func (h *host) exportDesign(params json.RawMessage) (any, error) {
	var p wire.ExportParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
	}
	if p.Format == "" {
		p.Format = "png"
	}
	if p.Scale == 0 {
		p.Scale = 1
	}
	if p.Node != "" {
		if _, ok := h.nodes[p.Node]; !ok {
			return nil, fmt.Errorf("node not found: %s", p.Node)
		}
	}
	return map[string]any{"format": p.Format, "scale": p.Scale, "node": p.Node}, nil
}

func (h *host) currentPage() any {
	var top []string
	for _, id := range h.order {
		if h.nodes[id].Parent == "" {
			top = append(top, id)
		}
	}
	return map[string]any{"page": "Page 1", "children": top}
}

func (h *host) newNode(typ, name, parent string) *node {
	h.nextID++
	n := &node{
		ID:     fmt.Sprintf("%s-%d", typ, h.nextID),
		Type:   typ,
		Name:   name,
		Parent: parent,
	}
	h.nodes[n.ID] = n
	h.order = append(h.order, n.ID)
	if parent != "" {
		p := h.nodes[parent]
		p.Children = append(p.Children, n.ID)
	}
	return n
}

func writeReply(w io.Writer, reply wire.Reply) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
