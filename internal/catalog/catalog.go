// Package catalog holds the static design resources the adapter
// exposes: wireframe templates, the component library, and design
// tokens. Plain in-memory lookup tables; the host interprets names,
// the adapter only validates them.
package catalog

// Template is a predefined wireframe starting point.
type Template struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Device      string   `json:"device"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Sections    []string `json:"sections"`
}

// Component is an entry in the reusable component library.
type Component struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Token is a named design value elements can be styled with.
type Token struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

var templates = []Template{
	{
		Name:        "mobile-app",
		Description: "Mobile application screen with status bar, content area and tab bar",
		Device:      "phone",
		Width:       390,
		Height:      844,
		Sections:    []string{"status-bar", "header", "content", "tab-bar"},
	},
	{
		Name:        "landing-page",
		Description: "Marketing landing page with hero, features and footer",
		Device:      "desktop",
		Width:       1440,
		Height:      1024,
		Sections:    []string{"nav", "hero", "features", "cta", "footer"},
	},
	{
		Name:        "dashboard",
		Description: "Analytics dashboard with sidebar navigation and card grid",
		Device:      "desktop",
		Width:       1440,
		Height:      900,
		Sections:    []string{"sidebar", "topbar", "cards", "chart-area"},
	},
	{
		Name:        "signup-form",
		Description: "Centered sign-up form with social login options",
		Device:      "desktop",
		Width:       1440,
		Height:      900,
		Sections:    []string{"logo", "form", "social-buttons", "footer-links"},
	},
	{
		Name:        "blank",
		Description: "Empty frame sized for the chosen device",
		Device:      "any",
		Sections:    nil,
	},
}

var components = []Component{
	{Name: "button-primary", Category: "buttons", Description: "Filled primary action button"},
	{Name: "button-secondary", Category: "buttons", Description: "Outlined secondary button"},
	{Name: "input-text", Category: "forms", Description: "Single-line text input with label"},
	{Name: "input-search", Category: "forms", Description: "Search field with leading icon"},
	{Name: "checkbox", Category: "forms", Description: "Checkbox with label"},
	{Name: "card", Category: "containers", Description: "Elevated content card"},
	{Name: "modal", Category: "containers", Description: "Centered modal dialog with scrim"},
	{Name: "navbar", Category: "navigation", Description: "Top navigation bar"},
	{Name: "tab-bar", Category: "navigation", Description: "Bottom tab bar for mobile"},
	{Name: "avatar", Category: "media", Description: "Circular user avatar"},
	{Name: "image-placeholder", Category: "media", Description: "Crossed-box image placeholder"},
}

var tokens = []Token{
	{Name: "color-primary", Kind: "color", Value: "#2563EB"},
	{Name: "color-secondary", Kind: "color", Value: "#64748B"},
	{Name: "color-surface", Kind: "color", Value: "#FFFFFF"},
	{Name: "color-surface-dark", Kind: "color", Value: "#0F172A"},
	{Name: "color-danger", Kind: "color", Value: "#DC2626"},
	{Name: "color-success", Kind: "color", Value: "#16A34A"},
	{Name: "spacing-xs", Kind: "spacing", Value: "4"},
	{Name: "spacing-sm", Kind: "spacing", Value: "8"},
	{Name: "spacing-md", Kind: "spacing", Value: "16"},
	{Name: "spacing-lg", Kind: "spacing", Value: "24"},
	{Name: "radius-sm", Kind: "radius", Value: "4"},
	{Name: "radius-md", Kind: "radius", Value: "8"},
	{Name: "radius-full", Kind: "radius", Value: "9999"},
}

// Templates returns every wireframe template.
func Templates() []Template { return templates }

// TemplateByName looks up a template by name.
func TemplateByName(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Components returns the component library.
func Components() []Component { return components }

// ComponentByName looks up a component by name.
func ComponentByName(name string) (Component, bool) {
	for _, c := range components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Tokens returns every design token.
func Tokens() []Token { return tokens }

// TokenByName looks up a design token by name.
func TokenByName(name string) (Token, bool) {
	for _, tok := range tokens {
		if tok.Name == name {
			return tok, true
		}
	}
	return Token{}, false
}
