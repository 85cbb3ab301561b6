package agent

import (
	"encoding/json"
	"fmt"

	"seo-assistant-be/pkg/llm"
)

// ResultKind classifies a tool's payload shape. The executor treats
// keyword-list results specially (deduplication), and the runner keys the
// final metadata map by kind.
type ResultKind string

const (
	ResultKindKeywordList ResultKind = "keyword_results"
	ResultKindRank        ResultKind = "rank_result"
	ResultKindSiteAudit   ResultKind = "site_audit"
	ResultKindBacklinks   ResultKind = "backlink_overview"
	ResultKindProject     ResultKind = "project_status"
)

// Param is one named parameter of a tool declaration.
type Param struct {
	Name        string
	Type        string // "string" | "integer" | "number" | "boolean"
	Description string
	Required    bool
}

// Declaration is an immutable tool description. The registry of declarations
// is built once at startup and read-only afterwards.
type Declaration struct {
	Name        string
	Description string
	Params      []Param
	ResultKind  ResultKind

	// Status renders the human-readable progress line for a call.
	Status func(args map[string]interface{}) string

	// Handler performs the actual collaborator call.
	Handler Handler
}

// Schema renders the parameter list as a JSON Schema object for the model.
func (d *Declaration) Schema() json.RawMessage {
	properties := make(map[string]interface{}, len(d.Params))
	var required []string
	for _, p := range d.Params {
		properties[p.Name] = map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	raw, _ := json.Marshal(schema)
	return raw
}

// StatusLine returns the progress text for a call, falling back to a generic
// line when the declaration has no custom renderer.
func (d *Declaration) StatusLine(args map[string]interface{}) string {
	if d.Status != nil {
		return d.Status(args)
	}
	return fmt.Sprintf("Running %s...", d.Name)
}

// Registry holds the declared tool set. Constructed at startup, never
// mutated afterwards, safe for concurrent reads.
type Registry struct {
	order []string
	tools map[string]*Declaration
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Declaration),
	}
}

// Register adds a declaration. Duplicate names are a programming error.
func (r *Registry) Register(decl *Declaration) error {
	if decl.Name == "" {
		return fmt.Errorf("tool declaration missing name")
	}
	if _, exists := r.tools[decl.Name]; exists {
		return fmt.Errorf("tool %q already registered", decl.Name)
	}
	r.order = append(r.order, decl.Name)
	r.tools[decl.Name] = decl
	return nil
}

// MustRegister is Register for startup wiring, where a duplicate is fatal.
func (r *Registry) MustRegister(decl *Declaration) {
	if err := r.Register(decl); err != nil {
		panic(err)
	}
}

// Get looks up a declaration by name.
func (r *Registry) Get(name string) (*Declaration, bool) {
	d, ok := r.tools[name]
	return d, ok
}

// LLMTools renders the full declaration set in the model wire format,
// in registration order.
func (r *Registry) LLMTools() []llm.Tool {
	out := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		d := r.tools[name]
		out = append(out, llm.Tool{
			Type: "function",
			Function: llm.Function{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Schema(),
			},
		})
	}
	return out
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
