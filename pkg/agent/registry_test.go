package agent

import (
	"encoding/json"
	"testing"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	decl := &Declaration{Name: "check_ranking", Description: "d"}
	if err := r.Register(decl); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok := r.Get("check_ranking")
	if !ok || got.Name != "check_ranking" {
		t.Fatalf("Get = %v, %v", got, ok)
	}

	if _, ok := r.Get("nope"); ok {
		t.Error("unknown tool lookup should fail")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Declaration{Name: "analyze_site"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(&Declaration{Name: "analyze_site"}); err == nil {
		t.Error("duplicate Register should error")
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	if err := NewRegistry().Register(&Declaration{}); err == nil {
		t.Error("empty name should error")
	}
}

func TestDeclarationSchema(t *testing.T) {
	decl := &Declaration{
		Name: "research_keywords",
		Params: []Param{
			{Name: "query", Type: "string", Description: "seed query", Required: true},
			{Name: "limit", Type: "integer", Description: "max results"},
		},
	}

	var schema struct {
		Type       string                       `json:"type"`
		Properties map[string]map[string]string `json:"properties"`
		Required   []string                     `json:"required"`
	}
	if err := json.Unmarshal(decl.Schema(), &schema); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("schema type = %q", schema.Type)
	}
	if schema.Properties["query"]["type"] != "string" {
		t.Errorf("query property = %v", schema.Properties["query"])
	}
	if len(schema.Required) != 1 || schema.Required[0] != "query" {
		t.Errorf("required = %v", schema.Required)
	}
}

func TestLLMToolsPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"research_keywords", "check_ranking", "analyze_site"}
	for _, n := range names {
		r.MustRegister(&Declaration{Name: n})
	}

	tools := r.LLMTools()
	if len(tools) != len(names) {
		t.Fatalf("len = %d", len(tools))
	}
	for i, n := range names {
		if tools[i].Function.Name != n {
			t.Errorf("tools[%d] = %q, want %q", i, tools[i].Function.Name, n)
		}
	}
}

func TestStatusLineFallback(t *testing.T) {
	decl := &Declaration{Name: "check_ranking"}
	if got := decl.StatusLine(nil); got != "Running check_ranking..." {
		t.Errorf("StatusLine = %q", got)
	}
}
