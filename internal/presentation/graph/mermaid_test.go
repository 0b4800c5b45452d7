package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/library"
)

func TestGenerateMermaid(t *testing.T) {
	out, err := graph.GenerateMermaid(library.MustGet(library.EqualRuns), nil)
	if err != nil {
		t.Fatalf("GenerateMermaid failed: %v", err)
	}

	contains := []string{
		"graph LR\n",
		`q0(("skip"))`,
		`q1["take-zero"]`,
		`q8((("halt")))`,
		`q0 -- "E/E,R" --> q1`,
		`q2 -- "0/0,R<br/>1/1,R" --> q2`,
		`q7 -- "E/B,R" --> q8`,
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "classDef") {
		t.Error("no overlay styles expected without an overlay")
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	b := dsl.New("two")
	b.State("a").On("B", "x", dsl.R, "b")
	b.State("b").On("B", "y", dsl.L, dsl.Halt)
	def, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	trace := []domain.StepEvent{
		{Step: 1, State: 0, Next: 1},
		{Step: 2, State: 1, Next: 2},
	}
	out, err := graph.GenerateMermaid(def, graph.OverlayFromTrace(trace))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"class q0 visited;",
		"class q1 visited;",
		"class q2 current;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestGenerateMermaid_InvalidDefinition(t *testing.T) {
	if _, err := graph.GenerateMermaid(&domain.Definition{Name: "empty"}, nil); err == nil {
		t.Error("expected an error for a table without states")
	}
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	b := dsl.New("quotes")
	b.State(`say "hi"`).On(`"`, `"`, dsl.R, dsl.Halt)
	def, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	out, err := graph.GenerateMermaid(def, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `q0(("say #quot;hi#quot;"))`) {
		t.Errorf("quotes not escaped:\n%s", out)
	}
}
