package nodelink

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/graphmapper/pkg/catalog"
	"github.com/matzehuels/graphmapper/pkg/graph"
)

func newStore() *graph.Store {
	n := 0
	c := catalog.New(nil, catalog.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("e%d", n)
	}))
	return graph.New(c, graph.Options{})
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(newStore(), Options{})

	if !strings.HasPrefix(dot, "graph G {\n") {
		t.Errorf("ToDOT() empty graph should be undirected: %q", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() output not terminated: %q", dot)
	}
	if strings.Contains(dot, "subgraph") {
		t.Error("ToDOT() empty graph has clusters")
	}
	if err := Validate(dot); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestToDOT_Undirected(t *testing.T) {
	s := newStore()
	s.AddEdge(graph.EdgeSpec{SourceName: "pizza", SourceType: "food-2", TargetName: "cheeseburger", TargetType: "food-2", EdgeType: "similar-to"})

	dot := ToDOT(s, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() undirected output missing graph declaration")
	}
	if !strings.Contains(dot, `"e1" -- "e2" [label="similar-to"];`) {
		t.Errorf("ToDOT() output missing undirected edge:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() undirected graph uses ->")
	}
}

func TestToDOT_Mixed(t *testing.T) {
	s := newStore()
	s.AddEdge(graph.EdgeSpec{SourceName: "pizza", SourceType: "food-2", TargetName: "cheeseburger", TargetType: "food-2", EdgeType: "similar-to"})
	s.AddEdge(graph.EdgeSpec{SourceName: "Pizza", SourceType: "food-2", TargetName: "broccoli", TargetType: "food-1", EdgeType: "unrelated", Directed: true})

	dot := ToDOT(s, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"e1" -> "e2" [label="similar-to", dir=none];`) {
		t.Errorf("ToDOT() undirected edge in digraph missing dir=none:\n%s", dot)
	}
	if !strings.Contains(dot, `"e1" -> "e3" [label="unrelated"];`) {
		t.Errorf("ToDOT() output missing directed edge:\n%s", dot)
	}
	if strings.Count(dot, "subgraph cluster_") != 2 {
		t.Errorf("ToDOT() want one cluster per type:\n%s", dot)
	}
	if err := Validate(dot); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestToDOT_Clusters(t *testing.T) {
	s := newStore()
	c := s.Catalog()
	c.DefineType("person", "People")
	r, _ := c.Resolve("Gretchen", "person")
	c.Resolve("cucumber", "food-1")
	c.SetCentral(r.Entity.ID, true)

	dot := ToDOT(s, Options{})

	if !strings.Contains(dot, `label="PEOPLE";`) {
		t.Errorf("ToDOT() cluster label should be the upper-cased type name:\n%s", dot)
	}
	if !strings.Contains(dot, `label="FOOD-1";`) {
		t.Errorf("ToDOT() cluster label defaults to the type id:\n%s", dot)
	}
	if !strings.Contains(dot, `"e1" [label="Gretchen", style="rounded,filled,bold"`) {
		t.Errorf("ToDOT() central entity not styled:\n%s", dot)
	}
	if !strings.Contains(dot, `"e2" [label="cucumber"];`) {
		t.Errorf("ToDOT() regular entity has extra attributes:\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	s := newStore()
	s.AddEdge(graph.EdgeSpec{SourceName: "a", SourceType: "t", TargetName: "zzz", TargetType: "t"})
	s.AddEdge(graph.EdgeSpec{SourceName: "a", SourceType: "t", TargetName: "zzz", TargetType: "t", EdgeType: "x"})

	dot := ToDOT(s, Options{Detailed: true})

	if !strings.Contains(dot, `[label="(0)"]`) {
		t.Errorf("ToDOT() detailed unlabeled edge missing id:\n%s", dot)
	}
	if !strings.Contains(dot, `[label="(1) x"]`) {
		t.Errorf("ToDOT() detailed edge missing id:\n%s", dot)
	}
}

func TestToDOT_Unlabeled(t *testing.T) {
	s := newStore()
	s.AddEdge(graph.EdgeSpec{SourceName: "a", SourceType: "t", TargetName: "zzz", TargetType: "t"})

	dot := ToDOT(s, Options{})

	if !strings.Contains(dot, `"e1" -- "e2";`) {
		t.Errorf("ToDOT() unlabeled edge should have no attributes:\n%s", dot)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"Grüße", `"Grüße"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValidate_Invalid(t *testing.T) {
	if err := Validate("graph G { a -- }"); err == nil {
		t.Error("Validate() accepted broken DOT")
	}
}
