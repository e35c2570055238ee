package aggregate

import (
	"reflect"
	"testing"

	"github.com/hyperifyio/leadhunt/internal/search"
)

func TestFilterByTerms_PhraseExact(t *testing.T) {
	in := []search.Record{
		{Title: "Lead", Snippet: "I need a web designer in Chicago"},
		{Title: "web designer", Snippet: "looking for one downtown"},
	}
	out := FilterByTerms(in, `"web designer in chicago"`)
	if len(out) != 1 || out[0].Title != "Lead" {
		t.Fatalf("phrase filter kept %+v", out)
	}
}

func TestFilterByTerms_PhraseIgnoresBareTerms(t *testing.T) {
	in := []search.Record{{Title: "Hiring a web designer", Snippet: "remote"}}
	out := FilterByTerms(in, `"web designer" plumber`)
	if len(out) != 1 {
		t.Fatalf("bare terms must be ignored when phrases are present, got %+v", out)
	}
}

func TestFilterByTerms_AllTermsRequired(t *testing.T) {
	in := []search.Record{
		{Title: "Chicago news", Snippet: "weather today"},
		{Title: "Need a PLUMBER", Snippet: "north side of chicago"},
	}
	out := FilterByTerms(in, "chicago plumber")
	if len(out) != 1 || out[0].Title != "Need a PLUMBER" {
		t.Fatalf("all-terms filter kept %+v", out)
	}
}

func TestFilterByTerms_TermSpansTitleAndSnippetBoundary(t *testing.T) {
	in := []search.Record{{Title: "web", Snippet: "designer"}}
	if out := FilterByTerms(in, `"web designer"`); len(out) != 1 {
		t.Fatalf("title and snippet are joined with a space, got %+v", out)
	}
}

func TestFilterByTerms_EmptyQueryKeepsAll(t *testing.T) {
	in := []search.Record{{Title: "a"}, {}, {Snippet: "b"}}
	out := FilterByTerms(in, "   ")
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("empty query should keep all records in order, got %+v", out)
	}
}

func TestFilterByTerms_UnicodeCaseFolding(t *testing.T) {
	in := []search.Record{{Title: "STRASSE in München", Snippet: ""}}
	if out := FilterByTerms(in, "münchen"); len(out) != 1 {
		t.Fatalf("expected case-insensitive match on non-ASCII text")
	}
}

func TestParseTerms(t *testing.T) {
	got := ParseTerms(`  "web designer"  chicago "in chicago" `)
	if !reflect.DeepEqual(got.Phrases, []string{"web designer", "in chicago"}) || got.Words != nil {
		t.Fatalf("ParseTerms phrases=%q words=%q", got.Phrases, got.Words)
	}
	got = ParseTerms("chicago\tplumber  24h")
	if !reflect.DeepEqual(got.Words, []string{"chicago", "plumber", "24h"}) {
		t.Fatalf("ParseTerms words=%q", got.Words)
	}
}
