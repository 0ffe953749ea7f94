package ai

import (
	"reflect"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "json fence", in: "```json\n[{\"a\":1}]\n```", want: "[{\"a\":1}]"},
		{name: "bare fence", in: "```\nplain text\n```", want: "plain text"},
		{name: "no fence", in: "  already clean \n", want: "already clean"},
		{name: "unclosed fence", in: "```json\n[1,2,3]", want: "```json\n[1,2,3]"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFences(tc.in); got != tc.want {
				t.Fatalf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractSection(t *testing.T) {
	response := "Here is the plan.\n" +
		"ROUTE: Depot A -> Sawmill B -> Port C\n" +
		"SCHEDULE: load Tuesday 06:00, deliver Wednesday\n" +
		"NOTES:\n- axle limit 40t on the forest road\n- call ahead at the port gate\n"

	if got := ExtractSection(response, "ROUTE"); got != "Depot A -> Sawmill B -> Port C" {
		t.Fatalf("ROUTE = %q", got)
	}
	if got := ExtractSection(response, "schedule"); got != "load Tuesday 06:00, deliver Wednesday" {
		t.Fatalf("SCHEDULE = %q", got)
	}
	notes := ExtractSection(response, "NOTES")
	if notes == "" {
		t.Fatal("NOTES section missing")
	}
	if got := ExtractSection(response, "PRICING"); got != "" {
		t.Fatalf("PRICING = %q, want empty for absent section", got)
	}
}

func TestSplitBullets(t *testing.T) {
	block := "- first stop\n* second stop\nplain line\n1. third stop\n2) fourth stop\n-   \n"
	got := SplitBullets(block)
	want := []string{"first stop", "second stop", "third stop", "fourth stop"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitBullets = %#v, want %#v", got, want)
	}
}
