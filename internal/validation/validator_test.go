package validation

import "testing"

type instructorInput struct {
	LinkedIn string `validate:"required,linkedin"`
}

type slugInput struct {
	Slug string `validate:"required,slug"`
}

func TestLinkedInTag(t *testing.T) {
	v := New()

	if err := v.Struct(instructorInput{LinkedIn: "https://www.linkedin.com/in/someone"}); err != nil {
		t.Fatalf("expected valid linkedin url, got %v", err)
	}
	if err := v.Struct(instructorInput{LinkedIn: "https://linkedin.com/in/someone"}); err != nil {
		t.Fatalf("expected valid linkedin url without www, got %v", err)
	}
	if err := v.Struct(instructorInput{LinkedIn: "https://twitter.com/someone"}); err == nil {
		t.Fatalf("expected rejection of non-linkedin url")
	}
	if err := v.Struct(instructorInput{LinkedIn: "http://linkedin.com/in/someone"}); err == nil {
		t.Fatalf("expected rejection of plain http url")
	}
}

func TestSlugTag(t *testing.T) {
	v := New()

	if err := v.Struct(slugInput{Slug: "project-management-basics"}); err != nil {
		t.Fatalf("expected valid slug, got %v", err)
	}
	if err := v.Struct(slugInput{Slug: "Paris-Event"}); err == nil {
		t.Fatalf("expected rejection of uppercase slug")
	}
	if err := v.Struct(slugInput{Slug: "double--dash"}); err == nil {
		t.Fatalf("expected rejection of doubled dash")
	}
}
