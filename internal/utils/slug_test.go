package utils

import "testing"

func TestSlugify(t *testing.T) {
	if got := Slugify("  Project Management & Leadership  "); got != "project-management-and-leadership" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := Slugify("PMP / Prep"); got != "pmp-prep" {
		t.Fatalf("unexpected slug: %q", got)
	}
}

func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("Paris-Event "); got != "paris-event" {
		t.Fatalf("unexpected normalized slug: %q", got)
	}
	if got := NormalizeSlug("paris-event"); got != "paris-event" {
		t.Fatalf("unexpected normalized slug: %q", got)
	}
}
