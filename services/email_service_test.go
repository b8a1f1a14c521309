package services

import (
	"strings"
	"testing"

	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
	"github.com/alaminShaheen/PrepTracker/internal/types/user"
)

func namedGoal(name string) *goal.Goal {
	return &goal.Goal{Name: name}
}

func TestRenderDigest(t *testing.T) {
	u := &user.User{Firstname: "Alice", Email: "alice@example.com"}

	html, err := renderDigest(u,
		[]*goal.Goal{namedGoal("Morning run")},
		[]*goal.Goal{namedGoal("Weekly review")},
		nil,
	)
	if err != nil {
		t.Fatalf("renderDigest failed: %v", err)
	}

	for _, want := range []string{"Alice", "Morning run", "Weekly review"} {
		if !strings.Contains(html, want) {
			t.Errorf("digest missing %q", want)
		}
	}
	if strings.Contains(html, "One-time goals due") {
		t.Error("digest rendered one-time section with no one-time goals")
	}
}

func TestRenderDigestEscapesGoalNames(t *testing.T) {
	u := &user.User{Firstname: "Bob"}

	html, err := renderDigest(u, []*goal.Goal{namedGoal("<script>alert(1)</script>")}, nil, nil)
	if err != nil {
		t.Fatalf("renderDigest failed: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("goal name was not HTML-escaped")
	}
}
