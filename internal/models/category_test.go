package models

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c, err)
		}
		if got != c {
			t.Fatalf("got %s, want %s", got, c)
		}
	}

	for _, label := range []string{"", "SPAM", "garantia", "GARANTIA ", "FEEDBACK"} {
		if _, err := ParseCategory(label); !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("label %q: expected ErrInvalidCategory, got %v", label, err)
		}
	}
}

func TestNewEmailDefaults(t *testing.T) {
	email := NewEmail("a@b.com", "assunto", "corpo")

	if email.ID != 0 {
		t.Fatalf("provisional email must have no id")
	}
	if email.Category != CategoryInconclusive {
		t.Fatalf("got category %s, want %s", email.Category, CategoryInconclusive)
	}
	if email.Confidence != 0 {
		t.Fatalf("got confidence %v, want 0", email.Confidence)
	}
	if email.DraftReply != "" {
		t.Fatalf("provisional draft must be empty")
	}
	if !email.RequiresHumanReview {
		t.Fatalf("provisional email must require review")
	}
}

func TestApplyResult(t *testing.T) {
	email := NewEmail("a@b.com", "assunto", "corpo")
	email.ApplyResult(ClassificationResult{
		Category:            CategoryRefund,
		Confidence:          0.82,
		DraftReply:          "rascunho",
		RequiresHumanReview: false,
	})

	if email.Category != CategoryRefund || email.Confidence != 0.82 ||
		email.DraftReply != "rascunho" || email.RequiresHumanReview {
		t.Fatalf("result not merged: %+v", email)
	}
}
