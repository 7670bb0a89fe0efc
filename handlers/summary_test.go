package handlers

import (
	"strings"
	"testing"
)

func TestBuildSummary(t *testing.T) {
	text := "One. Two! Three? Four. Five. Six."
	summary, bullets := buildSummary(text)

	if summary != "One. Two! Three?" {
		t.Errorf("expected first three sentences, got %q", summary)
	}
	if len(bullets) != 3 {
		t.Fatalf("expected 3 bullets, got %d", len(bullets))
	}
	if bullets[0] != "Four." {
		t.Errorf("expected Four. as first bullet, got %q", bullets[0])
	}
}

func TestBuildSummary_empty(t *testing.T) {
	summary, bullets := buildSummary("   ")
	if summary != "" {
		t.Errorf("expected empty summary, got %q", summary)
	}
	if len(bullets) != 0 {
		t.Errorf("expected no bullets, got %v", bullets)
	}
}

func TestBuildSummary_shortText(t *testing.T) {
	summary, bullets := buildSummary("Just one sentence.")
	if summary != "Just one sentence." {
		t.Errorf("unexpected summary %q", summary)
	}
	if len(bullets) != 0 {
		t.Errorf("expected no bullets, got %v", bullets)
	}
}

func TestBuildSummary_truncatesLongBullets(t *testing.T) {
	long := strings.Repeat("word ", 60) + "end."
	text := "A. B. C. " + long
	_, bullets := buildSummary(text)

	if len(bullets) != 1 {
		t.Fatalf("expected 1 bullet, got %d", len(bullets))
	}
	if !strings.HasSuffix(bullets[0], "…") {
		t.Errorf("expected truncated bullet, got %q", bullets[0])
	}
}

func TestSplitSentences_abuttingPunctuation(t *testing.T) {
	sentences := splitSentences("Done?Yes. Next one.")
	// "Done?Yes." has no space after the '?', so it stays one sentence.
	if len(sentences) != 2 {
		t.Errorf("expected 2 sentences, got %v", sentences)
	}
}
