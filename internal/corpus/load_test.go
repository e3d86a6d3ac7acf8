package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCSV writes content to a temp file and returns its path.
func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faq.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func loadCSV(t *testing.T, content string) *Corpus {
	t.Helper()
	c, err := Load(context.Background(), NewCSVSource(writeCSV(t, content)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoadCanonicalColumns(t *testing.T) {
	t.Parallel()

	c := loadCSV(t, "canonical_question,faq_answer,tags\n"+
		"How many vacation days?,21 days annually,\"leave,vacation\"\n")

	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	rec, ok := c.At(0)
	if !ok {
		t.Fatal("At(0) not ok")
	}
	if rec.Question != "How many vacation days?" {
		t.Errorf("Question = %q", rec.Question)
	}
	if rec.Answer != "21 days annually" {
		t.Errorf("Answer = %q", rec.Answer)
	}
	if rec.Tags != "leave,vacation" {
		t.Errorf("Tags = %q", rec.Tags)
	}
}

func TestLoadLegacyColumnAliases(t *testing.T) {
	t.Parallel()

	c := loadCSV(t, "Question,Answer,Tags\nWhat is the notice period?,60 days,hr\n")

	rec, _ := c.At(0)
	if rec.Question != "What is the notice period?" || rec.Answer != "60 days" || rec.Tags != "hr" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestLoadAnswerColumnPrecedence(t *testing.T) {
	t.Parallel()

	// faq_answer wins when present, short_answer fills the gap otherwise.
	c := loadCSV(t, "canonical_question,short_answer,faq_answer\n"+
		"q1,short one,preferred one\n"+
		"q2,short two,\n")

	r0, _ := c.At(0)
	if r0.Answer != "preferred one" {
		t.Errorf("record 0 answer = %q, want faq_answer value", r0.Answer)
	}
	r1, _ := c.At(1)
	if r1.Answer != "short two" {
		t.Errorf("record 1 answer = %q, want short_answer value", r1.Answer)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	t.Parallel()

	c := loadCSV(t, "canonical_question,short_answer,tags\n"+
		"  padded question  ,  padded answer  , padded tags \n")

	rec, _ := c.At(0)
	if rec.Question != "padded question" || rec.Answer != "padded answer" || rec.Tags != "padded tags" {
		t.Errorf("fields not trimmed: %+v", rec)
	}
}

func TestLoadDropsMalformedRows(t *testing.T) {
	t.Parallel()

	c := loadCSV(t, "canonical_question,short_answer,tags\n"+
		"keep me,a real answer,ok\n"+
		",missing question,\n"+
		"missing answer,,\n"+
		"leaked prefix,According to our HR materials: echoed prompt,\n"+
		"leaked context,answer text Context: employee asked about pay,\n"+
		"also kept,another real answer,ok\n")

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (4 rows dropped)", c.Len())
	}
	if c.Dropped() != 4 {
		t.Errorf("Dropped = %d, want 4", c.Dropped())
	}

	// IDs stay dense after drops so they can index the corpus directly.
	r0, _ := c.At(0)
	r1, _ := c.At(1)
	if r0.ID != 0 || r1.ID != 1 {
		t.Errorf("IDs = %d,%d, want 0,1", r0.ID, r1.ID)
	}
	if r1.Question != "also kept" {
		t.Errorf("record 1 question = %q", r1.Question)
	}
}

func TestLoadStripsHeaderBOM(t *testing.T) {
	t.Parallel()

	c := loadCSV(t, "\uFEFFcanonical_question,short_answer\nq,a long enough answer\n")
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), NewCSVSource(filepath.Join(t.TempDir(), "absent.csv")))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestLoadUnrecognizedHeader(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), NewCSVSource(writeCSV(t, "foo,bar\n1,2\n")))
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestLoadEmptyDatasetIsValid(t *testing.T) {
	t.Parallel()

	c := loadCSV(t, "canonical_question,short_answer\n")
	if c.Len() != 0 || c.Dropped() != 0 {
		t.Errorf("Len = %d, Dropped = %d, want 0,0", c.Len(), c.Dropped())
	}
}

func TestSearchTextIncludesAllFields(t *testing.T) {
	t.Parallel()

	rec := Record{Question: "q text", Answer: "a text", Tags: "t1,t2"}
	got := rec.SearchText()
	want := "Question: q text\nAnswer: a text\nTags: t1,t2"
	if got != want {
		t.Errorf("SearchText = %q, want %q", got, want)
	}
}
