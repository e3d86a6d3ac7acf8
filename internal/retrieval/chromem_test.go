package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hrdesk/hrdesk-go/internal/corpus"
)

// stubEmbedder maps text onto a tiny fixed topic space so related texts get
// nearby vectors without a live embedding backend.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		// Bias dimension keeps every vector nonzero.
		v := []float32{1, 0, 0, 0}
		for dim, word := range []string{"leave", "medical", "salary"} {
			if strings.Contains(lower, word) {
				v[dim+1] = 3
			}
		}
		out[i] = v
	}
	return out, nil
}

func newTestChromem(t *testing.T) *ChromemIndex {
	t.Helper()
	idx, err := NewChromemIndex(&ChromemConfig{Embedder: stubEmbedder{}})
	if err != nil {
		t.Fatalf("NewChromemIndex: %v", err)
	}
	return idx
}

func benefitsCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	return testCorpus(t,
		corpus.Row{Question: "How do I request annual leave?", Answer: "Through the portal", Tags: "leave"},
		corpus.Row{Question: "What medical cover do we have?", Answer: "Group health plan", Tags: "medical"},
		corpus.Row{Question: "When is salary paid?", Answer: "Last working day", Tags: "salary"},
	)
}

func TestChromemRequiresEmbedder(t *testing.T) {
	t.Parallel()

	if _, err := NewChromemIndex(&ChromemConfig{}); err == nil {
		t.Fatal("expected an error without an embedder")
	}
}

func TestChromemUnavailableBeforeBuild(t *testing.T) {
	t.Parallel()

	idx := newTestChromem(t)

	if _, err := idx.Query(context.Background(), "leave", 3); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Query err = %v, want ErrIndexUnavailable", err)
	}
	if err := idx.Ping(context.Background()); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Ping err = %v, want ErrIndexUnavailable", err)
	}
	if idx.Count() != 0 {
		t.Errorf("Count = %d, want 0", idx.Count())
	}
}

func TestChromemRebuildAndQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	idx := newTestChromem(t)

	if err := idx.Rebuild(ctx, benefitsCorpus(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if idx.Count() != 3 {
		t.Fatalf("Count = %d, want 3", idx.Count())
	}
	if err := idx.Ping(ctx); err != nil {
		t.Fatalf("Ping after build: %v", err)
	}

	matches, err := idx.Query(ctx, "medical insurance question", 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ID != 1 {
		t.Errorf("best match ID = %d, want 1 (the medical record)", matches[0].ID)
	}
	if matches[0].Similarity <= matches[1].Similarity {
		t.Errorf("matches not ordered by similarity: %v", matches)
	}
}

func TestChromemQueryClampsK(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	idx := newTestChromem(t)
	if err := idx.Rebuild(ctx, benefitsCorpus(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	matches, err := idx.Query(ctx, "leave", 50)
	if err != nil {
		t.Fatalf("Query with oversized k: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("got %d matches, want all 3", len(matches))
	}
}

func TestChromemRebuildReplacesContents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	idx := newTestChromem(t)

	if err := idx.Rebuild(ctx, benefitsCorpus(t)); err != nil {
		t.Fatalf("first Rebuild: %v", err)
	}
	small := testCorpus(t, corpus.Row{Question: "Single question on leave", Answer: "Single answer", Tags: "leave"})
	if err := idx.Rebuild(ctx, small); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}

	if idx.Count() != 1 {
		t.Errorf("Count after replace = %d, want 1", idx.Count())
	}
	matches, err := idx.Query(ctx, "leave", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 0 {
		t.Errorf("matches = %+v, want the single new record", matches)
	}
}

func TestChromemEmptyCorpus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	idx := newTestChromem(t)
	if err := idx.Rebuild(ctx, testCorpus(t)); err != nil {
		t.Fatalf("Rebuild empty: %v", err)
	}

	matches, err := idx.Query(ctx, "anything", 5)
	if err != nil {
		t.Fatalf("Query on empty collection: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestChromemPersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewChromemIndex(&ChromemConfig{Path: dir, Embedder: stubEmbedder{}})
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	if err := first.Rebuild(ctx, benefitsCorpus(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	second, err := NewChromemIndex(&ChromemConfig{Path: dir, Embedder: stubEmbedder{}})
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	if second.Count() != 3 {
		t.Fatalf("reopened Count = %d, want 3", second.Count())
	}
	matches, err := second.Query(ctx, "salary payday", 1)
	if err != nil {
		t.Fatalf("Query on reopened index: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 2 {
		t.Errorf("matches = %+v, want the salary record", matches)
	}
}
