package services

import (
  "context"
  "testing"

  "gorm.io/datatypes"

  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/types"
)

func chunkWith(text string, emb string) *types.KnowledgeChunk {
  return &types.KnowledgeChunk{Text: text, Embedding: datatypes.JSON([]byte(emb))}
}

func TestRetrieveRanksByCosineDistance(t *testing.T) {
  repo := &fakeChunkRepo{chunks: []*types.KnowledgeChunk{
    chunkWith("chunk A", "[1.0, 0.0, 0.0]"),
    chunkWith("chunk B", "[0.0, 1.0, 0.0]"),
    chunkWith("chunk C", "[0.7, 0.7, 0.0]"),
  }}
  r := NewKnowledgeRetriever(logger.NewNop(), repo, func() (Embedder, error) {
    return &fakeEmbedder{vec: []float32{0.0, 1.0, 0.0}}, nil
  })

  got := r.Retrieve(context.Background(), "stressed and tired", 2)
  if len(got) != 2 {
    t.Fatalf("got %d results, want 2", len(got))
  }
  if got[0] != "chunk B" {
    t.Fatalf("closest chunk = %q, want chunk B", got[0])
  }
  if got[1] != "chunk C" {
    t.Fatalf("second chunk = %q, want chunk C", got[1])
  }
}

func TestRetrieveSkipsMalformedAndMismatchedEmbeddings(t *testing.T) {
  repo := &fakeChunkRepo{chunks: []*types.KnowledgeChunk{
    chunkWith("bad json", "not-json"),
    chunkWith("wrong dims", "[1.0, 0.0]"),
    chunkWith("good", "[0.0, 1.0, 0.0]"),
  }}
  r := NewKnowledgeRetriever(logger.NewNop(), repo, func() (Embedder, error) {
    return &fakeEmbedder{vec: []float32{0.0, 1.0, 0.0}}, nil
  })

  got := r.Retrieve(context.Background(), "query", 2)
  if len(got) != 1 || got[0] != "good" {
    t.Fatalf("got %v, want only the well-formed chunk", got)
  }
}

func TestRetrieveEmptyCorpus(t *testing.T) {
  r := NewKnowledgeRetriever(logger.NewNop(), &fakeChunkRepo{}, func() (Embedder, error) {
    return &fakeEmbedder{vec: []float32{1.0}}, nil
  })
  if got := r.Retrieve(context.Background(), "query", 2); len(got) != 0 {
    t.Fatalf("empty corpus should yield no results, got %v", got)
  }
}

func TestRetrieveDegradesOnEmbedderFailure(t *testing.T) {
  repo := &fakeChunkRepo{chunks: []*types.KnowledgeChunk{
    chunkWith("chunk A", "[1.0]"),
  }}

  t.Run("embedder_construction_fails", func(t *testing.T) {
    r := NewKnowledgeRetriever(logger.NewNop(), repo, func() (Embedder, error) {
      return nil, errBoom
    })
    if got := r.Retrieve(context.Background(), "query", 2); len(got) != 0 {
      t.Fatalf("got %v, want empty", got)
    }
  })

  t.Run("embed_call_fails", func(t *testing.T) {
    r := NewKnowledgeRetriever(logger.NewNop(), repo, func() (Embedder, error) {
      return &fakeEmbedder{err: errBoom}, nil
    })
    if got := r.Retrieve(context.Background(), "query", 2); len(got) != 0 {
      t.Fatalf("got %v, want empty", got)
    }
  })

  t.Run("corpus_fetch_fails", func(t *testing.T) {
    r := NewKnowledgeRetriever(logger.NewNop(), &fakeChunkRepo{err: errBoom}, func() (Embedder, error) {
      return &fakeEmbedder{vec: []float32{1.0}}, nil
    })
    if got := r.Retrieve(context.Background(), "query", 2); len(got) != 0 {
      t.Fatalf("got %v, want empty", got)
    }
  })
}

func TestRetrieveBuildsEmbedderOnce(t *testing.T) {
  calls := 0
  r := NewKnowledgeRetriever(logger.NewNop(), &fakeChunkRepo{}, func() (Embedder, error) {
    calls++
    return &fakeEmbedder{vec: []float32{1.0}}, nil
  })

  r.Retrieve(context.Background(), "first", 2)
  r.Retrieve(context.Background(), "second", 2)
  if calls != 1 {
    t.Fatalf("embedder constructed %d times, want 1", calls)
  }
}
