package services

import (
  "context"
  "encoding/json"
  "math"
  "sort"
  "sync"

  "github.com/wellsync/wellsync-backend/internal/logger"
  "github.com/wellsync/wellsync-backend/internal/repos"
)

// DefaultTopK keeps retrieved evidence within the prompt token budget.
const DefaultTopK = 2

// Embedder is the embedding capability the retriever needs. AIClient
// satisfies it.
type Embedder interface {
  Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// KnowledgeRetriever returns the k most relevant wellness guidance texts for
// a free-text description of the user's state. Retrieval is strictly optional
// context: every failure degrades to an empty result, never an error.
type KnowledgeRetriever interface {
  Retrieve(ctx context.Context, query string, k int) []string
}

type knowledgeRetriever struct {
  log       *logger.Logger
  chunkRepo repos.KnowledgeChunkRepo

  // the embedder is built once, on first use
  newEmbedder func() (Embedder, error)
  once        sync.Once
  embedder    Embedder
  embedErr    error
}

func NewKnowledgeRetriever(baseLog *logger.Logger, chunkRepo repos.KnowledgeChunkRepo, newEmbedder func() (Embedder, error)) KnowledgeRetriever {
  return &knowledgeRetriever{
    log:         baseLog.With("service", "KnowledgeRetriever"),
    chunkRepo:   chunkRepo,
    newEmbedder: newEmbedder,
  }
}

func (r *knowledgeRetriever) Retrieve(ctx context.Context, query string, k int) []string {
  if k <= 0 {
    k = DefaultTopK
  }

  r.once.Do(func() {
    r.embedder, r.embedErr = r.newEmbedder()
  })
  if r.embedErr != nil || r.embedder == nil {
    r.log.Warn("Embedder unavailable, skipping retrieval", "error", r.embedErr)
    return []string{}
  }

  vecs, err := r.embedder.Embed(ctx, []string{query})
  if err != nil || len(vecs) == 0 {
    r.log.Warn("Query embedding failed, skipping retrieval", "error", err)
    return []string{}
  }
  queryVec := toFloat64(vecs[0])

  chunks, err := r.chunkRepo.GetAll(ctx, nil)
  if err != nil {
    r.log.Warn("Knowledge corpus unavailable, skipping retrieval", "error", err)
    return []string{}
  }
  if len(chunks) == 0 {
    return []string{}
  }

  type ranked struct {
    text string
    dist float64
  }
  candidates := make([]ranked, 0, len(chunks))
  for _, chunk := range chunks {
    var emb []float64
    if uErr := json.Unmarshal(chunk.Embedding, &emb); uErr != nil || len(emb) != len(queryVec) {
      continue
    }
    candidates = append(candidates, ranked{text: chunk.Text, dist: cosineDistance(queryVec, emb)})
  }

  // stable: ties keep the corpus ordering
  sort.SliceStable(candidates, func(i, j int) bool {
    return candidates[i].dist < candidates[j].dist
  })

  if k > len(candidates) {
    k = len(candidates)
  }
  out := make([]string, 0, k)
  for _, c := range candidates[:k] {
    out = append(out, c.text)
  }
  return out
}

func toFloat64(v []float32) []float64 {
  out := make([]float64, len(v))
  for i, f := range v {
    out[i] = float64(f)
  }
  return out
}

func cosineDistance(a, b []float64) float64 {
  var dot, na, nb float64
  for i := range a {
    dot += a[i] * b[i]
    na += a[i] * a[i]
    nb += b[i] * b[i]
  }
  if na == 0 || nb == 0 {
    return 1.0
  }
  return 1.0 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
