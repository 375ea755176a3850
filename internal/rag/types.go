package rag

// Outcome classifies how an answer was produced.
type Outcome string

const (
	// OutcomeAnswered means the language model answered from retrieved chunks.
	OutcomeAnswered Outcome = "answered"
	// OutcomeNoSources means retrieval returned nothing and no completion was requested.
	OutcomeNoSources Outcome = "no_sources"
	// OutcomeUpstreamError means retrieval or completion failed.
	OutcomeUpstreamError Outcome = "upstream_error"
)

// Answer is the result of a retrieval-augmented query.
type Answer struct {
	// Response is the generated answer, or a message describing why there is none.
	Response string `json:"response"`
	// Sources are the distinct document ids the answer was grounded in, in retrieval order.
	Sources []string `json:"sources"`
	// Confidence reflects source diversity, in [0, 0.9].
	Confidence float64 `json:"confidence"`
	// Outcome classifies the answer.
	Outcome Outcome `json:"outcome"`
	// Error holds the failure message when Outcome is OutcomeUpstreamError.
	Error string `json:"error,omitempty"`
	// Chunks are the retrieved chunks used for the prompt.
	Chunks []RetrievedChunk `json:"-"`
}

// RetrievedChunk is a chunk that went into the prompt.
type RetrievedChunk struct {
	DocumentID   string  `json:"document_id"`
	OriginalName string  `json:"original_name"`
	ChunkIndex   int     `json:"chunk_index"`
	Score        float32 `json:"score"`
	Text         string  `json:"text"`
}
