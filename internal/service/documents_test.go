package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cv-screener/internal/docstore"
	docstore_mocks "cv-screener/internal/docstore/mocks"
	"cv-screener/internal/extract"
	"cv-screener/internal/indexer"
	"cv-screener/internal/llm"
	"cv-screener/internal/service"
	"cv-screener/internal/storage"
	storage_mocks "cv-screener/internal/storage/mocks"
	"cv-screener/internal/vectorstore"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const resumeText = "Jane Doe. Senior backend engineer. Go, Kubernetes, PostgreSQL, Kafka. " +
	"Built payment platforms at scale. Led a team of six. MSc Computer Science."

// plainExtractor treats the uploaded bytes as the extracted text.
var plainExtractor = extract.ExtractorFunc(func(ctx context.Context, data []byte) (string, error) {
	return string(data), nil
})

type fakeEmbedder struct {
	calls atomic.Int32
	err   error
	block bool
	delay time.Duration
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), float32(strings.Count(t, "Go") + 1), 1}
	}
	return out, nil
}

var _ llm.Embedder = (*fakeEmbedder)(nil)

// flakyIndex fails vector deletes while failDelete is set.
type flakyIndex struct {
	*vectorstore.DocumentIndex
	failDelete bool
}

func (f *flakyIndex) DeleteByDocument(ctx context.Context, id string) (bool, error) {
	if f.failDelete {
		return false, errors.New("vector index unavailable")
	}
	return f.DocumentIndex.DeleteByDocument(ctx, id)
}

type testEnv struct {
	svc      *service.DocumentService
	meta     storage.MetadataStore
	docs     docstore.Store
	index    *flakyIndex
	embedder *fakeEmbedder
}

func newTestEnv(t *testing.T, extractor extract.Extractor, opts ...service.DocumentOption) *testEnv {
	t.Helper()
	dir := t.TempDir()

	meta, err := storage.NewFileMetadataStore(dir + "/metadata")
	require.NoError(t, err)
	docs, err := docstore.NewFileStore(dir + "/cvs")
	require.NoError(t, err)

	return newTestEnvWithStores(t, meta, docs, extractor, opts...)
}

func newTestEnvWithStores(t *testing.T, meta storage.MetadataStore, docs docstore.Store, extractor extract.Extractor, opts ...service.DocumentOption) *testEnv {
	t.Helper()
	chunker, err := indexer.NewChunker(40, 10)
	require.NoError(t, err)

	embedder := &fakeEmbedder{}
	index := &flakyIndex{DocumentIndex: vectorstore.NewDocumentIndex(vectorstore.NewMemoryStore(3))}
	pipeline := indexer.NewPipeline(chunker, embedder, index.DocumentIndex, indexer.WithBatchSize(2))

	svc := service.NewDocumentService(meta, docs, extractor, pipeline, index, opts...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svc.Close(ctx)
	})

	return &testEnv{svc: svc, meta: meta, docs: docs, index: index, embedder: embedder}
}

func TestDocumentService_UploadAndProcess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, storage.StatusUploaded, rec.Status)
	assert.Equal(t, "resume.pdf", rec.OriginalName)
	assert.Equal(t, int64(len(resumeText)), rec.SizeBytes)
	assert.Equal(t, rec.ID+"_chunk_", rec.VectorPrefix)
	assert.Zero(t, rec.ChunkCount)

	exists, err := env.svc.Exists(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	processed, err := env.svc.Process(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusProcessed, processed.Status)
	assert.Positive(t, processed.ChunkCount)
	assert.Empty(t, processed.ProcessingErrors)

	stored, err := env.svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, processed.ChunkCount, stored.ChunkCount)

	n, err := env.index.CountByDocument(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, processed.ChunkCount, n)
}

func TestDocumentService_Upload_Validation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantMsg  string
	}{
		{name: "non-pdf extension", filename: "notes.txt", data: []byte("hello"), wantMsg: "only PDF files are accepted"},
		{name: "no extension", filename: "resume", data: []byte("hello"), wantMsg: "only PDF files are accepted"},
		{name: "empty file", filename: "resume.pdf", data: nil, wantMsg: "file is empty"},
		{name: "missing filename", filename: "", data: []byte("hello"), wantMsg: "filename is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, plainExtractor)

			_, err := env.svc.Upload(ctx, tt.filename, tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrInvalidInput)

			var vErr *service.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMsg, vErr.Message)

			count, err := env.meta.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, count, "no record may be created")

			objects, err := env.docs.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, objects, "no raw content may be stored")
		})
	}
}

func TestDocumentService_Upload_UppercaseExtensionAndPathStripped(t *testing.T) {
	env := newTestEnv(t, plainExtractor)

	rec, err := env.svc.Upload(context.Background(), `C:\Users\jane\CV.PDF`, []byte(resumeText))
	require.NoError(t, err)
	assert.Equal(t, "CV.PDF", rec.OriginalName)
}

func TestDocumentService_Upload_MetadataFailureRollsBackContent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	meta := storage_mocks.NewMockMetadataStore(ctrl)
	meta.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	docs, err := docstore.NewFileStore(t.TempDir())
	require.NoError(t, err)

	env := newTestEnvWithStores(t, meta, docs, plainExtractor)

	_, err = env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInconsistent)

	objects, err := docs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects, "raw content must be removed when metadata creation fails")
}

func TestDocumentService_Upload_RollbackFailureIsReported(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	meta := storage_mocks.NewMockMetadataStore(ctrl)
	docs := docstore_mocks.NewMockStore(ctrl)

	gomock.InOrder(
		docs.EXPECT().Save(gomock.Any(), "fixed-id", []byte(resumeText)).Return("/data/cvs/fixed-id.pdf", nil),
		meta.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
		docs.EXPECT().Delete(gomock.Any(), "fixed-id").Return(false, errors.New("permission denied")),
	)

	env := newTestEnvWithStores(t, meta, docs, plainExtractor, service.WithIDGenerator(func() string { return "fixed-id" }))

	_, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	assert.ErrorIs(t, err, service.ErrInconsistent)
}

func TestDocumentService_Process_Failures(t *testing.T) {
	tests := []struct {
		name      string
		extractor extract.Extractor
		setup     func(env *testEnv)
		opts      []service.DocumentOption
		wantMsg   string
	}{
		{
			name: "extraction failure",
			extractor: extract.ExtractorFunc(func(ctx context.Context, data []byte) (string, error) {
				return "", errors.Join(extract.ErrExtraction, errors.New("malformed xref table"))
			}),
			wantMsg: "text extraction failed",
		},
		{
			name: "empty text",
			extractor: extract.ExtractorFunc(func(ctx context.Context, data []byte) (string, error) {
				return "  \n ", nil
			}),
			wantMsg: "no text could be extracted",
		},
		{
			name:      "embedding failure",
			extractor: plainExtractor,
			setup: func(env *testEnv) {
				env.embedder.err = errors.New("429 too many requests")
			},
			wantMsg: "embedding failed",
		},
		{
			name:      "timeout",
			extractor: plainExtractor,
			setup: func(env *testEnv) {
				env.embedder.block = true
			},
			opts:    []service.DocumentOption{service.WithProcessingTimeout(50 * time.Millisecond)},
			wantMsg: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, tt.extractor, tt.opts...)
			if tt.setup != nil {
				tt.setup(env)
			}

			rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
			require.NoError(t, err)

			got, err := env.svc.Process(ctx, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, storage.StatusError, got.Status)
			assert.Zero(t, got.ChunkCount)
			require.Len(t, got.ProcessingErrors, 1)
			assert.Contains(t, got.ProcessingErrors[0], tt.wantMsg)

			stored, err := env.svc.Get(ctx, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, storage.StatusError, stored.Status, "failure must leave a terminal status")

			n, err := env.index.CountByDocument(ctx, rec.ID)
			require.NoError(t, err)
			assert.Zero(t, n, "no partial chunks may persist")
		})
	}
}

func TestDocumentService_Process_StateErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	_, err := env.svc.Process(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, service.ErrNotFound)

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.Process(ctx, rec.ID)
	require.NoError(t, err)

	_, err = env.svc.Process(ctx, rec.ID)
	assert.ErrorIs(t, err, service.ErrInvalidState)

	_, err = env.svc.StartProcessing(ctx, rec.ID)
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestDocumentService_AutoProcess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor, service.WithAutoProcess(true))

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	assert.Equal(t, storage.StatusProcessing, rec.Status)

	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, env.svc.Close(closeCtx))

	got, err := env.svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusProcessed, got.Status)
	assert.Positive(t, got.ChunkCount)
}

func TestDocumentService_CloseCancelsProcessing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)
	env.embedder.block = true

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)

	started, err := env.svc.StartProcessing(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusProcessing, started.Status)

	closeCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	err = env.svc.Close(closeCtx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	got, err := env.svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusError, got.Status)
	require.Len(t, got.ProcessingErrors, 1)
	assert.Contains(t, got.ProcessingErrors[0], "cancelled")

	late, err := env.svc.Upload(ctx, "late.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.StartProcessing(ctx, late.ID)
	assert.ErrorIs(t, err, service.ErrInvalidState)

	got, err = env.svc.Get(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusUploaded, got.Status)
}

func TestDocumentService_CloseDrainsProcessing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)
	env.embedder.delay = 150 * time.Millisecond

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.StartProcessing(ctx, rec.ID)
	require.NoError(t, err)

	closeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, env.svc.Close(closeCtx))

	got, err := env.svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusProcessed, got.Status)
	assert.Positive(t, got.ChunkCount)
	assert.Empty(t, got.ProcessingErrors)
}

func TestDocumentService_RecoverInterrupted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	done, err := env.svc.Upload(ctx, "done.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.Process(ctx, done.ID)
	require.NoError(t, err)

	const stuckID = "7f3a9c2e-0000-4000-8000-000000000001"
	now := time.Now().UTC()
	require.NoError(t, env.meta.Create(ctx, storage.DocumentRecord{
		ID:             stuckID,
		OriginalName:   "stuck.pdf",
		UploadedAt:     now,
		LastAccessedAt: now,
		SizeBytes:      int64(len(resumeText)),
		Status:         storage.StatusProcessing,
		VectorPrefix:   storage.VectorPrefixFor(stuckID),
	}))
	_, err = env.docs.Save(ctx, stuckID, []byte(resumeText))
	require.NoError(t, err)

	n, err := env.svc.RecoverInterrupted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := env.svc.Get(ctx, stuckID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusError, got.Status)
	assert.Equal(t, []string{service.InterruptedMessage}, got.ProcessingErrors)

	kept, err := env.svc.Get(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusProcessed, kept.Status)

	_, err = env.svc.StartProcessing(ctx, stuckID)
	assert.ErrorIs(t, err, service.ErrInvalidState)

	n, err = env.svc.RecoverInterrupted(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	result, err := env.svc.Delete(ctx, stuckID)
	require.NoError(t, err)
	assert.True(t, result.Complete())
}

func TestDocumentService_RecoverInterrupted_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := storage_mocks.NewMockMetadataStore(ctrl)
	meta.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("disk on fire"))

	env := newTestEnvWithStores(t, meta, docstore_mocks.NewMockStore(ctrl), plainExtractor)
	_, err := env.svc.RecoverInterrupted(context.Background())
	assert.Error(t, err)
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.Process(ctx, rec.ID)
	require.NoError(t, err)

	result, err := env.svc.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, result.Complete())
	assert.True(t, result.VectorsFound)
	assert.True(t, result.VectorsDeleted)
	assert.True(t, result.FilesDeleted)

	matches, err := env.index.QuerySimilar(ctx, []float32{40, 2, 1}, 10, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)

	exists, err := env.svc.Exists(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = env.svc.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDocumentService_Delete_UnknownID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	other, err := env.svc.Upload(ctx, "other.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.Process(ctx, other.ID)
	require.NoError(t, err)
	before, err := env.index.Describe(ctx)
	require.NoError(t, err)

	_, err = env.svc.Delete(ctx, "4b1c2d3e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, service.ErrNotFound)

	after, err := env.index.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "vectors must not change")

	count, err := env.meta.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDocumentService_InvalidIDsAreNotFound(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "cv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(db))
	docs, err := docstore.NewFileStore(filepath.Join(t.TempDir(), "cvs"))
	require.NoError(t, err)

	env := newTestEnvWithStores(t, storage.NewSQLiteMetadataStore(db), docs, plainExtractor)
	ctx := context.Background()

	for _, id := range []string{"..x", "../etc", "a/b"} {
		_, err := env.svc.Delete(ctx, id)
		assert.ErrorIs(t, err, service.ErrNotFound, "delete %q", id)

		_, err = env.svc.Get(ctx, id)
		assert.ErrorIs(t, err, service.ErrNotFound, "get %q", id)

		_, err = env.svc.Process(ctx, id)
		assert.ErrorIs(t, err, service.ErrNotFound, "process %q", id)

		exists, err := env.svc.Exists(ctx, id)
		require.NoError(t, err, "exists %q", id)
		assert.False(t, exists)
	}
}

func TestDocumentService_DocumentStoreRejectsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := storage_mocks.NewMockMetadataStore(ctrl)
	docs := docstore_mocks.NewMockStore(ctrl)
	meta.EXPECT().Get(gomock.Any(), "x..y").Return(storage.DocumentRecord{}, false, nil)
	meta.EXPECT().Get(gomock.Any(), "x..y").Return(storage.DocumentRecord{ID: "x..y"}, true, nil)
	docs.EXPECT().PathFor(gomock.Any(), "x..y").Return("", false, docstore.ErrInvalidID).Times(2)

	env := newTestEnvWithStores(t, meta, docs, plainExtractor)
	ctx := context.Background()

	_, err := env.svc.Delete(ctx, "x..y")
	assert.ErrorIs(t, err, service.ErrNotFound)

	exists, err := env.svc.Exists(ctx, "x..y")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDocumentService_DeleteDuringProcessing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)
	env.embedder.block = true

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.StartProcessing(ctx, rec.ID)
	require.NoError(t, err)

	deleteCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	result, err := env.svc.Delete(deleteCtx, rec.ID)
	require.NoError(t, err)
	assert.True(t, result.Complete())

	exists, err := env.svc.Exists(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDocumentService_Delete_VectorFailureKeepsFiles(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	_, err = env.svc.Process(ctx, rec.ID)
	require.NoError(t, err)

	env.index.failDelete = true
	result, err := env.svc.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, result.Complete())
	assert.NotEmpty(t, result.VectorError)
	assert.False(t, result.FilesDeleted)

	exists, err := env.svc.Exists(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, exists, "document must stay addressable for a retry")

	env.index.failDelete = false
	result, err = env.svc.Delete(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, result.Complete())
}

func TestDocumentService_Delete_OrphanFile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	_, err := env.docs.Save(ctx, "orphan-id", []byte("%PDF-1.4"))
	require.NoError(t, err)

	result, err := env.svc.Delete(ctx, "orphan-id")
	require.NoError(t, err)
	assert.True(t, result.Complete())
	assert.False(t, result.VectorsFound)

	objects, err := env.docs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestDocumentService_ListAndAudit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	list, err := env.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Documents)
	assert.Equal(t, service.Stats{Consistent: true}, list.Stats)

	first, err := env.svc.Upload(ctx, "a.pdf", []byte(resumeText))
	require.NoError(t, err)
	second, err := env.svc.Upload(ctx, "b.pdf", []byte("second resume"))
	require.NoError(t, err)

	list, err = env.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Documents, 2)
	assert.Equal(t, 2, list.Stats.TotalFiles)
	assert.Equal(t, 2, list.Stats.MetadataFiles)
	assert.Equal(t, int64(len(resumeText)+len("second resume")), list.Stats.TotalSizeBytes)
	assert.True(t, list.Stats.Consistent)

	_, err = env.docs.Save(ctx, "orphan-file", []byte("%PDF"))
	require.NoError(t, err)
	_, err = env.docs.Delete(ctx, second.ID)
	require.NoError(t, err)

	report, err := env.svc.Audit(ctx)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, []string{"orphan-file"}, report.OrphanFiles)
	assert.Equal(t, []string{second.ID}, report.OrphanMetadata)

	exists, err := env.svc.Exists(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = env.svc.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDocumentService_ResolveNames(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	rec, err := env.svc.Upload(ctx, "jane-doe.pdf", []byte(resumeText))
	require.NoError(t, err)

	got := env.svc.ResolveNames(ctx, []string{rec.ID, "abcdef0123456789"})
	assert.Equal(t, []service.SourceFile{
		{ID: rec.ID, Name: "jane-doe.pdf"},
		{ID: "abcdef0123456789", Name: "File abcdef01"},
	}, got)
}

func TestDocumentService_IndexStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, plainExtractor)

	rec, err := env.svc.Upload(ctx, "resume.pdf", []byte(resumeText))
	require.NoError(t, err)
	processed, err := env.svc.Process(ctx, rec.ID)
	require.NoError(t, err)

	st, err := env.svc.IndexStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, vectorstore.IndexStats{TotalVectors: processed.ChunkCount, Dimension: 3}, st)
}
