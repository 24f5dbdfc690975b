package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockDocStore implements driven.DocumentStore in memory. All returns
// records newest-first, matching the SQLite store's ordering.
type mockDocStore struct {
	mu      sync.Mutex
	records map[string]*domain.DocumentRecord
	order   []string
	nextID  int64

	upsertErr error
	getErr    error
	allErr    error
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{records: map[string]*domain.DocumentRecord{}}
}

func (m *mockDocStore) Upsert(_ context.Context, rec *domain.DocumentRecord) (domain.UpsertAction, error) {
	if m.upsertErr != nil {
		return "", m.upsertErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	text := domain.TruncateText(rec.Text)
	rec.CreatedAt = time.Now()

	action := domain.UpsertInserted
	if existing, ok := m.records[rec.FilePath]; ok {
		action = domain.UpsertUpdated
		rec.ID = existing.ID
		// An update refreshes creation time, moving the record to the
		// front of All.
		for i, p := range m.order {
			if p == rec.FilePath {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	} else {
		m.nextID++
		rec.ID = m.nextID
	}

	stored := *rec
	stored.Text = text
	m.records[rec.FilePath] = &stored
	m.order = append(m.order, rec.FilePath)
	return action, nil
}

func (m *mockDocStore) Get(_ context.Context, filePath string) (*domain.DocumentRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[filePath]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *mockDocStore) All(_ context.Context) ([]domain.DocumentRecord, error) {
	if m.allErr != nil {
		return nil, m.allErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]domain.DocumentRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		records = append(records, *m.records[m.order[i]])
	}
	return records, nil
}

func (m *mockDocStore) Close() error {
	return nil
}

// mockRasterizer implements driven.Rasterizer.
type mockRasterizer struct {
	availErr  error
	renderErr error
	renderFn  func(pdfPath string, page int) ([]byte, error)
	calls     int
}

func (m *mockRasterizer) Available() error {
	return m.availErr
}

func (m *mockRasterizer) RenderPage(_ context.Context, pdfPath string, page, _ int) ([]byte, error) {
	m.calls++
	if m.renderFn != nil {
		return m.renderFn(pdfPath, page)
	}
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	return []byte("png"), nil
}

// mockRecognizer implements driven.Recognizer.
type mockRecognizer struct {
	availErr     error
	recognizeErr error
	text         string
	calls        int
}

func (m *mockRecognizer) Available() error {
	return m.availErr
}

func (m *mockRecognizer) Recognize(_ context.Context, _ []byte, _ string, _ int) (string, error) {
	m.calls++
	if m.recognizeErr != nil {
		return "", m.recognizeErr
	}
	if m.text != "" {
		return m.text, nil
	}
	return "recognised text", nil
}

// mockProducer implements driven.SearchablePDFProducer. Produce writes
// a stub file at dstPath so scratch cleanup is observable.
type mockProducer struct {
	availErr   error
	produceErr error
	dstPath    string
	calls      int
}

func (m *mockProducer) Available() error {
	return m.availErr
}

func (m *mockProducer) Produce(_ context.Context, _, dstPath, _ string) error {
	m.calls++
	m.dstPath = dstPath
	if m.produceErr != nil {
		return m.produceErr
	}
	return os.WriteFile(dstPath, []byte("%PDF-1.4 produced"), 0o600)
}

// mockExtractor implements driven.PageTextExtractor.
type mockExtractor struct {
	pageCount    int
	pages        []string
	pageCountErr error
	extractErr   error
}

func (m *mockExtractor) PageCount(_ string) (int, error) {
	if m.pageCountErr != nil {
		return 0, m.pageCountErr
	}
	return m.pageCount, nil
}

func (m *mockExtractor) ExtractPages(_ string) ([]string, error) {
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return m.pages, nil
}

// mockCache implements driven.RecognitionCache keyed by raw path.
type mockCache struct {
	mu       sync.Mutex
	entries  map[string]domain.CacheEntry
	storeErr error
	lookups  int
	stores   int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]domain.CacheEntry{}}
}

func (m *mockCache) Lookup(path string) (*domain.CacheEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	entry, ok := m.entries[path]
	if !ok {
		return nil, false
	}
	return &entry, true
}

func (m *mockCache) Store(path string, entry domain.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stores++
	if m.storeErr != nil {
		return m.storeErr
	}
	m.entries[path] = entry
	return nil
}

// Interface guards for the mocks.
var (
	_ driven.DocumentStore         = (*mockDocStore)(nil)
	_ driven.Rasterizer            = (*mockRasterizer)(nil)
	_ driven.Recognizer            = (*mockRecognizer)(nil)
	_ driven.SearchablePDFProducer = (*mockProducer)(nil)
	_ driven.PageTextExtractor     = (*mockExtractor)(nil)
	_ driven.RecognitionCache      = (*mockCache)(nil)
)
