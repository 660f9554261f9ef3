package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// --- Fake implementations ---

// fakeIndex is an in-memory driven.VectorIndex.
type fakeIndex struct {
	mu sync.Mutex

	exists     bool
	readyAfter int // Describe calls before Ready is reported
	describes  int
	created    []domain.IndexSpec
	records    map[string][]domain.VectorRecord
	matches    []domain.Match
	lastK      int
	lastNS     string
	stats      domain.IndexStats
	existsErr  error
	createErr  error
	upsertErr  error
	queryErr   error
	statsErr   error
	upsertCall int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{exists: true, records: make(map[string][]domain.VectorRecord)}
}

func (f *fakeIndex) Exists(_ context.Context, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists, f.existsErr
}

func (f *fakeIndex) Create(_ context.Context, spec domain.IndexSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, spec)
	f.exists = true
	return nil
}

func (f *fakeIndex) Describe(_ context.Context, _ string) (domain.IndexStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describes++
	return domain.IndexStatus{Ready: f.describes > f.readyAfter}, nil
}

func (f *fakeIndex) Upsert(_ context.Context, ns string, records []domain.VectorRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCall++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[ns] = append(f.records[ns], records...)
	return nil
}

func (f *fakeIndex) Query(_ context.Context, ns string, _ []float32, k int) ([]domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastNS, f.lastK = ns, k
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if k < len(f.matches) {
		return f.matches[:k], nil
	}
	return f.matches, nil
}

func (f *fakeIndex) Stats(_ context.Context) (domain.IndexStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeIndex) Close() error { return nil }

func (f *fakeIndex) count(ns string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records[ns])
}

// fakeEmbedder returns a two-dimensional vector per text.
type fakeEmbedder struct {
	batchCalls int
	lastText   string
	err        error
	short      bool // return one vector too few
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, _ := f.Embed(ctx, t)
		out = append(out, v)
	}
	if f.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return 2 }
func (f *fakeEmbedder) ModelName() string            { return "fake-embed" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

// fakeLLM records the messages it receives.
type fakeLLM struct {
	reply     string
	fragments []string
	chatErr   error
	streamErr error
	midErr    error // returned after all fragments instead of io.EOF

	chatMessages   []driven.ChatMessage
	streamMessages []driven.ChatMessage
	chatCalls      int
}

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.chatCalls++
	f.chatMessages = messages
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.reply, nil
}

func (f *fakeLLM) ChatStream(
	_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions,
) (driven.TokenStream, error) {
	f.streamMessages = messages
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return &fakeTokenStream{fragments: f.fragments, tail: f.midErr}, nil
}

func (f *fakeLLM) ModelName() string            { return "fake-llm" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

type fakeTokenStream struct {
	fragments []string
	tail      error
	closed    bool
}

func (s *fakeTokenStream) Recv() (string, error) {
	if len(s.fragments) == 0 {
		if s.tail != nil {
			return "", s.tail
		}
		return "", io.EOF
	}
	frag := s.fragments[0]
	s.fragments = s.fragments[1:]
	return frag, nil
}

func (s *fakeTokenStream) Close() error {
	s.closed = true
	return nil
}

// fakePrompts serves prompts from a map.
type fakePrompts map[string]string

func (f fakePrompts) Load(name string) (string, error) {
	p, ok := f[name]
	if !ok {
		return "", fmt.Errorf("%w: prompt %q", domain.ErrNotFound, name)
	}
	return p, nil
}

func (f fakePrompts) Reload() {}

// fakeLoader returns fixed documents for one file type.
type fakeLoader struct {
	ft   domain.FileType
	docs []domain.Document
	err  error
}

func (f *fakeLoader) FileType() domain.FileType { return f.ft }

func (f *fakeLoader) Load(_ context.Context, _ string) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Document, len(f.docs))
	for i, d := range f.docs {
		out[i] = domain.Document{Content: d.Content, Metadata: domain.CopyMetadata(d.Metadata)}
	}
	return out, nil
}

var errFake = errors.New("fake failure")
