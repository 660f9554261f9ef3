package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// multipartMemory is the part of an upload kept in memory while parsing;
// the rest spills to temporary files.
const multipartMemory = 8 << 20

// chatMessage is one history entry of a chat request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Prefix  string        `json:"prefix"`
	Message string        `json:"message"`
	History []chatMessage `json:"history"`
}

// conversation validates the request and appends the new message to the
// history.
func (c chatRequest) conversation() (domain.Conversation, error) {
	if strings.TrimSpace(c.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	history := make([]domain.Message, len(c.History))
	for i, m := range c.History {
		history[i] = domain.Message{Role: domain.Role(m.Role), Content: m.Content}
	}
	conv := domain.WithUserMessage(history, c.Message)
	if err := conv.Validate(); err != nil {
		return nil, err
	}
	return conv, nil
}

// uploadResponse is the body returned by POST /upload.
type uploadResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	Filename         string `json:"filename"`
	TotalChunks      int    `json:"total_chunks"`
	ChunkingStrategy string `json:"chunking_strategy"`
}

type namespaceStats struct {
	VectorCount int64 `json:"vector_count"`
}

// statsResponse is the body returned by GET /chunking-stats.
type statsResponse struct {
	TotalVectorCount   int64                     `json:"total_vector_count"`
	Namespaces         map[string]namespaceStats `json:"namespaces"`
	Dimension          int                       `json:"dimension"`
	Metric             string                    `json:"metric"`
	ChunkingStrategies map[string]string         `json:"chunking_strategies"`
	SupportedFileTypes map[string]string         `json:"supported_file_types"`
}

// policyResponse is the body returned by GET /verify_system_prompt.
type policyResponse struct {
	SystemPromptActive    bool     `json:"system_prompt_active"`
	RealityFilterEnforced bool     `json:"reality_filter_enforced"`
	PDFFirstMode          bool     `json:"pdf_first_mode"`
	IngestedPDFs          []string `json:"ingested_pdfs"`
	Directive             string   `json:"directive"`
}

// handleChat streams the answer as server-sent events. Errors from starting
// the answer are ordinary JSON errors; later ones end the stream with an
// error event.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: decode request: %w", domain.ErrValidation, err))
		return
	}
	conv, err := req.conversation()
	if err != nil {
		writeError(w, err)
		return
	}

	stream, err := s.ports.Chat.Answer(r.Context(), req.Prefix, conv)
	if err != nil {
		writeError(w, err)
		return
	}
	defer stream.Close()

	sse := newEventWriter(w)
	if err := sse.Open(); err != nil {
		return
	}
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			if r.Context().Err() == nil {
				_ = sse.Error(err)
			}
			return
		}
		if err := sse.Data(fragment); err != nil {
			// Client went away.
			return
		}
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		writeError(w, &http.MaxBytesError{Limit: s.cfg.MaxUploadBytes})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, err)
			return
		}
		writeError(w, fmt.Errorf("%w: parse upload: %w", domain.ErrValidation, err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: file is required", domain.ErrValidation))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: read upload: %w", domain.ErrValidation, err))
		return
	}

	result, err := s.ports.Upload.Upload(r.Context(), r.FormValue("path"), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Status:           result.Status,
		Message:          fmt.Sprintf("'%s' uploaded successfully and training initiated.", result.Filename),
		Filename:         result.Filename,
		TotalChunks:      result.TotalChunks,
		ChunkingStrategy: string(result.ChunkingStrategy),
	})
}

func (s *Server) handleChunkingStats(w http.ResponseWriter, r *http.Request) {
	if s.ports.Stats == nil {
		writeError(w, domain.ErrVectorIndexUnavailable)
		return
	}
	stats, err := s.ports.Stats.ChunkingStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := statsResponse{
		TotalVectorCount:   stats.Index.TotalVectors,
		Namespaces:         make(map[string]namespaceStats, len(stats.Index.Namespaces)),
		Dimension:          stats.Index.Dimensions,
		Metric:             string(stats.Index.Metric),
		ChunkingStrategies: make(map[string]string, len(stats.Strategies)),
		SupportedFileTypes: make(map[string]string, len(stats.SupportedTypes)),
	}
	for ns, n := range stats.Index.Namespaces {
		resp.Namespaces[ns] = namespaceStats{VectorCount: n}
	}
	for tag, desc := range stats.Strategies {
		resp.ChunkingStrategies[string(tag)] = desc
	}
	for ft, desc := range stats.SupportedTypes {
		resp.SupportedFileTypes[string(ft)] = desc
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyPolicy(w http.ResponseWriter, r *http.Request) {
	if s.ports.Policy == nil {
		writeError(w, fmt.Errorf("policy: %w", domain.ErrNotFound))
		return
	}
	status, err := s.ports.Policy.VerifyPolicy(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policyResponse{
		SystemPromptActive:    status.SystemPromptActive,
		RealityFilterEnforced: status.RealityFilterEnforced,
		PDFFirstMode:          status.PDFFirstMode,
		IngestedPDFs:          status.ReferenceDocuments,
		Directive:             status.Directive,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OceanBot server is running"})
}
