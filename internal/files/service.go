package files

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Service provides application-level index operations
type Service struct {
	repo Repository
}

// NewService creates a new file index service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// IndexRequest describes a media attachment posted to the source channel
type IndexRequest struct {
	ExternalRef     string
	Name            string
	Caption         string
	SourceMessageID int
	SourceChannelID int64
	Kind            Kind
}

// Index normalizes the request and upserts it keyed by external reference
func (s *Service) Index(ctx context.Context, req *IndexRequest) (*File, error) {
	if req.ExternalRef == "" {
		return nil, fmt.Errorf("failed to index file: empty external reference")
	}

	kind := req.Kind
	if !kind.Valid() {
		kind = KindDocument
	}

	file := &File{
		ID:              s.generateID(),
		ExternalRef:     req.ExternalRef,
		Name:            strings.TrimSpace(req.Name),
		Caption:         strings.TrimSpace(req.Caption),
		SourceMessageID: req.SourceMessageID,
		SourceChannelID: req.SourceChannelID,
		Kind:            kind,
	}

	if err := s.repo.Upsert(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to index file: %w", err)
	}

	return file, nil
}

// Search returns every file whose name or caption contains query.
// An empty query returns no results and no error.
func (s *Service) Search(ctx context.Context, query string) ([]*File, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	found, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search files: %w", err)
	}

	return found, nil
}

// Get retrieves a file by ID
func (s *Service) Get(ctx context.Context, id string) (*File, error) {
	file, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

// Count returns the number of indexed files
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return n, nil
}

// DeleteByName removes every file matching name the same way Search does
// and returns how many were removed
func (s *Service) DeleteByName(ctx context.Context, name string) (int, error) {
	matched, err := s.Search(ctx, name)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, file := range matched {
		if err := s.repo.Delete(ctx, file.ID); err != nil {
			// Removed concurrently
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return deleted, fmt.Errorf("failed to delete file %s: %w", file.ID, err)
		}
		deleted++
	}

	return deleted, nil
}

// CleanQuery strips a leading mention of the bot's own handle and surrounding whitespace
func CleanQuery(raw, username string) string {
	query := strings.TrimSpace(raw)
	if username == "" {
		return query
	}

	mention := "@" + strings.TrimPrefix(username, "@")
	if len(query) < len(mention) || !strings.EqualFold(query[:len(mention)], mention) {
		return query
	}

	rest := query[len(mention):]
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(r) {
		// A longer handle that merely shares the prefix
		return query
	}

	return strings.TrimSpace(rest)
}

// generateID creates a unique file identifier
func (s *Service) generateID() string {
	return uuid.NewString()
}
