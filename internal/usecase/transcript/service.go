package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
	"github.com/lovweb/transcript-studio/internal/domain/repositories"
	"github.com/lovweb/transcript-studio/internal/usecase/segmenter"
)

// ObjectStore persists the original uploaded document bytes
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// Service orchestrates the transcript lifecycle: upload and segmentation,
// retrieval, deletion, and markdown export.
type Service interface {
	// Upload creates a transcript, segments the document and persists the
	// resulting utterances. The transcript ends in completed or error state.
	Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*entities.Transcript, error)

	// List returns the user's transcripts, newest first
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Transcript, error)

	// Get returns a transcript with its utterances in document order
	Get(ctx context.Context, userID, transcriptID uuid.UUID) (*entities.Transcript, []*entities.Utterance, error)

	// Delete removes a transcript and, through the cascade, its utterances
	Delete(ctx context.Context, userID, transcriptID uuid.UUID) error

	// Export renders the transcript as a markdown document and returns the
	// suggested file name alongside the content.
	Export(ctx context.Context, userID, transcriptID uuid.UUID) (fileName, markdown string, err error)
}

// UploadInput carries one uploaded document
type UploadInput struct {
	FileName string
	Title    string
	Data     []byte
}

type transcriptService struct {
	transcriptRepo repositories.TranscriptRepository
	utteranceRepo  repositories.UtteranceRepository
	store          ObjectStore
	logger         *zap.Logger
}

// NewService creates a new transcript service. store may be nil when no
// object storage is configured; originals are then not retained.
func NewService(
	transcriptRepo repositories.TranscriptRepository,
	utteranceRepo repositories.UtteranceRepository,
	store ObjectStore,
	logger *zap.Logger,
) Service {
	return &transcriptService{
		transcriptRepo: transcriptRepo,
		utteranceRepo:  utteranceRepo,
		store:          store,
		logger:         logger,
	}
}

// Upload runs the two-phase pipeline: the transcript row is created in
// processing state first, then flipped to completed or error once
// segmentation settles. The status flip is idempotent and retried on its
// own.
func (s *transcriptService) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*entities.Transcript, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = input.FileName
	}

	fileType := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))

	transcript := entities.NewTranscript(userID, title)
	transcript.OriginalFileName = &input.FileName
	if fileType != "" {
		transcript.FileType = &fileType
	}
	if meta, err := json.Marshal(map[string]interface{}{"fileSize": len(input.Data)}); err == nil {
		transcript.Metadata = datatypes.JSON(meta)
	}

	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		return nil, err
	}

	s.storeOriginal(ctx, transcript.ID, input)

	parsed, err := segmenter.SegmentFile(input.FileName, input.Data)
	if err != nil {
		s.markStatus(ctx, transcript.ID, entities.TranscriptStatusError)
		if s.logger != nil {
			s.logger.Warn("transcript.segmentation_failed",
				zap.String("transcript_id", transcript.ID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if len(parsed) > 0 {
		utterances := make([]*entities.Utterance, len(parsed))
		for i, p := range parsed {
			u := &entities.Utterance{
				ID:           uuid.New(),
				TranscriptID: transcript.ID,
				Speaker:      p.Speaker,
				Content:      p.Content,
				StartTime:    p.StartTime,
				EndTime:      p.EndTime,
				OrderIndex:   i,
			}
			if p.Metadata != nil {
				if meta, err := json.Marshal(p.Metadata); err == nil {
					u.Metadata = datatypes.JSON(meta)
				}
			}
			utterances[i] = u
		}
		if err := s.utteranceRepo.BulkCreate(ctx, utterances); err != nil {
			s.markStatus(ctx, transcript.ID, entities.TranscriptStatusError)
			return nil, err
		}
	}

	// Empty input is a soft success: nothing to show, but nothing failed.
	if err := s.markStatus(ctx, transcript.ID, entities.TranscriptStatusCompleted); err != nil {
		return nil, err
	}
	transcript.Status = entities.TranscriptStatusCompleted

	if s.logger != nil {
		s.logger.Info("transcript.uploaded",
			zap.String("transcript_id", transcript.ID.String()),
			zap.String("file_type", fileType),
			zap.Int("utterance_count", len(parsed)),
		)
	}
	return transcript, nil
}

// storeOriginal keeps the uploaded bytes in object storage. Failures are
// logged and ignored: the parsed utterances are the product, the original is
// a convenience copy.
func (s *transcriptService) storeOriginal(ctx context.Context, transcriptID uuid.UUID, input UploadInput) {
	if s.store == nil {
		return
	}
	objectName := fmt.Sprintf("transcripts/%s/%s", transcriptID, input.FileName)
	err := s.store.UploadFile(ctx, objectName, bytes.NewReader(input.Data), int64(len(input.Data)), "application/octet-stream")
	if err != nil && s.logger != nil {
		s.logger.Warn("transcript.store_original_failed",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
	}
}

// markStatus retries the status flip with exponential backoff; the update is
// a single idempotent statement.
func (s *transcriptService) markStatus(ctx context.Context, transcriptID uuid.UUID, status entities.TranscriptStatus) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second

	update := func() error {
		return s.transcriptRepo.UpdateStatus(ctx, transcriptID, status)
	}
	if err := backoff.Retry(update, backoff.WithContext(bo, ctx)); err != nil {
		if s.logger != nil {
			s.logger.Error("transcript.status_update_failed",
				zap.String("transcript_id", transcriptID.String()),
				zap.String("status", string(status)),
				zap.Error(err),
			)
		}
		return err
	}
	return nil
}

// List returns the user's transcripts, newest first
func (s *transcriptService) List(ctx context.Context, userID uuid.UUID) ([]*entities.Transcript, error) {
	return s.transcriptRepo.ListByUser(ctx, userID)
}

// Get returns a transcript with its utterances in document order
func (s *transcriptService) Get(ctx context.Context, userID, transcriptID uuid.UUID) (*entities.Transcript, []*entities.Utterance, error) {
	transcript, err := s.transcriptRepo.FindOwnedByID(ctx, transcriptID, userID)
	if err != nil {
		return nil, nil, err
	}
	utterances, err := s.utteranceRepo.ListByTranscript(ctx, transcriptID)
	if err != nil {
		return nil, nil, err
	}
	return transcript, utterances, nil
}

// Delete removes a transcript owned by the user
func (s *transcriptService) Delete(ctx context.Context, userID, transcriptID uuid.UUID) error {
	return s.transcriptRepo.DeleteOwned(ctx, transcriptID, userID)
}

// Export renders the transcript as a markdown document
func (s *transcriptService) Export(ctx context.Context, userID, transcriptID uuid.UUID) (string, string, error) {
	transcript, utterances, err := s.Get(ctx, userID, transcriptID)
	if err != nil {
		return "", "", err
	}
	return ExportFileName(transcript.Title), RenderMarkdown(transcript, utterances), nil
}

// RenderMarkdown serializes a transcript and its ordered utterances as a
// flat markdown document, one speaker line per utterance.
func RenderMarkdown(transcript *entities.Transcript, utterances []*entities.Utterance) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", transcript.Title))
	if transcript.OriginalFileName != nil && *transcript.OriginalFileName != "" {
		sb.WriteString(fmt.Sprintf("*Source: %s*\n\n", *transcript.OriginalFileName))
	}
	if !transcript.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("*Date: %s*\n\n", transcript.CreatedAt.Format("2006-01-02")))
	}
	sb.WriteString("---\n\n")

	for _, u := range utterances {
		sb.WriteString(fmt.Sprintf("**%s**: %s\n\n", u.Speaker, u.Content))
	}
	return sb.String()
}

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ExportFileName derives a download file name from the transcript title
func ExportFileName(title string) string {
	name := unsafeFileNameChars.ReplaceAllString(title, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "transcript"
	}
	return name + ".md"
}
