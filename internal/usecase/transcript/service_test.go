package transcript

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
	"github.com/lovweb/transcript-studio/internal/usecase/segmenter"
)

type fakeTranscriptRepo struct {
	transcripts map[uuid.UUID]*entities.Transcript
	statusFlips []entities.TranscriptStatus
	failStatus  int
}

func newFakeTranscriptRepo() *fakeTranscriptRepo {
	return &fakeTranscriptRepo{transcripts: map[uuid.UUID]*entities.Transcript{}}
}

func (f *fakeTranscriptRepo) Create(_ context.Context, transcript *entities.Transcript) error {
	f.transcripts[transcript.ID] = transcript
	return nil
}

func (f *fakeTranscriptRepo) FindOwnedByID(_ context.Context, id, userID uuid.UUID) (*entities.Transcript, error) {
	t, ok := f.transcripts[id]
	if !ok || t.UserID != userID {
		return nil, entities.ErrTranscriptNotFound
	}
	return t, nil
}

func (f *fakeTranscriptRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Transcript, error) {
	var out []*entities.Transcript
	for _, t := range f.transcripts {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTranscriptRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.TranscriptStatus) error {
	if f.failStatus > 0 {
		f.failStatus--
		return errors.New("transient failure")
	}
	if t, ok := f.transcripts[id]; ok {
		t.Status = status
	}
	f.statusFlips = append(f.statusFlips, status)
	return nil
}

func (f *fakeTranscriptRepo) DeleteOwned(_ context.Context, id, userID uuid.UUID) error {
	t, ok := f.transcripts[id]
	if !ok || t.UserID != userID {
		return entities.ErrTranscriptNotFound
	}
	delete(f.transcripts, id)
	return nil
}

type fakeUtteranceWriter struct {
	created []*entities.Utterance
}

func (f *fakeUtteranceWriter) BulkCreate(_ context.Context, utterances []*entities.Utterance) error {
	f.created = append(f.created, utterances...)
	return nil
}

func (f *fakeUtteranceWriter) ListByTranscript(_ context.Context, transcriptID uuid.UUID) ([]*entities.Utterance, error) {
	var out []*entities.Utterance
	for _, u := range f.created {
		if u.TranscriptID == transcriptID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUtteranceWriter) FindOwnedByID(context.Context, uuid.UUID, uuid.UUID) (*entities.Utterance, error) {
	return nil, entities.ErrUtteranceNotFound
}

func (f *fakeUtteranceWriter) FindOwnedByIDs(context.Context, []uuid.UUID, uuid.UUID) ([]*entities.Utterance, error) {
	return nil, nil
}

func (f *fakeUtteranceWriter) UpdateFields(context.Context, uuid.UUID, map[string]interface{}) error {
	return nil
}

func (f *fakeUtteranceWriter) UpdateSpeaker(context.Context, uuid.UUID, string) error {
	return nil
}

func (f *fakeUtteranceWriter) RelabelForward(context.Context, uuid.UUID, int, string, string) (int64, error) {
	return 0, nil
}

func (f *fakeUtteranceWriter) RelabelAll(context.Context, uuid.UUID, string, string) (int64, error) {
	return 0, nil
}

func (f *fakeUtteranceWriter) MergeGroup(context.Context, uuid.UUID, uuid.UUID, string, *int, []uuid.UUID) error {
	return nil
}

type fakeStore struct {
	objects map[string]int64
	err     error
}

func (f *fakeStore) UploadFile(_ context.Context, objectName string, _ io.Reader, size int64, _ string) error {
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = map[string]int64{}
	}
	f.objects[objectName] = size
	return nil
}

func TestUpload_SegmentsAndCompletes(t *testing.T) {
	transcriptRepo := newFakeTranscriptRepo()
	utteranceRepo := &fakeUtteranceWriter{}
	store := &fakeStore{}
	svc := NewService(transcriptRepo, utteranceRepo, store, nil)

	userID := uuid.New()
	created, err := svc.Upload(context.Background(), userID, UploadInput{
		FileName: "standup.txt",
		Data:     []byte("Alice: Good morning.\nBob: Morning!\nStill Bob here."),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if created.Status != entities.TranscriptStatusCompleted {
		t.Fatalf("status = %s, want completed", created.Status)
	}
	if created.Title != "standup.txt" {
		t.Fatalf("title fallback = %q", created.Title)
	}
	if created.FileType == nil || *created.FileType != "txt" {
		t.Fatalf("file type not recorded")
	}

	if len(utteranceRepo.created) != 3 {
		t.Fatalf("expected 3 utterances, got %d", len(utteranceRepo.created))
	}
	for i, u := range utteranceRepo.created {
		if u.OrderIndex != i {
			t.Fatalf("order index %d at position %d", u.OrderIndex, i)
		}
		if u.TranscriptID != created.ID {
			t.Fatalf("utterance %d bound to wrong transcript", i)
		}
	}
	if utteranceRepo.created[2].Speaker != "Bob" {
		t.Fatalf("carry-over speaker = %q", utteranceRepo.created[2].Speaker)
	}

	if len(store.objects) != 1 {
		t.Fatalf("original not retained in object storage")
	}
}

func TestUpload_ExplicitTitleWins(t *testing.T) {
	svc := NewService(newFakeTranscriptRepo(), &fakeUtteranceWriter{}, nil, nil)

	created, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "x.txt",
		Title:    "  Weekly Sync  ",
		Data:     []byte("Alice: Hi."),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if created.Title != "Weekly Sync" {
		t.Fatalf("title = %q", created.Title)
	}
}

func TestUpload_UnsupportedFormatMarksError(t *testing.T) {
	transcriptRepo := newFakeTranscriptRepo()
	svc := NewService(transcriptRepo, &fakeUtteranceWriter{}, nil, nil)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "recording.wav",
		Data:     []byte("RIFF"),
	})

	var unsupported *segmenter.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}

	if len(transcriptRepo.statusFlips) != 1 || transcriptRepo.statusFlips[0] != entities.TranscriptStatusError {
		t.Fatalf("transcript not flipped to error state: %v", transcriptRepo.statusFlips)
	}
}

func TestUpload_EmptyDocumentCompletesWithNoUtterances(t *testing.T) {
	utteranceRepo := &fakeUtteranceWriter{}
	svc := NewService(newFakeTranscriptRepo(), utteranceRepo, nil, nil)

	created, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "empty.txt",
		Data:     []byte("\n\n"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if created.Status != entities.TranscriptStatusCompleted {
		t.Fatalf("status = %s, want completed", created.Status)
	}
	if len(utteranceRepo.created) != 0 {
		t.Fatalf("expected no utterances, got %d", len(utteranceRepo.created))
	}
}

func TestUpload_StorageFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("bucket unavailable")}
	svc := NewService(newFakeTranscriptRepo(), &fakeUtteranceWriter{}, store, nil)

	created, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "notes.txt",
		Data:     []byte("Alice: Hi."),
	})
	if err != nil {
		t.Fatalf("upload should survive storage failure: %v", err)
	}
	if created.Status != entities.TranscriptStatusCompleted {
		t.Fatalf("status = %s, want completed", created.Status)
	}
}

func TestUpload_StatusFlipRetriesTransientFailure(t *testing.T) {
	transcriptRepo := newFakeTranscriptRepo()
	transcriptRepo.failStatus = 2
	svc := NewService(transcriptRepo, &fakeUtteranceWriter{}, nil, nil)

	created, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		FileName: "notes.txt",
		Data:     []byte("Alice: Hi."),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if created.Status != entities.TranscriptStatusCompleted {
		t.Fatalf("status = %s after retries, want completed", created.Status)
	}
}

func TestExport_RendersMarkdown(t *testing.T) {
	transcriptRepo := newFakeTranscriptRepo()
	utteranceRepo := &fakeUtteranceWriter{}
	svc := NewService(transcriptRepo, utteranceRepo, nil, nil)

	userID := uuid.New()
	created, err := svc.Upload(context.Background(), userID, UploadInput{
		FileName: "sync.txt",
		Title:    "Weekly Sync",
		Data:     []byte("Alice: Hello.\nBob: Hi."),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	fileName, markdown, err := svc.Export(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if fileName != "Weekly_Sync.md" {
		t.Fatalf("file name = %q", fileName)
	}

	wantPrefix := "# Weekly Sync\n\n*Source: sync.txt*\n\n"
	if len(markdown) < len(wantPrefix) || markdown[:len(wantPrefix)] != wantPrefix {
		t.Fatalf("markdown header = %q", markdown[:min(len(markdown), 80)])
	}
	wantBody := "**Alice**: Hello.\n\n**Bob**: Hi.\n\n"
	if markdown[len(markdown)-len(wantBody):] != wantBody {
		t.Fatalf("markdown body = %q", markdown)
	}
}

func TestRenderMarkdown_Shape(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	source := "raw.txt"
	transcript := &entities.Transcript{
		Title:            "Design Review",
		OriginalFileName: &source,
		CreatedAt:        createdAt,
	}
	utterances := []*entities.Utterance{
		{Speaker: "Alice", Content: "First."},
		{Speaker: "Bob", Content: "Second."},
	}

	got := RenderMarkdown(transcript, utterances)
	want := "# Design Review\n\n*Source: raw.txt*\n\n*Date: 2026-03-14*\n\n---\n\n**Alice**: First.\n\n**Bob**: Second.\n\n"
	if got != want {
		t.Fatalf("markdown = %q, want %q", got, want)
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Weekly Sync", "Weekly_Sync.md"},
		{"Q3: Revenue / Costs!", "Q3_Revenue_Costs.md"},
		{"___", "transcript.md"},
		{"", "transcript.md"},
		{"2026-03-14 standup", "2026_03_14_standup.md"},
	}
	for _, tc := range cases {
		if got := ExportFileName(tc.title); got != tc.want {
			t.Fatalf("ExportFileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestDelete_ScopedToOwner(t *testing.T) {
	transcriptRepo := newFakeTranscriptRepo()
	svc := NewService(transcriptRepo, &fakeUtteranceWriter{}, nil, nil)

	userID := uuid.New()
	created, err := svc.Upload(context.Background(), userID, UploadInput{
		FileName: "notes.txt",
		Data:     []byte("Alice: Hi."),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), created.ID); !errors.Is(err, entities.ErrTranscriptNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	if err := svc.Delete(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
