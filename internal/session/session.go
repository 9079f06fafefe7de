// Package session ties the selection flows to one upload queue. A Session is
// created per upload session and cleared with Reset.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"upload-collector/internal/dropzone"
	"upload-collector/internal/queue"
	"upload-collector/internal/record"
	"upload-collector/internal/walker"
)

type Session struct {
	id    string
	queue *queue.Queue
	log   zerolog.Logger

	// Observer, when set, sees records as traversals discover them.
	Observer walker.Observer
}

func New(logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:    id,
		queue: queue.New(),
		log:   logger.With().Str("session", id).Logger(),
	}
}

func (s *Session) ID() string { return s.id }

// PickerVisible reports whether the directory picker should be offered.
func (s *Session) PickerVisible(p walker.Picker) bool {
	return p != nil && p.Supported()
}

// PickDirectory runs the picker and appends the whole result as one block.
// On cancellation the queue is left unchanged.
func (s *Session) PickDirectory(ctx context.Context, p walker.Picker) (*walker.Result, error) {
	traversal := walker.NewPickerTraversal(s.log, s.Observer)

	result, err := traversal.Pick(ctx, p)
	if err != nil {
		return nil, err
	}

	s.queue.Append(result.Records)
	s.log.Info().
		Int("files", result.Files()).
		Int("directories", result.Directories()).
		Int("skipped", len(result.Errors)).
		Msg("directory added")
	return result, nil
}

// Drop walks every item of one drop event and appends the result as one block.
func (s *Session) Drop(ctx context.Context, items []walker.Item) (*walker.Result, error) {
	traversal := walker.NewDropTraversal(s.log, s.Observer)

	result, err := traversal.Drop(ctx, items)
	if err != nil {
		return nil, err
	}

	s.queue.Append(result.Records)
	s.log.Info().
		Int("items", len(items)).
		Int("files", result.Files()).
		Int("directories", result.Directories()).
		Int("skipped", result.Skipped+len(result.Errors)).
		Msg("drop added")
	return result, nil
}

// AddSelected appends accepted files at the root prefix and returns how many
// were added. Rejected files are logged only; nil contents are ignored.
func (s *Session) AddSelected(change dropzone.Change) int {
	for _, r := range change.Rejected {
		s.log.Warn().
			Str("file", r.Name).
			Int64("size", r.Size).
			Str("reason", r.Reason).
			Msg("file rejected")
	}

	records := make([]record.UploadFileRecord, 0, len(change.Added))
	for _, c := range change.Added {
		if c == nil {
			continue
		}
		records = append(records, record.NewFile("", c))
	}
	s.queue.Append(records)

	if len(records) > 0 {
		s.log.Info().Int("files", len(records)).Msg("files added")
	}
	return len(records)
}

func (s *Session) Snapshot() []record.UploadFileRecord {
	return s.queue.Snapshot()
}

func (s *Session) Len() int {
	return s.queue.Len()
}

// Reset clears the queue once its records have been consumed.
func (s *Session) Reset() {
	s.queue.Reset()
	s.log.Debug().Msg("session reset")
}
