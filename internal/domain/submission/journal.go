package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/libraryhall/hallbook-api/internal/pkg/logger"
)

const (
	journalKey     = "hallbook:submissions"
	journalMaxSize = 1000
)

// Journal records completed submissions
type Journal interface {
	Record(ctx context.Context, e Entry) error
}

// LogJournal writes each submission to the log
type LogJournal struct{}

func (LogJournal) Record(ctx context.Context, e Entry) error {
	event := logger.FromContext(ctx).Info().
		Str("form_id", e.FormID).
		Str("full_name", e.Data.FullName).
		Str("email", e.Data.Email).
		Str("booking_date", e.Data.BookingDate).
		Str("start_time", e.Data.StartTime).
		Str("end_time", e.Data.EndTime).
		Str("purpose", e.Data.Purpose).
		Time("submitted_at", e.SubmittedAt)
	if e.RequestID != "" {
		event = event.Str("request_id", e.RequestID)
	}
	if e.Attachment != nil {
		event = event.Dict("student_id_card", zerolog.Dict().
			Str("file_name", e.Attachment.FileName).
			Str("content_type", e.Attachment.ContentType).
			Int64("size", e.Attachment.Size))
	}
	event.Msg("Booking submitted")
	return nil
}

// RedisJournal keeps the latest submissions in a capped Redis list
type RedisJournal struct {
	client redis.Cmdable
	key    string
	max    int64
}

// NewRedisJournal creates a journal on the given client
func NewRedisJournal(client redis.Cmdable) *RedisJournal {
	return &RedisJournal{client: client, key: journalKey, max: journalMaxSize}
}

func (j *RedisJournal) Record(ctx context.Context, e Entry) error {
	payload, err := encodeEntry(e)
	if err != nil {
		return err
	}

	_, err = j.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, j.key, payload)
		pipe.LTrim(ctx, j.key, 0, j.max-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("journal submission: %w", err)
	}
	return nil
}

// encodeEntry is the list element format; storage keys of previews stay out of it
func encodeEntry(e Entry) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal entry: %w", err)
	}
	return payload, nil
}

// MultiJournal records to every journal and joins their errors
type MultiJournal []Journal

func (m MultiJournal) Record(ctx context.Context, e Entry) error {
	var errs []error
	for _, j := range m {
		if err := j.Record(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
