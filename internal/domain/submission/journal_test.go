package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type failingJournal struct{ err error }

func (j failingJournal) Record(context.Context, Entry) error { return j.err }

func TestMultiJournalRecordsEverywhere(t *testing.T) {
	first, second := &memJournal{}, &memJournal{}
	boom := errors.New("redis down")

	j := MultiJournal{first, failingJournal{err: boom}, second}
	err := j.Record(context.Background(), Entry{FormID: "f1"})

	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if first.len() != 1 || second.len() != 1 {
		t.Fatal("a failing journal must not stop the others")
	}
}

func TestLogJournalNeverFails(t *testing.T) {
	e := Entry{FormID: "f1", Data: FormData{FullName: "Jane"}, Attachment: &Attachment{FileName: "card.png"}}
	if err := (LogJournal{}).Record(context.Background(), e); err != nil {
		t.Fatalf("Record: %v", err)
	}
}

func TestEncodeEntry(t *testing.T) {
	e := Entry{
		FormID:    "f1",
		RequestID: "req-1",
		Data:      FormData{FullName: "Aigerim", Email: "aigerim@example.com", BookingDate: "2025-12-20"},
		Attachment: &Attachment{
			FileName:    "card.png",
			ContentType: "image/png",
			Size:        42,
			Preview:     &Preview{Key: "previews/f1/x.png", URL: "/media/previews/f1/x.png"},
		},
		SubmittedAt: time.Date(2025, time.December, 18, 10, 0, 0, 0, time.UTC),
	}

	payload, err := encodeEntry(e)
	if err != nil {
		t.Fatalf("encodeEntry: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"form_id", "request_id", "data", "student_id_card", "submitted_at", "completed_at"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("payload lacks %q: %s", key, payload)
		}
	}
	if strings.Contains(string(payload), `"key"`) {
		t.Fatalf("storage key leaked: %s", payload)
	}

	var back Entry
	if err := json.Unmarshal(payload, &back); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	if back.FormID != e.FormID || back.Data != e.Data || back.Attachment.FileName != "card.png" || !back.SubmittedAt.Equal(e.SubmittedAt) {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

// Runs against a real server when REDIS_URL is set, on a throwaway key.
func TestRedisJournalCapsListIntegration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	j := NewRedisJournal(client)
	j.key = "hallbook:test:" + uuid.NewString()
	j.max = 3
	defer client.Del(ctx, j.key)

	for i := 1; i <= 5; i++ {
		if err := j.Record(ctx, Entry{FormID: fmt.Sprintf("f%d", i)}); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	if n := client.LLen(ctx, j.key).Val(); n != 3 {
		t.Fatalf("list length = %d, want 3", n)
	}
	var newest Entry
	if err := json.Unmarshal([]byte(client.LIndex(ctx, j.key, 0).Val()), &newest); err != nil {
		t.Fatalf("decode newest: %v", err)
	}
	if newest.FormID != "f5" {
		t.Fatalf("newest entry = %q, want f5", newest.FormID)
	}
}

func TestNewRedisJournalDefaults(t *testing.T) {
	j := NewRedisJournal(nil)
	if j.key != "hallbook:submissions" || j.max != 1000 {
		t.Fatalf("journal defaults = %q/%d", j.key, j.max)
	}
}
