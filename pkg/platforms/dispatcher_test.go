package platforms

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubPlatform answers with a fixed text or error after an optional delay.
type stubPlatform struct {
	name  string
	text  string
	err   error
	delay time.Duration
}

func (s *stubPlatform) Name() string { return s.name }

func (s *stubPlatform) Ask(ctx context.Context, question string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestDispatchPreservesPlatformOrder(t *testing.T) {
	d := NewDispatcher([]Platform{
		&stubPlatform{name: "chatgpt", text: "Answer one.", delay: 30 * time.Millisecond},
		&stubPlatform{name: "claude", text: "Answer two."},
		&stubPlatform{name: "gemini", text: "Answer three.", delay: 10 * time.Millisecond},
	}, time.Second)

	docs := d.Dispatch(context.Background(), "What is the answer?")

	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	for i, want := range []string{"chatgpt", "claude", "gemini"} {
		if docs[i].OriginID != want {
			t.Errorf("docs[%d].OriginID = %q, want %q (order must match configuration)", i, docs[i].OriginID, want)
		}
	}
}

func TestDispatchMarksFailures(t *testing.T) {
	d := NewDispatcher([]Platform{
		&stubPlatform{name: "chatgpt", text: "A perfectly good answer."},
		&stubPlatform{name: "claude", err: errors.New("rate limited")},
	}, time.Second)

	docs := d.Dispatch(context.Background(), "question")

	if docs[0].Failed {
		t.Errorf("healthy platform marked failed")
	}
	if !docs[1].Failed {
		t.Errorf("erroring platform not marked failed")
	}
	if docs[1].Text != "" {
		t.Errorf("failed platform text = %q, want empty", docs[1].Text)
	}
}

func TestDispatchTimesOutSlowPlatform(t *testing.T) {
	d := NewDispatcher([]Platform{
		&stubPlatform{name: "chatgpt", text: "Fast answer arrives in time."},
		&stubPlatform{name: "claude", text: "never delivered", delay: 500 * time.Millisecond},
	}, 50*time.Millisecond)

	docs := d.Dispatch(context.Background(), "question")

	if !docs[1].Failed {
		t.Errorf("slow platform should have timed out")
	}
	if docs[0].Failed {
		t.Errorf("fast platform should have succeeded")
	}
	if !strings.HasPrefix(docs[0].Text, "Fast answer") {
		t.Errorf("fast platform text = %q", docs[0].Text)
	}
}
