package workerproc

import (
	"errors"
	"testing"

	"wardrobe-backend/internal/queue"
)

func TestParseMessage(t *testing.T) {
	payload, err := queue.EncodeMessage(queue.Message{
		OutfitID:  "outfit-1",
		ImageRef:  "/data/uploads/u/outfit.jpg",
		RequestID: "req-1",
		Version:   1,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	msg, meta, err := ParseMessage(string(payload))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.OutfitID != "outfit-1" || msg.ImageRef == "" {
		t.Fatalf("msg = %+v", msg)
	}
	if meta.BodyLen != len(payload) || meta.BodySHA == "" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestParseMessageEmptyBody(t *testing.T) {
	_, _, err := ParseMessage("   ")
	var empty ErrEmptyBody
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseMessageBadJSON(t *testing.T) {
	_, meta, err := ParseMessage("{nope")
	var decode ErrDecode
	if !errors.As(err, &decode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodyLen != 5 {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestParseMessageMissingOutfitID(t *testing.T) {
	_, _, err := ParseMessage(`{"requestId": "req-1"}`)
	var missing ErrMissingOutfitID
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingOutfitID, got %v", err)
	}
	if missing.RequestID != "req-1" {
		t.Fatalf("request id = %q", missing.RequestID)
	}
}
