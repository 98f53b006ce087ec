package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"wardrobe-backend/internal/bootstrap"
	"wardrobe-backend/internal/outfits"
	"wardrobe-backend/internal/queue"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingOutfitID indicates a message missing the outfit id.
type ErrMissingOutfitID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingOutfitID) Error() string { return "missing outfit id" }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	OutfitID  string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process outfit analysis"
	}
	return "process outfit analysis: " + e.Err.Error()
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.OutfitID) == "" {
		return msg, meta, ErrMissingOutfitID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses, validates, and runs the analysis for a message
// payload. The driver owns all status writes and never errors, so a returned
// error always means the message itself was unusable.
func HandleMessage(ctx context.Context, app *bootstrap.App, body string) error {
	if app == nil || app.Driver == nil {
		return errors.New("analysis driver not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(msg.OutfitID) == "" {
		return ErrMissingOutfitID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	imageRef := strings.TrimSpace(msg.ImageRef)
	if imageRef == "" {
		outfit, err := app.OutfitsRepo.GetByID(ctx, msg.OutfitID)
		if err != nil {
			return ErrProcess{OutfitID: msg.OutfitID, RequestID: msg.RequestID, Err: err}
		}
		imageRef = outfit.StorageKey
		if imageRef == "" {
			imageRef = outfit.ImageURL
		}
	}

	ctxWithRequest := outfits.WithRequestID(ctx, msg.RequestID)
	app.Driver.Run(ctxWithRequest, imageRef, msg.OutfitID)
	return nil
}
