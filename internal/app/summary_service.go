package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"yt-summarizer/internal/ai"
	"yt-summarizer/internal/model"
	"yt-summarizer/internal/transcript"
)

// User-facing messages surfaced by the summary endpoints.
const (
	MsgURLRequired          = "YouTube URL is required."
	MsgInvalidYouTubeURL    = "Invalid YouTube URL"
	MsgUserNotFound         = "User not found!"
	MsgTranscriptNotFound   = "Transcript is not found, try another english subtle video."
	MsgSummarizeOK          = "Transcript summarized successfully!"
	MsgHistoryFetched       = "User summary history fetched successfully"
	MsgHistoryUserNotFound  = "User not found! Try login again or create new account."
	MsgDeleteUserNotFound   = "User not found."
	MsgHistoryDeleted       = "All summaries deleted successfully."
	MsgSummarizeUnavailable = "Summarization service is unavailable, try again later!"
)

// HistoryTx scopes user reads and writes to one open database
// transaction.
type HistoryTx interface {
	LockUser(userID uint) (*model.User, error)
	SaveUser(user *model.User) error
}

// UserStore is the persistence surface the summary flows need.
// HistoryTx must commit when fn returns nil and roll back otherwise.
type UserStore interface {
	HistoryTx(fn func(tx HistoryTx) error) error
	GetHistory(userID uint) ([]string, bool, error)
	ResetHistory(userID uint) (bool, error)
}

// TranscriptSource fetches the transcript for an extracted video id.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Summarizer turns transcript text into a summary.
type Summarizer interface {
	SummarizeTranscript(ctx context.Context, cfg ai.GenerateConfig, transcriptText string) (string, error)
}

// EventPublisher enqueues audit events after a successful submission.
type EventPublisher interface {
	Publish(ctx context.Context, event model.SummaryEvent) error
}

// HistoryCache is a read-through cache over a user's summary history.
type HistoryCache interface {
	GetHistory(ctx context.Context, userID uint) ([]string, bool, error)
	SetHistory(ctx context.Context, userID uint, history []string) error
	DeleteHistory(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

type SummaryService struct {
	users      UserStore
	source     TranscriptSource
	summarizer Summarizer
	genCfg     ai.GenerateConfig
	publisher  EventPublisher
	cache      HistoryCache
}

func NewSummaryService(
	users UserStore,
	source TranscriptSource,
	summarizer Summarizer,
	genCfg ai.GenerateConfig,
	publisher EventPublisher,
	cache HistoryCache,
) *SummaryService {
	return &SummaryService{
		users:      users,
		source:     source,
		summarizer: summarizer,
		genCfg:     genCfg,
		publisher:  publisher,
		cache:      cache,
	}
}

// Summarize runs the whole submission flow: validate the URL, load the
// user's row under a row lock, fetch the transcript, summarize it,
// prepend the summary to the history and persist — all inside one
// database transaction. History is only mutated if the transaction
// commits.
func (s *SummaryService) Summarize(ctx context.Context, userID uint, youtubeURL string) (string, error) {
	youtubeURL = strings.TrimSpace(youtubeURL)
	if youtubeURL == "" {
		return "", NewInvalidInput(MsgURLRequired)
	}

	videoID, err := transcript.ExtractVideoID(youtubeURL)
	if err != nil {
		return "", NewInvalidInput(MsgInvalidYouTubeURL)
	}

	var summary string
	err = s.users.HistoryTx(func(tx HistoryTx) error {
		user, err := tx.LockUser(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return NewNotFound(MsgUserNotFound)
		}

		transcriptText, err := s.source.Fetch(ctx, videoID)
		if err != nil {
			switch {
			case errors.Is(err, transcript.ErrNotFound):
				return NewNotFound(MsgTranscriptNotFound)
			case errors.Is(err, transcript.ErrUpstream):
				return NewUpstream(MsgTranscriptNotFound, err)
			default:
				return err
			}
		}
		if strings.TrimSpace(transcriptText) == "" {
			return NewNotFound(MsgTranscriptNotFound)
		}

		summary, err = s.summarizer.SummarizeTranscript(ctx, s.genCfg, transcriptText)
		if err != nil {
			if errors.Is(err, ai.ErrUpstream) {
				return NewUpstream(MsgSummarizeUnavailable, err)
			}
			return err
		}

		// New entries first, prior history untouched.
		user.SummarizeHistory = append([]string{summary}, user.SummarizeHistory...)
		return tx.SaveUser(user)
	})
	if err != nil {
		return "", err
	}

	s.invalidateCache(ctx, userID)
	s.publishEvent(ctx, userID, videoID, summary)
	return summary, nil
}

// GetHistory returns the user's summary history, most recent first.
// Serves from the cache when a clean entry exists.
func (s *SummaryService) GetHistory(ctx context.Context, userID uint) ([]string, error) {
	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetHistory(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	history, exists, err := s.users.GetHistory(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NewNotFound(MsgHistoryUserNotFound)
	}
	if history == nil {
		history = []string{}
	}

	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			_ = s.cache.SetHistory(ctx, userID, history)
		}
	}
	return history, nil
}

// DeleteHistory resets the user's history to empty with a single atomic
// update. Idempotent on an already-empty history.
func (s *SummaryService) DeleteHistory(ctx context.Context, userID uint) error {
	exists, err := s.users.ResetHistory(userID)
	if err != nil {
		return err
	}
	if !exists {
		return NewNotFound(MsgDeleteUserNotFound)
	}

	s.invalidateCache(ctx, userID)
	return nil
}

// Cache and event-pipeline failures never fail the user request.
func (s *SummaryService) invalidateCache(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.MarkDirty(ctx, userID)
	_ = s.cache.DeleteHistory(ctx, userID)
}

func (s *SummaryService) publishEvent(ctx context.Context, userID uint, videoID, summary string) {
	if s.publisher == nil {
		return
	}
	event := model.SummaryEvent{
		UserID:       userID,
		VideoID:      videoID,
		SummaryChars: len(summary),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish summary event failed: %v", err)
	}
}
