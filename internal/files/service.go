// Package files resolves the design files subscribed in a chat room, fetches
// their metadata and posts the list back to the room.
package files

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/figmabot/internal/chat"
	"github.com/aleister1102/figmabot/internal/metrics"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/aleister1102/figmabot/internal/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Outcome is the terminal state of one ListRoomFiles run.
type Outcome string

const (
	OutcomePresented       Outcome = "presented"
	OutcomeNoSubscriptions Outcome = "no_subscriptions"
	OutcomeNoFilesForRoom  Outcome = "no_files_for_room"
	OutcomeEmptyFetch      Outcome = "empty_fetch"
	OutcomeFetchFailed     Outcome = "fetch_failed"
	OutcomeStoreError      Outcome = "store_error"
	OutcomeDeliveryFailed  Outcome = "delivery_failed"
	OutcomeInternalError   Outcome = "internal_error"
)

// Report describes what a run did. Err is for logs only and never reaches the user.
type Report struct {
	Outcome   Outcome
	FileIDs   []string
	Entries   []models.PresentationEntry
	Notice    string
	Err       error
	NotifyErr error
}

// Dependencies are the collaborators a Service drives.
type Dependencies struct {
	Subscriptions SubscriptionStore
	Tokens        TokenProvider
	Fetcher       FileFetcher
	Messenger     Messenger
	FileURLBase   string
	Now           func() time.Time
}

// Service runs the room file list pipeline.
type Service struct {
	deps   Dependencies
	logger zerolog.Logger
}

// NewService creates a Service.
func NewService(deps Dependencies, logger zerolog.Logger) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{
		deps:   deps,
		logger: logger.With().Str("module", "FileListService").Logger(),
	}
}

// ListRoomFiles resolves, fetches and presents the files subscribed in room.
// Every failure ends in exactly one user notification; nothing is returned
// as an error and panics from collaborators are contained.
func (s *Service) ListRoomFiles(ctx context.Context, room models.Room, user models.User) (report Report) {
	log := s.logger.With().Str("room_id", room.ID).Str("user_id", user.ID).Logger()

	defer func() {
		if r := recover(); r != nil {
			report = Report{Err: &StageError{Stage: "pipeline", Err: fmt.Errorf("panic: %v", r)}}
			s.finish(ctx, log, room, user, &report, OutcomeInternalError, MsgReportIssue)
		}
	}()

	ids, outcome, err := s.resolve(ctx, room.ID)
	report.FileIDs = ids
	if err != nil {
		report.Err = err
		s.finish(ctx, log, room, user, &report, outcome, noticeFor(outcome))
		return report
	}
	log.Debug().Int("file_count", len(ids)).Strs("file_ids", ids).Msg("Resolved room files")

	token, tokenErr := s.token(ctx, user.ID)
	if tokenErr != nil {
		report.Err = tokenErr
		tokenOutcome := OutcomeStoreError
		if tokenErr.Stage == StageFetch {
			tokenOutcome = OutcomeFetchFailed
		}
		s.finish(ctx, log, room, user, &report, tokenOutcome, noticeFor(tokenOutcome))
		return report
	}

	metas, err := s.fetch(ctx, ids, token)
	if err != nil {
		report.Err = err
		s.finish(ctx, log, room, user, &report, OutcomeFetchFailed, MsgFetchError)
		return report
	}

	report.Entries = BuildEntries(metas)
	if len(report.Entries) == 0 {
		s.finish(ctx, log, room, user, &report, OutcomeEmptyFetch, MsgNoSubscriptions)
		return report
	}

	if err := s.present(ctx, room, report.Entries); err != nil {
		report.Err = err
		s.finish(ctx, log, room, user, &report, OutcomeDeliveryFailed, MsgReportIssue)
		return report
	}

	s.finish(ctx, log, room, user, &report, OutcomePresented, "")
	return report
}

func (s *Service) resolve(ctx context.Context, roomID string) ([]string, Outcome, error) {
	ctx, span := tracing.StartSpan(ctx, "files.resolve")
	defer span.End()

	records, err := s.deps.Subscriptions.GetAllSubscriptions(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, OutcomeStoreError, stageError(StageResolve, ErrStoreFailure, err)
	}
	if len(records) == 0 {
		return nil, OutcomeNoSubscriptions, stageError(StageResolve, ErrNoSubscriptions, nil)
	}

	ids := Dedupe(ResolveRoomFiles(records, roomID))
	span.SetAttributes(attribute.Int("subscriptions", len(records)), attribute.Int("files", len(ids)))
	if len(ids) == 0 {
		return nil, OutcomeNoFilesForRoom, stageError(StageResolve, ErrNoFilesForRoom, nil)
	}
	return ids, "", nil
}

// token loads the user's token. A missing or expired token is a fetch failure
// since no request could succeed; a provider error is a store failure.
func (s *Service) token(ctx context.Context, userID string) (string, *StageError) {
	token, err := s.deps.Tokens.GetAccessTokenForUser(ctx, userID)
	if err != nil {
		return "", stageError(StageToken, ErrStoreFailure, err)
	}
	if token == nil || token.Token == "" || token.Expired(s.deps.Now()) {
		return "", stageError(StageFetch, ErrFetchFailed, ErrNoAccessToken)
	}
	return token.Token, nil
}

func (s *Service) fetch(ctx context.Context, ids []string, token string) ([]models.RemoteFileMetadata, error) {
	ctx, span := tracing.StartSpan(ctx, "files.fetch")
	defer span.End()
	span.SetAttributes(attribute.Int("files", len(ids)))

	metas, err := s.deps.Fetcher.FetchFiles(ctx, ids, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, stageError(StageFetch, ErrFetchFailed, err)
	}
	return metas, nil
}

func (s *Service) present(ctx context.Context, room models.Room, entries []models.PresentationEntry) error {
	ctx, span := tracing.StartSpan(ctx, "files.present")
	defer span.End()

	payload := chat.BuildFileListPayload(entries, s.deps.FileURLBase)
	if err := s.deps.Messenger.Present(ctx, room, payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return stageError(StagePresent, ErrDeliveryFailed, err)
	}
	return nil
}

// finish records the outcome and, when notice is set, notifies the user.
func (s *Service) finish(ctx context.Context, log zerolog.Logger, room models.Room, user models.User, report *Report, outcome Outcome, notice string) {
	report.Outcome = outcome
	report.Notice = notice
	metrics.FileListOutcomes.WithLabelValues(string(outcome)).Inc()

	event := log.Info()
	switch outcome {
	case OutcomeFetchFailed, OutcomeStoreError, OutcomeDeliveryFailed, OutcomeInternalError:
		event = log.Error().Err(report.Err)
	}
	event.Str("outcome", string(outcome)).Int("file_count", len(report.FileIDs)).Msg("Room file list finished")

	if notice == "" {
		return
	}
	if err := s.notify(ctx, room, user, notice); err != nil {
		report.NotifyErr = stageError(StageNotify, ErrDeliveryFailed, err)
		log.Error().Err(err).Str("notice", notice).Msg("Failed to notify user")
	}
}

// notify converts a panicking Notify into an error so finish is safe to call
// from the recovery path.
func (s *Service) notify(ctx context.Context, room models.Room, user models.User, notice string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.deps.Messenger.Notify(ctx, room, user, notice)
}

func noticeFor(outcome Outcome) string {
	switch outcome {
	case OutcomeNoSubscriptions, OutcomeEmptyFetch:
		return MsgNoSubscriptions
	case OutcomeNoFilesForRoom:
		return MsgNoFilesForRoom
	case OutcomeFetchFailed:
		return MsgFetchError
	default:
		return MsgReportIssue
	}
}
