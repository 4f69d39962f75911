package files

import (
	"context"

	"github.com/aleister1102/figmabot/internal/chat"
	"github.com/aleister1102/figmabot/internal/models"
)

// SubscriptionStore lists every stored subscription. An empty result is not an error.
type SubscriptionStore interface {
	GetAllSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error)
}

// TokenProvider returns the user's API token, or nil if the user has none.
type TokenProvider interface {
	GetAccessTokenForUser(ctx context.Context, userID string) (*models.AccessToken, error)
}

// FileFetcher fetches metadata for all ids as one unit, index-aligned with ids.
type FileFetcher interface {
	FetchFiles(ctx context.Context, fileIDs []string, token string) ([]models.RemoteFileMetadata, error)
}

// Presenter renders a payload into a room.
type Presenter interface {
	Present(ctx context.Context, room models.Room, payload chat.Payload) error
}

// Notifier sends a short text visible only to user.
type Notifier interface {
	Notify(ctx context.Context, room models.Room, user models.User, text string) error
}

// Messenger is both a Presenter and a Notifier.
type Messenger interface {
	Presenter
	Notifier
}
