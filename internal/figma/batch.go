package figma

import (
	"context"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/models"
	"golang.org/x/sync/errgroup"
)

// FetchFiles requests every id concurrently and waits for all of them.
// Results are index-aligned with fileIDs. If any request fails the whole
// batch fails and no partial result is returned. Requests already in flight
// are not cancelled when a sibling fails.
func (c *Client) FetchFiles(ctx context.Context, fileIDs []string, token string) ([]models.RemoteFileMetadata, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}

	results := make([]models.RemoteFileMetadata, len(fileIDs))
	var g errgroup.Group
	for i, id := range fileIDs {
		g.Go(func() error {
			meta, err := c.GetFile(ctx, id, token)
			if err != nil {
				return err
			}
			results[i] = meta
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Warn().Err(err).Int("batch_size", len(fileIDs)).Int("status_code", common.StatusCodeOf(err)).Msg("File batch failed")
		return nil, err
	}

	c.logger.Debug().Int("batch_size", len(fileIDs)).Msg("File batch fetched")
	return results, nil
}
