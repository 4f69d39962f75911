// Package figma fetches design file metadata from the Figma REST API.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/aleister1102/figmabot/internal/httpclient"
	"github.com/aleister1102/figmabot/internal/metrics"
	"github.com/aleister1102/figmabot/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Doer issues a single HTTP request. *httpclient.HTTPClient satisfies it.
type Doer interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// Client talks to the files endpoint of the Figma API.
type Client struct {
	httpClient Doer
	apiBaseURL string
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewClient creates a Client rooted at apiBaseURL, e.g. https://api.figma.com/v1/files.
func NewClient(httpClient Doer, apiBaseURL string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		validate:   validator.New(),
		logger:     logger.With().Str("module", "FigmaClient").Logger(),
	}
}

// FileURL returns the API URL for a single file.
func (c *Client) FileURL(fileID string) string {
	return c.apiBaseURL + "/" + fileID
}

// fileResponse is the subset of GET /v1/files/:key that we decode.
type fileResponse struct {
	Name     string `json:"name"`
	Document *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"document" validate:"required"`
}

// GetFile fetches one file's metadata. The returned ID is always fileID; the
// document node id in the payload is the canvas root and not the file key.
func (c *Client) GetFile(ctx context.Context, fileID, token string) (models.RemoteFileMetadata, error) {
	url := c.FileURL(fileID)
	start := time.Now()

	resp, err := c.httpClient.Do(&httpclient.HTTPRequest{
		URL:     url,
		Method:  http.MethodGet,
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Context: ctx,
	})
	metrics.FigmaFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FigmaRequests.WithLabelValues(metrics.ResultError).Inc()
		return models.RemoteFileMetadata{}, &FetchError{FileID: fileID, Err: err}
	}

	if !resp.IsSuccess() {
		metrics.FigmaRequests.WithLabelValues(metrics.ResultStatus).Inc()
		return models.RemoteFileMetadata{}, &FetchError{
			FileID: fileID,
			Err:    common.NewHTTPErrorWithURL(resp.StatusCode, errorMessage(resp.Body), url),
		}
	}

	meta, err := c.decode(fileID, resp.Body)
	if err != nil {
		metrics.FigmaRequests.WithLabelValues(metrics.ResultMalformed).Inc()
		return models.RemoteFileMetadata{}, &FetchError{FileID: fileID, Err: err}
	}

	metrics.FigmaRequests.WithLabelValues(metrics.ResultSuccess).Inc()
	c.logger.Debug().Str("file_id", fileID).Str("name", meta.Name).Msg("Fetched file metadata")
	return meta, nil
}

func (c *Client) decode(fileID string, body []byte) (models.RemoteFileMetadata, error) {
	var payload fileResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.RemoteFileMetadata{}, common.WrapError(err, "failed to decode file payload")
	}
	if err := c.validate.Struct(payload); err != nil {
		return models.RemoteFileMetadata{}, common.NewValidationError("document", nil, "file payload has no document")
	}

	name := payload.Name
	if name == "" {
		name = payload.Document.Name
	}
	if name == "" {
		return models.RemoteFileMetadata{}, common.NewValidationError("name", fileID, "file payload has no name")
	}
	meta := models.RemoteFileMetadata{ID: fileID, Name: name}
	if err := c.validate.Struct(meta); err != nil {
		return models.RemoteFileMetadata{}, common.NewValidationError("id", fileID, "file id is empty")
	}
	return meta, nil
}

// errorMessage pulls the "err" field Figma returns on failures, falling back to the raw body.
func errorMessage(body []byte) string {
	var apiErr struct {
		Err string `json:"err"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Err != "" {
		return apiErr.Err
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// FetchError ties a failed request to the file it was for.
type FetchError struct {
	FileID string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch file '%s': %v", e.FileID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
