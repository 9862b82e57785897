package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// UpstreamError reports a non-2xx response from a recipe provider. The body
// is carried opaquely so the route layer can surface it as details without
// interpreting provider-specific payloads.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// getJSON issues a GET against uri and decodes a 2xx JSON response into out.
func getJSON(client *http.Client, uri string, out interface{}) error {
	resp, err := client.Get(uri)
	if err != nil {
		return errors.Wrap(err, "provider request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading provider response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decoding provider response")
	}
	return nil
}
