package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
)

// remoteErrorBody mirrors the error envelope the storefront API returns on
// failures. Both the enveloped and the flat shape appear in the wild.
type remoteErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into the error taxonomy. If the body carries a structured error message it
// is preserved; otherwise the raw body is included. The response body is fully
// consumed and closed.
func ParseResponseError(resp *http.Response, endpoint string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", endpoint, resp.StatusCode, err)
	}

	message := extractMessage(bodyBytes)
	if message == "" {
		message = strings.TrimSpace(string(bodyBytes))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return apperrors.FromStatus(resp.StatusCode, fmt.Sprintf("%s: %s", endpoint, message))
}

func extractMessage(body []byte) string {
	var remote remoteErrorBody
	if json.Unmarshal(body, &remote) != nil {
		return ""
	}
	if remote.Error != nil && remote.Error.Message != "" {
		return remote.Error.Message
	}
	return remote.Message
}
