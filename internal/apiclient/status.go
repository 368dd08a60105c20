package apiclient

import (
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/cygnusb/klubraum-api/internal/apierror"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// checkStatus maps the response status to an error: 401, then 429, then any other non-200.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierror.Unauthorized(gjson.GetBytes(b, "message").String())
	case resp.StatusCode == http.StatusTooManyRequests:
		return apierror.RateLimited()
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return apierror.HTTPFailure(resp.StatusCode, nil)
	}
	return nil
}
