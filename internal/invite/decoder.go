package invite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/cygnusb/klubraum-api/internal/apierror"
)

// StreamDecoder turns a batch-invite response body into results in server emission order.
type StreamDecoder interface {
	Decode(r io.Reader) ([]Result, error)
}

var (
	objectBoundary   = []byte("}{")
	separatedObjects = []byte("},{")
)

// BoundaryDecoder handles bodies made of JSON objects written back to back with
// no separator, e.g. {"l":"a@x.com","s":1}{"l":"b@x.com","s":1}, possibly broken
// across lines with empty keep-alive lines in between.
//
// Object boundaries are found textually: every "}{" becomes "},{" and the whole
// buffer is parsed as one JSON array. A string value containing the literal "}{"
// is rewritten too and comes back as "},{". Anything that is not a run of
// complete objects (a truncated stream, an HTML error page) fails with DecodeFailure.
type BoundaryDecoder struct{}

// Decode reads r to EOF and returns the decoded results. An empty body yields an empty slice.
func (BoundaryDecoder) Decode(r io.Reader) ([]Result, error) {
	body, err := joinSegments(r)
	if err != nil {
		return nil, apierror.DecodeFailure("read invite stream", err)
	}
	body = bytes.ReplaceAll(body, objectBoundary, separatedObjects)

	doc := make([]byte, 0, len(body)+2)
	doc = append(doc, '[')
	doc = append(doc, body...)
	doc = append(doc, ']')

	results := []Result{}
	if err := json.Unmarshal(doc, &results); err != nil {
		return nil, apierror.DecodeFailure("invite stream is not a sequence of JSON objects", err)
	}
	return results, nil
}

// joinSegments concatenates the non-empty lines of r in arrival order, without line terminators.
func joinSegments(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	var buf bytes.Buffer
	for {
		line, err := br.ReadBytes('\n')
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > 0 {
			buf.Write(line)
		}
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
