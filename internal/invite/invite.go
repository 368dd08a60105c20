// Package invite holds batch-invite request/response types and the decoder for
// the server's unframed stream of invite results.
package invite

// Request is the body of POST /user/batchInvite.
type Request struct {
	LoginIDs []string `json:"loginIds"`
	Language string   `json:"language"`
}

// Result is the server's verdict for one recipient. LoginID is the invited
// address as echoed by the server (field "l"); it is kept distinct from the
// loginId used at login even though both usually hold an email.
type Result struct {
	LoginID string `json:"l"`
	Status  int    `json:"s"`
}

// StatusByLoginID indexes results by login id. A login id that appears more than once keeps its last status.
func StatusByLoginID(results []Result) map[string]int {
	out := make(map[string]int, len(results))
	for _, r := range results {
		out[r.LoginID] = r.Status
	}
	return out
}
