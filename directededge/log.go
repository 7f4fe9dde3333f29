package directededge

import (
	"net/url"
)


// Logging convention in the `directededge` package:
// Info (glog.Infof):
//     abnormal events only. This level should be silent on normal operation.
//     this includes:
//     - transport errors and non-success statuses
//     - documents that fail to parse
//     - panics raised by user callbacks
// V(1):
//     one line per request start and end, tagged with the request id
// V(2):
//     cache and coalescing decisions per item


// credentials are embedded in the url userinfo and must never reach the log
func redactUrl(rawUrl string) string {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
