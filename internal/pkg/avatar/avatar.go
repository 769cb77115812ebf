// Package avatar derives comment author avatars from a configured avatar service.
package avatar

import (
	"net/url"
	"strings"
)

// URL returns the avatar image for name: baseURL with name as the percent-encoded "seed" query
// value. Spaces are encoded as %20. The same name always maps to the same URL.
func URL(baseURL, name string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}

	return baseURL + sep + "seed=" + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
