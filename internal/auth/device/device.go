// Package device derives human-readable device metadata from request headers.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// DisplayName renders a short "Browser on OS" label from a User-Agent string,
// stored on sessions for the session management UI. It never fails: unknown
// agents fall back to a generic label.
func DisplayName(userAgentString string) string {
	if strings.TrimSpace(userAgentString) == "" {
		return "Unknown device"
	}

	ua := useragent.New(userAgentString)
	browser, _ := ua.Browser()
	browser = strings.TrimSpace(browser)
	os := strings.TrimSpace(ua.OS())

	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	case os != "":
		return os
	default:
		return "Unknown device"
	}
}
