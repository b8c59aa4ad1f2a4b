// Package device derives a human-readable device name from a User-Agent
// header. The name is attached to sessions so audit reviewers can tell which
// device an access came from.
package device

import "github.com/mssola/useragent"

// ParseUserAgent formats a User-Agent string as "Browser on Platform".
// Empty or unparseable input yields "Unknown Device".
func ParseUserAgent(rawUA string) string {
	if rawUA == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	platform := ua.OS()
	if platform == "" {
		platform = ua.Platform()
	}

	switch {
	case browser != "" && platform != "":
		return browser + " on " + platform
	case browser != "":
		return browser + " on unknown platform"
	case platform != "":
		return "Unknown browser on " + platform
	default:
		return "Unknown Device"
	}
}
