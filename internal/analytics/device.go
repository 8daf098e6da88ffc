package analytics

import "strings"

// DeviceInfo describes the visitor's client.
type DeviceInfo struct {
	UserAgent    string `json:"user_agent"`
	DeviceType   string `json:"device_type"`
	Browser      string `json:"browser"`
	OS           string `json:"os"`
	Language     string `json:"language"`
	ScreenWidth  int    `json:"screen_width"`
	ScreenHeight int    `json:"screen_height"`
}

// ParseDevice derives device details from a User-Agent and Accept-Language.
func ParseDevice(userAgent, acceptLanguage string) DeviceInfo {
	ua := strings.ToLower(userAgent)
	return DeviceInfo{
		UserAgent:  userAgent,
		DeviceType: deviceType(ua),
		Browser:    browser(ua),
		OS:         operatingSystem(ua),
		Language:   primaryLanguage(acceptLanguage),
	}
}

func deviceType(ua string) string {
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return "tablet"
	case strings.Contains(ua, "mobi"), strings.Contains(ua, "iphone"), strings.Contains(ua, "android"):
		return "mobile"
	default:
		return "desktop"
	}
}

// Order matters: Edge and Opera UAs also mention Chrome, Chrome mentions Safari.
func browser(ua string) string {
	switch {
	case strings.Contains(ua, "edg/"):
		return "edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		return "opera"
	case strings.Contains(ua, "firefox/"):
		return "firefox"
	case strings.Contains(ua, "chrome/"), strings.Contains(ua, "crios/"):
		return "chrome"
	case strings.Contains(ua, "safari/"):
		return "safari"
	default:
		return "other"
	}
}

func operatingSystem(ua string) string {
	switch {
	case strings.Contains(ua, "windows"):
		return "windows"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ios"):
		return "ios"
	case strings.Contains(ua, "android"):
		return "android"
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macintosh"):
		return "macos"
	case strings.Contains(ua, "linux"):
		return "linux"
	default:
		return "other"
	}
}

func primaryLanguage(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	first, _, _ = strings.Cut(first, ";")
	return truncate(strings.TrimSpace(first), maxLanguageLen)
}
