package service

import (
	"regexp"
	"strings"

	"github.com/storynest/storynest-backend/internal/domain"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk|kindle`)
	mobilePattern = regexp.MustCompile(`(?i)mobi|iphone|ipod|blackberry|iemobile|opera mini|windows phone`)
)

// DetectDevice classifies a User-Agent string. An Android UA without
// "mobi" is a tablet (Go regexp has no lookahead, so that case is checked
// separately).
func DetectDevice(userAgent string) domain.Device {
	if userAgent == "" {
		return domain.DeviceUnknown
	}

	lower := strings.ToLower(userAgent)
	if tabletPattern.MatchString(userAgent) {
		return domain.DeviceTablet
	}
	if strings.Contains(lower, "android") && !strings.Contains(lower, "mobi") {
		return domain.DeviceTablet
	}
	if mobilePattern.MatchString(userAgent) {
		return domain.DeviceMobile
	}
	return domain.DeviceDesktop
}
