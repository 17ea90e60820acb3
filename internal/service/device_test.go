package service

import (
	"testing"

	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectDevice(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      domain.Device
	}{
		{"empty", "", domain.DeviceUnknown},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", domain.DeviceMobile},
		{"android phone", "Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile Safari/537.36", domain.DeviceMobile},
		{"android tablet", "Mozilla/5.0 (Linux; Android 14; SM-X910) Safari/537.36", domain.DeviceTablet},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", domain.DeviceTablet},
		{"kindle", "Mozilla/5.0 (Linux; U; en-us; KFTHWI Build/JDQ39) Silk/3.1", domain.DeviceTablet},
		{"windows desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", domain.DeviceDesktop},
		{"mac desktop", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15", domain.DeviceDesktop},
		{"windows phone", "Mozilla/5.0 (Windows Phone 10.0; Android 6.0.1; Lumia 950) Mobile Safari/537.36", domain.DeviceMobile},
		{"opera mini", "Opera/9.80 (J2ME/MIDP; Opera Mini/9.80) Presto/2.12", domain.DeviceMobile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDevice(tt.userAgent))
		})
	}
}
