package platform

import "time"

// DefaultAppName identifies promraw to notification centers.
const DefaultAppName = "Promraw"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is reported as the sending application. Empty means
	// DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays visible; zero leaves it to
	// the platform.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
