package image

import "errors"

var (
	// ErrUnknownImage is returned by Pull when the image name is not on
	// the static allow-list.
	ErrUnknownImage = errors.New("image: unknown image name")

	// ErrDownloadFailed is returned when the HTTPS GET did not complete
	// with a 2xx response, or the connection closed prematurely.
	ErrDownloadFailed = errors.New("image: download failed")
)
