package feditext

import "errors"

// Sentinel errors for library operations. Conversion itself never fails:
// malformed input degrades to plainer content instead of erroring, so only
// the preview surface carries errors.
var (
	ErrNilContent    = errors.New("content cannot be nil")
	ErrPreviewRender = errors.New("preview rendering failed")
)
