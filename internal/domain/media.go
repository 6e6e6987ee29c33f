package domain

// MediaKind represents the type of a media asset
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Extension returns the file extension used for this kind of media.
// Extensions are derived from the kind, never sniffed from content.
func (k MediaKind) Extension() string {
	if k == KindVideo {
		return "mp4"
	}
	return "jpg"
}

// MediaItem represents one downloadable asset within a post
type MediaItem struct {
	ID          string    `json:"id"`
	Kind        MediaKind `json:"type"`
	PreviewURL  string    `json:"previewUrl"`
	DownloadURL string    `json:"downloadUrl"`
	Extension   string    `json:"extension"`
	// Index is the 1-based position within a multi-item post.
	// Zero means the post has a single item of this kind.
	Index int `json:"index,omitempty"`
}

// ResolveResult is the ordered media list extracted from one post URL
type ResolveResult struct {
	Provider  string      `json:"provider"`
	Username  string      `json:"username"`
	Shortcode string      `json:"shortcode"`
	Items     []MediaItem `json:"mediaItems"`
}

// DownloadRequest is a caller-confirmed selection of items to fetch. It may
// be a subset or reordering of a ResolveResult's items; each item carries
// everything needed for naming and fetching.
type DownloadRequest struct {
	Provider  string      `json:"provider"`
	Username  string      `json:"username"`
	Shortcode string      `json:"shortcode"`
	Items     []MediaItem `json:"mediaItems"`
}

// ItemStatus represents the lifecycle state of one item during a download
type ItemStatus string

const (
	StatusQueued     ItemStatus = "queued"
	StatusInProgress ItemStatus = "downloading"
	StatusCompleted  ItemStatus = "completed"
	StatusFailed     ItemStatus = "failed"
)

// Terminal reports whether the status is a terminal state.
func (s ItemStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// DownloadOutcome is one progress event for one item. Progress is 0.0 or
// 1.0; byte-level partial progress is not reported. Filename is set once
// known; Error is set only on failure.
type DownloadOutcome struct {
	ItemID   string     `json:"itemId"`
	Status   ItemStatus `json:"status"`
	Progress float64    `json:"progress"`
	Filename string     `json:"filename,omitempty"`
	Error    string     `json:"error,omitempty"`
}
