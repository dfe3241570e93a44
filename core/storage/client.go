package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// MimeFolder is the MIME type the storage service assigns to folders.
	MimeFolder = "application/vnd.google-apps.folder"
	// MimeShortcut is the MIME type of shortcut (alias) entries.
	MimeShortcut = "application/vnd.google-apps.shortcut"
)

// Ordering hints understood by every Client implementation.
const (
	OrderModifiedDesc = "modifiedTime desc"
	OrderName         = "name"
)

// Filter selects which kind of entries a listing returns.
type Filter int

const (
	// FilterFolders lists folder entries only.
	FilterFolders Filter = iota
	// FilterImages lists image entries and shortcut entries in one query.
	FilterImages
)

// String returns the filter label used in logs and errors.
func (f Filter) String() string {
	switch f {
	case FilterFolders:
		return "folders"
	case FilterImages:
		return "images"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// ListRequest describes one page of a listing under a parent folder.
// Trashed entries are never returned.
type ListRequest struct {
	// Parent is the folder identifier whose direct children are listed.
	Parent string
	// Name restricts the listing to entries whose name equals it exactly.
	// Empty means no name restriction.
	Name string
	// Filter selects folders or images.
	Filter Filter
	// OrderBy is an ordering hint (OrderModifiedDesc, OrderName).
	OrderBy string
	// PageToken continues a previous listing. Empty requests the first page.
	PageToken string
}

// ShortcutDetails holds the target of a shortcut entry.
type ShortcutDetails struct {
	TargetID       string
	TargetMimeType string
}

// Entry is a single file or folder returned by a listing.
type Entry struct {
	ID           string
	Name         string
	MimeType     string
	Parents      []string
	ModifiedTime time.Time
	// Shortcut is set for shortcut entries only.
	Shortcut *ShortcutDetails
}

// IsShortcut reports whether the entry is an alias pointing at another entry.
func (e Entry) IsShortcut() bool {
	return strings.TrimSpace(e.MimeType) == MimeShortcut
}

// Page is one page of listing results.
type Page struct {
	Entries []Entry
	// NextPageToken is empty on the last page.
	NextPageToken string
}

// Client defines the storage service operations the linker needs.
type Client interface {
	// List returns one page of entries directly under req.Parent.
	List(ctx context.Context, req ListRequest) (*Page, error)
}

// ListAll follows page tokens until the listing is exhausted and
// returns every entry in service order.
func ListAll(ctx context.Context, client Client, req ListRequest) ([]Entry, error) {
	var entries []Entry
	req.PageToken = ""
	for {
		page, err := client.List(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s under %s: %w", req.Filter, req.Parent, err)
		}
		if page == nil {
			return entries, nil
		}
		entries = append(entries, page.Entries...)
		if page.NextPageToken == "" {
			return entries, nil
		}
		req.PageToken = page.NextPageToken
	}
}

// New creates the storage client selected by cfg.Backend.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Backend {
	case BackendDrive, "":
		return NewDriveClient(ctx, cfg.Drive)
	case BackendS3:
		store, err := NewObjectStore(cfg.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Client(store, cfg.S3.Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
