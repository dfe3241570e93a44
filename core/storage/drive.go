package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	defaultPageSize = 1000

	folderFields = "nextPageToken, files(id, name, mimeType, modifiedTime, parents)"
	imageFields  = "nextPageToken, files(id, name, mimeType, modifiedTime, shortcutDetails(targetId, targetMimeType))"
)

// DriveClient lists entries through the Google Drive v3 API.
// Listings span shared drives.
type DriveClient struct {
	files    *drive.FilesService
	pageSize int64
}

// NewDriveClient creates a Drive client authenticated with the configured
// service account, or with application default credentials when none is set.
func NewDriveClient(ctx context.Context, cfg DriveConfig, extra ...option.ClientOption) (*DriveClient, error) {
	opts := append(driveOptions(cfg), extra...)
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &DriveClient{files: srv.Files, pageSize: pageSize}, nil
}

func driveOptions(cfg DriveConfig) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

// List returns one page of entries directly under req.Parent.
func (c *DriveClient) List(ctx context.Context, req ListRequest) (*Page, error) {
	fields := folderFields
	if req.Filter == FilterImages {
		fields = imageFields
	}

	call := c.files.List().
		Q(BuildQuery(req)).
		Fields(googleapi.Field(fields)).
		PageSize(c.pageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Corpora("allDrives").
		Spaces("drive").
		Context(ctx)
	if req.OrderBy != "" {
		call = call.OrderBy(req.OrderBy)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("drive files.list: %w", err)
	}

	page := &Page{
		Entries:       make([]Entry, 0, len(resp.Files)),
		NextPageToken: resp.NextPageToken,
	}
	for _, f := range resp.Files {
		if f == nil {
			continue
		}
		page.Entries = append(page.Entries, entryFromDrive(f))
	}
	return page, nil
}

func entryFromDrive(f *drive.File) Entry {
	entry := Entry{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Parents:  f.Parents,
	}
	if f.ModifiedTime != "" {
		if ts, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			entry.ModifiedTime = ts
		}
	}
	if f.ShortcutDetails != nil {
		entry.Shortcut = &ShortcutDetails{
			TargetID:       f.ShortcutDetails.TargetId,
			TargetMimeType: f.ShortcutDetails.TargetMimeType,
		}
	}
	return entry
}

// BuildQuery renders a ListRequest in the Drive query language.
func BuildQuery(req ListRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s' in parents and trashed=false and ", EscapeQueryValue(req.Parent))

	switch req.Filter {
	case FilterImages:
		fmt.Fprintf(&b, "(mimeType contains 'image/' or mimeType='%s')", MimeShortcut)
	default:
		fmt.Fprintf(&b, "mimeType='%s'", MimeFolder)
	}

	if req.Name != "" {
		fmt.Fprintf(&b, " and name='%s'", EscapeQueryValue(req.Name))
	}
	return b.String()
}

// EscapeQueryValue escapes a value for use inside a single-quoted Drive query string.
func EscapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
