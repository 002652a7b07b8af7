package domain

import "time"

// Book is a core entity describing a single cataloged item. The bytes live in
// the Telegram archive channel; the catalog only records where to find them.
type Book struct {
	ID          int64
	Title       string
	Caption     string
	Author      string
	Category    string
	ContentType string
	ArchiveRef  string
	SourceDate  time.Time
}

// Sentinel labels assigned when classification or extraction finds nothing.
const (
	UnknownAuthor   = "Unknown"
	OtherCategory   = "Other"
	UnknownFileName = "Unknown_File"
)

// Candidate is a source-channel message under consideration for ingestion,
// before any dedup or publish decision has been made. Author and Category are
// empty until the pipeline classifies the candidate; the publisher uses them
// for the archive caption in upload mode.
type Candidate struct {
	SourceChat  string
	MessageID   int
	Title       string
	Caption     string
	ContentType string
	FileID      string
	FileURL     string
	Author      string
	Category    string
	PostedAt    time.Time
}

// Report summarizes a single ingestion run.
type Report struct {
	Scanned    int
	Published  int
	Duplicates int
	Failed     int
}
