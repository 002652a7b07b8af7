package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/source"
)

const defaultBaseURL = "https://t.me/s"

// extContentTypes maps filename extensions to the MIME types the pipeline
// filters on. The preview page does not expose the document's MIME type, so
// the extension is the only signal available here.
var extContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".epub": "application/epub+zip",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".mobi": "application/x-mobipocket-ebook",
	".azw3": "application/x-mobipocket-ebook",
	".zip":  "application/zip",
	".rar":  "application/x-rar-compressed",
}

// Scanner reads a public channel's message stream through the t.me preview
// pages. The Bot API cannot iterate channel history, so the preview page is
// the bot-token-only way to walk an existing backlog; each fetch pages
// backwards with ?before=<id> until the limit is reached.
type Scanner struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

var _ source.Source = (*Scanner)(nil)

// NewScanner wires an HTTP client; a nil client gets a sane default.
func NewScanner(client *http.Client, log *slog.Logger) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scanner{client: client, baseURL: defaultBaseURL, logger: log}
}

// Name identifies the strategy inside the registry.
func (s *Scanner) Name() string {
	return "preview"
}

// Fetch walks preview pages newest-first and returns document candidates up
// to the requested limit.
func (s *Scanner) Fetch(ctx context.Context, req source.Request) ([]domain.Candidate, error) {
	if req.Channel == "" {
		return nil, fmt.Errorf("no channel provided")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 1000
	}

	results := make([]domain.Candidate, 0)
	before := 0

	for len(results) < limit {
		pageURL, err := s.buildPageURL(req.Channel, before)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", req.Channel, err)
		}

		doc, err := s.fetchDocument(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", req.Channel, err)
		}

		candidates, oldest := extractCandidates(doc, req.Channel)
		s.debug("preview page parsed", "channel", req.Channel, "before", before, "candidates", len(candidates), "oldest", oldest)

		if oldest == 0 || (before != 0 && oldest >= before) {
			break
		}

		// The page lists messages oldest-first; reverse so callers see the
		// stream newest-first, matching platform iteration order.
		for i := len(candidates) - 1; i >= 0 && len(results) < limit; i-- {
			results = append(results, candidates[i])
		}

		before = oldest
	}

	return results, nil
}

func (s *Scanner) buildPageURL(channel string, before int) (string, error) {
	u, err := url.Parse(s.baseURL + "/" + strings.TrimPrefix(channel, "@"))
	if err != nil {
		return "", fmt.Errorf("parse preview url: %w", err)
	}
	if before > 0 {
		q := u.Query()
		q.Set("before", strconv.Itoa(before))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ChristianBookBot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request preview page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse preview page: %w", err)
	}
	return doc, nil
}

// extractCandidates pulls document posts out of one preview page and reports
// the smallest message id seen (0 when the page held no messages at all).
func extractCandidates(doc *goquery.Document, channel string) ([]domain.Candidate, int) {
	var candidates []domain.Candidate
	oldest := 0

	doc.Find("div.tgme_widget_message").Each(func(_ int, msg *goquery.Selection) {
		id := messageID(msg)
		if id == 0 {
			return
		}
		if oldest == 0 || id < oldest {
			oldest = id
		}

		title := strings.TrimSpace(msg.Find("div.tgme_widget_message_document_title").First().Text())
		if msg.Find("div.tgme_widget_message_document_wrap, a.tgme_widget_message_document").Length() == 0 {
			// Not a document post; still counts towards paging via oldest.
			return
		}
		if title == "" {
			title = domain.UnknownFileName
		}

		candidates = append(candidates, domain.Candidate{
			SourceChat:  channel,
			MessageID:   id,
			Title:       title,
			Caption:     strings.TrimSpace(msg.Find("div.tgme_widget_message_text").First().Text()),
			ContentType: contentTypeFor(title),
			PostedAt:    messageTime(msg),
		})
	})

	return candidates, oldest
}

func messageID(msg *goquery.Selection) int {
	post, ok := msg.Attr("data-post")
	if !ok {
		return 0
	}
	idx := strings.LastIndex(post, "/")
	if idx < 0 {
		return 0
	}
	id, err := strconv.Atoi(post[idx+1:])
	if err != nil {
		return 0
	}
	return id
}

func messageTime(msg *goquery.Selection) time.Time {
	raw, ok := msg.Find("time").First().Attr("datetime")
	if !ok {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func contentTypeFor(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ct, ok := extContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (s *Scanner) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
