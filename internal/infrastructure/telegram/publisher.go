package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

// Publish modes. Forward is preferred: the platform copies the message
// server-side, so no bytes ever touch this process and the original encoding
// is preserved. Upload re-sends the document from fetched bytes.
const (
	ModeForward = "forward"
	ModeUpload  = "upload"
)

// Publisher moves candidates into the archive channel and re-delivers
// archived items on request.
type Publisher struct {
	api           *tgbotapi.BotAPI
	http          *http.Client
	archiveChatID int64
	mode          string
	logger        *slog.Logger
}

var _ ports.ArchivePublisher = (*Publisher)(nil)
var _ ports.Deliverer = (*Publisher)(nil)

// NewPublisher wires the bot API client with the archive destination.
func NewPublisher(api *tgbotapi.BotAPI, archiveChatID int64, mode string, log *slog.Logger) *Publisher {
	if mode == "" {
		mode = ModeForward
	}
	return &Publisher{
		api:           api,
		http:          &http.Client{Timeout: 60 * time.Second},
		archiveChatID: archiveChatID,
		mode:          mode,
		logger:        log,
	}
}

// Publish moves the candidate into the archive channel and returns the opaque
// archive reference: the archive message position in forward mode, the
// platform file handle in upload mode. Throttling surfaces as
// *domain.RateLimitedError; everything else as *domain.PublishError.
func (p *Publisher) Publish(ctx context.Context, candidate domain.Candidate) (string, error) {
	switch p.mode {
	case ModeUpload:
		return p.upload(ctx, candidate)
	default:
		return p.forward(candidate)
	}
}

func (p *Publisher) forward(candidate domain.Candidate) (string, error) {
	if candidate.MessageID == 0 {
		return "", &domain.PublishError{Title: candidate.Title, Err: errors.New("no source message position")}
	}

	cfg := tgbotapi.CopyMessageConfig{
		BaseChat:  tgbotapi.BaseChat{ChatID: p.archiveChatID},
		MessageID: candidate.MessageID,
	}
	cfg.FromChannelUsername = "@" + strings.TrimPrefix(candidate.SourceChat, "@")

	res, err := p.api.CopyMessage(cfg)
	if err != nil {
		return "", mapPublishError(candidate.Title, err)
	}
	return strconv.Itoa(res.MessageID), nil
}

func (p *Publisher) upload(ctx context.Context, candidate domain.Candidate) (string, error) {
	data, err := p.fetchBytes(ctx, candidate)
	if err != nil {
		return "", &domain.PublishError{Title: candidate.Title, Err: err}
	}

	doc := tgbotapi.NewDocument(p.archiveChatID, tgbotapi.FileBytes{
		Name:  candidate.Title,
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("%s\nAuthor: %s\nCategory: %s",
		candidate.Title, candidate.Author, candidate.Category)

	sent, err := p.api.Send(doc)
	if err != nil {
		return "", mapPublishError(candidate.Title, err)
	}
	if sent.Document == nil {
		return "", &domain.PublishError{Title: candidate.Title, Err: errors.New("archive reply carried no document")}
	}
	return sent.Document.FileID, nil
}

func (p *Publisher) fetchBytes(ctx context.Context, candidate domain.Candidate) ([]byte, error) {
	fileURL := candidate.FileURL
	if candidate.FileID != "" {
		direct, err := p.api.GetFileDirectURL(candidate.FileID)
		if err != nil {
			return nil, fmt.Errorf("resolve file %s: %w", candidate.FileID, err)
		}
		fileURL = direct
	}
	if fileURL == "" {
		return nil, errors.New("candidate has no retrievable content")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Deliver copies an archived item into the target conversation. A numeric
// reference is an archive message position, re-sent via server-side copy;
// anything else is treated as a platform file handle.
func (p *Publisher) Deliver(ctx context.Context, archiveRef string, chatID int64) error {
	_ = ctx // the bot API client does not take contexts

	if messageID, err := strconv.Atoi(archiveRef); err == nil {
		copyCfg := tgbotapi.NewCopyMessage(chatID, p.archiveChatID, messageID)
		if _, err := p.api.CopyMessage(copyCfg); err != nil {
			return mapDeliverError(err)
		}
		return nil
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(archiveRef))
	if _, err := p.api.Send(doc); err != nil {
		return mapDeliverError(err)
	}
	return nil
}

func mapPublishError(title string, err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return &domain.RateLimitedError{RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second}
	}
	return &domain.PublishError{Title: title, Err: err}
}

func mapDeliverError(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		msg := strings.ToLower(apiErr.Message)
		if strings.Contains(msg, "not found") || strings.Contains(msg, "message to copy") {
			return domain.ErrNotFound
		}
	}
	return fmt.Errorf("deliver: %w", err)
}
