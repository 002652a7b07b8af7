package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
)

// Callback data scheme: menu_* for navigation, cat_/auth_ prefixed labels for
// browse selections, book_<id> for delivery.
const (
	cbMainMenu   = "menu_main"
	cbCategories = "menu_category"
	cbAuthors    = "menu_author"
	cbSearch     = "menu_search"
	cbAbout      = "menu_about"

	categoryPrefix = "cat_"
	authorPrefix   = "auth_"
	bookPrefix     = "book_"
)

const apologyText = "😔 Sorry, something went wrong. Please try again later."
const unavailableText = "❌ This book is no longer available for download."

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		reply := tgbotapi.NewMessage(msg.Chat.ID, welcomeText)
		reply.ParseMode = tgbotapi.ModeMarkdown
		reply.ReplyMarkup = mainMenuKeyboard()
		b.send(reply)
	case "about":
		reply := tgbotapi.NewMessage(msg.Chat.ID, aboutText)
		reply.ParseMode = tgbotapi.ModeMarkdown
		reply.ReplyMarkup = aboutKeyboard()
		b.send(reply)
	case "search":
		b.handleSearch(ctx, msg)
	}
}

func (b *Bot) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	keyword := strings.TrimSpace(msg.CommandArguments())
	if keyword == "" {
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Usage: `/search <keyword>`")
		reply.ParseMode = tgbotapi.ModeMarkdown
		b.send(reply)
		return
	}

	books, err := b.queries.Search(ctx, keyword)
	if err != nil {
		b.logger.Warn("search failed", "keyword", keyword, "error", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, apologyText))
		return
	}
	if len(books) == 0 {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("❌ No books found for: %s", keyword)))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("🔍 Search results for '%s':", keyword))
	reply.ReplyMarkup = bookListKeyboard(books, cbMainMenu)
	b.send(reply)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Warn("answer callback failed", "error", err)
	}
	if cq.Message == nil {
		return
	}

	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	data := cq.Data

	switch {
	case data == cbMainMenu:
		b.edit(chatID, messageID, "🏠 Main Menu:", mainMenuKeyboard())

	case data == cbAbout:
		reply := tgbotapi.NewMessage(chatID, aboutText)
		reply.ParseMode = tgbotapi.ModeMarkdown
		reply.ReplyMarkup = aboutKeyboard()
		b.send(reply)

	case data == cbSearch:
		reply := tgbotapi.NewMessage(chatID, "🔍 To search for a book, use the command:\n`/search <keyword>`")
		reply.ParseMode = tgbotapi.ModeMarkdown
		reply.ReplyMarkup = backToMainKeyboard()
		b.send(reply)

	case data == cbCategories:
		b.showLabels(ctx, chatID, messageID, "📚 Choose a category:", categoryPrefix, b.queries.Categories)

	case data == cbAuthors:
		b.showLabels(ctx, chatID, messageID, "👤 Choose an author:", authorPrefix, b.queries.Authors)

	case strings.HasPrefix(data, categoryPrefix):
		category := strings.TrimPrefix(data, categoryPrefix)
		b.showBooks(chatID, messageID, fmt.Sprintf("📖 Books in '%s':", category), cbCategories,
			func() ([]domain.Book, error) { return b.queries.BooksByCategory(ctx, category) })

	case strings.HasPrefix(data, authorPrefix):
		author := strings.TrimPrefix(data, authorPrefix)
		b.showBooks(chatID, messageID, fmt.Sprintf("📚 Books by '%s':", author), cbAuthors,
			func() ([]domain.Book, error) { return b.queries.BooksByAuthor(ctx, author) })

	case strings.HasPrefix(data, bookPrefix):
		b.deliverBook(ctx, chatID, strings.TrimPrefix(data, bookPrefix))
	}
}

func (b *Bot) showLabels(ctx context.Context, chatID int64, messageID int, title, prefix string, fetch func(context.Context) ([]string, error)) {
	labels, err := fetch(ctx)
	if err != nil {
		b.logger.Warn("list labels failed", "error", err)
		b.send(tgbotapi.NewMessage(chatID, apologyText))
		return
	}
	if len(labels) == 0 {
		b.edit(chatID, messageID, "Nothing here yet.", backToMainKeyboard())
		return
	}
	b.edit(chatID, messageID, title, labelListKeyboard(labels, prefix, cbMainMenu))
}

func (b *Bot) showBooks(chatID int64, messageID int, title, backData string, fetch func() ([]domain.Book, error)) {
	books, err := fetch()
	if err != nil {
		b.logger.Warn("list books failed", "error", err)
		b.send(tgbotapi.NewMessage(chatID, apologyText))
		return
	}
	if len(books) == 0 {
		b.edit(chatID, messageID, "No books found here.", backToMainKeyboard())
		return
	}
	b.edit(chatID, messageID, title, bookListKeyboard(books, backData))
}

func (b *Bot) deliverBook(ctx context.Context, chatID int64, ref string) {
	err := b.queries.Deliver(ctx, ref, chatID)
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		b.send(tgbotapi.NewMessage(chatID, unavailableText))
		return
	}
	b.logger.Warn("deliver failed", "ref", ref, "error", err)
	b.send(tgbotapi.NewMessage(chatID, apologyText))
}

func (b *Bot) edit(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup))
}
