package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
)

const adminContactURL = "https://t.me/Dani1961"

const welcomeText = "🌿 *Welcome to Christian Books Bot!*\n\n" +
	"Discover amazing spiritual resources from well-known reformed writers.\n" +
	"You can browse books by category, author, or search by keywords.\n\n" +
	"Choose an option below to get started:"

const aboutText = "📖 *“For I am not ashamed of the gospel, for it is the power of God for salvation " +
	"to everyone who believes.”*\n_— Romans 1:16_\n\n" +
	"🌿 *About Christian Books Bot*\n\n" +
	"This bot was created with a simple purpose — *to make timeless Christian books and resources easily accessible* to everyone.\n\n" +
	"Here, you’ll find a growing collection of *Reformed and Evangelical writings*, organized by *author*, *category*, and *topic*.\n\n" +
	"Our desire is to help you:\n" +
	"• 📚 Discover classic works of theology, devotion, and church history\n" +
	"• 🔍 Browse by author or category\n" +
	"• 🙏 Deepen your understanding of Scripture and sound doctrine\n\n" +
	"New books and improvements are being added regularly.\n\n" +
	"Enjoy your spiritual reading journey! ✨"

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📚 Browse by Category", cbCategories)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👤 Browse by Author", cbAuthors)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔍 Search Books", cbSearch)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("ℹ️ About", cbAbout)),
	)
}

func backToMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to Main Menu", cbMainMenu)),
	)
}

func aboutKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("📩 Contact Admin", adminContactURL)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Main Menu", cbMainMenu)),
	)
}

// labelListKeyboard renders one button per label, callback data prefixed so
// the dispatcher can tell categories from authors.
func labelListKeyboard(labels []string, prefix, backData string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(labels)+1)
	for _, label := range labels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, prefix+label),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", backData),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func bookListKeyboard(books []domain.Book, backData string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(books)+1)
	for _, book := range books {
		label := book.Title
		if book.Author != "" && book.Author != domain.UnknownAuthor {
			label = fmt.Sprintf("%s (%s)", book.Title, book.Author)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, bookPrefix+strconv.FormatInt(book.ID, 10)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", backData),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
