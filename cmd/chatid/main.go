// Command chatid prints the chat ID of any chat or channel the bot receives
// an update from. Post something in the target channel, run this, and copy
// the printed ID into ARCHIVE_CHAT_ID.
package main

import (
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniel-1961/Christain-Book-Bot/pkg/logger"
)

func main() {
	log := logger.New("chatid")

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("BOT_TOKEN env var is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatalf("connect bot api: %v", err)
	}
	log.Printf("connected as @%s, send any message in the target chat...", api.Self.UserName)

	updates, err := api.GetUpdates(tgbotapi.NewUpdate(0))
	if err != nil {
		log.Fatalf("get updates: %v", err)
	}

	for _, update := range updates {
		switch {
		case update.ChannelPost != nil:
			fmt.Printf("channel %q: %d\n", update.ChannelPost.Chat.Title, update.ChannelPost.Chat.ID)
		case update.Message != nil:
			fmt.Printf("chat %q: %d\n", update.Message.Chat.Title, update.Message.Chat.ID)
		}
	}
}
