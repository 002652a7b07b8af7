// Command bookctl dumps the book catalog for manual inspection and
// reconciliation.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/config"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/infrastructure/storage"
	"github.com/Daniel-1961/Christain-Book-Bot/pkg/logger"
)

func main() {
	log := logger.New("bookctl")

	cfg := config.Load()
	repo, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	defer repo.Close()

	books, err := repo.All(context.Background())
	if err != nil {
		log.Fatalf("list catalog: %v", err)
	}
	if len(books) == 0 {
		fmt.Println("catalog is empty")
		os.Exit(0)
	}

	for _, book := range books {
		fmt.Printf("ID: %d\n", book.ID)
		fmt.Printf("Title: %s\n", book.Title)
		fmt.Printf("Author: %s\n", book.Author)
		fmt.Printf("Category: %s\n", book.Category)
		fmt.Printf("Type: %s\n", book.ContentType)
		fmt.Printf("Archive ref: %s\n", book.ArchiveRef)
		if !book.SourceDate.IsZero() {
			fmt.Printf("Date: %s\n", book.SourceDate.Format("2006-01-02"))
		}
		fmt.Println(strings.Repeat("-", 40))
	}
	log.Printf("%d books cataloged", len(books))
}
