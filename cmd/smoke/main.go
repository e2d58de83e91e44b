package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiblet/vocab/internal/catalog"
	"github.com/yiblet/vocab/internal/daily"
	"github.com/yiblet/vocab/internal/library"
	"github.com/yiblet/vocab/internal/notice"
	"github.com/yiblet/vocab/internal/reminder"
	"github.com/yiblet/vocab/internal/store"
	"github.com/yiblet/vocab/internal/store/dbstore"
)

const smokeCatalog = `words:
  - {id: 1, text: apt, definition: suitable}
  - {id: 2, text: brisk, definition: quick and energetic}
  - {id: 3, text: crux, definition: the decisive point}
  - {id: 4, text: deft, definition: skilful}
`

func main() {
	fmt.Println("vocab storage smoke run")
	fmt.Println(strings.Repeat("=", 40))

	dir, err := os.MkdirTemp("", "vocab-smoke-")
	if err != nil {
		log.Fatalf("Error creating temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	catalogPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte(smokeCatalog), 0644); err != nil {
		log.Fatalf("Error writing catalog: %v", err)
	}

	logger := log.New(os.Stderr, "smoke: ", 0)
	handle := dbstore.New(filepath.Join(dir, "vocab.db"), dbstore.WithLogger(logger))
	defer handle.Close()

	lib := library.New(handle,
		library.WithNotices(notice.NewTerminal(os.Stdout)),
		library.WithTrigger(reminder.LogTrigger{Logger: logger}),
	)
	defer lib.Wait()

	refresher := daily.NewRefresher(&catalog.FileSource{Path: catalogPath}, lib, 3, logger)
	if _, err := refresher.Refresh(context.Background(), false); err != nil {
		log.Fatalf("Error refreshing words: %v", err)
	}

	cached := must(lib.CachedDailyWords())
	check(len(cached) == 3, "three words cached, got %d", len(cached))
	check(must(lib.HasCachedWordsForToday()), "cache is filled for today")

	_, err = lib.CreateList(store.DefaultListName, "", nil)
	check(err != nil, "creating the reserved name fails")

	must(lib.CreateList("SAT", "test prep", nil))
	_, err = lib.CreateList("SAT", "", nil)
	check(err != nil, "duplicate list name fails")

	first := cached[0].Word
	res := must(lib.AddWords("SAT", []store.Word{first, first}))
	check(len(res.Added) == 1 && len(res.Skipped) == 1, "duplicate word skipped")

	available := must(lib.AvailableDailyWords())
	check(len(available) == 2, "two words still available, got %d", len(available))

	check(must(lib.RemoveWordByText("SAT", first.Text)), "word removed")

	check(lib.DeleteList(store.DefaultListName) != nil, "default list cannot be deleted")
	check(lib.DeleteList("SAT") == nil, "custom list deleted")

	report, err := lib.ClearUserData(true)
	check(err == nil, "platform-safe wipe returns no error: %v", err)
	fmt.Println(report)

	lists := must(lib.AllLists())
	check(len(lists) == 1 && lists[0].IsDefault() && len(lists[0].Words) == 0, "only an empty default list remains")

	report, err = lib.ClearAllData()
	check(err == nil && report.OK(), "clear all data succeeds")

	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("Smoke run complete!")
}

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatalf("Unexpected error: %v", err)
	}
	return v
}

func check(ok bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !ok {
		log.Fatalf("FAIL: %s", msg)
	}
	fmt.Printf("ok   %s\n", msg)
}
