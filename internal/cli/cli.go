package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	gormlogger "gorm.io/gorm/logger"

	"github.com/yiblet/vocab/internal/catalog"
	"github.com/yiblet/vocab/internal/config"
	"github.com/yiblet/vocab/internal/daily"
	"github.com/yiblet/vocab/internal/library"
	"github.com/yiblet/vocab/internal/notice"
	"github.com/yiblet/vocab/internal/reminder"
	"github.com/yiblet/vocab/internal/store"
	"github.com/yiblet/vocab/internal/store/dbstore"
)

// DefaultDBFile is the database file name inside the config directory.
const DefaultDBFile = "vocab.db"

// CLI handles the command-line interface
type CLI struct {
	configManager *config.ConfigManager
	config        *config.Config
	handle        *dbstore.Handle
	library       *library.Library
	source        catalog.Source
	logger        *log.Logger

	in  io.Reader
	out io.Writer
}

// New creates a new CLI instance
func New() (*CLI, error) {
	return NewWithArgs(nil)
}

// NewWithArgs creates a new CLI instance honoring the --db and --config flags
func NewWithArgs(args *Args) (*CLI, error) {
	var cm *config.ConfigManager
	if args != nil && args.ConfigPath != nil {
		cm = config.NewConfigManagerWithPath(*args.ConfigPath)
	} else {
		var err error
		cm, err = config.NewConfigManager()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := cm.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Determine database path (precedence: flag > config > default)
	dbPath, err := resolveDBPath(args, cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	logger := log.New(os.Stderr, "vocab: ", log.LstdFlags)

	sqlLevel := gormlogger.Silent
	if cfg.LogSQL {
		sqlLevel = gormlogger.Info
	}

	// The handle opens lazily; commands that never touch storage never
	// create the database file.
	handle := dbstore.New(dbPath,
		dbstore.WithLogger(logger),
		dbstore.WithSQLLogLevel(sqlLevel),
	)

	lib := library.New(handle,
		library.WithNotices(notice.NewTerminal(os.Stderr)),
		library.WithTrigger(reminder.LogTrigger{Logger: logger}),
	)

	return &CLI{
		configManager: cm,
		config:        cfg,
		handle:        handle,
		library:       lib,
		source:        newSource(cfg),
		logger:        logger,
		in:            os.Stdin,
		out:           os.Stdout,
	}, nil
}

func resolveDBPath(args *Args, cfg *config.Config) (string, error) {
	if args != nil && args.DBPath != nil {
		return *args.DBPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, config.ConfigDir, DefaultDBFile), nil
}

func newSource(cfg *config.Config) catalog.Source {
	switch {
	case cfg.CatalogURL != "":
		return catalog.NewHTTPSource(cfg.CatalogURL)
	case cfg.CatalogFile != "":
		return &catalog.FileSource{Path: cfg.CatalogFile}
	default:
		return nil
	}
}

// Close waits for pending reminder triggers and releases the database.
func (c *CLI) Close() error {
	c.library.Wait()
	return c.handle.Close()
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.List != nil:
		return c.executeList(args.List)
	case args.Daily != nil:
		return c.executeDaily(args.Daily)
	case args.Wipe != nil:
		return c.executeWipe(args.Wipe)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	case args.Serve != nil:
		return c.executeServe(args.Serve)
	default:
		// Default behavior: show today's words
		return c.executeDailyShow()
	}
}

// executeList handles the 'vocab list' command
func (c *CLI) executeList(cmd *ListCmd) error {
	switch {
	case cmd.Show != nil:
		return c.executeListShow(cmd.Show)
	case cmd.Create != nil:
		_, err := c.library.CreateList(cmd.Create.Name, cmd.Create.Description, nil)
		return err
	case cmd.Delete != nil:
		return c.library.DeleteList(cmd.Delete.Name)
	case cmd.Add != nil:
		return c.executeListAdd(cmd.Add)
	case cmd.Remove != nil:
		return c.executeListRemove(cmd.Remove)
	default:
		return c.executeListLs()
	}
}

// executeListLs handles the 'vocab list ls' command
func (c *CLI) executeListLs() error {
	lists, err := c.library.AllLists()
	if err != nil {
		return fmt.Errorf("failed to list word lists: %w", err)
	}

	for _, l := range lists {
		fmt.Fprintf(c.out, "%-20s %3d word(s)", l.Name, len(l.Words))
		if l.Description != "" {
			fmt.Fprintf(c.out, "  %s", l.Description)
		}
		fmt.Fprintln(c.out)
	}
	return nil
}

// executeListShow handles the 'vocab list show' command
func (c *CLI) executeListShow(cmd *ListShowCmd) error {
	list, ok, err := c.library.GetList(cmd.Name)
	if err != nil {
		return fmt.Errorf("failed to read list: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrListNotFound, cmd.Name)
	}

	if len(list.Words) == 0 {
		fmt.Fprintf(c.out, "%s is empty.\n", list.Name)
		return nil
	}
	c.printWords(list.Words)
	return nil
}

// executeListAdd handles the 'vocab list add' command
func (c *CLI) executeListAdd(cmd *ListAddCmd) error {
	var words []store.Word
	if cmd.All {
		cached, err := c.library.CachedDailyWords()
		if err != nil {
			return fmt.Errorf("failed to read words of the day: %w", err)
		}
		for _, cw := range cached {
			words = append(words, cw.Word)
		}
	} else {
		for _, text := range cmd.Words {
			w, ok, err := c.library.FindCachedWord(text)
			if err != nil {
				return fmt.Errorf("failed to read words of the day: %w", err)
			}
			if !ok {
				return fmt.Errorf("%q is not one of today's words", text)
			}
			words = append(words, w)
		}
	}

	if len(words) == 0 {
		return fmt.Errorf("no words of the day cached; run 'vocab daily fetch'")
	}

	_, err := c.library.AddWords(cmd.Name, words)
	return err
}

// executeListRemove handles the 'vocab list remove' command
func (c *CLI) executeListRemove(cmd *ListRemoveCmd) error {
	for _, text := range cmd.Words {
		if _, err := c.library.RemoveWordByText(cmd.Name, text); err != nil {
			return err
		}
	}
	return nil
}

// executeDaily handles the 'vocab daily' command
func (c *CLI) executeDaily(cmd *DailyCmd) error {
	switch {
	case cmd.Fetch != nil:
		return c.executeDailyFetch(cmd.Fetch)
	case cmd.Clear != nil:
		return c.library.ClearCachedWords()
	case cmd.Available != nil:
		return c.executeDailyAvailable()
	default:
		return c.executeDailyShow()
	}
}

func (c *CLI) refresher() (*daily.Refresher, error) {
	if c.source == nil {
		return nil, fmt.Errorf("no catalog configured; set catalog-url or catalog-file")
	}
	return daily.NewRefresher(c.source, c.library, c.config.WordsPerDay, c.logger), nil
}

// executeDailyFetch handles the 'vocab daily fetch' command
func (c *CLI) executeDailyFetch(cmd *DailyFetchCmd) error {
	r, err := c.refresher()
	if err != nil {
		return err
	}

	fetched, err := r.Refresh(context.Background(), cmd.Force)
	if err != nil {
		return fmt.Errorf("failed to fetch words of the day: %w", err)
	}
	if !fetched {
		fmt.Fprintln(c.out, "Today's words are already cached. Use --force to fetch again.")
		return nil
	}
	return c.executeDailyShow()
}

// executeDailyShow prints today's cached words
func (c *CLI) executeDailyShow() error {
	cached, err := c.library.CachedDailyWords()
	if err != nil {
		return fmt.Errorf("failed to read words of the day: %w", err)
	}

	if len(cached) == 0 {
		fmt.Fprintln(c.out, "No words cached for today.")
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "To fetch today's words:")
		fmt.Fprintln(c.out, "  vocab daily fetch")
		return nil
	}

	words := make([]store.Word, len(cached))
	for i, cw := range cached {
		words[i] = cw.Word
	}
	c.printWords(words)
	return nil
}

// executeDailyAvailable handles the 'vocab daily available' command
func (c *CLI) executeDailyAvailable() error {
	words, err := c.library.AvailableDailyWords()
	if err != nil {
		return fmt.Errorf("failed to read words of the day: %w", err)
	}
	if len(words) == 0 {
		fmt.Fprintln(c.out, "Every word of the day is already in a list.")
		return nil
	}
	c.printWords(words)
	return nil
}

// executeWipe handles the 'vocab wipe' command
func (c *CLI) executeWipe(cmd *WipeCmd) error {
	var (
		report *store.Report
		err    error
	)

	switch {
	case cmd.All != nil:
		if !cmd.All.Force && !c.confirm("This will delete cached words and every custom list. Continue?") {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
		report, err = c.library.ClearAllData()
	case cmd.User != nil:
		if !cmd.User.Force && !c.confirm("This will delete all lists and words. Continue?") {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
		report, err = c.library.ClearUserData(cmd.User.PlatformSafe || c.config.PlatformSafeWipe)
	default:
		return fmt.Errorf("no wipe subcommand specified")
	}

	if report != nil {
		fmt.Fprintln(c.out, report.String())
	}
	return err
}

// confirm prompts for a yes/no answer on c.in
func (c *CLI) confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	response, _ := bufio.NewReader(c.in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// executeConfig handles the 'vocab config' command
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		value, err := c.configManager.Get(cmd.Get.Key)
		if err != nil {
			return fmt.Errorf("failed to get config value: %w", err)
		}
		fmt.Fprintf(c.out, "%s\n", value)
		return nil
	case cmd.Set != nil:
		if err := c.configManager.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return fmt.Errorf("failed to set config value: %w", err)
		}
		fmt.Fprintf(c.out, "Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil
	case cmd.List != nil:
		return c.executeConfigList()
	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// executeConfigList handles the 'vocab config list' command
func (c *CLI) executeConfigList() error {
	values, err := c.configManager.List()
	if err != nil {
		return fmt.Errorf("failed to list config values: %w", err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(c.out, "Current configuration (%s):\n", c.configManager.GetConfigPath())
	for _, key := range keys {
		fmt.Fprintf(c.out, "  %s = %s\n", key, values[key])
	}
	return nil
}

// executeServe handles the 'vocab serve' command
func (c *CLI) executeServe(cmd *ServeCmd) error {
	r, err := c.refresher()
	if err != nil {
		return err
	}

	schedule := c.config.RefreshSchedule
	if cmd.Schedule != nil {
		schedule = *cmd.Schedule
	}

	if err := c.handle.EnsureReady(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Start(schedule); err != nil {
		return err
	}
	c.logger.Printf("refreshing words of the day on %q (db %s)", schedule, c.handle.Path())

	<-ctx.Done()
	r.Stop()
	c.logger.Printf("stopped")
	return nil
}

func (c *CLI) printWords(words []store.Word) {
	for _, w := range words {
		fmt.Fprintf(c.out, "%s", w.Text)
		if w.PartOfSpeech != "" {
			fmt.Fprintf(c.out, " (%s)", w.PartOfSpeech)
		}
		fmt.Fprintf(c.out, ": %s\n", truncate(w.Definition))
		if w.Example != "" {
			fmt.Fprintf(c.out, "    %q\n", truncate(w.Example))
		}
	}
}

// truncate shortens text for single-line display
func truncate(content string) string {
	const maxLength = 80

	preview := strings.ReplaceAll(content, "\n", " ")
	preview = strings.TrimSpace(preview)

	runes := []rune(preview)
	if len(runes) <= maxLength {
		return preview
	}

	return string(runes[:maxLength-3]) + "..."
}
