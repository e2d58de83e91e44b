package cli

import (
	"fmt"
)

// Args represents the top-level command structure
type Args struct {
	DBPath     *string `arg:"--db" help:"Database file (default: ~/.config/vocab/vocab.db)"`
	ConfigPath *string `arg:"--config" help:"Config file (default: ~/.config/vocab/config.yaml)"`

	List   *ListCmd   `arg:"subcommand:list" help:"Manage word lists"`
	Daily  *DailyCmd  `arg:"subcommand:daily" help:"Manage the words of the day"`
	Wipe   *WipeCmd   `arg:"subcommand:wipe" help:"Delete stored data"`
	Config *ConfigCmd `arg:"subcommand:config" help:"Manage configuration"`
	Serve  *ServeCmd  `arg:"subcommand:serve" help:"Refresh the words of the day on a schedule"`
}

// ListCmd represents the 'vocab list' command
type ListCmd struct {
	Ls     *ListLsCmd     `arg:"subcommand:ls" help:"Show all lists"`
	Show   *ListShowCmd   `arg:"subcommand:show" help:"Show the words in a list"`
	Create *ListCreateCmd `arg:"subcommand:create" help:"Create a list"`
	Delete *ListDeleteCmd `arg:"subcommand:delete" help:"Delete a list"`
	Add    *ListAddCmd    `arg:"subcommand:add" help:"Add words of the day to a list"`
	Remove *ListRemoveCmd `arg:"subcommand:remove" help:"Remove words from a list"`
}

// ListLsCmd represents the 'vocab list ls' command
type ListLsCmd struct{}

// ListShowCmd represents the 'vocab list show' command
type ListShowCmd struct {
	Name string `arg:"positional,required" help:"List name"`
}

// ListCreateCmd represents the 'vocab list create' command
type ListCreateCmd struct {
	Name        string `arg:"positional,required" help:"List name"`
	Description string `arg:"-d,--description" help:"List description"`
}

// ListDeleteCmd represents the 'vocab list delete' command
type ListDeleteCmd struct {
	Name string `arg:"positional,required" help:"List name"`
}

// ListAddCmd represents the 'vocab list add' command
type ListAddCmd struct {
	Name  string   `arg:"positional,required" help:"List name"`
	Words []string `arg:"positional" help:"Words of the day to add"`
	All   bool     `arg:"-a,--all" help:"Add every word of the day"`
}

// ListRemoveCmd represents the 'vocab list remove' command
type ListRemoveCmd struct {
	Name  string   `arg:"positional,required" help:"List name"`
	Words []string `arg:"positional,required" help:"Words to remove"`
}

// DailyCmd represents the 'vocab daily' command
type DailyCmd struct {
	Fetch     *DailyFetchCmd     `arg:"subcommand:fetch" help:"Fetch today's words from the catalog"`
	Show      *DailyShowCmd      `arg:"subcommand:show" help:"Show today's words"`
	Clear     *DailyClearCmd     `arg:"subcommand:clear" help:"Clear the cached words"`
	Available *DailyAvailableCmd `arg:"subcommand:available" help:"Show today's words not yet in any list"`
}

// DailyFetchCmd represents the 'vocab daily fetch' command
type DailyFetchCmd struct {
	Force bool `arg:"-f,--force" help:"Fetch even when today's words are cached"`
}

// DailyShowCmd represents the 'vocab daily show' command
type DailyShowCmd struct{}

// DailyClearCmd represents the 'vocab daily clear' command
type DailyClearCmd struct{}

// DailyAvailableCmd represents the 'vocab daily available' command
type DailyAvailableCmd struct{}

// WipeCmd represents the 'vocab wipe' command
type WipeCmd struct {
	All  *WipeAllCmd  `arg:"subcommand:all" help:"Delete cached words and custom lists"`
	User *WipeUserCmd `arg:"subcommand:user" help:"Delete all user data, leaving an empty Learned list"`
}

// WipeAllCmd represents the 'vocab wipe all' command
type WipeAllCmd struct {
	Force bool `arg:"-f,--force" help:"Skip confirmation prompt"`
}

// WipeUserCmd represents the 'vocab wipe user' command
type WipeUserCmd struct {
	Force        bool `arg:"-f,--force" help:"Skip confirmation prompt"`
	PlatformSafe bool `arg:"--platform-safe" help:"Delete one row per statement"`
}

// ConfigCmd represents the 'vocab config' command
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Get configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"List all configuration values"`
}

// ConfigGetCmd represents the 'vocab config get' command
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd represents the 'vocab config set' command
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"Configuration value"`
}

// ConfigListCmd represents the 'vocab config list' command
type ConfigListCmd struct{}

// ServeCmd represents the 'vocab serve' command
type ServeCmd struct {
	Schedule *string `arg:"--schedule" help:"Cron schedule overriding refresh-schedule"`
}

// Description returns the program description
func (Args) Description() string {
	return "vocab - word lists and words of the day, stored locally"
}

// Version returns the program version
func (Args) Version() string {
	return "vocab 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  vocab daily fetch                # Cache today's words
  vocab daily show                 # Print today's words
  vocab list create SAT            # Create a list
  vocab list add SAT brisk crux    # Add words of the day to a list
  vocab list add Learned --all     # Add every word of the day
  vocab list show Learned          # Print a list
  vocab wipe user --platform-safe  # Delete everything, one row at a time
  vocab config set words-per-day 8`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.DBPath != nil && *args.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if args.List != nil && args.List.Add != nil {
		return args.List.Add.Validate()
	}
	return nil
}

// Validate validates list add arguments
func (a *ListAddCmd) Validate() error {
	if a.All && len(a.Words) > 0 {
		return fmt.Errorf("cannot specify both words and --all")
	}
	if !a.All && len(a.Words) == 0 {
		return fmt.Errorf("specify words to add or --all")
	}
	return nil
}
