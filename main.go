package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/ytget/songlist/internal/artwork"
	"github.com/ytget/songlist/internal/catalog"
	"github.com/ytget/songlist/internal/config"
	"github.com/ytget/songlist/internal/converter"
	"github.com/ytget/songlist/internal/model"
	"github.com/ytget/songlist/internal/platform"
	"github.com/ytget/songlist/internal/songlist"
	"github.com/ytget/songlist/internal/store"
	"github.com/ytget/songlist/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.songlist"
	AppName = "Song List"

	WindowWidth  = 960
	WindowHeight = 800
)

// Viper keys, also read from SONGLIST_* environment variables
const (
	keySongsFile = "songs_file"
	keyDBFile    = "db_file"
	keyLogLevel  = "log_level"
	keyWatch     = "watch"
	keyEnvFile   = "env_file"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "songlist",
	Short: "Karaoke song picker",
	Long: `songlist shows a karaoke catalog as a paginated, searchable list.

Songs are imported from a JSON or CSV file and kept in a local SQLite
database together with favorites and performance history.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		initLogging(env.LogLevel)
		return run(env)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.StringP("songs", "s", "", "songs file to import (.json or .csv)")
	flags.String("db", "", "SQLite database file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.BoolP("watch", "w", false, "re-import the songs file when it changes")
	flags.String("env", ".env", "dotenv file")

	_ = viper.BindPFlag(keySongsFile, flags.Lookup("songs"))
	_ = viper.BindPFlag(keyDBFile, flags.Lookup("db"))
	_ = viper.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(keyWatch, flags.Lookup("watch"))
	_ = viper.BindPFlag(keyEnvFile, flags.Lookup("env"))

	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEnvironment merges the dotenv file, the environment, the optional
// config file and the flags. Flags win.
func loadEnvironment() (*config.Env, error) {
	viper.SetEnvPrefix("songlist")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	env, err := config.LoadEnv(viper.GetString(keyEnvFile))
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if v := viper.GetString(keySongsFile); v != "" {
		env.SongsFile = v
	}
	if v := viper.GetString(keyDBFile); v != "" {
		env.DBPath = v
	}
	if v := viper.GetString(keyLogLevel); v != "" {
		env.LogLevel = v
	}
	if viper.IsSet(keyWatch) {
		env.Watch = env.Watch || viper.GetBool(keyWatch)
	}
	return env, nil
}

// initLogging configures logrus to output only to Stderr.
func initLogging(levelName string) {
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing log level '%s': %v. Defaulting to INFO.\n", levelName, err)
		level = logrus.InfoLevel
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&prefixed.TextFormatter{
		ForceColors:     true,
		ForceFormatting: true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
		QuoteCharacter:  "'",
		Once:            sync.Once{},
	})
	logrus.SetOutput(os.Stderr)
}

func run(env *config.Env) error {
	logrus.Infof("%s v%s starting...", AppName, version)

	songStore, err := store.NewSQLiteStore(env.DBPath)
	if err != nil {
		return err
	}
	defer songStore.Close()

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewRetroTheme())
	settings := config.NewSettings(myApp)

	songsFile := settings.GetSongsFile(env.SongsFile)
	songs := loadCatalog(songStore, songsFile)

	filter := catalog.NewFilter(catalog.NewFolder(converter.NewOrIdentity()))
	controller := songlist.New(songs, settings.GetRowHeight(), settings.GetListHeight(), filter.FilterSongs)

	artworkSvc := artwork.NewService(artwork.NewHTTPFetcher(), ui.FallbackArtworkResource,
		settings.GetMaxParallelArtwork(), env.HTTPTimeout)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.SetIcon(ui.LoadLogoResource())
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	view := ui.NewSongListView(myWindow, controller, ui.Options{
		Store:     songStore,
		Artwork:   artworkSvc,
		Settings:  settings,
		SongsFile: env.SongsFile,
		Watch:     env.Watch,
	})
	defer view.StopWatching()

	myWindow.ShowAndRun()
	return nil
}

// loadCatalog imports the songs file when present and falls back to the
// stored catalog
func loadCatalog(songStore store.SongStore, songsFile string) []model.Song {
	ctx := context.Background()

	if platform.FileExists(songsFile) {
		songs, err := store.ImportFile(ctx, songStore, songsFile)
		if err == nil {
			return songs
		}
		logrus.Errorf("Failed to import %s: %v", songsFile, err)
	} else {
		logrus.Warnf("Songs file %s not found, using stored catalog", songsFile)
	}

	songs, err := songStore.ListSongs(ctx)
	if err != nil {
		logrus.Errorf("Failed to list stored songs: %v", err)
		return nil
	}
	return songs
}
