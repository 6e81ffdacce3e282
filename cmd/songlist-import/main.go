package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/ytget/songlist/internal/config"
	"github.com/ytget/songlist/internal/store"
)

var (
	dbFile  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "songlist-import <songs.json|songs.csv>",
	Short: "Import a songs file into the songlist database without opening the UI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		if dbFile == "" {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			dbFile = env.DBPath
		}

		songStore, err := store.NewSQLiteStore(dbFile)
		if err != nil {
			return err
		}
		defer songStore.Close()

		songs, err := store.ImportFile(context.Background(), songStore, args[0])
		if err != nil {
			return err
		}

		byLanguage := map[string]int{}
		for _, song := range songs {
			byLanguage[song.Language]++
		}
		languages := make([]string, 0, len(byLanguage))
		for lang := range byLanguage {
			languages = append(languages, lang)
		}
		sort.Strings(languages)

		fmt.Fprintf(cmd.OutOrStdout(), "%d songs in %s\n", len(songs), dbFile)
		for _, lang := range languages {
			name := lang
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", name, byLanguage[lang])
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&dbFile, "db", "", "SQLite database file (default from SONGLIST_DB_FILE)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
