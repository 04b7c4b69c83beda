package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-mailmacro/pkg/letter"
	"github.com/benjaminschreck/go-mailmacro/pkg/letter/store"
)

var (
	dbPath  string
	baseURL string
	urlPage string
)

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "Manage saved letters",
}

var lettersSaveCmd = &cobra.Command{
	Use:   "save <file.yml>",
	Short: "Save the letter described by a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read letter: %w", err)
		}
		var l letter.Letter
		if err := yaml.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("parse letter %s: %w", args[0], err)
		}
		l.DriveLink = letter.NormalizeLink(l.DriveLink)

		return withStore(func(s *store.Store) error {
			saved, err := s.Save(cmd.Context(), l)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
			return nil
		})
	},
}

var lettersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved letters, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			letters, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSUBJECT\tRECEIVER\tSAVED")
			for _, l := range letters {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Subject, l.ReceiverName, l.SavedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		})
	},
}

var lettersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved letter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			return s.Delete(cmd.Context(), args[0])
		})
	},
}

var lettersURLCmd = &cobra.Command{
	Use:   "url <id>",
	Short: "Print the share link of a saved letter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			l, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			link, err := letter.ToURL(baseURL, l, urlPage)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		})
	},
}

func init() {
	lettersCmd.PersistentFlags().StringVar(&dbPath, "db", "letters.db", "SQLite database file")
	lettersURLCmd.Flags().StringVar(&baseURL, "base", "http://localhost:8000/", "base URL of the letter site")
	lettersURLCmd.Flags().StringVar(&urlPage, "page", letter.DefaultPage, "viewer page")

	lettersCmd.AddCommand(lettersSaveCmd, lettersListCmd, lettersDeleteCmd, lettersURLCmd)
}

func withStore(fn func(s *store.Store) error) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
