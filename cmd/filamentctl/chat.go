package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/filamentgenius/backend/internal/model"
	"github.com/filamentgenius/backend/internal/project"
)

func init() {
	var owner string

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive advisor chat (/save TITLE to save, /quit to exit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			gw, err := a.newGateway()
			if err != nil {
				return err
			}

			var history []model.Message
			scanner := bufio.NewScanner(os.Stdin)
			_, _ = fmt.Fprintln(os.Stdout, "Filament Genius ready. /save TITLE saves the session, /quit exits.")

			for {
				_, _ = fmt.Fprint(os.Stdout, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				switch {
				case line == "/quit":
					return nil

				case strings.HasPrefix(line, "/save"):
					title := strings.TrimSpace(strings.TrimPrefix(line, "/save"))
					if owner == "" {
						_, _ = fmt.Fprintln(os.Stdout, "set --owner to save sessions")
						continue
					}
					if title == "" {
						title = "Chat Session"
					}
					proj, err := a.projects.Save(cmd.Context(), owner, title, "chat",
						project.Content{ChatHistory: history})
					if err != nil {
						_, _ = fmt.Fprintf(os.Stdout, "save failed: %v\n", err)
						continue
					}
					_, _ = fmt.Fprintf(os.Stdout, "saved project %s\n", proj.ID)

				default:
					reply := gw.Converse(cmd.Context(), history, line)
					now := time.Now().UnixMilli()
					history = append(history,
						model.Message{ID: uuid.NewString(), Role: model.RoleUser, Text: line, Timestamp: now},
						model.Message{ID: uuid.NewString(), Role: model.RoleModel, Text: reply, Timestamp: time.Now().UnixMilli()},
					)
					_, _ = fmt.Fprintln(os.Stdout, reply)
				}
			}
		},
	}

	chatCmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner user ID (required for /save)")
	rootCmd.AddCommand(chatCmd)
}
