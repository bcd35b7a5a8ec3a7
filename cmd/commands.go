package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/garlicgarrison/chess-variant-rules/moveid"
	"github.com/garlicgarrison/chess-variant-rules/ruleset"
	"github.com/garlicgarrison/chess-variant-rules/server"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

// rulesetName derives a ruleset name from the file or directory it was read from.
func rulesetName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func newCheckCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Load a ruleset and report every problem in it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = rulesetName(args[0])
			}

			rs, err := ruleset.Load(name, args...)
			if rs == nil {
				return err
			}

			out := cmd.OutOrStdout()
			sum := rs.Summary()
			fmt.Fprintf(out, "ruleset %s\n", sum.Name)
			fmt.Fprintf(out, "  pieces:    %d (%s)\n", sum.Pieces, sum.Symbols)
			fmt.Fprintf(out, "  move-ids:  %d\n", sum.MoveIDs)
			fmt.Fprintf(out, "  positions: %s\n", strings.Join(sum.Positions, ", "))
			fmt.Fprintf(out, "  moves per piece: mean %.2f, median %.1f, max %.0f\n",
				sum.MeanMoves, sum.MedianMoves, sum.MaxMoves)

			if err != nil {
				fmt.Fprintf(out, "problems:\n%v\n", err)
				return &ExitError{Code: 1, Message: fmt.Sprintf("ruleset %s has problems", name)}
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "ruleset name (defaults to the first path)")
	return cmd
}

func newDecodeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode ID...",
		Short: "Decode move-IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, id := range args {
				m, err := moveid.Decode(id)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%v\n", err)
					continue
				}

				if asJSON {
					b, err := json.MarshalIndent(m, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(b))
					continue
				}

				fmt.Fprintln(out, m.String())
				dirs := []string{}
				for _, v := range m.Directions() {
					dirs = append(dirs, fmt.Sprintf("(%d,%d)", v.File, v.Rank))
				}
				fmt.Fprintf(out, "  directions: %s\n", strings.Join(dirs, " "))
			}

			if failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d move-ids failed to decode", failed, len(args))}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print decoded records as JSON")
	return cmd
}

func newShowCommand() *cobra.Command {
	var position string

	cmd := &cobra.Command{
		Use:   "show PATH...",
		Short: "Set up a starting position and draw it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := ruleset.Load(rulesetName(args[0]), args...)
			if rs == nil {
				return err
			}
			if err != nil {
				log.WithError(err).Warn("showing a ruleset with problems")
			}

			game, err := ruleset.NewGame(rs, position)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%dx%d, %d pieces)\n\n", position, game.Board.Files, game.Board.Ranks, len(game.Board.Pieces))
			fmt.Fprintln(out, game.Board.String())
			fmt.Fprintln(out, game.Board.IDMap())

			if analysis, err := game.Board.Analyze(); err == nil {
				fmt.Fprintf(out, "fen:         %s\n", analysis.FEN)
				fmt.Fprintf(out, "valid moves: %d\n", analysis.ValidMoves)
				fmt.Fprintf(out, "material:    %d / %d\n", analysis.White, analysis.Black)
			} else {
				log.WithError(err).Debug("no orthodox analysis")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&position, "position", "p", "standard", "starting position name")
	return cmd
}

func newServeCommand() *cobra.Command {
	var addr, origins string

	cmd := &cobra.Command{
		Use:   "serve PATH...",
		Short: "Serve rulesets over HTTP, one ruleset per path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := ruleset.NewRegistry()
			for _, path := range args {
				rs, err := ruleset.Load(rulesetName(path), path)
				if err != nil {
					return err
				}
				registry.Add(rs)
			}

			app := server.New(registry, server.Config{AllowOrigins: origins})
			idleConnsClosed := make(chan interface{})
			go waitShutdown(app, idleConnsClosed)

			log.WithField("addr", addr).Info("listening")
			if err := app.Listen(addr); err != nil {
				return err
			}
			<-idleConnsClosed
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().StringVar(&origins, "allow-origins", "", "CORS origins, empty to disable")
	return cmd
}

func waitShutdown(app *fiber.App, idleConnsClosed chan<- interface{}) {
	defer close(idleConnsClosed)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	<-sigint
	log.Info("received shutdown signal")

	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}
