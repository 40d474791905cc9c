package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/records"
	"github.com/vancomm/minesweeper/internal/render"
	"github.com/vancomm/minesweeper/internal/tui"
)

var (
	start     = flag.String("new", "", `start right away with a difficulty or a "w:h:chance" seed`)
	noRecords = flag.Bool("no-records", false, "do not keep finished games")
)

func main() {
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Fatal("unable to load .env")
	}
	logCfg, err := config.NewLogging()
	if err != nil {
		logrus.WithError(err).Fatal("unable to read logging config")
	}
	log, err := logging.New(logCfg)
	if err != nil {
		logrus.WithError(err).Fatal("unable to set up logging")
	}
	// the screen belongs to the program; entries only reach LOG_FILE
	log.SetOutput(io.Discard)

	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	router, err := newRouter(*start, rnd, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	os.Exit(run(router, log))
}

// newRouter prepares the game, starting it right away when start names a
// difficulty or a seed.
func newRouter(start string, rnd *rand.Rand, log logrus.FieldLogger) (*command.Router, error) {
	router := command.NewRouter(mines.NewGame(), rnd, log)
	if start != "" {
		if _, err := router.Execute("new " + start); err != nil {
			return nil, err
		}
	}
	return router, nil
}

func run(router *command.Router, log logrus.FieldLogger) int {
	var store records.Store
	if !*noRecords {
		path := config.RecordsSQLitePath()
		sqlStore, err := records.OpenSQLite(context.Background(), path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "records disabled: %v\n", err)
		} else {
			defer sqlStore.Close()
			store = sqlStore
		}
	}

	p := tea.NewProgram(tui.New(router, render.Default(), store, log))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		return 1
	}
	return 0
}
