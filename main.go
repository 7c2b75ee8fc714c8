package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fbstats/fbrefscan/internal/run"
)

func main() {
	app := &cli.App{
		Name:  "fbrefscan",
		Usage: "scrape football statistics from fbref.com into per-player CSV artifacts",
		Commands: []*cli.Command{
			{
				Name:   "player",
				Usage:  "scrape one player page into one CSV",
				Action: run.PlayerAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "url", Usage: "player stats page URL", Required: true},
					&cli.StringFlag{Name: "name", Usage: "player display name (derived from the URL when omitted)"},
					&cli.BoolFlag{Name: "goalkeeper", Usage: "run the goalkeeper pipeline instead of the field player one"},
				),
			},
			{
				Name:   "squad",
				Usage:  "scrape every player on a squad roster page",
				Action: run.SquadAction,
				Flags: append(append(commonFlags(), squadFlags()...),
					&cli.StringFlag{Name: "url", Usage: "squad page URL", Required: true},
					&cli.StringFlag{Name: "name", Usage: "team display name (derived from the URL when omitted)"},
				),
			},
			{
				Name:   "league",
				Usage:  "scrape every squad of a league season page",
				Action: run.LeagueAction,
				Flags: append(append(commonFlags(), squadFlags()...),
					&cli.StringFlag{Name: "url", Usage: "league season page URL", Required: true},
					&cli.StringFlag{Name: "name", Usage: "league display name (derived from the URL when omitted)"},
				),
			},
			{
				Name:   "leagues",
				Usage:  "discover leagues from the competitions catalog",
				Action: run.LeaguesAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "tiers", Usage: "comma-separated tiers to include: 1st,2nd,3rd", Value: "1st,2nd,3rd"},
					&cli.StringFlag{Name: "gender", Usage: "competition gender: M or W", Value: "M"},
				),
			},
			{
				Name:   "diagnose",
				Usage:  "print a classification diagnostic for every table on a page",
				Action: run.DiagnoseAction,
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "url", Usage: "page URL to inspect", Required: true},
				),
			},
			{
				Name:   "runs",
				Usage:  "list past runs from the tracking database",
				Action: run.RunsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Usage: "tracking database path (defaults to next to the binary)"},
					&cli.IntFlag{Name: "limit", Usage: "maximum runs to list", Value: 20},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commonFlags are shared by every command that touches the site.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "config file path", Value: "fbrefscan.yaml"},
		&cli.StringFlag{Name: "output-dir", Usage: "artifact base directory (overrides config)"},
		&cli.IntFlag{Name: "rpm", Usage: "requests per minute (overrides config)"},
		&cli.StringFlag{Name: "db", Usage: "tracking database path (defaults to next to the binary)"},
		&cli.BoolFlag{Name: "no-cache", Usage: "bypass the on-disk page cache"},
		&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
	}
}

// squadFlags tune roster iteration for the squad and league commands.
func squadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Usage: "cap the number of players scraped per squad"},
		&cli.IntFlag{Name: "delay", Usage: "seconds to pause between players (overrides config)"},
		&cli.BoolFlag{Name: "skip-existing", Usage: "skip players whose CSV already exists (overrides config)"},
		&cli.BoolFlag{Name: "goalkeepers-only", Usage: "scrape only goalkeepers"},
		&cli.BoolFlag{Name: "field-only", Usage: "scrape only field players"},
	}
}
