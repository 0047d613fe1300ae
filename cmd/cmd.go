// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func backendFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "backend",
		Aliases: []string{"b"},
		Usage:   "Persistence backend (xlsx or sqlite)",
		Value:   "xlsx",
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Act as this callsign instead of the logged-in operator",
	}
}

// setupCommand handles database initialization and config creation.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config, database and DXCC reference data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles operator accounts and the login session.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Operator account management",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an operator account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "callsign"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
					&cli.BoolFlag{
						Name:  "admin",
						Usage: "Grant admin rights",
					},
				},
				Action: r.Register,
			},
			{
				Name:  "login",
				Usage: "Authenticate and save a session",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "callsign"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password (prompted when omitted)",
					},
				},
				Action: r.Login,
			},
			{
				Name:   "logout",
				Usage:  "Clear the saved session",
				Action: r.Logout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the logged-in operator",
				Action: r.Whoami,
			},
		},
	}
}

// importCommand runs an ADIF import against the stored collection.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "import",
		Aliases: []string{"imp"},
		Usage:   "Import an ADIF file into the logbook",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			backendFlag(),
			userFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the merge report as JSON",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress per-record progress lines",
			},
		},
		Action: r.Import,
	}
}

// qsoCommand handles manual logbook edits and exports.
func qsoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "qso",
		Usage: "Logbook operations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Log a single QSO by hand",
				Flags: []cli.Flag{
					backendFlag(),
					userFlag(),
					&cli.StringFlag{
						Name:     "call",
						Usage:    "Worked station's callsign",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "QSO date (YYYY-MM-DD, default today)",
					},
					&cli.StringFlag{
						Name:  "band",
						Usage: "Band (e.g. 20m)",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Mode (e.g. CW, FT8)",
					},
					&cli.StringFlag{
						Name:  "country",
						Usage: "Country name when the callsign prefix is ambiguous",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "QSL status (needed, requested, confirmed)",
						Value: "needed",
					},
				},
				Action: r.QSOAdd,
			},
			{
				Name:  "list",
				Usage: "List logged QSOs",
				Flags: []cli.Flag{
					backendFlag(),
					userFlag(),
					&cli.StringFlag{
						Name:  "band",
						Usage: "Only show QSOs on this band",
					},
					&cli.BoolFlag{
						Name:  "unresolved",
						Usage: "Only show QSOs without a DXCC entity",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.QSOList,
			},
			{
				Name:  "rm",
				Usage: "Remove a QSO by callsign and date",
				Flags: []cli.Flag{
					backendFlag(),
					userFlag(),
					&cli.StringFlag{
						Name:     "call",
						Usage:    "Worked station's callsign",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "date",
						Usage:    "QSO date (YYYY-MM-DD)",
						Required: true,
					},
				},
				Action: r.QSORemove,
			},
			{
				Name:  "export",
				Usage: "Export the logbook as CSV",
				Flags: []cli.Flag{
					backendFlag(),
					userFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output base filename",
					},
				},
				Action: r.QSOExport,
			},
		},
	}
}

// statsCommand surfaces award progress summaries.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Award progress summaries",
		Commands: []*cli.Command{
			{
				Name:  "dashboard",
				Usage: "Entity totals and confirmation progress",
				Flags: []cli.Flag{
					backendFlag(),
					userFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.Dashboard,
			},
			{
				Name:  "needs",
				Usage: "Entities still needed, with per-band standing",
				Flags: []cli.Flag{
					backendFlag(),
					userFlag(),
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Include confirmed entities",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.Needs,
			},
			{
				Name:  "challenge",
				Usage: "Summarize an LoTW Challenge CSV export",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "save",
						Aliases: []string{"s"},
						Usage:   "Save the parsed summary to this JSON file",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.Challenge,
			},
		},
	}
}

// dxccCommand manages the DXCC reference data.
func dxccCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dxcc",
		Usage: "DXCC entity reference data",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show entity and prefix counts",
				Action: r.DXCCStats,
			},
			{
				Name:  "lookup",
				Usage: "Resolve a callsign or country name to an entity",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Action: r.DXCCLookup,
			},
			{
				Name:   "reload",
				Usage:  "Reseed the database entity tables from the bundled dataset",
				Flags:  []cli.Flag{userFlag()},
				Action: r.DXCCReload,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive dashboard",
		Flags: []cli.Flag{
			backendFlag(),
			userFlag(),
			&cli.StringFlag{
				Name:    "import",
				Aliases: []string{"i"},
				Usage:   "ADIF file to offer for import inside the TUI",
			},
		},
		Action: r.TUI,
	}
}
