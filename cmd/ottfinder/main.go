package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/a0929639992ca-hub/OTT/internal/appflow"
	"github.com/a0929639992ca-hub/OTT/internal/util"
	"github.com/a0929639992ca-hub/OTT/internal/version"
)

func main() {
	// Define all flags in one place
	versionFlag := flag.Bool("version", false, "show version information")
	debugFlag := flag.Bool("debug", false, "enable debug mode")
	helpFlag := flag.Bool("help", false, "show help message")
	altHelpFlag := flag.Bool("h", false, "show help message")
	historyFlag := flag.Bool("history", false, "pick a recent search and run it")
	watchlistFlag := flag.Bool("watchlist", false, "pick a saved title and open it")

	flag.Parse()

	if *versionFlag || version.HasVersionArg() {
		version.ShowVersion()
		return
	}

	if *helpFlag || *altHelpFlag {
		util.Helper()
		return
	}

	util.SetDebugMode(*debugFlag)
	util.InitLogger()
	if *debugFlag {
		log.Println("--- Debug mode is enabled ---")
	}

	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		util.Debug("no .env file loaded", "error", err)
	}
	if err := appflow.EnsureCredential(); err != nil {
		log.Fatalln(util.ErrorHandler(err))
	}

	app, err := appflow.Setup()
	if err != nil {
		log.Fatalln(util.ErrorHandler(err))
	}
	defer app.Close()

	switch {
	case *watchlistFlag:
		entry, err := app.PickWatchlist()
		if err != nil {
			log.Fatalln(util.ErrorHandler(err))
		}
		if err := app.RunSaved(entry); err != nil {
			log.Fatalln(util.ErrorHandler(err))
		}

	case *historyFlag:
		query, err := app.PickRecent()
		if err != nil {
			log.Fatalln(util.ErrorHandler(err))
		}
		if err := app.RunTUI(query); err != nil {
			log.Fatalln(util.ErrorHandler(err))
		}

	default:
		query, err := util.GetQuery()
		if err != nil {
			log.Fatalln(util.ErrorHandler(err))
		}
		if err := app.RunTUI(query); err != nil {
			log.Fatalln(util.ErrorHandler(err))
		}
	}
}
