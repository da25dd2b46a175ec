package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lawchat/askapi"
	"lawchat/config"
	appmodel "lawchat/model"
	"lawchat/repl"
	"lawchat/session"
	"lawchat/storage"
	"lawchat/ui"
)

const Version = "v0.01.00"

type closableStore interface {
	storage.KeyValueStore
	Close() error
}

func main() {
	plain := flag.Bool("plain", false, "line mode instead of the full-screen interface")
	resetSession := flag.Bool("reset-session", false, "forget the stored session id and start a new one")
	ephemeral := flag.Bool("ephemeral", false, "keep the session id in memory only")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("lawchat", Version)
		return
	}

	os.Exit(run(*plain, *resetSession, *ephemeral))
}

func run(plain, resetSession, ephemeral bool) int {
	cfg, err := config.Load()
	if err != nil {
		return startupError(plain, "Błąd konfiguracji", err)
	}

	config.InitDebugLog(cfg.DataDir())

	var store closableStore
	if ephemeral {
		store = storage.NewMemoryStorage()
	} else {
		store, err = storage.NewLocalStorage(config.LocalStoragePath(cfg.DataDir()))
		if err != nil {
			return startupError(plain, "Błąd pamięci lokalnej", err)
		}
	}
	defer func() {
		if err := store.Close(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to close local storage: %v", err)
		}
	}()

	if resetSession {
		if err := session.Reset(store); err != nil {
			return startupError(plain, "Błąd sesji", err)
		}
	}

	sessionID, err := session.GetOrCreateSessionID(store)
	if err != nil {
		return startupError(plain, "Błąd sesji", err)
	}

	client, err := askapi.NewClient(cfg.Endpoint, askapi.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return startupError(plain, "Błąd konfiguracji", err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("lawchat %s starting (endpoint %s, plain=%v, ephemeral=%v)", Version, client.Endpoint(), plain, ephemeral)
	}

	dataModel := appmodel.NewModel(cfg, client, sessionID, Version)
	defer dataModel.Close()

	if plain {
		r := repl.New(dataModel, config.ReplHistoryPath(cfg.DataDir()))
		defer r.Close()
		if err := r.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	p := tea.NewProgram(ui.NewAppView(dataModel), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	return 0
}

// startupError reports a failure before the chat can start: a modal in
// full-screen mode, stderr in line mode.
func startupError(plain bool, title string, err error) int {
	if config.DebugLog != nil {
		config.DebugLog.Printf("Startup failed: %s: %v", title, err)
	}

	if plain {
		fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
		return 1
	}

	p := tea.NewProgram(ui.NewErrorModal(title, err.Error()), tea.WithAltScreen())
	if _, runErr := p.Run(); runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
	}
	return 1
}
