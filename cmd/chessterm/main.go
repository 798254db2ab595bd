package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/yousufyasser2005/Youstore/pkg"
	"github.com/yousufyasser2005/Youstore/pkg/config"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
	"github.com/yousufyasser2005/Youstore/pkg/gui"
)

var (
	done = make(chan bool)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	serverAddr := flag.String("server", "", "address of a chessterm server; empty plays against a local engine")
	name := flag.String("name", os.Getenv("USER"), "your name")
	logPath := flag.String("log", cfg.LogPath, "path to log file")
	color := flag.String("color", "white", "side to play: white or black")
	difficulty := flag.Int("difficulty", cfg.Engine.Difficulty, "engine level, 1 (easy) to 5")
	themeName := flag.String("theme", cfg.Client.Theme, "color theme: basic or dark")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "chessterm needs a terminal")
		os.Exit(1)
	}

	theme, err := gui.ThemeByName(*themeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *difficulty < engine.Easy || *difficulty > engine.MaxDifficulty {
		fmt.Fprintf(os.Stderr, "difficulty must be between %d and %d\n", engine.Easy, engine.MaxDifficulty)
		os.Exit(2)
	}

	pkg.InitLog(*logPath, "CLIENT: ")
	log.Println("New Client")

	cl := pkg.NewClient(theme)
	cl.Name = *name
	cl.Difficulty = *difficulty
	if strings.EqualFold(*color, "black") {
		cl.Color = pkg.Black
	}

	if *serverAddr != "" {
		if err := cl.Connect(*serverAddr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		var opts []engine.Option
		if cfg.Engine.Seed != 0 {
			opts = append(opts, engine.WithSeed(cfg.Engine.Seed))
		}
		conn, m := pkg.LocalMatch(engine.NewAI(*difficulty, opts...), cfg.Engine.ThinkTimeout)
		defer m.Close()
		cl.Conn = conn
	}
	go cl.HandleRead()
	go cl.HandleWrite()

	// Down when receive killed signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc
		cl.Stop()
	}()

	go func() {
		if err := cl.Run(); err != nil {
			log.Printf("UI failed: %v", err)
		}
		done <- true
	}()

	<-done
	cl.Disconnect()
}
