package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"

	"github.com/yousufyasser2005/Youstore/pkg"
	"github.com/yousufyasser2005/Youstore/pkg/api"
	"github.com/yousufyasser2005/Youstore/pkg/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	addr := flag.String("addr", cfg.Server.Addr, "address of the match server")
	sshAddr := flag.String("ssh", cfg.SSH.Addr, "address of the ssh server, empty to disable")
	httpAddr := flag.String("http", cfg.HTTP.Addr, "address of the HTTP API, empty to disable")
	logPath := flag.String("log", cfg.LogPath, "path to log file")
	flag.Parse()

	pkg.InitLog(*logPath, "SERVER: ")
	log.Println("Server started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := pkg.NewServer(pkg.ServerConfig{
		Difficulty:   cfg.Engine.Difficulty,
		Seed:         cfg.Engine.Seed,
		ThinkTimeout: cfg.Engine.ThinkTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})
	go s.CleanIdleMatches(ctx, time.Minute)

	// Create server to listen for data
	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("listen %s: %v", *addr, err)
	}
	log.Printf("Listening at %s", *addr)
	banner(os.Stdout, "match server", *addr)

	var sshServer *pkg.SSHServer
	if *sshAddr != "" {
		sshServer = &pkg.SSHServer{
			Addr:        *sshAddr,
			HostKeyFile: cfg.SSH.HostKey,
			Chessterm:   cfg.SSH.ChesstermPath,
			ServerAddr:  *addr,
			IdleTimeout: cfg.Server.IdleTimeout,
		}
		go func() {
			if err := sshServer.ListenAndServe(); err != nil {
				log.Printf("SSH: %v", err)
				color.Red("ssh server failed: %v", err)
			}
		}()
		banner(os.Stdout, "ssh", *sshAddr)
	}

	var httpServer *http.Server
	if *httpAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		httpServer = &http.Server{
			Addr: *httpAddr,
			Handler: api.NewRouter(api.Config{
				Seed:         cfg.Engine.Seed,
				ThinkTimeout: cfg.Engine.ThinkTimeout,
			}),
		}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP: %v", err)
				color.Red("http api failed: %v", err)
			}
		}()
		banner(os.Stdout, "http api", *httpAddr)
	}

	if err := s.Serve(ctx, listener); err != nil {
		log.Printf("Serve: %v", err)
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Shutdown()
	if sshServer != nil {
		sshServer.Shutdown(shutdownCtx)
	}
	if httpServer != nil {
		httpServer.Shutdown(shutdownCtx)
	}
	color.Yellow("bye")
}

func banner(w io.Writer, what, addr string) {
	fmt.Fprintf(w, "%s %s %s\n", color.GreenString("▶"), what, color.CyanString(addr))
}
