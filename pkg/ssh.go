package pkg

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// SSHServer lets anyone with an ssh client play: every session runs the
// chessterm binary in a pty, connected to the match server.
type SSHServer struct {
	Addr        string
	HostKeyFile string
	// Chessterm is the path of the chessterm binary.
	Chessterm   string
	ServerAddr  string
	IdleTimeout time.Duration

	srv *ssh.Server
}

func (s *SSHServer) ListenAndServe() error {
	if s.Addr == "" {
		return errors.New("ssh: listen address must be specified")
	}

	s.srv = &ssh.Server{
		Addr:        s.Addr,
		IdleTimeout: s.IdleTimeout,
		Handler:     s.handle,
	}

	if s.HostKeyFile != "" {
		if err := s.srv.SetOption(ssh.HostKeyFile(s.HostKeyFile)); err != nil {
			return fmt.Errorf("ssh: host key %s: %w", s.HostKeyFile, err)
		}
	} else {
		signer, err := generateHostKey()
		if err != nil {
			return err
		}
		s.srv.AddHostKey(signer)
		log.Printf("SSH: no host key configured, generated %s", gossh.FingerprintSHA256(signer.PublicKey()))
	}

	log.Printf("SSH: listening at %s", s.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *SSHServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func generateHostKey() (gossh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("ssh: generate host key: %w", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("ssh: host key signer: %w", err)
	}
	return signer, nil
}

// Nickname returns name, or a generated one when the ssh user gave none.
func Nickname(name string) string {
	if name == "" {
		return petname.Generate(2, "-")
	}
	return name
}

func (s *SSHServer) handle(session ssh.Session) {
	ptyReq, winCh, isPty := session.Pty()
	if !isPty {
		io.WriteString(session, "non-interactive terminals are not supported\n")
		session.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(session.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.Chessterm,
		"-server", s.ServerAddr,
		"-name", Nickname(session.User()),
		"-log", "/dev/null")
	cmd.Env = append(session.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		io.WriteString(session, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		session.Exit(1)
		return
	}
	defer f.Close()
	log.Printf("SSH: session for %s from %s", session.User(), session.RemoteAddr())

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, session)
	}()
	io.Copy(session, f)

	cancelCmd()
	cmd.Wait()
}
