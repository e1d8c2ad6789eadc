// pkg/remote/ssh.go

package remote

import (
	"bytes"
	"context"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// SSHConfig describes how to reach the target host.
type SSHConfig struct {
	Host    string
	Port    int
	User    string
	KeyPath string
	Timeout time.Duration
}

// SSHRunner runs commands over one SSH connection, one session per Run.
type SSHRunner struct {
	client *ssh.Client
	addr   string
}

// DialSSH opens an SSH connection to the target host using private-key
// auth. Host key validation is intentionally skipped: the harness dials
// lab hosts it just imaged, so there is no prior key to validate
// against. #nosec
func DialSSH(ctx context.Context, cfg SSHConfig) (*SSHRunner, error) {
	logger := otelzap.Ctx(ctx)

	key, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, cerr.Wrap(err, "read ssh private key")
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, cerr.Wrap(err, "parse ssh private key")
	}

	port := cfg.Port
	if port == 0 {
		port = 22
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(port))

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	dialer := net.Dialer{Timeout: timeout}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, cerr.Wrapf(err, "dial %s", addr)
	}

	sshConn, channels, requests, err := ssh.NewClientConn(netConn, addr, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	})
	if err != nil {
		_ = netConn.Close()
		return nil, cerr.Wrapf(err, "ssh handshake with %s", addr)
	}

	logger.Info("🔗 SSH connection established",
		zap.String("addr", addr),
		zap.String("user", cfg.User))

	return &SSHRunner{client: ssh.NewClient(sshConn, channels, requests), addr: addr}, nil
}

// Run executes command on the host and returns its stdout. Stderr is
// folded into the returned error on failure.
func (r *SSHRunner) Run(ctx context.Context, command string) (string, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("Running remote command",
		zap.String("addr", r.addr),
		zap.String("command", command))

	session, err := r.client.NewSession()
	if err != nil {
		return "", cerr.Wrap(err, "open ssh session")
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	// x/crypto/ssh sessions do not take a context; honor cancellation
	// by tearing the session down when ctx fires.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = session.Close()
		case <-done:
		}
	}()

	if err := session.Run(command); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", cerr.Wrapf(ctxErr, "remote command canceled on %s", r.addr)
		}
		return "", cerr.Wrapf(err, "remote command failed on %s: %s",
			r.addr, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// Close tears down the underlying connection.
func (r *SSHRunner) Close() error {
	return r.client.Close()
}
