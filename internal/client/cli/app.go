package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/arondight/internal/client/api"
	"github.com/dmitrijs2005/arondight/internal/client/config"
)

// apiClient is the subset of *api.Client used by the commands.
type apiClient interface {
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Probe(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, token, id string) (*api.User, error)
	UpdateUser(ctx context.Context, token, id string, req api.UpdateRequest) (string, error)
	DeleteUser(ctx context.Context, token, id string) (string, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	token    string
	identity *api.Identity
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, fmt.Errorf("server URL is not set")
	}
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Account CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	a.clearSession()
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.identity == nil {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.identity.Email)
}

// setSession stores token and its decoded identity.
func (a *App) setSession(token string) error {
	id, err := api.IdentityFromToken(token)
	if err != nil {
		return fmt.Errorf("unreadable token: %w", err)
	}
	a.token = token
	a.identity = id
	return nil
}

func (a *App) clearSession() {
	a.token = ""
	a.identity = nil
}
