// Package api is a small client for the account server's HTTP endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/gofiber/fiber/v2"
)

// ErrUnavailable is returned when the server cannot be reached.
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx answer. Msg is the server's "msg" field.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

type Client struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// send executes the request built into a, decoding a 2xx body into out.
func (c *Client) send(ctx context.Context, a *fiber.Agent, token string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if token != "" {
		a.Set(common.AccessTokenHeaderName, common.BearerScheme+" "+token)
	}
	a.Timeout(c.timeout)

	if err := a.Parse(); err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrUnavailable, errors.Join(errs...))
	}

	if code >= http.StatusBadRequest {
		var m msgResponse
		if err := json.Unmarshal(body, &m); err != nil || m.Msg == "" {
			m.Msg = http.StatusText(code)
		}
		return &Error{Status: code, Msg: m.Msg}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account and returns its first session token.
func (c *Client) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	a := fiber.Post(c.url("/users/register")).JSON(map[string]string{
		"name":     name,
		"email":    email,
		"password": string(password),
	})

	var r tokenResponse
	if err := c.send(ctx, a, "", &r); err != nil {
		return "", err
	}
	return r.Token, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email string, password []byte) (string, error) {
	a := fiber.Post(c.url("/users/login")).JSON(map[string]string{
		"email":    email,
		"password": string(password),
	})

	var r tokenResponse
	if err := c.send(ctx, a, "", &r); err != nil {
		return "", err
	}
	return r.Token, nil
}

// Probe calls the token-protected route and returns its message.
func (c *Client) Probe(ctx context.Context, token string) (string, error) {
	var r msgResponse
	if err := c.send(ctx, fiber.Get(c.url("/users/auth-locked")), token, &r); err != nil {
		return "", err
	}
	return r.Msg, nil
}

func (c *Client) GetUser(ctx context.Context, token, id string) (*User, error) {
	var u User
	if err := c.send(ctx, fiber.Get(c.url("/users/"+id)), token, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser sends the non-nil fields of req and returns the refreshed token.
func (c *Client) UpdateUser(ctx context.Context, token, id string, req UpdateRequest) (string, error) {
	a := fiber.Put(c.url("/users/" + id)).JSON(req)

	var r tokenResponse
	if err := c.send(ctx, a, token, &r); err != nil {
		return "", err
	}
	return r.Token, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) (string, error) {
	var r msgResponse
	if err := c.send(ctx, fiber.Delete(c.url("/users/"+id)), token, &r); err != nil {
		return "", err
	}
	return r.Msg, nil
}
