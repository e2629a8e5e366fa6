// Package navigation models where the application is and where it should go
// next. The API client uses it to send the user to the login screen when the
// backend rejects the session.
package navigation

import (
	"fmt"
	"io"
	"net/url"
	"sync"
)

// DefaultLoginPath is the login screen route.
const DefaultLoginPath = "/login"

// Navigator exposes the current location and accepts navigation requests.
type Navigator interface {
	CurrentPath() string
	Navigate(target string)
}

// LoginURL builds the login route carrying returnTo as the redirect target.
func LoginURL(loginPath, returnTo string) string {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return loginPath + "?redirect=" + url.QueryEscape(returnTo)
}

// Discard ignores navigation requests.
type Discard struct{}

func (Discard) CurrentPath() string { return "/" }
func (Discard) Navigate(string)     {}

// Recorder stays at a fixed path and records every navigation target.
type Recorder struct {
	Path string

	mu      sync.Mutex
	targets []string
}

func (r *Recorder) CurrentPath() string {
	if r.Path == "" {
		return "/"
	}
	return r.Path
}

func (r *Recorder) Navigate(target string) {
	r.mu.Lock()
	r.targets = append(r.targets, target)
	r.mu.Unlock()
}

// Targets returns a copy of the recorded navigation targets in order.
func (r *Recorder) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}

// Terminal prints navigation requests for command-line front ends, where a
// redirect means asking the user to log in again.
type Terminal struct {
	Out  io.Writer
	Path string
}

func (t Terminal) CurrentPath() string {
	if t.Path == "" {
		return "/"
	}
	return t.Path
}

func (t Terminal) Navigate(target string) {
	fmt.Fprintf(t.Out, "Session expired. Log in again to continue (%s).\n", target)
}
