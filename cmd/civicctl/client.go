package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"civictrack.org/internal/auth"
	"civictrack.org/internal/complaint"
)

// client is a cookie-holding API client. One login per process.
type client struct {
	base *url.URL
	http *http.Client
}

type apiError struct {
	Status int
	Msg    string
}

func (e *apiError) Error() string { return fmt.Sprintf("%d: %s", e.Status, e.Msg) }

func newClient(base string, hc *http.Client) (*client, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	cp := *hc
	cp.Jar = jar
	// API redirects are part of the response, not something to follow.
	cp.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	return &client{base: u, http: &cp}, nil
}

func (c *client) login(ctx context.Context, email, password string) (auth.Role, error) {
	var out struct {
		Role     string `json:"role"`
		Ward     *int   `json:"ward"`
		Redirect string `json:"redirect"`
	}
	err := c.call(ctx, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	role, err := auth.ParseRole(out.Role, out.Ward)
	if err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	return role, nil
}

func (c *client) adminOverview(ctx context.Context) (complaint.Overview, error) {
	var o complaint.Overview
	err := c.call(ctx, http.MethodGet, "/api/dashboard/admin", nil, &o)
	return o, err
}

func (c *client) officerDashboard(ctx context.Context, status string) (complaint.OfficerDashboard, error) {
	path := "/api/dashboard/officer"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var d complaint.OfficerDashboard
	err := c.call(ctx, http.MethodGet, path, nil, &d)
	return d, err
}

func (c *client) setStatus(ctx context.Context, id, status string, notes *string) (complaint.View, error) {
	body := map[string]any{"status": status}
	if notes != nil {
		body["notes"] = *notes
	}
	var v complaint.View
	err := c.call(ctx, http.MethodPost, "/api/complaints/"+url.PathEscape(id)+"/status", body, &v)
	return v, err
}

func (c *client) track(ctx context.Context, complaintID string) (complaint.PublicView, error) {
	var v complaint.PublicView
	err := c.call(ctx, http.MethodGet, "/api/track/"+url.PathEscape(complaintID), nil, &v)
	return v, err
}

func (c *client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Msg: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
