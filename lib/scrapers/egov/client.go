package egov

import (
	"context"
	"crypto/tls"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"egovassist-backend/lib/restyutil"
)

const defaultTimeout = time.Second * 30

// Client is the cookie-backed session for one portal navigation. A single
// client must drive every step of a navigation so the session cookies
// accumulate correctly, and must never be shared between concurrent fetches
// for different students.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	// overrides the default 30s per-request timeout
	Timeout time.Duration
	// optional sink for full request/response dumps
	DumpOutput restyutil.InstrumentOutput
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	// the portal serves a legacy self-signed certificate. verification is
	// disabled on this client instance only, never process-wide.
	client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})

	// the portal rejects clients that do not look like a browser
	client.SetHeaders(map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	})
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	restyutil.InstrumentClient(client, "scrapers/egov/http", opts.DumpOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// Get fetches a portal page, returning the http status and body text.
func (c *Client) Get(ctx context.Context, path string) (int, string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return 0, "", err
	}
	return res.StatusCode(), res.String(), nil
}

// PostForm submits form fields to a portal page, returning the http status
// and body text.
func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string) (int, string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(path)
	if err != nil {
		return 0, "", err
	}
	return res.StatusCode(), res.String(), nil
}
