package fc2ppvdb

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fc2ppvdb-scraper/lib/htmlutil"
	"fc2ppvdb-scraper/lib/restyutil"
	"fc2ppvdb-scraper/lib/stash"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://fc2ppvdb.com"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/26.0.1 Safari/605.1.15"

var (
	MissingSessionCookie = fmt.Errorf("Please configure your session cookie")
	MissingCsrfToken     = fmt.Errorf("could not find csrf token in article page")
	MissingXsrfCookie    = fmt.Errorf("could not find XSRF-TOKEN cookie")
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultCookieFile()
	CookieFile string
	// defaults to 10 seconds
	Timeout time.Duration
}

type Client struct {
	BaseUrl    *url.URL
	CookieFile string
	Http       *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	opts.BaseUrl = strings.TrimSuffix(opts.BaseUrl, "/")
	if opts.CookieFile == "" {
		opts.CookieFile = DefaultCookieFile()
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 10
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	// the tls config must land before the bypass wraps the transport
	client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(opts.Timeout)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	c := &Client{
		BaseUrl:    baseUrl,
		CookieFile: opts.CookieFile,
		Http:       client,
	}
	return c, nil
}

// Scene scrapes the full record for a video id. The session cookie file
// is read before the first request and written back exactly once before
// returning, on success and failure paths alike.
func (c *Client) Scene(ctx context.Context, videoId string) (stash.ScrapedScene, error) {
	ctx, span := tracer.Start(ctx, "client:Scene")
	defer span.End()

	if !c.restoreSession() {
		c.persistSession()
		err := fmt.Errorf("%w in file %s", MissingSessionCookie, c.CookieFile)
		span.SetStatus(codes.Error, err.Error())
		return stash.ScrapedScene{}, err
	}
	defer c.persistSession()

	doc, err := c.fetchArticlePage(ctx, videoId)
	if err != nil {
		return stash.ScrapedScene{}, err
	}

	csrf, err := c.csrfToken(ctx, doc)
	if err != nil {
		return stash.ScrapedScene{}, err
	}

	payload, err := c.fetchArticleInfo(ctx, videoId, csrf)
	if err != nil {
		return stash.ScrapedScene{}, err
	}

	scene, err := exportScene(c.BaseUrl.String(), payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to export article info")
		return stash.ScrapedScene{}, fmt.Errorf("export article info: %w", err)
	}

	slog.Debug("scrape finished without issue", "video_id", videoId)
	return scene, nil
}

func (c *Client) fetchArticlePage(ctx context.Context, videoId string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:fetchArticlePage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/articles/%s", videoId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request article page")
		return nil, fmt.Errorf("request article page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse article page html")
		return nil, fmt.Errorf("parse article page: %w", err)
	}
	return doc, nil
}

// the article page embeds the csrf token the article-info api wants to
// see echoed back in a header
func (c *Client) csrfToken(ctx context.Context, doc *goquery.Document) (string, error) {
	ctx, span := tracer.Start(ctx, "client:csrfToken")
	defer span.End()

	csrf := htmlutil.MetaContent(doc, "csrf-token")
	if csrf == "" {
		span.SetStatus(codes.Error, MissingCsrfToken.Error())
		slog.DebugContext(ctx, "article page carries no csrf token", "page_title", htmlutil.PageTitle(doc))
		return "", MissingCsrfToken
	}
	return csrf, nil
}

func (c *Client) fetchArticleInfo(ctx context.Context, videoId, csrf string) (articleInfo, error) {
	ctx, span := tracer.Start(ctx, "client:fetchArticleInfo")
	defer span.End()

	xsrf := ""
	for _, cookie := range c.jar().Cookies(c.BaseUrl) {
		if cookie.Name == "XSRF-TOKEN" {
			xsrf = cookie.Value
			break
		}
	}
	if xsrf == "" {
		span.SetStatus(codes.Error, MissingXsrfCookie.Error())
		return articleInfo{}, MissingXsrfCookie
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"X-CSRF-TOKEN":     csrf,
			"X-Requested-With": "XMLHttpRequest",
			"X-XSRF-TOKEN":     xsrf,
		}).
		SetQueryParam("videoid", videoId).
		Get("/articles/article-info")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request article info")
		return articleInfo{}, fmt.Errorf("request article info: %w", err)
	}

	slog.DebugContext(ctx, "article info response", "body", res.String())

	// ids may be large numbers, so decode them without going through
	// float64
	var payload articleInfo
	dec := json.NewDecoder(bytes.NewReader(res.Body()))
	dec.UseNumber()
	err = dec.Decode(&payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode article info")
		return articleInfo{}, fmt.Errorf("decode article info: %w", err)
	}
	return payload, nil
}
