// Package enrich fills lead fields from the lead's own homepage.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/leadlocal/internal/entity"
)

const (
	DefaultConcurrency = 4
	maxBodyBytes       = 1 << 20
)

var socialHosts = []string{
	"facebook.com",
	"instagram.com",
	"linkedin.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"tiktok.com",
}

type WebsiteEnricher struct {
	client      *http.Client
	concurrency int
	logger      *zap.Logger
}

func NewWebsiteEnricher(timeout time.Duration, concurrency int, logger *zap.Logger) *WebsiteEnricher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &WebsiteEnricher{
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
		logger:      logger.Named("enrich"),
	}
}

// Enrich sets SocialMedia and Email on leads that have a website but are
// missing either. Fields already set are kept. Fetch failures leave the lead
// unchanged.
func (e *WebsiteEnricher) Enrich(ctx context.Context, leads []entity.Lead) []entity.Lead {
	out := make([]entity.Lead, len(leads))
	copy(out, leads)

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i := range out {
		if out[i].Website == "" || (len(out[i].SocialMedia) > 0 && out[i].Email != "") {
			continue
		}
		g.Go(func() error {
			found, err := e.fetchContacts(ctx, out[i].Website)
			if err != nil {
				e.logger.Debug("website enrichment failed",
					zap.String("website", out[i].Website),
					zap.Error(err),
				)
				return nil
			}
			if len(out[i].SocialMedia) == 0 && len(found.Social) > 0 {
				out[i].SocialMedia = found.Social
			}
			if out[i].Email == "" && found.Email != "" {
				out[i].Email = found.Email
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *WebsiteEnricher) fetchContacts(ctx context.Context, website string) (Contacts, error) {
	target := website
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Contacts{}, err
	}
	req.Header.Set("User-Agent", "LeadLocal/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return Contacts{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Contacts{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Contacts{}, fmt.Errorf("parse html: %w", err)
	}
	return ExtractContacts(doc), nil
}

// Contacts is what a homepage says about how to reach the business.
type Contacts struct {
	Social []string
	Email  string
}

// ExtractContacts walks the anchors of the document once. Social holds the
// distinct social profile hrefs in document order; Email is the first valid
// mailto address.
func ExtractContacts(doc *html.Node) Contacts {
	var c Contacts
	seen := map[string]bool{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := strings.TrimSpace(getAttr(n, "href"))
			switch {
			case isSocial(href):
				if !seen[href] {
					seen[href] = true
					c.Social = append(c.Social, href)
				}
			case c.Email == "":
				c.Email = mailtoAddress(href)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return c
}

// SocialLinks returns the distinct social profile hrefs in the document, in
// document order.
func SocialLinks(doc *html.Node) []string {
	return ExtractContacts(doc).Social
}

// mailtoAddress returns the bare address of a mailto href, or "".
func mailtoAddress(href string) string {
	if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
		return ""
	}
	addr := href[len("mailto:"):]
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	// several recipients: keep the first
	if i := strings.IndexByte(addr, ','); i >= 0 {
		addr = addr[:i]
	}
	parsed, err := mail.ParseAddress(strings.TrimSpace(addr))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Address)
}

func isSocial(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, s := range socialHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
