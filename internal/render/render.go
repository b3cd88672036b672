// Package render builds the subject and HTML body for article
// notification emails. Rendering is pure: no I/O, no side effects, and
// it fails only when an entry is missing required article fields.
package render

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/eweretech/article-notifier/internal/queue"
)

// Excerpt truncation bounds, carried over from the producer pipeline:
// the first 3 bytes are a known prefix stripped from every article
// body, and 300 bytes is the teaser length.
const (
	excerptStart = 3
	excerptEnd   = 300
)

const subjectPrefix = "New Article Alert: "

// Renderer renders notification emails for one site.
type Renderer struct {
	websiteURL     string
	unsubscribeURL string
	now            func() time.Time
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithNow overrides the time source used for the footer year.
func WithNow(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New creates a Renderer. websiteURL is used for article and legal
// links, unsubscribeURL is the base of the per-recipient opt-out link.
func New(websiteURL, unsubscribeURL string, opts ...Option) *Renderer {
	r := &Renderer{
		websiteURL:     strings.TrimSuffix(websiteURL, "/"),
		unsubscribeURL: unsubscribeURL,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var bodyTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
.button { display: inline-block; padding: 10px 20px; background: black; color: white !important; text-decoration: none; border-radius: 5px; margin-bottom: 20px; }
.privacy { margin-top: 10px; color: white !important; font-size: 12px; }
.footer { text-align: center; padding: 15px 0; border-top: 1px solid #333; font-size: 14px; color: #bbb; background: black; }
</style>
</head>
<body>
<div class="container">
<p>Hey {{.FullName}},</p>
<p>We've just published a new article that you might be interested in!</p>
<h2>{{.Title}}</h2>
<p>{{.Excerpt}}... <a href="{{.ArticleURL}}">Read more</a></p>
<a href="{{.ArticleURL}}" class="button">Read Now</a>
<div class="footer">
<p>&copy; {{.Year}} Ewere.tech. All Rights Reserved.</p>
<div class="privacy">
<a href="{{.WebsiteURL}}/terms">Terms of Service</a> | <a href="{{.WebsiteURL}}/privacy">Privacy Policy</a>
</div>
<p><a href="{{.UnsubscribeURL}}">Unsubscribe</a></p>
</div>
</div>
</body>
</html>
`))

type bodyData struct {
	FullName       string
	Title          string
	Excerpt        string
	ArticleURL     string
	WebsiteURL     string
	UnsubscribeURL string
	Year           int
}

// Subject returns the fixed notification subject for an article title.
func Subject(title string) string {
	return subjectPrefix + title
}

// Render produces the subject and HTML body for one recipient. The
// article fields come from the entry's shared ArticleData.
func (r *Renderer) Render(e *queue.Entry) (subject, htmlBody string, err error) {
	if e == nil {
		return "", "", errors.New("render: nil entry")
	}
	if e.ArticleData.Title == "" {
		return "", "", errors.New("render: missing article title")
	}
	if e.ArticleData.Slug == "" {
		return "", "", errors.New("render: missing article slug")
	}

	fullName := e.FullName
	if fullName == "" {
		fullName = "there"
	}

	data := bodyData{
		FullName:       fullName,
		Title:          e.ArticleData.Title,
		Excerpt:        Excerpt(e.ArticleData.Content),
		ArticleURL:     r.ArticleURL(e.ArticleData.Slug),
		WebsiteURL:     r.websiteURL,
		UnsubscribeURL: r.unsubscribeLink(e.Email),
		Year:           r.now().Year(),
	}

	var b strings.Builder
	if err := bodyTmpl.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}

	return Subject(e.ArticleData.Title), b.String(), nil
}

// ArticleURL returns the canonical link for an article slug.
func (r *Renderer) ArticleURL(slug string) string {
	return r.websiteURL + "/blog/" + slug
}

// Excerpt returns the teaser slice of an article body, bytes
// [excerptStart:excerptEnd) clamped to the content length. The fixed
// offsets are intentional legacy truncation, not an off-by-N; short
// content yields a short (possibly empty) excerpt.
func Excerpt(content string) string {
	start := excerptStart
	if start > len(content) {
		start = len(content)
	}
	end := excerptEnd
	if end > len(content) {
		end = len(content)
	}
	return content[start:end]
}

func (r *Renderer) unsubscribeLink(email string) string {
	return r.unsubscribeURL + "?email=" + url.QueryEscape(email)
}
