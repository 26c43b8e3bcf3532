package mail

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

// Message is a rendered notification ready for a provider to send
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

// renderMessage builds the notification content for a newly detected
// release
func renderMessage(repo model.RepoID, rel *model.Release, from string, to []string) *Message {
	title := rel.Name
	if title == "" {
		title = rel.TagName
	}

	var htmlBody strings.Builder
	fmt.Fprintf(&htmlBody, "<h2>%s</h2>\n", html.EscapeString(title))
	fmt.Fprintf(&htmlBody, "<p><b>%s</b> released <a href=%q>%s</a>",
		html.EscapeString(repo.String()), rel.HTMLURL, html.EscapeString(rel.TagName))
	if !rel.PublishedAt.IsZero() {
		fmt.Fprintf(&htmlBody, " on %s", rel.PublishedAt.Format(time.RFC1123))
	}
	if rel.Author != "" {
		fmt.Fprintf(&htmlBody, " by %s", html.EscapeString(rel.Author))
	}
	htmlBody.WriteString("</p>\n")
	if rel.Body != "" {
		fmt.Fprintf(&htmlBody, "<pre>%s</pre>\n", html.EscapeString(rel.Body))
	}

	var textBody strings.Builder
	fmt.Fprintf(&textBody, "%s released %s\n%s\n", repo.String(), rel.TagName, rel.HTMLURL)
	if rel.Body != "" {
		fmt.Fprintf(&textBody, "\n%s\n", rel.Body)
	}

	return &Message{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf("[%s] New release: %s", repo.String(), rel.TagName),
		HTML:    htmlBody.String(),
		Text:    textBody.String(),
	}
}
