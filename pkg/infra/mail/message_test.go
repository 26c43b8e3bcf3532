package mail

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/relwatchhq/relwatch/pkg/domain/model"
)

func TestRenderMessage(t *testing.T) {
	repo := model.RepoID{Owner: "octo", Name: "demo"}
	rel := &model.Release{
		ID:          10,
		TagName:     "v1.0.0",
		Name:        "First release",
		HTMLURL:     "https://github.com/octo/demo/releases/tag/v1.0.0",
		PublishedAt: time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC),
		Body:        "Fixes <script>alert(1)</script>",
		Author:      "octocat",
	}

	msg := renderMessage(repo, rel, "sender@example.com", []string{"a@example.com", "b@example.com"})

	gt.Value(t, msg.From).Equal("sender@example.com")
	gt.Number(t, len(msg.To)).Equal(2)
	gt.Value(t, msg.Subject).Equal("[octo/demo] New release: v1.0.0")

	gt.String(t, msg.HTML).Contains("First release")
	gt.String(t, msg.HTML).Contains(rel.HTMLURL)
	gt.String(t, msg.HTML).Contains("octocat")

	// Release notes are escaped, never injected as markup
	gt.String(t, msg.HTML).Contains("&lt;script&gt;")

	gt.String(t, msg.Text).Contains("octo/demo released v1.0.0")
	gt.String(t, msg.Text).Contains(rel.HTMLURL)
}

func TestRenderMessage_TagFallbackTitle(t *testing.T) {
	repo := model.RepoID{Owner: "octo", Name: "demo"}
	rel := &model.Release{ID: 10, TagName: "v2.0.0"}

	msg := renderMessage(repo, rel, "sender@example.com", []string{"a@example.com"})

	// An unnamed release falls back to its tag as the title
	gt.String(t, msg.HTML).Contains("<h2>v2.0.0</h2>")
}
