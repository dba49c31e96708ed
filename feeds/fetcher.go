package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/coreybb/daybrief/models"
)

// ErrMalformedFeed reports that a URL was reachable but did not resolve to a
// usable, non-empty syndication feed.
var ErrMalformedFeed = errors.New("malformed feed")

// Fetcher retrieves and parses syndication feeds.
type Fetcher struct {
	stripTagsPolicy *bluemonday.Policy // For getting plain text from item HTML
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		stripTagsPolicy: bluemonday.StripTagsPolicy(),
	}
}

// Validate fetches the URL and checks that it parses to a non-empty feed.
func (f *Fetcher) Validate(ctx context.Context, feedURL string) error {
	_, err := f.parse(ctx, feedURL)
	return err
}

// FetchSince returns the feed's items published at or after the cutoff,
// preserving document order, mapped to Articles. Items without a parseable
// publication date are skipped since they cannot be placed in the window.
func (f *Fetcher) FetchSince(ctx context.Context, feedURL string, since time.Time) ([]models.Article, error) {
	feed, err := f.parse(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || item.PublishedParsed.Before(since) {
			continue
		}
		articles = append(articles, models.Article{
			ID:        articleID(feedURL, item),
			Title:     item.Title,
			Link:      item.Link,
			Published: *item.PublishedParsed,
			Content:   f.contentText(item),
		})
	}
	return articles, nil
}

// parse runs a single fetch-and-parse attempt. The parser is created per
// call; gofeed parsers are not safe for concurrent reuse.
func (f *Fetcher) parse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, ErrMalformedFeed
	}
	return feed, nil
}

// classifyParseError separates transport failures (unreachable host, non-2xx
// status) from document failures. Only the latter count as a malformed feed.
func classifyParseError(err error) error {
	var urlErr *url.Error
	var httpErr gofeed.HTTPError
	if errors.As(err, &urlErr) || errors.As(err, &httpErr) {
		return fmt.Errorf("feed unreachable: %w", err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedFeed, err)
}

// articleID builds the feed-scoped composite ID. Feeds occasionally omit the
// guid element, in which case the item link stands in for it.
func articleID(feedURL string, item *gofeed.Item) string {
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}
	return feedURL + "_" + guid
}

// contentText prefers the item's full content, falling back to the short
// description snippet, then to empty. Tags are stripped so the text can be
// embedded in a prompt or rendered directly.
func (f *Fetcher) contentText(item *gofeed.Item) string {
	raw := item.Content
	if raw == "" {
		raw = item.Description
	}
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(f.stripTagsPolicy.Sanitize(raw))
}
