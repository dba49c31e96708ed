package routehandlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coreybb/daybrief/models"
	"github.com/coreybb/daybrief/ranking"
	"github.com/coreybb/daybrief/webutil"
)

// FeedSource fetches a single feed's items published at or after a cutoff.
type FeedSource interface {
	FetchSince(ctx context.Context, feedURL string, since time.Time) ([]models.Article, error)
}

// ArticleRanker picks the top articles from a candidate list.
type ArticleRanker interface {
	Rank(ctx context.Context, articles []models.Article, guidance string) (string, error)
}

type ArticleHandler struct {
	Feeds  FeedSource
	Ranker ArticleRanker
	Scans  ScanStore

	now func() time.Time // Injectable for tests
}

func NewArticleHandler(feedSource FeedSource, articleRanker ArticleRanker, scans ScanStore) *ArticleHandler {
	return &ArticleHandler{
		Feeds:  feedSource,
		Ranker: articleRanker,
		Scans:  scans,
		now:    time.Now,
	}
}

// HandleFetchArticles collects today's items across the requested feeds and
// asks the completion model to rank them. Feeds are processed strictly in
// input order, one at a time; the first failure of any step aborts the whole
// request. The scan-log marker is written last, so a failed run never counts
// as the day's scan.
func (h *ArticleHandler) HandleFetchArticles(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Feeds         []string `json:"feeds"`
		OpenAIContext string   `json:"openAiContext"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if len(requestData.Feeds) == 0 {
		return webutil.ErrBadRequest("feeds is required")
	}
	if requestData.OpenAIContext == "" {
		return webutil.ErrBadRequest("openAiContext is required")
	}

	since := startOfToday(h.now())

	articles := []models.Article{}
	for _, feedURL := range requestData.Feeds {
		items, err := h.Feeds.FetchSince(r.Context(), feedURL, since)
		if err != nil {
			return webutil.NewHTTPErrorWrap(http.StatusInternalServerError,
				"Failed to fetch feed: "+feedURL, err)
		}
		articles = append(articles, items...)
	}

	topArticles, err := h.Ranker.Rank(r.Context(), articles, requestData.OpenAIContext)
	if err != nil {
		if errors.Is(err, ranking.ErrAPIKeyMissing) {
			return webutil.ErrInternalServer("OpenAI API key is not configured")
		}
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, "Failed to rank articles", err)
	}

	// The only write in the request path. It runs after the model call
	// succeeded, so a failed ranking attempt never marks the day as scanned.
	if err := h.Scans.InsertScanLog(r.Context(), h.now()); err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, "Failed to record scan log", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"articles":    articles,
		"topArticles": topArticles,
	})
	return nil
}
