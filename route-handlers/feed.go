package routehandlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coreybb/daybrief/feeds"
	"github.com/coreybb/daybrief/webutil"
)

// FeedValidator checks that a URL resolves to a parseable, non-empty feed.
type FeedValidator interface {
	Validate(ctx context.Context, feedURL string) error
}

type FeedHandler struct {
	Feeds FeedValidator
}

func NewFeedHandler(feedValidator FeedValidator) *FeedHandler {
	return &FeedHandler{Feeds: feedValidator}
}

// HandleValidateFeed attempts a single parse of the given URL. A malformed
// document maps to a client error; transport failures map to a generic
// server error without surfacing upstream detail.
func (h *FeedHandler) HandleValidateFeed(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		URL string `json:"url"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	if requestData.URL == "" {
		return webutil.ErrBadRequest("url is required")
	}

	if err := h.Feeds.Validate(r.Context(), requestData.URL); err != nil {
		if errors.Is(err, feeds.ErrMalformedFeed) {
			return webutil.ErrBadRequest("Invalid RSS feed")
		}
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, "Failed to validate feed", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "RSS feed is valid"})
	return nil
}
