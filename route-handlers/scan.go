package routehandlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coreybb/daybrief/webutil"
)

// ScanStore reads and writes the daily scan-log markers.
type ScanStore interface {
	InsertScanLog(ctx context.Context, scanDate time.Time) error
	HasScanSince(ctx context.Context, cutoff time.Time) (bool, error)
}

type ScanHandler struct {
	Scans ScanStore

	now func() time.Time // Injectable for tests
}

func NewScanHandler(scans ScanStore) *ScanHandler {
	return &ScanHandler{Scans: scans, now: time.Now}
}

// HandleCheckScan reports whether a scan-log row exists for the current
// local day, i.e. with scan_date at or after local midnight.
func (h *ScanHandler) HandleCheckScan(w http.ResponseWriter, r *http.Request) error {
	done, err := h.Scans.HasScanSince(r.Context(), startOfToday(h.now()))
	if err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError, "Failed to check scan status", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"scanDone": done})
	return nil
}
