package httpx

import (
	"io"
	"strings"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

func sessionBody(s string) io.Reader {
	return strings.NewReader(s)
}

func brandForTest(id string) *model.Brand {
	return &model.Brand{
		ID:        id,
		Name:      "Acme Running",
		SiteURL:   "https://www.acmerunning.com",
		Domain:    "acmerunning.com",
		Country:   "us",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func rankJobForTest(id, brandID string) *model.RankFetchJob {
	return &model.RankFetchJob{
		ID:        id,
		BrandID:   brandID,
		Status:    model.JobStatusPending,
		CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}
