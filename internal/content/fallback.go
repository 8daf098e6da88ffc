package content

import (
	"time"

	"gamestudio/website/internal/models"

	"github.com/google/uuid"
)

// Placeholder content shown when the backend cannot serve a section.
const (
	FallbackGameTitle = "Zeus: Clockwork Tyrant"
	FallbackGameRoute = "/games/zeus-clockwork-tyrant"
	ComingSoonTitle   = "Coming Soon"
)

const fallbackGameDescription = "Wind the gears of Olympus. Zeus rules a clockwork heaven where " +
	"every spin tightens the mainspring until the Tyrant's lightning strikes."

// FallbackGame is the showcase title used when the games query fails or is
// empty. Its id is fixed so repeated renders are identical.
func FallbackGame() models.Game {
	return models.Game{
		Base:             models.Base{ID: uuid.MustParse("5b0e3f1c-7f43-4c55-9a57-2f7c3d2b9a01")},
		Title:            FallbackGameTitle,
		Description:      fallbackGameDescription,
		MediaURL:         "/static/img/zeus-clockwork-tyrant.webp",
		Route:            FallbackGameRoute,
		RTP:              "96.2%",
		Volatility:       "High",
		HitFrequency:     "24.1%",
		MaxWin:           "10,000x",
		FreeSpinsTrigger: "3+ Clockwork Scatters",
		Reels:            "5x4",
		MinBet:           0.2,
		MaxBet:           100,
		IsAvailable:      true,
		Feature:          "Gear Multipliers",
	}
}

// SampleNews is shown when news cannot be loaded.
func SampleNews() []models.News {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	return []models.News{
		{
			Base:      models.Base{ID: uuid.MustParse("8d6c1b36-4f0a-4b0e-8c52-0e9f1b7d2c11"), CreatedAt: day},
			Title:     "Zeus: Clockwork Tyrant enters early access",
			Excerpt:   "Our debut title opens to partner casinos this quarter.",
			Author:    "Studio Team",
			Published: true,
		},
		{
			Base:      models.Base{ID: uuid.MustParse("8d6c1b36-4f0a-4b0e-8c52-0e9f1b7d2c12"), CreatedAt: day.AddDate(0, 0, -14)},
			Title:     "We are hiring",
			Excerpt:   "Mathematicians, artists and engineers: see the open positions on our careers page.",
			Author:    "Studio Team",
			Published: true,
		},
		{
			Base:      models.Base{ID: uuid.MustParse("8d6c1b36-4f0a-4b0e-8c52-0e9f1b7d2c13"), CreatedAt: day.AddDate(0, -1, 0)},
			Title:     "Meet us at the expo",
			Excerpt:   "Book a slot with our partnerships team to see the roadmap.",
			Author:    "Studio Team",
			Published: true,
		},
	}
}
