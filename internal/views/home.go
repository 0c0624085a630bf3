package views

import (
	"bookmyslot/internal/models"
	"bookmyslot/internal/tz"
	"github.com/mattn/go-runewidth"
	"strings"
)

// excerptWidth is measured in terminal cells so wide scripts are not cut
// twice as long as latin text.
const excerptWidth = 120

// NoticeEventCreated is the ?notice= value the list page shows after an event
// was created.
const NoticeEventCreated = "event-created"

type EventCard struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Excerpt        string `json:"excerpt,omitempty"`
	CreatorName    string `json:"creator_name"`
	CreatedOn      string `json:"created_on"`
	TotalSlots     int    `json:"total_slots"`
	AvailableSlots int    `json:"available_slots"`
}

type HomeState struct {
	Status Status      `json:"status"`
	Events []EventCard `json:"events"`
	Notice *Notice     `json:"notice,omitempty"`
}

// LoadHome builds the event list from the API response.
func LoadHome(events []models.EventSummary, conv *tz.Converter) (HomeState, error) {
	cards := make([]EventCard, 0, len(events))

	for _, e := range events {
		createdOn, err := conv.Format(e.CreatedAt, tz.PatternDate)
		if err != nil {
			return HomeState{}, err
		}

		cards = append(cards, EventCard{
			ID:             e.ID,
			Title:          e.Title,
			Excerpt:        excerpt(e.Description),
			CreatorName:    e.CreatorName,
			CreatedOn:      createdOn,
			TotalSlots:     e.TotalSlots,
			AvailableSlots: e.AvailableSlots,
		})
	}

	return HomeState{Status: StatusLoaded, Events: cards}, nil
}

// HomeFailed is the list page after the events could not be loaded.
func HomeFailed(msg string) HomeState {
	return HomeState{
		Status: StatusError,
		Events: []EventCard{},
		Notice: Failure(msg),
	}
}

func excerpt(desc *string) string {
	if desc == nil {
		return ""
	}

	return runewidth.Truncate(strings.TrimSpace(*desc), excerptWidth, "...")
}
