package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/usecase"
)

type fixtureDTO struct {
	ID       int    `json:"id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Venue    string `json:"venue"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Round    string `json:"round,omitempty"`
}

type fixtureListDTO struct {
	Fixtures  []fixtureDTO `json:"fixtures"`
	Origin    string       `json:"origin"`
	FetchedAt *time.Time   `json:"fetched_at,omitempty"`
}

type roundDTO struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type roundListDTO struct {
	Rounds    []roundDTO `json:"rounds"`
	Origin    string     `json:"origin"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	var round *int
	if raw := strings.TrimSpace(r.URL.Query().Get("round")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: round must be an integer", usecase.ErrInvalidInput))
			return
		}
		round = &value
	}

	result, err := h.fixtureService.Fixtures(ctx, round)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(result.Fixtures))
	for _, item := range result.Fixtures {
		items = append(items, fixtureToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, fixtureListDTO{
		Fixtures:  items,
		Origin:    string(result.Origin),
		FetchedAt: optionalTime(result.FetchedAt),
	})
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	result := h.fixtureService.Rounds(ctx)

	items := make([]roundDTO, 0, len(result.Rounds))
	for _, item := range result.Rounds {
		items = append(items, roundDTO{Number: item.Number, Name: item.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, roundListDTO{
		Rounds:    items,
		Origin:    string(result.Origin),
		FetchedAt: optionalTime(result.FetchedAt),
	})
}

func fixtureToDTO(item fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:       item.ID,
		HomeTeam: item.HomeTeam,
		AwayTeam: item.AwayTeam,
		Venue:    item.Venue,
		Date:     item.Date,
		Time:     item.Time,
		Round:    item.Round,
	}
}

func optionalTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	utc := value.UTC()
	return &utc
}
