package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fitcal/internal/client/repositories/water"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/profile"
)

type ProfileService interface {
	// Get returns the stored profile, or profile.Default when none is saved.
	Get(ctx context.Context) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
	// ApplyRecommended replaces the targets with profile.Recommend and saves.
	ApplyRecommended(ctx context.Context, now time.Time) (profile.Targets, error)

	Water(ctx context.Context, date string) (profile.Water, error)
	AddWater(ctx context.Context, date string) (profile.Water, error)
	RemoveWater(ctx context.Context, date string) (profile.Water, error)

	DailySummary(ctx context.Context, date string) (profile.DailySummary, error)
}

type profileService struct {
	db *sql.DB
	l  *ledger.Ledger
}

func NewProfileService(db *sql.DB, l *ledger.Ledger) ProfileService {
	return &profileService{db: db, l: l}
}

func (s *profileService) Get(ctx context.Context) (profile.Profile, error) {
	p := profile.Default()
	if _, err := metadata.LoadJSON(ctx, metadata.NewSQLiteRepository(s.db), metadata.KeyProfile, &p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (s *profileService) Save(ctx context.Context, p profile.Profile) error {
	if err := profile.Validate(p); err != nil {
		return err
	}
	return metadata.SaveJSON(ctx, metadata.NewSQLiteRepository(s.db), metadata.KeyProfile, p)
}

func (s *profileService) ApplyRecommended(ctx context.Context, now time.Time) (profile.Targets, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return profile.Targets{}, err
	}
	p.Targets = profile.Recommend(p, now)
	if err := s.Save(ctx, p); err != nil {
		return profile.Targets{}, err
	}
	return p.Targets, nil
}

func (s *profileService) Water(ctx context.Context, date string) (profile.Water, error) {
	if _, err := ledger.ParseDate(date); err != nil {
		return 0, err
	}
	n, err := water.NewSQLiteRepository(s.db).Get(ctx, date)
	if err != nil {
		return 0, err
	}
	return profile.Water(n), nil
}

func (s *profileService) AddWater(ctx context.Context, date string) (profile.Water, error) {
	return s.updateWater(ctx, date, profile.Water.Add)
}

func (s *profileService) RemoveWater(ctx context.Context, date string) (profile.Water, error) {
	return s.updateWater(ctx, date, profile.Water.Remove)
}

func (s *profileService) updateWater(ctx context.Context, date string, step func(profile.Water) profile.Water) (profile.Water, error) {
	w, err := s.Water(ctx, date)
	if err != nil {
		return 0, err
	}
	w = step(w)
	if err := water.NewSQLiteRepository(s.db).Set(ctx, date, int(w)); err != nil {
		return 0, fmt.Errorf("saving error: %w", err)
	}
	return w, nil
}

func (s *profileService) DailySummary(ctx context.Context, date string) (profile.DailySummary, error) {
	if _, err := ledger.ParseDate(date); err != nil {
		return profile.DailySummary{}, err
	}
	p, err := s.Get(ctx)
	if err != nil {
		return profile.DailySummary{}, err
	}
	return profile.Summarize(ledger.Sum(s.l.EntriesOn(date)), p.Targets), nil
}
