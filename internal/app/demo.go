package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/revline/explore/internal/adapters/store"
	"github.com/revline/explore/internal/domain/model"
)

// demoOwner pairs a seeded owner with the view counts of their cars.
type demoOwner struct {
	name     string
	username string
	role     string
}

// SeedDemo fills a store with a small sample garage so the explore routes
// return something out of the box. Views are skewed so the ranked, search
// and trending modes all show visibly different orderings.
func SeedDemo(ctx context.Context, mem *store.MemStore) {
	now := time.Now()

	owners := []demoOwner{
		{"Aiko Tanaka", "aiko_garage", model.RolePremium},
		{"Marcus Webb", "webbworks", model.RolePremium},
		{"Lena Fischer", "lenadrives", model.RoleAdmin},
		{"Sam O'Neal", "oneal_builds", model.RoleFree},
	}
	ownerIDs := make([]string, len(owners))
	for i, o := range owners {
		id := uuid.NewString()
		ownerIDs[i] = id
		_, _ = mem.PutOwner(ctx, model.Owner{
			ID:              id,
			TokenIdentifier: fmt.Sprintf("demo|%s", id),
			Name:            o.name,
			Username:        o.username,
			Role:            o.role,
		})
	}

	cars := []struct {
		owner   int
		make    string
		model   string
		year    int
		powerHp string
		ageDays int
		views   int
		recent  int
	}{
		{0, "Nissan", "Skyline GT-R R34", 1999, "276 hp", 3, 40, 22},
		{0, "Mazda", "RX-7 FD", 1994, "255 hp", 45, 18, 2},
		{1, "Ford", "Mustang GT", 2021, "450 hp", 10, 25, 9},
		{1, "Ford", "Focus RS", 2017, "350 hp", 120, 12, 1},
		{2, "Porsche", "911 Carrera S", 2023, "443 hp", 1, 15, 11},
		{2, "BMW", "M3 Competition", 2022, "503 hp", 30, 30, 3},
		// Free-tier owner: never surfaces, kept to exercise the gate.
		{3, "Toyota", "Supra Mk4", 1997, "320 hp", 5, 50, 40},
	}

	for _, c := range cars {
		carID := uuid.NewString()
		_, _ = mem.PutCar(ctx, model.Car{
			ID:          carID,
			UserID:      ownerIDs[c.owner],
			Make:        c.make,
			Model:       c.model,
			Year:        c.year,
			PowerHp:     c.powerHp,
			IsPublished: true,
			CreatedAt:   now.AddDate(0, 0, -c.ageDays),
			AddedAt:     now.AddDate(0, 0, -c.ageDays),
		})

		for i := 0; i < c.views; i++ {
			ts := now.AddDate(0, 0, -30).Add(time.Duration(i) * time.Hour)
			if i < c.recent {
				ts = now.Add(-time.Duration(i+1) * time.Hour)
			}
			_ = mem.AppendEvent(ctx, model.AnalyticsEvent{
				Type:      model.EventCarView,
				CarID:     carID,
				CreatedAt: ts,
			})
		}
	}
}
