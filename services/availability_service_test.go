package services

import (
	"testing"
	"time"

	"bookiniad-backend/models"
)

func TestStayCovered(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time {
		return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("all nights covered", func(t *testing.T) {
		rooms := func(time.Time) int { return 10 }
		if !stayCovered(rooms, day(20), day(23), 2) {
			t.Error("stay with ample rooms every night should be covered")
		}
	})

	t.Run("one short night rejects the stay", func(t *testing.T) {
		rooms := func(d time.Time) int {
			if d.Day() == 21 {
				return 1
			}
			return 10
		}
		if stayCovered(rooms, day(20), day(23), 2) {
			t.Error("a single night below the party size must reject the stay")
		}
	})

	t.Run("checkout day is not checked", func(t *testing.T) {
		checked := map[int]bool{}
		rooms := func(d time.Time) int {
			checked[d.Day()] = true
			return 10
		}
		stayCovered(rooms, day(20), day(22), 2)
		if !checked[20] || !checked[21] {
			t.Errorf("nights 20 and 21 must be checked, got %v", checked)
		}
		if checked[22] {
			t.Error("checkout day must not be checked")
		}
	})

	t.Run("exact capacity passes", func(t *testing.T) {
		rooms := func(time.Time) int { return 3 }
		if !stayCovered(rooms, day(20), day(21), 3) {
			t.Error("rooms equal to party size should pass")
		}
	})

	t.Run("checkout not after checkin rejects", func(t *testing.T) {
		rooms := func(time.Time) int { return 10 }
		if stayCovered(rooms, day(20), day(20), 1) {
			t.Error("zero-night window must be rejected")
		}
		if stayCovered(rooms, day(22), day(20), 1) {
			t.Error("reversed window must be rejected")
		}
	})
}

func TestRoomsAvailable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	acc := models.Accommodation{Name: "Harbor Inn", Location: "Yokohama", TotalRooms: 50}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("seed accommodation: %v", err)
	}
	// The lookup compares the date column against a YYYY-MM-DD literal, so the
	// fixture row is written with that same literal.
	if err := db.Exec(
		"INSERT INTO accommodation_availabilities (accommodation_id, date, available_rooms) VALUES (?, ?, ?)",
		acc.ID, "2025-08-20", 5,
	).Error; err != nil {
		t.Fatalf("seed availability: %v", err)
	}

	t.Run("seeded date returns the row count", func(t *testing.T) {
		got := svc.RoomsAvailable(acc, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
		if got != 5 {
			t.Errorf("RoomsAvailable = %d, want 5", got)
		}
	})

	t.Run("missing date falls back to static capacity", func(t *testing.T) {
		got := svc.RoomsAvailable(acc, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC))
		if got != acc.TotalRooms {
			t.Errorf("RoomsAvailable = %d, want TotalRooms %d", got, acc.TotalRooms)
		}
	})

	t.Run("date far outside any seeded range falls back", func(t *testing.T) {
		got := svc.RoomsAvailable(acc, time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))
		if got != acc.TotalRooms {
			t.Errorf("RoomsAvailable = %d, want TotalRooms %d", got, acc.TotalRooms)
		}
	})
}

func TestSeatsAvailable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	flight := models.Flight{Name: "Sky Air", FlightNumber: "SK101", AvailableSeats: 180}
	if err := db.Create(&flight).Error; err != nil {
		t.Fatalf("seed flight: %v", err)
	}
	if err := db.Exec(
		"INSERT INTO flight_availabilities (flight_id, date, available_seats) VALUES (?, ?, ?)",
		flight.ID, "2025-08-20", 12,
	).Error; err != nil {
		t.Fatalf("seed availability: %v", err)
	}

	t.Run("seeded date returns the row count", func(t *testing.T) {
		got := svc.SeatsAvailable(flight, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
		if got != 12 {
			t.Errorf("SeatsAvailable = %d, want 12", got)
		}
	})

	t.Run("missing date falls back to static capacity", func(t *testing.T) {
		got := svc.SeatsAvailable(flight, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC))
		if got != flight.AvailableSeats {
			t.Errorf("SeatsAvailable = %d, want AvailableSeats %d", got, flight.AvailableSeats)
		}
	})

	t.Run("date far outside any seeded range falls back", func(t *testing.T) {
		got := svc.SeatsAvailable(flight, time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))
		if got != flight.AvailableSeats {
			t.Errorf("SeatsAvailable = %d, want AvailableSeats %d", got, flight.AvailableSeats)
		}
	})
}

func TestRoomsAvailableQueryErrorFallsBackToStatic(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	acc := models.Accommodation{Name: "Harbor Inn", TotalRooms: 50}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("seed accommodation: %v", err)
	}
	if err := db.Exec("DROP TABLE accommodation_availabilities").Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}

	// A failed lookup reports static capacity, same as a missing row.
	got := svc.RoomsAvailable(acc, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	if got != acc.TotalRooms {
		t.Errorf("RoomsAvailable = %d, want TotalRooms %d on query failure", got, acc.TotalRooms)
	}
}

func TestStayAvailableAgainstStore(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	acc := models.Accommodation{Name: "Harbor Inn", TotalRooms: 50}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("seed accommodation: %v", err)
	}
	// Night of the 21st is nearly full; the 20th and the checkout day are open.
	if err := db.Exec(
		"INSERT INTO accommodation_availabilities (accommodation_id, date, available_rooms) VALUES (?, ?, ?)",
		acc.ID, "2025-08-21", 1,
	).Error; err != nil {
		t.Fatalf("seed availability: %v", err)
	}

	checkin := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	t.Run("short night rejects the stay", func(t *testing.T) {
		if svc.StayAvailable(acc.ID, checkin, checkin.AddDate(0, 0, 2), 2) {
			t.Error("stay crossing the nearly-full night must be rejected")
		}
	})

	t.Run("stay ending before the short night passes", func(t *testing.T) {
		if !svc.StayAvailable(acc.ID, checkin, checkin.AddDate(0, 0, 1), 2) {
			t.Error("one-night stay on an open date must pass")
		}
	})

	t.Run("checkout on the short night passes", func(t *testing.T) {
		if !svc.StayAvailable(acc.ID, time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC), checkin.AddDate(0, 0, 1), 2) {
			t.Error("window ending at the short night must exclude it")
		}
	})
}
