package config

import (
	"log"
	"time"

	"gorm.io/datatypes"

	"bookiniad-backend/models"
)

const availabilityDays = 30

// SeedDatabase populates sample accommodations, flights, packages and
// a rolling window of availability data. Safe to run on every boot.
func SeedDatabase() {
	seedAccommodations()
	seedFlights()
	seedTravelPackages()
	seedAvailability()
}

func seedAccommodations() {
	var count int64
	DB.Model(&models.Accommodation{}).Count(&count)
	if count > 0 {
		log.Println("Accommodations already seeded")
		return
	}

	amenities := func(items ...string) datatypes.JSON {
		raw := `[`
		for i, item := range items {
			if i > 0 {
				raw += `,`
			}
			raw += `"` + item + `"`
		}
		raw += `]`
		return datatypes.JSON(raw)
	}

	accommodations := []models.Accommodation{
		{Name: "東京グランドホテル", Rank: 5, Location: "東京", Description: "東京駅直結の高級シティホテル。ビジネスにも観光にも便利な立地です。", Amenities: amenities("WiFi", "大浴場", "レストラン", "ジム"), PricePerNight: 25000, TotalRooms: 120},
		{Name: "東京ビジネスイン", Rank: 3, Location: "東京", Description: "リーズナブルな価格で快適な滞在を。新宿駅から徒歩5分。", Amenities: amenities("WiFi", "朝食付き"), PricePerNight: 8000, TotalRooms: 80},
		{Name: "大阪リバーサイドホテル", Rank: 4, Location: "大阪", Description: "道頓堀まで徒歩圏内。川沿いの眺めが自慢のホテルです。", Amenities: amenities("WiFi", "レストラン", "バー"), PricePerNight: 15000, TotalRooms: 90},
		{Name: "大阪ステイイン難波", Rank: 3, Location: "大阪", Description: "難波駅すぐのカジュアルホテル。観光の拠点に最適。", Amenities: amenities("WiFi", "コインランドリー"), PricePerNight: 7500, TotalRooms: 60},
		{Name: "沖縄ビーチリゾート", Rank: 5, Location: "沖縄", Description: "プライベートビーチ付きのリゾートホテル。全室オーシャンビュー。", Amenities: amenities("WiFi", "プール", "ビーチ", "スパ"), PricePerNight: 32000, TotalRooms: 150},
		{Name: "那覇シティホテル", Rank: 3, Location: "沖縄", Description: "国際通りまで徒歩3分。観光にも食事にも便利です。", Amenities: amenities("WiFi", "朝食付き"), PricePerNight: 9000, TotalRooms: 70},
		{Name: "札幌スノーホテル", Rank: 4, Location: "札幌", Description: "すすきの至近。冬は雪景色、夏は涼しい北海道の滞在を。", Amenities: amenities("WiFi", "大浴場", "レストラン"), PricePerNight: 13000, TotalRooms: 100},
		{Name: "京都和風旅館 花月", Rank: 4, Location: "京都", Description: "祇園に佇む老舗旅館。京懐石と露天風呂をお楽しみください。", Amenities: amenities("WiFi", "露天風呂", "懐石料理"), PricePerNight: 28000, TotalRooms: 30},
		{Name: "京都ステーションホテル", Rank: 3, Location: "京都", Description: "京都駅前の好立地。観光バス乗り場もすぐそばです。", Amenities: amenities("WiFi", "朝食付き"), PricePerNight: 10000, TotalRooms: 85},
		{Name: "福岡キャナルホテル", Rank: 4, Location: "福岡", Description: "中洲の屋台街まで徒歩5分。博多グルメを満喫できます。", Amenities: amenities("WiFi", "レストラン", "ジム"), PricePerNight: 12000, TotalRooms: 95},
	}

	if err := DB.Create(&accommodations).Error; err != nil {
		log.Printf("warning: failed to seed accommodations: %v", err)
		return
	}
	log.Printf("Accommodations seeded: %d", len(accommodations))
}

func seedFlights() {
	var count int64
	DB.Model(&models.Flight{}).Count(&count)
	if count > 0 {
		log.Println("Flights already seeded")
		return
	}

	base := time.Now().AddDate(0, 0, 1)
	at := func(days, hour, min int) time.Time {
		d := base.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
	}

	flights := []models.Flight{
		{Name: "スカイ航空 羽田-新千歳", FlightNumber: "SK101", FlightType: models.FlightTypeDomestic, PlaceFrom: "東京", PlaceTo: "札幌", DepartureTime: at(0, 8, 0), ArrivalTime: at(0, 9, 35), Fee: 18000, AvailableSeats: 180},
		{Name: "スカイ航空 新千歳-羽田", FlightNumber: "SK102", FlightType: models.FlightTypeDomestic, PlaceFrom: "札幌", PlaceTo: "東京", DepartureTime: at(0, 18, 30), ArrivalTime: at(0, 20, 5), Fee: 18000, AvailableSeats: 180},
		{Name: "スカイ航空 羽田-那覇", FlightNumber: "SK201", FlightType: models.FlightTypeDomestic, PlaceFrom: "東京", PlaceTo: "沖縄", DepartureTime: at(0, 9, 15), ArrivalTime: at(0, 12, 0), Fee: 25000, AvailableSeats: 220},
		{Name: "スカイ航空 那覇-羽田", FlightNumber: "SK202", FlightType: models.FlightTypeDomestic, PlaceFrom: "沖縄", PlaceTo: "東京", DepartureTime: at(0, 14, 0), ArrivalTime: at(0, 16, 30), Fee: 25000, AvailableSeats: 220},
		{Name: "ブルー航空 伊丹-羽田", FlightNumber: "BL301", FlightType: models.FlightTypeDomestic, PlaceFrom: "大阪", PlaceTo: "東京", DepartureTime: at(0, 7, 30), ArrivalTime: at(0, 8, 40), Fee: 14000, AvailableSeats: 160},
		{Name: "ブルー航空 羽田-伊丹", FlightNumber: "BL302", FlightType: models.FlightTypeDomestic, PlaceFrom: "東京", PlaceTo: "大阪", DepartureTime: at(0, 19, 0), ArrivalTime: at(0, 20, 10), Fee: 14000, AvailableSeats: 160},
		{Name: "ブルー航空 福岡-羽田", FlightNumber: "BL401", FlightType: models.FlightTypeDomestic, PlaceFrom: "福岡", PlaceTo: "東京", DepartureTime: at(0, 10, 0), ArrivalTime: at(0, 11, 40), Fee: 20000, AvailableSeats: 170},
		{Name: "ブルー航空 羽田-福岡", FlightNumber: "BL402", FlightType: models.FlightTypeDomestic, PlaceFrom: "東京", PlaceTo: "福岡", DepartureTime: at(0, 16, 30), ArrivalTime: at(0, 18, 10), Fee: 20000, AvailableSeats: 170},
		{Name: "グローバル航空 成田-ホノルル", FlightNumber: "GL901", FlightType: models.FlightTypeInternational, PlaceFrom: "東京", PlaceTo: "ホノルル", DepartureTime: at(1, 21, 0), ArrivalTime: at(2, 9, 30), Fee: 85000, AvailableSeats: 280},
	}

	if err := DB.Create(&flights).Error; err != nil {
		log.Printf("warning: failed to seed flights: %v", err)
		return
	}
	log.Printf("Flights seeded: %d", len(flights))
}

func seedTravelPackages() {
	var count int64
	DB.Model(&models.TravelPackage{}).Count(&count)
	if count > 0 {
		log.Println("Travel packages already seeded")
		return
	}

	findFlight := func(number string) *uint {
		var f models.Flight
		if err := DB.Where("flight_number = ?", number).First(&f).Error; err != nil {
			return nil
		}
		return &f.ID
	}
	findAccommodation := func(name string) *uint {
		var a models.Accommodation
		if err := DB.Where("name = ?", name).First(&a).Error; err != nil {
			return nil
		}
		return &a.ID
	}

	packages := []models.TravelPackage{
		{
			Name:             "沖縄リゾート満喫3日間",
			Description:      "ビーチリゾートで過ごす沖縄旅行。往復航空券と宿泊のセットプランです。",
			OutboundFlightID: findFlight("SK201"),
			ReturnFlightID:   findFlight("SK202"),
			AccommodationID:  findAccommodation("沖縄ビーチリゾート"),
			TotalPrice:       128000,
			StayDuration:     2,
			IsAvailable:      true,
		},
		{
			Name:             "札幌グルメと温泉の旅",
			Description:      "北海道の味覚と温泉を楽しむ2泊3日プラン。",
			OutboundFlightID: findFlight("SK101"),
			ReturnFlightID:   findFlight("SK102"),
			AccommodationID:  findAccommodation("札幌スノーホテル"),
			TotalPrice:       78000,
			StayDuration:     2,
			IsAvailable:      true,
		},
		{
			Name:             "京都はんなり1泊2日",
			Description:      "老舗旅館で過ごす京都旅。懐石料理付きのプランです。",
			OutboundFlightID: findFlight("BL302"),
			ReturnFlightID:   findFlight("BL301"),
			AccommodationID:  findAccommodation("京都和風旅館 花月"),
			TotalPrice:       64000,
			StayDuration:     1,
			IsAvailable:      true,
		},
	}

	if err := DB.Create(&packages).Error; err != nil {
		log.Printf("warning: failed to seed travel packages: %v", err)
		return
	}
	log.Printf("Travel packages seeded: %d", len(packages))
}

// availabilityRatio returns the fraction of capacity left open on a given
// weekday. Fridays and Saturdays are busiest, Sundays in between.
func availabilityRatio(day time.Weekday, baseRatio, weekendRatio, sundayRatio float64) float64 {
	switch day {
	case time.Friday, time.Saturday:
		return weekendRatio
	case time.Sunday:
		return sundayRatio
	default:
		return baseRatio
	}
}

func seedAvailability() {
	var existing int64
	DB.Model(&models.AccommodationAvailability{}).Count(&existing)
	if existing > 0 {
		log.Println("Availability data already seeded")
		return
	}

	var accommodations []models.Accommodation
	if err := DB.Find(&accommodations).Error; err != nil {
		log.Printf("warning: failed to load accommodations for availability seed: %v", err)
		return
	}
	var flights []models.Flight
	if err := DB.Find(&flights).Error; err != nil {
		log.Printf("warning: failed to load flights for availability seed: %v", err)
		return
	}

	today := time.Now()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	roomRows := make([]models.AccommodationAvailability, 0, len(accommodations)*availabilityDays)
	seatRows := make([]models.FlightAvailability, 0, len(flights)*availabilityDays)

	for i := 0; i < availabilityDays; i++ {
		day := start.AddDate(0, 0, i)
		roomRatio := availabilityRatio(day.Weekday(), 0.8, 0.3, 0.5)
		seatRatio := availabilityRatio(day.Weekday(), 0.7, 0.4, 0.5)

		for _, acc := range accommodations {
			roomRows = append(roomRows, models.AccommodationAvailability{
				AccommodationID: acc.ID,
				Date:            day,
				AvailableRooms:  int(float64(acc.TotalRooms) * roomRatio),
			})
		}
		for _, f := range flights {
			seatRows = append(seatRows, models.FlightAvailability{
				FlightID:       f.ID,
				Date:           day,
				AvailableSeats: int(float64(f.AvailableSeats) * seatRatio),
			})
		}
	}

	if len(roomRows) > 0 {
		if err := DB.CreateInBatches(&roomRows, 200).Error; err != nil {
			log.Printf("warning: failed to seed accommodation availability: %v", err)
		}
	}
	if len(seatRows) > 0 {
		if err := DB.CreateInBatches(&seatRows, 200).Error; err != nil {
			log.Printf("warning: failed to seed flight availability: %v", err)
		}
	}
	log.Printf("Availability seeded: %d room rows, %d seat rows", len(roomRows), len(seatRows))
}
