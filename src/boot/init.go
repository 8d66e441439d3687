package boot

import (
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/utils"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()
	Migrate(db)
	SeedRoomTypes(db)
	return db
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.RoomOccupancy{},
		&models.ArchivedBooking{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
}

// SeedRoomTypes ensures the catalog of bookable categories exists.
// FirstOrCreate keeps restarts idempotent; existing rows keep their rates.
func SeedRoomTypes(db *gorm.DB) {
	defaults := []models.RoomType{
		{Type: "Classic", Description: "Standard room with all essentials", BasePrice: 120.00, ReservationFeePercentage: 10},
		{Type: "Deluxe", Description: "Spacious room with city view", BasePrice: 200.00, ReservationFeePercentage: 15},
		{Type: "Prestige", Description: "Premium room with lounge access", BasePrice: 150.00, ReservationFeePercentage: 12.5},
		{Type: "Luxury", Description: "Budget room with shared amenities", BasePrice: 80.00, ReservationFeePercentage: 20},
	}
	for _, rt := range defaults {
		err := db.
			Where(&models.RoomType{Type: rt.Type}).
			FirstOrCreate(&rt).
			Error
		if err != nil {
			log.Printf("Error seeding room type %s: %s\n", rt.Type, err.Error())
		}
	}
}

func InitScheduler() {
	id, err := lib.CreateCronJob(utils.SweepDepartedStays, 1*time.Hour)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	log.Printf("Job ID: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
