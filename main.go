// file: main.go
package main

import (
	"CTFQuest/config"
	"CTFQuest/database"
	"CTFQuest/routes"
	"CTFQuest/utils"
	"flag"
	"log"
)

func main() {
	seed := flag.Bool("seed", false, "import initial levels and challenges, then exit")
	flag.Parse()

	cfg := config.Load()
	utils.InitJWT(cfg.JWTSecret, cfg.JWTExpireMinutes)

	db := database.Connect(cfg)
	database.MigrateTables(db)

	if *seed {
		if err := database.Seed(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Println("Seed data imported.")
		return
	}

	rdb := database.InitRedis(cfg)

	r := routes.SetupRouter(db, rdb)

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
