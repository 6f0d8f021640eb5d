package main

import (
	"fmt"
	"log"

	"github.com/igorvsx/WalletControlAPI/internal/config"
	"github.com/igorvsx/WalletControlAPI/internal/database"
	"github.com/igorvsx/WalletControlAPI/internal/mailer"
	"github.com/igorvsx/WalletControlAPI/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// reset codes go out through SMTP
	sender := mailer.NewSMTPSender(cfg.Mail)

	// setup router
	r := router.SetupRouter(cfg, db, sender)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
