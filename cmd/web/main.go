package main

import (
	"log"

	"github.com/minaorangina/kabo/config"
	"github.com/minaorangina/kabo/server"
	"github.com/minaorangina/kabo/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(store.NewInMemoryGameStore(), cfg)
	log.Printf("Listening on port %s...", cfg.Port)
	log.Fatal(s.ListenAndServe())
}
