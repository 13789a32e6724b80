package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/minaorangina/kabo/engine"
)

func main() {
	names := flag.String("players", "Harry,Sally", "comma separated player names")
	cards := flag.Int("cards", 4, "cards dealt to each player")
	seed := flag.Int64("seed", 0, "shuffle seed, 0 for a random game")
	flag.Parse()

	ps := engine.Players{}
	for _, name := range strings.Split(*names, ",") {
		ps = append(ps, engine.NewCLIPlayer(engine.NewID(), strings.TrimSpace(name), os.Stdout))
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		GameID:         "cli",
		CreatorID:      ps[0].ID(),
		Players:        ps,
		CardsPerPlayer: *cards,
		Rand:           rand.New(rand.NewSource(*seed)),
	})
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ge.Listen(ctx)

	if err := engine.ReadCommands(ctx, os.Stdin, os.Stdout, ps, ge); err != nil {
		log.Fatal(err.Error())
	}
}
