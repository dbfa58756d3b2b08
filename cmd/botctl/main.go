package main

import (
	"context"
	"flag"
	"log"
	"os"

	"botrental/internal/db"
	"botrental/internal/domain"
	"botrental/internal/repository"

	"github.com/joho/godotenv"
)

// botctl manages the bot catalog from the command line:
//
//	botctl -add -name promoter -desc "posts ads" -price 500
//	botctl -deactivate -id 3
//	botctl -activate -id 3
//	botctl -delete -id 3
//	botctl -list
func main() {
	_ = godotenv.Load()

	add := flag.Bool("add", false, "add a bot to the catalog")
	list := flag.Bool("list", false, "list rentable bots")
	activate := flag.Bool("activate", false, "make a bot rentable again")
	deactivate := flag.Bool("deactivate", false, "take a bot off the catalog")
	del := flag.Bool("delete", false, "soft-delete a bot")
	id := flag.Int64("id", 0, "bot id")
	name := flag.String("name", "", "bot name")
	desc := flag.String("desc", "", "bot description")
	price := flag.Int64("price", 0, "rental price per term")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewBotRepository(pool)
	ctx := context.Background()

	switch {
	case *add:
		bot, err := domain.NewBot(*name, *desc, *price)
		if err != nil {
			log.Fatalf("invalid bot: %v", err)
		}
		if err := repo.Create(ctx, bot); err != nil {
			log.Fatalf("create bot failed: %v", err)
		}
		log.Printf("bot created id=%d name=%s price=%d\n", bot.ID, bot.Name, bot.Price)

	case *activate, *deactivate, *del:
		bot := mustGet(ctx, repo, *id)
		var err error
		switch {
		case *activate:
			err = bot.Activate()
		case *deactivate:
			err = bot.Deactivate()
		case *del:
			err = bot.Delete()
		}
		if err != nil {
			log.Fatalf("bot %d: %v", bot.ID, err)
		}
		if err := repo.Update(ctx, bot); err != nil {
			log.Fatalf("update bot failed: %v", err)
		}
		log.Printf("bot updated id=%d available=%v deleted=%v\n", bot.ID, bot.IsAvailable, bot.IsDeleted)

	case *list:
		bots, err := repo.GetAllAvailable(ctx)
		if err != nil {
			log.Fatalf("list bots failed: %v", err)
		}
		for _, b := range bots {
			log.Printf("id=%d name=%s price=%d\n", b.ID, b.Name, b.Price)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func mustGet(ctx context.Context, repo *repository.BotRepository, id int64) *domain.Bot {
	if id == 0 {
		log.Fatal("-id is required")
	}
	bot, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Fatalf("get bot failed: %v", err)
	}
	if bot == nil {
		log.Fatalf("bot %d not found", id)
	}
	return bot
}
