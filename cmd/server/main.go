package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/color"
	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/connection"
	"github.com/redis/go-redis/v9"

	"github.com/oakvale/wedding-backend/pkg/config"
	"github.com/oakvale/wedding-backend/pkg/http/routes"
	"github.com/oakvale/wedding-backend/pkg/mailer"
	"github.com/oakvale/wedding-backend/pkg/objects"
	"github.com/oakvale/wedding-backend/pkg/ratelimit"
	"github.com/oakvale/wedding-backend/pkg/storage"
)

func main() {
	objects.Config = config.New(".env", true, nil)
	config.RegisterDefaults()

	if addr := objects.Config.GetString("redis.addr"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		objects.RateStore = ratelimit.NewRedis(client)
		color.Green.Println("rate limiting backed by redis at " + addr)
	} else {
		objects.RateStore = ratelimit.NewMemory()
	}

	if driver := objects.Config.GetString("db.driver"); driver != "" {
		dbConfig := squealx.Config{
			Driver:   driver,
			Host:     objects.Config.GetString("db.host"),
			Port:     objects.Config.GetInt("db.port"),
			Username: objects.Config.GetString("db.username"),
			Password: objects.Config.GetString("db.password"),
			Database: objects.Config.GetString("db.database"),
		}
		db, _, err := connection.FromConfig(dbConfig)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		store, err := storage.NewDatabaseStorage(db)
		if err != nil {
			log.Fatalf("failed to initialize storage: %v", err)
		}
		objects.Store = store
	} else {
		objects.Store = storage.NewMemoryStorage()
		color.Yellow.Println("no database configured, RSVPs are held in memory only")
	}

	mail, err := mailer.New(mailer.Options{
		APIKey:  objects.Config.GetString("email.api_key"),
		From:    objects.Config.GetString("email.from"),
		BaseURL: objects.Config.GetString("email.base_url"),
	})
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}
	objects.Mail = mail
	if !mail.Enabled() {
		color.Yellow.Println("RESEND_API_KEY not set, confirmation emails are disabled")
	}

	app := fiber.New(fiber.Config{
		AppName: objects.Config.GetString("app.name"),
	})
	routes.Setup(app)

	if err := app.Listen(":" + objects.Config.GetString("app.port", "3000")); err != nil {
		log.Fatal(err)
	}
}
