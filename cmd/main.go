package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"

	"github.com/Vovarama1992/steelmatch/internal/ai"
	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/config"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
	"github.com/Vovarama1992/steelmatch/internal/notify"
	"github.com/Vovarama1992/steelmatch/internal/reporting"
	"github.com/Vovarama1992/steelmatch/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// --- Seed ---
	var source seed.Source = seed.NewStatic()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open error: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err != nil {
			log.Fatalf("db ping error: %v", err)
		}
		source = seed.NewPostgres(db)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	snap, err := source.Load(ctx)
	cancel()
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}

	// --- Stores ---
	cat, err := catalog.New(snap.Companies, snap.Offers)
	if err != nil {
		log.Fatalf("catalog error: %v", err)
	}
	if _, ok := cat.Company(cfg.CurrentCompanyID); !ok {
		log.Printf("[seed] CURRENT_COMPANY_ID=%s is not in the catalog", cfg.CurrentCompanyID)
	}

	pricer := negotiation.FixedPricer{Value: cfg.MatchValue, Commission: cfg.MatchCommission}
	store, err := negotiation.NewStore(cat, pricer, snap.Chats, snap.Matches)
	if err != nil {
		log.Fatalf("negotiation store error: %v", err)
	}

	var assistant *negotiation.Assistant
	if cfg.OpenAIKey != "" {
		assistant = negotiation.NewAssistant(ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel))
	} else {
		log.Printf("[ai] OPENAI_API_KEY not set, reply suggestions disabled")
	}

	var notifier negotiation.Notifier
	if cfg.MatchWebhookURL != "" {
		notifier = notify.NewWebhook(cfg.MatchWebhookURL)
	}

	registry := negotiation.NewRegistry(store, assistant)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", negotiation.CompanyHeader},
	}))

	catalog.RegisterRoutes(r, catalog.NewHandler(cat))
	negotiation.RegisterRoutes(r, negotiation.NewHandler(registry, cfg.CurrentCompanyID, notifier))
	reporting.RegisterRoutes(r, reporting.NewHandler(cat, store))

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	log.Printf("listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
