package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/summary-gateway/internal/llm"
	"github.com/nulzo/summary-gateway/internal/store"
	"github.com/nulzo/summary-gateway/internal/store/model"
	"github.com/nulzo/summary-gateway/internal/store/sqlite"
)

type seedProvider struct {
	model    string
	label    string
	strategy string
}

var providers = map[llm.ProviderName]seedProvider{
	llm.Gemini:    {"gemini-1.5-flash", "Gemini", "gemini"},
	llm.Groq:      {"llama-3.1-70b-versatile", "Groq", "openai"},
	llm.OpenAI:    {"gpt-4o-mini", "OpenAI", "openai"},
	llm.Anthropic: {"claude-3-5-haiku-20241022", "Anthropic", "anthropic"},
}

func main() {
	path := flag.String("db", "gateway.db", "SQLite database path")
	requests := flag.Int("requests", 200, "Number of gateway requests to simulate")
	days := flag.Int("days", 7, "Spread the requests over this many days")
	flag.Parse()

	repo, err := sqlite.NewSQLiteStorage(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()
	order := llm.DefaultOrder()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	attempts := 0
	err = repo.WithTx(ctx, func(tx store.Repository) error {
		for i := 0; i < *requests; i++ {
			requestID := uuid.New().String()
			at := time.Now().Add(-time.Duration(rng.Int63n(int64(*days) * int64(24*time.Hour))))

			for pos, name := range order {
				p := providers[name]
				entry := &model.AttemptLog{
					RequestID: requestID,
					AppName:   "seed",
					Provider:  string(name),
					Model:     p.model,
					Position:  pos,
					LatencyMS: 200 + rng.Int63n(1500),
					CreatedAt: at,
				}

				// most requests succeed on the first provider, a few fall through
				failed := pos < len(order)-1 && rng.Intn(100) < 15
				if failed {
					entry.Outcome = model.OutcomeFailure
					entry.StatusCode = 500
					entry.Error = p.label + " 500"
				} else {
					entry.Outcome = model.OutcomeSuccess
					entry.Strategy = p.strategy
				}

				if err := tx.Attempts().Log(ctx, entry); err != nil {
					return err
				}
				attempts++
				if !failed {
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Seeded %d attempts for %d requests into %s\n", attempts, *requests, *path)
}
