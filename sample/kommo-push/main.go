// Command kommo-push sends one sample prospect to the configured Kommo
// account. It reads the same environment as the API.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/config"
	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
	"github.com/xavierca1/leadlocal/internal/scoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.KommoToken == "" || cfg.KommoBaseURL == "" {
		log.Fatal("KOMMO_API_TOKEN and KOMMO_BASE_URL must be set")
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	lead := scoring.Score(entity.Lead{
		ID:            "sample-lead",
		Name:          "Sample Dental Care",
		Address:       "500 Market St, San Francisco, CA 94105",
		Phone:         "+14155550123",
		Email:         "office@sampledental.example",
		Website:       "https://sampledental.wixsite.com",
		Industry:      "Healthcare",
		EmployeeCount: 14,
		ReviewCount:   37,
	})

	client := kommo.NewClient(cfg.KommoToken, cfg.KommoBaseURL, cfg.KommoStatusID, 15*time.Second, logger)

	fmt.Printf("Pushing %q (score %d) to Kommo...\n", lead.Name, lead.ReadinessScore)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := client.PushLead(ctx, lead)
	if err != nil {
		log.Fatalf("push failed: %v", err)
	}

	account := strings.TrimSuffix(strings.TrimPrefix(cfg.KommoBaseURL, "https://"), "/api/v4")
	fmt.Printf("Kommo lead #%d created (contact #%d)\n", res.KommoID, res.ContactID)
	fmt.Printf("Link: https://%s/leads/detail/%d\n", account, res.KommoID)
}
