// Command seedinvites loads an invite code table from a JSON file into Redis
// for deployments that run with ONBOARDING_INVITE_CODE_SOURCE=redis.
package main

import (
	"context"
	"flag"
	"log"
	"provider-directory/internal/app/config"
	"provider-directory/internal/app/drivers/database"
	"provider-directory/internal/app/drivers/logger"
	"provider-directory/internal/app/services/shared/invitecodes"
	"provider-directory/internal/app/services/shared/redis"
	"time"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	path := flag.String("file", internalConfig.Onboarding.InviteCodesFile, "invite code table to load")
	flag.Parse()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	table, err := invitecodes.LoadTable(*path)
	if err != nil {
		log.Fatalf("Failed to load invite codes from %s: %v", *path, err)
	}

	client := database.NewRedisClient(driverConfig)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repository := invitecodes.NewRedisInviteCodeRepository(redis.NewRedisRepository(client), zapLogger)
	if err := repository.Seed(ctx, table); err != nil {
		log.Fatalf("Failed to seed invite codes: %v", err)
	}
	log.Printf("Seeded %d user and %d admin invite codes", len(table.User), len(table.Admin))
}
