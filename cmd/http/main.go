package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"provider-directory/internal/app/config"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/app/delivery/http/controllers"
	"provider-directory/internal/app/delivery/http/middlewares"
	"provider-directory/internal/app/delivery/http/routers"
	"provider-directory/internal/app/drivers/database"
	"provider-directory/internal/app/drivers/logger"
	"provider-directory/internal/app/drivers/messaging"
	"provider-directory/internal/app/drivers/storage"
	"provider-directory/internal/app/services/core/capabilities"
	"provider-directory/internal/app/services/core/capacity"
	"provider-directory/internal/app/services/core/onboarding"
	"provider-directory/internal/app/services/core/organization"
	corePractitioners "provider-directory/internal/app/services/core/practitioners"
	"provider-directory/internal/app/services/core/roles"
	"provider-directory/internal/app/services/fhir_store/directory"
	"provider-directory/internal/app/services/fhir_store/organizations"
	practitionerRoles "provider-directory/internal/app/services/fhir_store/practitioner_role"
	"provider-directory/internal/app/services/fhir_store/practitioners"
	"provider-directory/internal/app/services/shared/credentials"
	"provider-directory/internal/app/services/shared/events"
	"provider-directory/internal/app/services/shared/invitecodes"
	"provider-directory/internal/app/services/shared/redis"
	objectStorage "provider-directory/internal/app/services/shared/storage"
	"provider-directory/internal/pkg/constvars"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if driverConfig.Redis.Enabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if driverConfig.Minio.Enabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig.Directory.ExportBucket)
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), internalConfig.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	log := bootstrap.Logger

	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
	}

	// Credentials
	tokenSource, err := newTokenSource(cfg.Credential, redisRepository, log)
	if err != nil {
		return err
	}

	// Directory store
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.FHIR.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.FHIR.RequestsPerSecond), cfg.FHIR.Burst)
	}
	directoryClient := directory.NewDirectoryClient(directory.Options{
		BaseUrl:     cfg.FHIR.BaseUrl,
		HTTPClient:  &http.Client{Timeout: cfg.FHIR.RequestTimeout},
		TokenSource: tokenSource,
		Limiter:     limiter,
		Log:         log,
	})

	practitionerFhirClient := practitioners.NewPractitionerFhirClient(directoryClient, log)
	practitionerRoleFhirClient := practitionerRoles.NewPractitionerRoleFhirClient(directoryClient, log)
	organizationFhirClient := organizations.NewOrganizationFhirClient(directoryClient, log)

	// Invite codes
	inviteCodeRepository, err := newInviteCodeRepository(cfg.Onboarding, redisRepository, log)
	if err != nil {
		return err
	}

	// Events
	eventPublisher := events.NewNoopPublisher(log)
	if bootstrap.RabbitMQ != nil {
		eventPublisher, err = events.NewRabbitMQPublisher(bootstrap.RabbitMQ, cfg.Onboarding.EventQueue, log)
		if err != nil {
			return err
		}
	}
	bootstrap.PublisherStop = eventPublisher.Close

	// Object storage
	exportStorage := objectStorage.NewDisabledStorage()
	if bootstrap.Minio != nil {
		exportStorage = objectStorage.NewMinioStorage(bootstrap.Minio, log)
	}

	// Usecases
	roleUsecase := roles.NewRoleUsecase(practitionerRoleFhirClient, practitionerFhirClient, organizationFhirClient, log)
	capacityUsecase := capacity.NewCapacityUsecase(practitionerRoleFhirClient, log)
	onboardingUsecase := onboarding.NewOnboardingUsecase(inviteCodeRepository, practitionerFhirClient, roleUsecase, eventPublisher, log)
	practitionerUsecase := corePractitioners.NewPractitionerUsecase(practitionerFhirClient, cfg.Directory.PlaceholderName, log)
	organizationUsecase := organization.NewOrganizationUsecase(organizationFhirClient, exportStorage, cfg.Directory.ExportBucket, log)

	routers.SetupRoutes(bootstrap.Router, cfg, middlewares.NewMiddlewares(log, cfg), routers.Controllers{
		Onboarding:   controllers.NewOnboardingController(log, onboardingUsecase),
		Capability:   controllers.NewCapabilityController(log, capabilities.NewCapabilityDeriver()),
		Role:         controllers.NewRoleController(log, roleUsecase),
		Capacity:     controllers.NewCapacityController(log, capacityUsecase),
		Practitioner: controllers.NewPractitionerController(log, practitionerUsecase),
		Organization: controllers.NewOrganizationController(log, organizationUsecase),
	})
	return nil
}

func newTokenSource(cfg config.Credential, cache contracts.RedisRepository, log *zap.Logger) (contracts.TokenSource, error) {
	switch cfg.Mode {
	case constvars.CredentialModeStatic:
		return credentials.NewStaticTokenSource(cfg.StaticToken), nil
	case constvars.CredentialModeServiceAccount:
		key, err := credentials.LoadServiceAccountKey(cfg.KeyFile)
		if err != nil {
			return nil, err
		}
		if !cfg.CacheInRedis {
			cache = nil
		}
		return credentials.NewServiceAccountTokenSource(
			credentials.ServiceAccountConfig{Key: key, TokenURL: cfg.TokenURL, Scope: cfg.Scope},
			&http.Client{Timeout: cfg.RequestTimeout},
			cache,
			log,
		), nil
	default:
		return nil, fmt.Errorf("unknown credential mode %q", cfg.Mode)
	}
}

func newInviteCodeRepository(cfg config.Onboarding, redisRepository contracts.RedisRepository, log *zap.Logger) (contracts.InviteCodeRepository, error) {
	switch cfg.InviteCodeSource {
	case constvars.InviteCodeSourceFile:
		table, err := invitecodes.LoadTable(cfg.InviteCodesFile)
		if err != nil {
			return nil, err
		}
		return invitecodes.NewStaticInviteCodeRepository(table)
	case constvars.InviteCodeSourceRedis:
		if redisRepository == nil {
			return nil, fmt.Errorf("invite code source %q needs REDIS_ENABLED=true", cfg.InviteCodeSource)
		}
		return invitecodes.NewRedisInviteCodeRepository(redisRepository, log), nil
	default:
		return nil, fmt.Errorf("unknown invite code source %q", cfg.InviteCodeSource)
	}
}
