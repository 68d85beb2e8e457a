package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fitflow/internal/database"
	"fitflow/internal/middleware"
	"fitflow/internal/modules/activity"
	"fitflow/internal/modules/auth"
	"fitflow/internal/modules/bidround"
	"fitflow/internal/modules/casefile"
	"fitflow/internal/modules/catalog"
	"fitflow/internal/modules/execplan"
	"fitflow/internal/modules/procurement"
	"fitflow/internal/modules/quotation"
	"fitflow/internal/modules/watch"
	jwtsvc "fitflow/internal/pkg/jwt"
	"fitflow/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	boqRepo := repository.NewBOQRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	roundRepo := repository.NewBidRoundRepository(db)
	procurementRepo := repository.NewProcurementRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	hub := watch.NewHub()
	defer hub.Close()

	authHandler := auth.NewHandler(auth.NewService(userRepo, vendorRepo, j))
	caseHandler := casefile.NewHandler(casefile.NewService(caseRepo, boqRepo, documentRepo, hub))
	quotationHandler := quotation.NewHandler(quotation.NewService(quotationRepo, caseRepo, boqRepo, hub))
	roundHandler := bidround.NewHandler(bidround.NewService(roundRepo, quotationRepo, vendorRepo, userRepo, hub))
	planHandler := execplan.NewHandler(execplan.NewService(caseRepo, catalogRepo, hub))
	procurementHandler := procurement.NewHandler(procurement.NewService(procurementRepo, caseRepo, vendorRepo, hub))
	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo, vendorRepo))
	activityHandler := activity.NewHandler(activity.NewService(taskRepo, activityRepo))
	watchHandler := watch.NewHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		watchHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			caseHandler.RegisterRoutes(protected)
			quotationHandler.RegisterRoutes(protected)
			roundHandler.RegisterRoutes(protected)
			planHandler.RegisterRoutes(protected)
			procurementHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			activityHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
