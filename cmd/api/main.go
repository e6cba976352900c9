package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "autocredit-backend/internal/adapter/http"
	"autocredit-backend/internal/adapter/middleware"
	"autocredit-backend/internal/adapter/notifier"
	"autocredit-backend/internal/adapter/repository/mysql"
	"autocredit-backend/internal/config"
	"autocredit-backend/internal/infrastructure/cache"
	"autocredit-backend/internal/infrastructure/db"
	paymentuc "autocredit-backend/internal/usecase/payment"
	purchaseuc "autocredit-backend/internal/usecase/purchase"
	quotationuc "autocredit-backend/internal/usecase/quotation"
	"autocredit-backend/pkg/finance"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	quotationRepo := mysql.NewQuotationRepository(gdb)
	purchaseRepo := mysql.NewPurchaseRepository(gdb)
	paymentRepo := mysql.NewPaymentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	dispatcher := notifier.NewDispatcher(cfg.NotifierBuffer, notifier.LogEmailSender{})
	defer dispatcher.Close()

	quotationUC := quotationuc.NewUsecase(quotationRepo)
	purchaseUC := purchaseuc.NewUsecase(purchaseRepo, uow, finance.NewSimulatedBureau(), dispatcher)
	paymentUC := paymentuc.NewUsecase(paymentRepo, purchaseRepo, uow, dispatcher, purchaseUC)

	h := httpadp.NewHandler()
	qh := httpadp.NewQuotationHandler(quotationUC)
	ph := httpadp.NewPurchaseHandler(purchaseUC)
	payh := httpadp.NewPaymentHandler(paymentUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	// routes
	e.GET("/health", h.Health)

	e.POST("/quotations", qh.Create)
	e.GET("/quotations/:quotation_id", qh.Get)
	e.POST("/quotations/:quotation_id/decision", qh.Decide)
	e.GET("/clients/:client_id/quotations", qh.ListByClient)

	e.POST("/purchases", ph.Start)
	e.GET("/purchases", ph.ListPending)
	e.GET("/purchases/:purchase_id", ph.Get)
	e.POST("/purchases/:purchase_id/evaluation", ph.Evaluate)
	e.POST("/purchases/:purchase_id/finalize", ph.Finalize)
	e.GET("/clients/:client_id/purchases", ph.ListByClient)

	if cfg.IdempEnabled {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal(err)
		}
		idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
		e.POST("/purchases/:purchase_id/payments", payh.Register, idemp)
	} else {
		e.POST("/purchases/:purchase_id/payments", payh.Register)
	}
	e.GET("/purchases/:purchase_id/payments", payh.ListByPurchase)
	e.GET("/clients/:client_id/payments", payh.ListByClient)
	e.GET("/quotations/:quotation_id/payments", payh.ListByQuotation)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
