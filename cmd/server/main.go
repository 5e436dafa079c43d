package main

import (
	"log"
	"net/http"

	"amalkitchen-be/internal/cart"
	"amalkitchen-be/internal/catalog"
	"amalkitchen-be/internal/config"
	"amalkitchen-be/internal/db"
	"amalkitchen-be/internal/identity"
	"amalkitchen-be/internal/invoice"
	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/middleware"
	"amalkitchen-be/internal/order"
	"amalkitchen-be/internal/ordernum"
	"amalkitchen-be/internal/report"
	"amalkitchen-be/internal/transport"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/gomail.v2"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	middleware.InitMetrics()

	cartStorage := cart.NewRepository(database)
	catalogClient := catalog.NewClient(cfg.CatalogURL, cfg.CatalogToken)

	orderRepo := order.NewRepository(database)
	numbers := ordernum.NewSequenceGenerator(database)
	invoices := invoice.NewSender(cfg)
	orderSvc := order.NewService(orderRepo, numbers, invoices)

	reportRepo := report.NewRepository(database)
	reportSvc := report.NewService(reportRepo, orderRepo, catalogClient)

	mailGateway := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	identityRepo := identity.NewRepository(database)
	identitySvc := identity.NewService(identityRepo, mailGateway, cfg.MailFrom, cfg.StorefrontURL)

	handler := transport.NewHandler(cartStorage, orderSvc, reportSvc, catalogClient, identitySvc)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", transport.NewRouter(handler))

	log.Printf("🚀 server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, mux))
}
