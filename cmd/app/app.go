package app

import (
	log "github.com/sirupsen/logrus"

	"socialhub/internal/config"
	"socialhub/internal/database"
	"socialhub/internal/repository"
	"socialhub/internal/service"
	"socialhub/internal/storage"
)

// App connects the database and object storage and builds the service layer.
func App(cfg *config.Config) (database.MethodsDB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("cannot connect to the database")
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("cannot initialise MinIO")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
