package app

import (
	"github.com/sirupsen/logrus"

	adapterrepo "github.com/madpixels/lingocards/internal/adapter/repository"
	"github.com/madpixels/lingocards/internal/infrastructure/config"
	"github.com/madpixels/lingocards/internal/infrastructure/database"
	"github.com/madpixels/lingocards/internal/repository"
	"github.com/madpixels/lingocards/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *database.DB

	Dictionaries repository.DictionaryRepository
	Words        repository.WordRepository

	ImportUC     usecase.ImportUsecase
	DictionaryUC usecase.DictionaryUsecase
	WordUC       usecase.WordUsecase
	StudyUC      usecase.StudyUsecase

	cleanup func()
}

// New builds the container: config, logger, database and the usecases on
// top. Close must be called when the container is no longer needed.
func New() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	db, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	dicts := adapterrepo.NewDictionaryRepository(db)
	words := adapterrepo.NewWordRepository(db)

	wordUC := usecase.NewWordUsecase(words)
	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Dictionaries: dicts,
		Words:        words,
		ImportUC:     usecase.NewImportUsecase(dicts, words, logger),
		DictionaryUC: usecase.NewDictionaryUsecase(dicts),
		WordUC:       wordUC,
		StudyUC:      usecase.NewStudyUsecase(words, wordUC, cfg.Study, logger),
		cleanup:      cleanup,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() {
	if c.cleanup != nil {
		c.cleanup()
	}
}
