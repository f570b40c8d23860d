package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/surveyforge/surveyforge/cache"
	"github.com/surveyforge/surveyforge/config"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config

	// SurveyCache de-duplicates public fetches of live surveys.
	SurveyCache cache.Cache
}
