package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/surveyforge/surveyforge/app"
	"github.com/surveyforge/surveyforge/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.Get(`/surveys/{id:^\d+$}`, PublicSurveyForm(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Authenticated(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get(`/surveys/{id:^\d+$}`, PublicGetSurveyById(app))
	api.Get(`/surveys/{id:^\d+$}/form`, PublicSurveyForm(app))
	api.Post(`/surveys/{id:^\d+$}/responses`, PublicSubmitResponse(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		// CRUD survey
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get(`/surveys/{id:^\d+$}`, GetSurveyById(app))
		r.Put(`/surveys/{id:^\d+$}`, UpdateSurvey(app))
		r.Delete(`/surveys/{id:^\d+$}`, DeleteSurvey(app))

		r.Get(`/surveys/{id:^\d+$}/responses`, GetSurveyResponses(app))
		r.Get(`/surveys/{id:^\d+$}/analytics`, GetSurveyAnalytics(app))
	})

	api.Post("/signup", Signup(app))
	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))
	api.With(middlewares.Authenticated(app.TokenSecret)).Get("/me", Me(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
