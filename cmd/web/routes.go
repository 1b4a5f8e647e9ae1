package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.timeout(next))))
		}
		// sharedSlow swaps in the extended timeout for handlers that call the OpenAI API.
		sharedSlow = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.aiTimeout(next))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
		mustSessionSlow = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(app.authenticate(
				sharedSlow(app.mustAuthenticate(next))))))
		}
	)

	mux.Handle("POST /api/workouts/generate", mustSessionSlow(http.HandlerFunc(app.workoutGeneratePOST)))
	mux.Handle("POST /api/workouts/log", mustSession(http.HandlerFunc(app.workoutLogPOST)))
	mux.Handle("GET /api/workouts/history", mustSession(http.HandlerFunc(app.historyGET)))
	mux.Handle("GET /api/workouts/analytics", mustSession(http.HandlerFunc(app.analyticsGET)))
	mux.Handle("GET /api/workouts/recommend", mustSession(http.HandlerFunc(app.recommendGET)))

	mux.Handle("GET /api/workouts/custom", mustSession(http.HandlerFunc(app.customWorkoutsGET)))
	mux.Handle("POST /api/workouts/custom", mustSession(http.HandlerFunc(app.customWorkoutPOST)))

	mux.Handle("GET /api/workouts/{workoutID}", mustSession(http.HandlerFunc(app.workoutGET)))
	mux.Handle("PATCH /api/workouts/{workoutID}", mustSession(http.HandlerFunc(app.workoutStatusPATCH)))
	mux.Handle("DELETE /api/workouts/{workoutID}", mustSession(http.HandlerFunc(app.workoutDELETE)))

	mux.Handle("GET /api/stations", noAuth(http.HandlerFunc(app.stationsGET)))

	mux.Handle("GET /api/profile", mustSession(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /api/profile", mustSession(http.HandlerFunc(app.profilePUT)))

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noAuth(http.HandlerFunc(app.testTimeout)))

	return mux
}
