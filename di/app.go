package di

import (
	userService "parking/internal/domains/user/service"
	"parking/transport/http"
)

// App is the assembled service plus what cmd/app needs before serving.
type App struct {
	HTTP  *http.HTTP
	Users userService.User
}
