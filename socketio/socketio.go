package socketio

import (
	"context"
	"time"

	"realtime-service/config"
	"realtime-service/database"
	"realtime-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/socket.io-go-redis/adapter"
	r_type "github.com/zishang520/socket.io-go-redis/types"
	"github.com/zishang520/socket.io/v2/socket"
)

var server *socket.Server

func Init(app *fiber.App) *socket.Server {
	log.DEBUG = config.Config("SOCKET_DEBUG") == "true"

	options := socket.DefaultServerOptions()
	options.SetServeClient(true)
	options.SetAllowEIO3(true)
	options.SetPingInterval(25 * time.Second)
	options.SetPingTimeout(20 * time.Second)
	options.SetConnectTimeout(45 * time.Second)
	options.SetAdapter(&adapter.RedisAdapterBuilder{
		Redis: r_type.NewRedisClient(context.Background(), database.Redis[1]),
		Opts:  &adapter.RedisAdapterOptions{},
	})

	server = socket.NewServer(nil, nil)

	// Optional token on the handshake attaches verified claims to the socket.
	// Admin-only events check them; everything else runs on the bare userId
	// query parameter, which is trusted as-is.
	server.Use(func(client *socket.Socket, next func(*socket.ExtendedError)) {
		token, present := client.Conn().Request().Query().Get("token")

		if present {
			claims, err := utils.CheckAndExtractTokenMetadata(token, "JWT_ACCESS_KEY")
			if err == nil {
				client.SetData(claims)
			}
		}

		next(nil)
	})

	app.Get("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))
	app.Post("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))

	return server
}
