package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"campus-chat-app/handler"
	"campus-chat-app/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.UserHandler
	*handler.FriendHandler
	*handler.GroupHandler
	*handler.ChatHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api/v1")
	authLimit := rc.Middleware.AuthRateLimit()
	app.Post("/auth/register", authLimit, rc.AuthHandler.RegisterUser)
	app.Post("/auth/login", authLimit, rc.AuthHandler.LoginUser)
	app.Post("/auth/disconnect", rc.AuthHandler.Disconnect)

	app.Get("/users", rc.UserHandler.GetAllUsers)
	app.Get("/users/:userId", rc.UserHandler.GetUserByID)
	app.Get("/users/:userId/friends", rc.FriendHandler.GetFriends)
	app.Delete("/users/:userId/friends/:friendId", rc.FriendHandler.RemoveFriend)
	app.Get("/users/:userId/friend-requests/pending", rc.FriendHandler.GetPendingRequests)
	app.Get("/users/:userId/friend-requests/sent", rc.FriendHandler.GetSentRequests)
	app.Get("/users/:userId/groups", rc.GroupHandler.GetUserGroups)

	app.Post("/friend-requests", rc.FriendHandler.SendFriendRequest)
	app.Post("/friend-requests/:requestId/accept", rc.FriendHandler.AcceptFriendRequest)

	app.Post("/groups", rc.GroupHandler.CreateGroup)
	app.Get("/groups/:roomId", rc.GroupHandler.GetGroup)
	app.Get("/groups/:roomId/members", rc.GroupHandler.GetMembers)
	app.Post("/groups/:roomId/members/:userId", rc.GroupHandler.AddMember)
	app.Delete("/groups/:roomId/members/:userId", rc.GroupHandler.RemoveMember)

	app.Post("/rooms/:roomId/messages", rc.ChatHandler.SendRoomMessage)
	app.Get("/rooms/:roomId/messages", rc.ChatHandler.GetRoomMessages)
	app.Post("/messages/private", rc.ChatHandler.SendPrivateMessage)
	app.Get("/messages/private/:userId/:otherId", rc.ChatHandler.GetConversation)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1")
	app.Get("/me", rc.Middleware.JWTProtected, rc.Middleware.ExtractUserID, rc.UserHandler.GetUserByToken)
}

func (rc *ConfigRoute) GetWebSocketRoute(wsHandler *handler.WebSocketHandler) {
	rc.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	rc.App.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
