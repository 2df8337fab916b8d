package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/canvas"
	config "github.com/lolobelaiba-droid/graduation-guardian/configs"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/services"
	"github.com/lolobelaiba-droid/graduation-guardian/websocket"
)

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// CanvasUpgrade rejects plain HTTP requests on the canvas socket route.
func CanvasUpgrade(c *fiber.Ctx) error {
	if !websocketcontrib.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// ServeCanvas runs one editing session over a template layout. The first
// message must be {"type":"auth","token":...}; every later message is a
// canvas event answered by exactly one reply. Layouts saved by this client
// are relayed to the other editors of the template.
func ServeCanvas(c *websocketcontrib.Conn) {
	defer c.Close()

	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		log.Printf("Canvas auth failed: invalid or missing auth message, error: %v", err)
		_ = c.WriteJSON(fiber.Map{"type": canvas.ReplyError, "error": "Invalid or missing auth message"})
		return
	}
	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"type": canvas.ReplyError, "error": "Invalid token"})
		return
	}
	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"type": canvas.ReplyError, "error": "Invalid user ID"})
		return
	}
	templateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"type": canvas.ReplyError, "error": "Invalid template ID"})
		return
	}

	actorCtx := services.WithActor(context.Background(), userID)
	l, _, err := svc.Templates.Layout(actorCtx, templateID)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"type": canvas.ReplyError, "error": err.Error()})
		return
	}

	client := &websocket.Client{UserID: userID, TemplateID: templateID, Conn: c}
	hub.Register(client)
	defer hub.Unregister(client)

	session := canvas.NewSession(l, func(ctx context.Context, changed []models.TemplateField, deleted []uuid.UUID) error {
		if err := svc.Templates.SaveLayout(ctx, changed, deleted); err != nil {
			return err
		}
		hub.Broadcast(client, websocket.LayoutUpdate{
			Type:       "layout_saved",
			TemplateID: templateID,
			UserID:     userID,
			Fields:     changed,
			Deleted:    deleted,
		})
		return nil
	})
	if s, err := strconv.ParseFloat(c.Query("scale"), 64); err == nil && s > 0 {
		session.Interaction.Scale = s
	}

	if err := client.Send(fiber.Map{"type": "ready", "fields": l.Fields()}); err != nil {
		return
	}
	for {
		var ev canvas.Event
		if err := c.ReadJSON(&ev); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("Canvas closed for %s", userID)
			} else {
				log.Printf("Canvas read error for %s: %v", userID, err)
			}
			break
		}
		if err := client.Send(session.Handle(actorCtx, ev)); err != nil {
			log.Printf("Canvas write error for %s: %v", userID, err)
			break
		}
	}
	if l.Dirty() {
		log.Printf("⚠️ Canvas session of %s on %s closed with unsaved changes", userID, templateID)
	}
}
