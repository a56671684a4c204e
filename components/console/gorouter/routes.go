package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	"github.com/healthdesk/admin-console/components/console"
	"github.com/healthdesk/admin-console/components/console/commands"
	"github.com/healthdesk/admin-console/components/console/httpapi"
)

// Config wires go-router with console controllers, APIs, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *console.Controller
	API        httpapi.Executor
	Broadcast  *console.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	HTML        string
	Section     string
	Knowledge   string
	KnowledgeID string
	UserID      string
	Refresh     string
	WebSocket   string
}

// Register mounts console routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		section := console.Section(ctx.Query("section"))
		var buf bytes.Buffer
		if err := cfg.Controller.RenderPage(ctx.Context(), section, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Section, router.WrapHandler(func(ctx router.Context) error {
		section := console.Section(ctx.Param("section"))
		payload, err := cfg.Controller.SectionPayload(ctx.Context(), section)
		if err != nil {
			return respondError(ctx, http.StatusNotFound, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Knowledge, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveKnowledgeInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.ID = nil
		if err := api.SaveKnowledge(ctx.Context(), payload); err != nil {
			return respondError(ctx, mutationStatus(err), err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Put(routes.KnowledgeID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("entry id is required"))
		}
		var payload commands.SaveKnowledgeInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.ID = &id
		if err := api.SaveKnowledge(ctx.Context(), payload); err != nil {
			return respondError(ctx, mutationStatus(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.KnowledgeID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("entry id is required"))
		}
		if ctx.Query("confirm") != "true" {
			return respondError(ctx, http.StatusBadRequest, errors.New("delete requires confirm=true"))
		}
		if err := api.DeleteKnowledge(ctx.Context(), commands.DeleteKnowledgeInput{ID: id}); err != nil {
			return respondError(ctx, mutationStatus(err), err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Put(routes.UserID, router.WrapHandler(func(ctx router.Context) error {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, errors.New("user id is required"))
		}
		var payload commands.UpdateUserInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.ID = id
		if err := api.UpdateUser(ctx.Context(), payload); err != nil {
			return respondError(ctx, mutationStatus(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshSectionInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *console.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func mutationStatus(err error) int {
	switch {
	case errors.Is(err, console.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, console.ErrDeclined):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/console"
	}
	if routes.Section == "" {
		routes.Section = "/console/sections/:section"
	}
	if routes.Knowledge == "" {
		routes.Knowledge = "/console/knowledge"
	}
	if routes.KnowledgeID == "" {
		routes.KnowledgeID = "/console/knowledge/:id"
	}
	if routes.UserID == "" {
		routes.UserID = "/console/users/:id"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/console/refresh"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/console/ws"
	}
	return routes
}
