package server

import (
	"encoding/json"
	"net/http"

	"skrillax-agent/internal/engine"
	"skrillax-agent/internal/network"
	"skrillax-agent/pkg/logger"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Engine *engine.Engine
	Hub    *network.Broadcaster
}

func NewDebugHandler(e *engine.Engine, hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Engine: e, Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/schedule", h.handleSchedule)
}

// /debug/entities - дамп всех сущностей, включая таймеры и цели
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	dump, err := h.Engine.DumpEntities()
	if err != nil {
		logger.Log.WithError(err).Error("Entity dump failed")
		http.Error(w, "dump failed", http.StatusInternalServerError)
		return
	}
	setDebugHeaders(w)
	_, _ = w.Write(dump)
}

// /debug/schedule - порядок систем по стадиям и батчам
func (h *DebugHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	type ScheduleView struct {
		Tick        uint64                `json:"tick"`
		Entities    int                   `json:"entities"`
		Subscribers int                   `json:"subscribers"`
		Stages      map[string][][]string `json:"stages"`
	}

	view := ScheduleView{
		Tick:     h.Engine.TickCount(),
		Entities: h.Engine.EntityCount(),
		Stages:   h.Engine.Schedule(),
	}
	if h.Hub != nil {
		view.Subscribers = h.Hub.SubscriberCount()
	}
	writeJSON(w, view)
}

func setDebugHeaders(w http.ResponseWriter) {
	// Разрешаем запросы с любого источника (нужно для локального debug клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	setDebugHeaders(w)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("failed to encode debug response")
	}
}
